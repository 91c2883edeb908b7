package adherence

import (
	"strings"
	"time"

	"patient-adherence/internal/platform/civil"
)

// Tolerance es la ventana de gracia tras el horario programado.
const Tolerance = 15 * time.Minute

// Status es el estado de ciclo de vida de una dosis o examen.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusToday     Status = "today"
	StatusOverdue   Status = "overdue"
	StatusTaken     Status = "taken"
	StatusMissed    Status = "missed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Statuses lista los siete estados posibles.
var Statuses = []Status{
	StatusScheduled,
	StatusToday,
	StatusOverdue,
	StatusTaken,
	StatusMissed,
	StatusCancelled,
	StatusCompleted,
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusTaken, StatusMissed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Record es el estado explícito guardado: o bien un estado terminal
// confirmado (Stored) o nada (Derived), en cuyo caso se deriva en cada lectura.
// El valor cero es Derived.
type Record struct {
	status Status
}

// Derived indica que no hay confirmación explícita.
func Derived() Record { return Record{} }

// Stored guarda un estado terminal. Estados no terminales se rechazan.
func Stored(s Status) (Record, error) {
	if !s.IsTerminal() {
		return Record{}, ErrNotTerminal
	}
	return Record{status: s}, nil
}

// MustStored es Stored para constantes conocidas.
func MustStored(s Status) Record {
	r, err := Stored(s)
	if err != nil {
		panic(err)
	}
	return r
}

// ParseRecord interpreta el valor persistido/recibido.
// "", "pending" y "scheduled" significan que no hay estado explícito.
func ParseRecord(raw string) (Record, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case "", "pending", StatusScheduled:
		return Derived(), nil
	}
	return Stored(s)
}

// Terminal devuelve el estado guardado, si existe.
func (r Record) Terminal() (Status, bool) {
	return r.status, r.status != ""
}

// IsDerived indica que el estado se calcula en cada lectura.
func (r Record) IsDerived() bool { return r.status == "" }

// Explicit devuelve el valor a persistir ("" si es derivado).
func (r Record) Explicit() string { return string(r.status) }

// Entry es la vista mínima que el motor necesita de una dosis o un examen.
type Entry struct {
	ID          string
	ScheduledAt time.Time
	ActualAt    *time.Time
	Record      Record
}

// DelayMinutes es actual − programado en minutos (negativo = adelantado).
// Sin confirmación no hay demora.
func (e Entry) DelayMinutes() (int, bool) {
	if e.ActualAt == nil || e.ScheduledAt.IsZero() {
		return 0, false
	}
	return int(e.ActualAt.Sub(e.ScheduledAt).Round(time.Minute) / time.Minute), true
}

func (e Entry) validate() error {
	if e.ScheduledAt.IsZero() {
		return &InvalidScheduleError{EntryID: e.ID}
	}
	return nil
}

// DeriveStatus calcula el estado de la entrada respecto de now.
//  1. Un estado terminal guardado se devuelve sin cambios.
//  2. Día programado futuro => scheduled.
//  3. Mismo día => today dentro de la tolerancia, overdue después.
//  4. Día pasado sin confirmación => missed.
func DeriveStatus(e Entry, now time.Time) (Status, error) {
	if s, ok := e.Record.Terminal(); ok {
		return s, nil
	}
	if err := e.validate(); err != nil {
		return "", err
	}

	day := civil.DateOf(e.ScheduledAt)
	today := civil.DateOf(now)

	switch day.Compare(today) {
	case 1:
		return StatusScheduled, nil
	case 0:
		if !now.After(e.ScheduledAt.Add(Tolerance)) {
			return StatusToday, nil
		}
		return StatusOverdue, nil
	default:
		return StatusMissed, nil
	}
}

// Rearm aplica la regla de edición de fecha: si la entrada tenía un estado
// terminal y la nueva fecha está en el futuro, se limpia para volver a
// derivarse; si no, se conserva tal cual.
func Rearm(r Record, newScheduledAt, now time.Time) Record {
	if r.IsDerived() {
		return r
	}
	if newScheduledAt.After(now) {
		return Derived()
	}
	return r
}

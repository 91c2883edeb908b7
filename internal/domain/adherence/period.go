package adherence

import (
	"fmt"
	"time"

	"patient-adherence/internal/platform/civil"
)

// Window es el período de un reporte: N días hacia atrás desde hoy, o un
// rango explícito de fechas [start, end] (ambas inclusive).
type Window struct {
	rollingDays int
	start       civil.Date
	end         civil.Date
}

// RollingWindow crea una ventana de los últimos n días.
func RollingWindow(days int) (Window, error) {
	if days <= 0 {
		return Window{}, fmt.Errorf("%w: rolling days must be positive, got %d", ErrInvalidWindow, days)
	}
	return Window{rollingDays: days}, nil
}

// CustomWindow crea una ventana con fechas explícitas.
func CustomWindow(start, end civil.Date) (Window, error) {
	if start.IsZero() || end.IsZero() {
		return Window{}, fmt.Errorf("%w: start and end are required", ErrInvalidWindow)
	}
	if start.After(end) {
		return Window{}, fmt.Errorf("%w: start %s is after end %s", ErrInvalidWindow, start, end)
	}
	return Window{start: start, end: end}, nil
}

func (w Window) IsCustom() bool { return w.rollingDays == 0 }

// RollingDays es N para ventanas móviles (0 si es custom).
func (w Window) RollingDays() int { return w.rollingDays }

// SingleDay indica un rango custom de un solo día.
func (w Window) SingleDay() bool { return w.IsCustom() && w.start == w.end }

// Bounds devuelve el rango de fechas efectivo. Para ventanas móviles:
// start = hoy − N días, end = hoy.
func (w Window) Bounds(now time.Time) (civil.Date, civil.Date) {
	if w.IsCustom() {
		return w.start, w.end
	}
	today := civil.DateOf(now)
	return today.AddDays(-w.rollingDays), today
}

// FilterByPeriod selecciona las entradas cuyo día programado cae en la
// ventana. Compara siempre la fecha civil, nunca el instante. Las entradas
// sin horario válido no pertenecen a ningún período y se descartan.
func FilterByPeriod(entries []Entry, w Window, now time.Time) []Entry {
	from, to := w.Bounds(now)

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.validate() != nil {
			continue
		}
		if civil.DateOf(e.ScheduledAt).Within(from, to) {
			out = append(out, e)
		}
	}
	return out
}

// InvalidEntries devuelve los IDs de entradas sin horario utilizable.
func InvalidEntries(entries []Entry) []string {
	var ids []string
	for _, e := range entries {
		if e.validate() != nil {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

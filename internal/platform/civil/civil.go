// Package civil define la política de calendario del sistema: un único
// offset civil fijo para todos los pacientes y un tipo Date (YYYY-MM-DD)
// para comparar días sin depender de la hora del día.
//
// El offset fijo es una limitación conocida (no hay pacientes en otras
// zonas horarias). Cambiarlo altera el límite de "hoy" en todos los reportes.
package civil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Offset es el desplazamiento civil respecto de UTC (UTC−3).
const Offset = -3 * time.Hour

// Location es la zona fija usada en todas las comparaciones por día.
var Location = time.FixedZone("UTC-03", int(Offset/time.Second))

const layout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// Date es un día de calendario bajo el offset civil.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf devuelve el día civil del instante t.
func DateOf(t time.Time) Date {
	y, m, d := t.In(Location).Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parsea YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(layout, strings.TrimSpace(s), Location)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool { return d == Date{} }

// Start es la medianoche civil del día.
func (d Date) Start() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, Location)
}

// At devuelve el instante hh:mm de ese día civil.
func (d Date) At(hour, minute int) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, Location)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Start().AddDate(0, 0, n))
}

func (d Date) Weekday() time.Weekday { return d.Start().Weekday() }

// Compare devuelve -1, 0 o 1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// Within indica si d está en [from, to], ambos inclusive.
func (d Date) Within(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

// DaysUntil cuenta los días desde d hasta o (negativo si o es anterior).
func (d Date) DaysUntil(o Date) int {
	return int(o.Start().Sub(d.Start()).Round(time.Hour) / (24 * time.Hour))
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

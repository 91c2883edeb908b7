package adherence

import (
	"math"
	"time"

	"patient-adherence/internal/platform/civil"
)

// WeeklyTrend es la serie de 7 puntos (domingo=0..sábado=6) del reporte.
type WeeklyTrend struct {
	Days              [7]int
	OverallPercentage int

	// Trend es el promedio de la segunda mitad (4..6) menos el de la
	// primera (0..2), redondeado.
	Trend int
}

type dayTally struct {
	total int
	taken int
}

func (t dayTally) rate() int { return percent(t.taken, t.total) }

// ComputeWeeklyTrend construye la serie semanal.
//   - Ventana móvil: cada slot es el último día con ese weekday hasta hoy.
//   - Custom de un día: los 7 slots repiten la tasa de ese día.
//   - Custom de varios días: los días se reparten en 7 tramos consecutivos y
//     cada slot es el promedio acumulado de las tasas diarias hasta ese tramo.
func ComputeWeeklyTrend(entries []Entry, w Window, now time.Time) WeeklyTrend {
	byDay := map[civil.Date]dayTally{}
	var overall dayTally

	for _, e := range entries {
		if e.validate() != nil {
			continue
		}
		d := civil.DateOf(e.ScheduledAt)
		t := byDay[d]
		t.total++
		overall.total++
		if s, _ := e.Record.Terminal(); s == StatusTaken {
			t.taken++
			overall.taken++
		}
		byDay[d] = t
	}

	var (
		out     WeeklyTrend
		present [7]bool
	)
	out.OverallPercentage = overall.rate()

	switch {
	case w.SingleDay():
		from, _ := w.Bounds(now)
		t := byDay[from]
		for i := range out.Days {
			out.Days[i] = t.rate()
			present[i] = t.total > 0
		}
	case w.IsCustom():
		out.Days, present = runningAverage(byDay, w, now)
	default:
		today := civil.DateOf(now)
		for wd := 0; wd < 7; wd++ {
			back := (int(today.Weekday()) - wd + 7) % 7
			t := byDay[today.AddDays(-back)]
			out.Days[wd] = t.rate()
			present[wd] = t.total > 0
		}
	}

	out.Trend = halfDelta(out.Days, present)
	return out
}

func runningAverage(byDay map[civil.Date]dayTally, w Window, now time.Time) ([7]int, [7]bool) {
	from, to := w.Bounds(now)
	n := from.DaysUntil(to) + 1

	var (
		days    [7]int
		present [7]bool
		sum     int
		count   int
	)

	next := 0
	for slot := 0; slot < 7; slot++ {
		// último índice de día (exclusivo) que cubre este tramo
		last := int(math.Ceil(float64((slot+1)*n) / 7))
		for ; next < last; next++ {
			t := byDay[from.AddDays(next)]
			if t.total == 0 {
				continue
			}
			sum += t.rate()
			count++
		}
		if count > 0 {
			days[slot] = int(math.Round(float64(sum) / float64(count)))
			present[slot] = true
		}
	}
	return days, present
}

// halfDelta promedia los tres slots de cada mitad (sin datos cuenta 0);
// devuelve 0 si alguna mitad no tiene ningún día con datos.
func halfDelta(days [7]int, present [7]bool) int {
	first, okFirst := halfAverage(days[0:3], present[0:3])
	second, okSecond := halfAverage(days[4:7], present[4:7])
	if !okFirst || !okSecond {
		return 0
	}
	return int(math.Round(second - first))
}

func halfAverage(vals []int, present []bool) (float64, bool) {
	sum, has := 0, false
	for i, v := range vals {
		sum += v
		has = has || present[i]
	}
	if !has {
		return 0, false
	}
	return float64(sum) / float64(len(vals)), true
}

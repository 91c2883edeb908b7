package adherence

import (
	"math"
	"time"

	"patient-adherence/internal/platform/civil"
)

// Stats resume la adherencia de un conjunto de entradas ya filtrado.
type Stats struct {
	Total   int
	Taken   int
	Missed  int
	Rate    int // 0..100
	Early   int
	OnTime  int
	Delayed int

	// AverageDelay es el promedio de minutos de las tomas demoradas solamente.
	AverageDelay int

	// Skipped son las entradas descartadas por no tener horario válido.
	Skipped []string
}

// ComputeAdherence reduce las entradas a contadores, tasa y puntualidad.
//
// missed no cuenta entradas de hoy: una dosis overdue todavía puede
// confirmarse antes de que termine el día.
func ComputeAdherence(entries []Entry, now time.Time) Stats {
	today := civil.DateOf(now)

	var st Stats
	delaySum := 0

	for _, e := range entries {
		if err := e.validate(); err != nil {
			st.Skipped = append(st.Skipped, e.ID)
			continue
		}
		st.Total++

		status, _ := e.Record.Terminal()
		switch status {
		case StatusTaken:
			st.Taken++
			delay, ok := e.DelayMinutes()
			if !ok {
				continue
			}
			switch {
			case delay < 0:
				st.Early++
			case delay == 0:
				st.OnTime++
			default:
				st.Delayed++
				delaySum += delay
			}
		case StatusCancelled, StatusCompleted:
			// no aplican a missed
		default:
			if civil.DateOf(e.ScheduledAt).Before(today) {
				st.Missed++
			}
		}
	}

	st.Rate = percent(st.Taken, st.Total)
	if st.Delayed > 0 {
		st.AverageDelay = int(math.Round(float64(delaySum) / float64(st.Delayed)))
	}
	return st
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

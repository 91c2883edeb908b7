package adherence

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"patient-adherence/internal/platform/civil"
)

// Frequency es la frecuencia de toma de un medicamento.
type Frequency string

const (
	FrequencyDaily           Frequency = "daily"
	FrequencyTwiceDaily      Frequency = "twice_daily"
	FrequencyThreeTimesDaily Frequency = "three_times_daily"
	FrequencyFourTimesDaily  Frequency = "four_times_daily"
	FrequencyEvery6h         Frequency = "every_6h"
	FrequencyEvery8h         Frequency = "every_8h"
	FrequencyEvery12h        Frequency = "every_12h"
)

// ParseFrequency valida una frecuencia recibida desde afuera.
func ParseFrequency(raw string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(raw)))
	if _, err := offsets(f); err != nil {
		return "", err
	}
	return f, nil
}

// TimeOfDay es una hora civil (hh:mm).
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parsea "HH:MM".
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: start time %q must be HH:MM", ErrInvalidSchedule, raw)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// On devuelve el instante de esta hora en el día civil d.
func (t TimeOfDay) On(d civil.Date) time.Time { return d.At(t.Hour, t.Minute) }

func (t TimeOfDay) minutes() int { return t.Hour*60 + t.Minute }

// offsets devuelve los desplazamientos en horas sumados al horario inicial.
// Una frecuencia sin caso aquí es InvalidFrequencyError, nunca una sola toma diaria.
func offsets(f Frequency) ([]int, error) {
	switch f {
	case FrequencyDaily:
		return nil, nil
	case FrequencyTwiceDaily, FrequencyEvery12h:
		return []int{12}, nil
	case FrequencyThreeTimesDaily, FrequencyEvery8h:
		return []int{8, 16}, nil
	case FrequencyFourTimesDaily, FrequencyEvery6h:
		return []int{6, 12, 18}, nil
	}
	return nil, &InvalidFrequencyError{Frequency: f}
}

// ExpandSchedule devuelve los horarios de un día para la frecuencia dada,
// ordenados por hora. La suma de horas da la vuelta a las 24h y el minuto
// se conserva.
func ExpandSchedule(start TimeOfDay, f Frequency) ([]TimeOfDay, error) {
	offs, err := offsets(f)
	if err != nil {
		return nil, err
	}

	out := make([]TimeOfDay, 0, len(offs)+1)
	out = append(out, start)
	for _, h := range offs {
		out = append(out, TimeOfDay{Hour: (start.Hour + h) % 24, Minute: start.Minute})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].minutes() < out[j].minutes() })
	return out, nil
}

// DoseTimes expande el horario sobre un día civil concreto.
func DoseTimes(d civil.Date, start TimeOfDay, f Frequency) ([]time.Time, error) {
	times, err := ExpandSchedule(start, f)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, len(times))
	for _, t := range times {
		out = append(out, t.On(d))
	}
	return out, nil
}

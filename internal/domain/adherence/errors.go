package adherence

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrInvalidSchedule  = errors.New("invalid schedule")
	ErrInvalidWindow    = errors.New("invalid window")
	ErrNotTerminal      = errors.New("status is not terminal")
)

// InvalidFrequencyError se devuelve cuando el expansor recibe una frecuencia
// desconocida. Nunca se cae a un único horario diario por defecto.
type InvalidFrequencyError struct {
	Frequency Frequency
}

func (e *InvalidFrequencyError) Error() string {
	return fmt.Sprintf("invalid frequency %q", string(e.Frequency))
}

func (e *InvalidFrequencyError) Is(target error) bool { return target == ErrInvalidFrequency }

// InvalidScheduleError marca una entrada sin fecha programada utilizable.
// Los agregadores la saltan; el llamador decide cómo avisar.
type InvalidScheduleError struct {
	EntryID string
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("entry %q has no valid scheduled time", e.EntryID)
}

func (e *InvalidScheduleError) Is(target error) bool { return target == ErrInvalidSchedule }

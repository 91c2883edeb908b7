package medications

import (
	"time"

	"patient-adherence/internal/domain/adherence"
	"patient-adherence/internal/platform/civil"
)

// Medication define el horario del que se generan las dosis diarias.
type Medication struct {
	ID        string
	PatientID string

	Name      string
	Dosage    string
	Frequency adherence.Frequency
	StartTime adherence.TimeOfDay

	StartDate civil.Date
	EndDate   *civil.Date // nil = sin fecha de fin
	IsActive  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers indica si el tratamiento está vigente el día d.
func (m Medication) Covers(d civil.Date) bool {
	if d.Before(m.StartDate) {
		return false
	}
	if m.EndDate != nil && d.After(*m.EndDate) {
		return false
	}
	return true
}

// DoseTimes devuelve los instantes de toma del día d.
func (m Medication) DoseTimes(d civil.Date) ([]time.Time, error) {
	return adherence.DoseTimes(d, m.StartTime, m.Frequency)
}

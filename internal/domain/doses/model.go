package doses

import (
	"time"

	"patient-adherence/internal/domain/adherence"
)

// Dose es una toma programada de un medicamento.
// ScheduledAt solo cambia cuando se regenera el horario del medicamento.
type Dose struct {
	ID           string
	MedicationID string
	PatientID    string

	ScheduledAt time.Time
	ActualAt    *time.Time
	Record      adherence.Record

	CreatedAt time.Time
}

func (d Dose) Entry() adherence.Entry {
	return adherence.Entry{
		ID:          d.ID,
		ScheduledAt: d.ScheduledAt,
		ActualAt:    d.ActualAt,
		Record:      d.Record,
	}
}

// DelayMinutes se calcula siempre; nunca se persiste.
func (d Dose) DelayMinutes() (int, bool) {
	return d.Entry().DelayMinutes()
}

// View es una dosis con su estado derivado al momento de la lectura.
// Status queda vacío si la dosis no tiene horario utilizable.
type View struct {
	Dose
	Status adherence.Status
}

package medications

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, m Medication) error
	Update(ctx context.Context, m Medication) error
	GetByID(ctx context.Context, id string) (Medication, error)
	ListByPatient(ctx context.Context, patientID string) ([]Medication, error)
	ListActive(ctx context.Context) ([]Medication, error)
	Delete(ctx context.Context, id string) error
}

// DoseScheduler es lo que este paquete necesita de doses.
type DoseScheduler interface {
	Schedule(ctx context.Context, patientID, medicationID string, times []time.Time) (int, error)
	ClearPendingFrom(ctx context.Context, medicationID string, from time.Time) (int, error)
	DeleteByMedication(ctx context.Context, medicationID string) error
}

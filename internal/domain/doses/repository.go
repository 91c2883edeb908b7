package doses

import (
	"context"
	"errors"
	"time"

	"patient-adherence/internal/domain/adherence"
)

// ErrAlreadyRecorded: la dosis ya tiene un estado terminal.
var ErrAlreadyRecorded = errors.New("dose already recorded")

type Repository interface {
	CreateBatch(ctx context.Context, items []Dose) error
	GetByID(ctx context.Context, id string) (Dose, error)

	// ListByPatient ordena por ScheduledAt asc. medicationID "" = todas.
	ListByPatient(ctx context.Context, patientID, medicationID string) ([]Dose, error)
	Exists(ctx context.Context, medicationID string, scheduledAt time.Time) (bool, error)

	// RecordOutcome escribe el estado terminal solo si la dosis no tenía uno
	// (escritura condicional). Si ya lo tenía devuelve ErrAlreadyRecorded.
	RecordOutcome(ctx context.Context, id string, rec adherence.Record, actualAt *time.Time) error

	DeleteByMedication(ctx context.Context, medicationID string) error
	// DeleteUnrecordedFrom borra las dosis sin estado terminal con ScheduledAt >= from.
	DeleteUnrecordedFrom(ctx context.Context, medicationID string, from time.Time) (int, error)
}

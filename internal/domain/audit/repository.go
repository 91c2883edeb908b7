package audit

import "context"

type Repository interface {
	Append(ctx context.Context, t Transition) error
	// ListByEntity devuelve las transiciones ordenadas por RecordedAt asc.
	ListByEntity(ctx context.Context, patientID, entityID string) ([]Transition, error)
}

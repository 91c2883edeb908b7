package exams

import "context"

type Repository interface {
	Create(ctx context.Context, e Exam) error
	Update(ctx context.Context, e Exam) error
	GetByID(ctx context.Context, id string) (Exam, error)
	// ListByPatient ordena por ScheduledAt asc.
	ListByPatient(ctx context.Context, patientID string) ([]Exam, error)
	Delete(ctx context.Context, id string) error
}

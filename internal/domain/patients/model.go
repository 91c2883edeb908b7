package patients

import "time"

// Patient es el registro dueño de medicamentos y exámenes.
// OwnerUserID es el usuario (paciente o cuidador) que lo administra.
type Patient struct {
	ID          string
	OwnerUserID string

	Name      string
	BirthDate *time.Time
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

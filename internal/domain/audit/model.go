package audit

import (
	"time"

	"patient-adherence/internal/domain/adherence"
)

// EntityType identifica qué tipo de registro cambió de estado.
type EntityType string

const (
	EntityDose EntityType = "dose"
	EntityExam EntityType = "exam"
)

// Transition es una fila del historial de estados.
// Before es el estado derivado (o explícito) previo; After el resultante.
type Transition struct {
	ID         string
	PatientID  string
	EntityID   string
	EntityType EntityType

	Before adherence.Status
	After  adherence.Status

	CorrelationID    string
	ProcessingTimeMs int64
	RecordedAt       time.Time
}

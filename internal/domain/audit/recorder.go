package audit

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Recorder recibe cada cambio de estado confirmado por el store.
// Los servicios de doses y exams dependen de esta interfaz, no de Service.
type Recorder interface {
	RecordTransition(ctx context.Context, t Transition) error
}

// RecorderFunc adapta una función a Recorder.
type RecorderFunc func(ctx context.Context, t Transition) error

func (f RecorderFunc) RecordTransition(ctx context.Context, t Transition) error {
	return f(ctx, t)
}

// Discard ignora las transiciones (tests, CLI).
var Discard Recorder = RecorderFunc(func(context.Context, Transition) error { return nil })

// CorrelationID usa el request id de chi; fuera de un request genera uno.
func CorrelationID(ctx context.Context) string {
	if id := chimw.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

package memory

import (
	"context"
	"sync"

	"patient-adherence/internal/domain/audit"
)

// auditRepo es append-only; el orden de inserción es el orden cronológico.
type auditRepo struct {
	mu    sync.RWMutex
	items []audit.Transition
}

func NewAuditRepo() audit.Repository {
	return &auditRepo{}
}

func (r *auditRepo) Append(ctx context.Context, t audit.Transition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, t)
	return nil
}

func (r *auditRepo) ListByEntity(ctx context.Context, patientID, entityID string) ([]audit.Transition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]audit.Transition, 0)
	for _, t := range r.items {
		if t.PatientID == patientID && t.EntityID == entityID {
			out = append(out, t)
		}
	}
	return out, nil
}

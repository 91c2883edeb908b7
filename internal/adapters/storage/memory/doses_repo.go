package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"patient-adherence/internal/domain/adherence"
	"patient-adherence/internal/domain/doses"
)

type doseRepo struct {
	mu   sync.RWMutex
	byID map[string]doses.Dose
}

func NewDoseRepo() doses.Repository {
	return &doseRepo{
		byID: make(map[string]doses.Dose),
	}
}

func (r *doseRepo) CreateBatch(ctx context.Context, items []doses.Dose) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range items {
		if d.ID == "" {
			return errors.New("dose id required")
		}
		if _, exists := r.byID[d.ID]; exists {
			return errors.New("dose already exists")
		}
	}
	for _, d := range items {
		r.byID[d.ID] = d
	}
	return nil
}

func (r *doseRepo) GetByID(ctx context.Context, id string) (doses.Dose, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return doses.Dose{}, ErrNotFound
	}
	return d, nil
}

func (r *doseRepo) ListByPatient(ctx context.Context, patientID, medicationID string) ([]doses.Dose, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]doses.Dose, 0)
	for _, d := range r.byID {
		if d.PatientID != patientID {
			continue
		}
		if medicationID != "" && d.MedicationID != medicationID {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out, nil
}

func (r *doseRepo) Exists(ctx context.Context, medicationID string, scheduledAt time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.byID {
		if d.MedicationID == medicationID && d.ScheduledAt.Equal(scheduledAt) {
			return true, nil
		}
	}
	return false, nil
}

// RecordOutcome chequea y escribe bajo el mismo lock.
func (r *doseRepo) RecordOutcome(ctx context.Context, id string, rec adherence.Record, actualAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if !d.Record.IsDerived() {
		return doses.ErrAlreadyRecorded
	}
	d.Record = rec
	d.ActualAt = actualAt
	r.byID[id] = d
	return nil
}

func (r *doseRepo) DeleteByMedication(ctx context.Context, medicationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, d := range r.byID {
		if d.MedicationID == medicationID {
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *doseRepo) DeleteUnrecordedFrom(ctx context.Context, medicationID string, from time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, d := range r.byID {
		if d.MedicationID != medicationID || !d.Record.IsDerived() {
			continue
		}
		if d.ScheduledAt.Before(from) {
			continue
		}
		delete(r.byID, id)
		n++
	}
	return n, nil
}

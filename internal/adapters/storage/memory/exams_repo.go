package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"patient-adherence/internal/domain/exams"
)

type examRepo struct {
	mu   sync.RWMutex
	byID map[string]exams.Exam
}

func NewExamRepo() exams.Repository {
	return &examRepo{
		byID: make(map[string]exams.Exam),
	}
}

func (r *examRepo) Create(ctx context.Context, e exams.Exam) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("exam id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("exam already exists")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *examRepo) Update(ctx context.Context, e exams.Exam) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[e.ID]; !exists {
		return ErrNotFound
	}
	r.byID[e.ID] = e
	return nil
}

func (r *examRepo) GetByID(ctx context.Context, id string) (exams.Exam, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return exams.Exam{}, ErrNotFound
	}
	return e, nil
}

func (r *examRepo) ListByPatient(ctx context.Context, patientID string) ([]exams.Exam, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]exams.Exam, 0)
	for _, e := range r.byID {
		if e.PatientID == patientID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out, nil
}

func (r *examRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

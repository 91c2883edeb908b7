package audit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"patient-adherence/internal/domain/adherence"
	"patient-adherence/internal/platform/clock"
)

type testRepo struct {
	items []Transition
}

func (r *testRepo) Append(ctx context.Context, t Transition) error {
	r.items = append(r.items, t)
	return nil
}

func (r *testRepo) ListByEntity(ctx context.Context, patientID, entityID string) ([]Transition, error) {
	out := make([]Transition, 0)
	for _, t := range r.items {
		if t.PatientID == patientID && t.EntityID == entityID {
			out = append(out, t)
		}
	}
	return out, nil
}

func TestService_RecordTransition_FillsDefaults(t *testing.T) {
	now := time.Date(2025, 7, 9, 12, 0, 0, 0, time.UTC)
	repo := &testRepo{}
	svc := NewService(repo, clock.Fixed(now))

	err := svc.RecordTransition(context.Background(), Transition{
		PatientID:  "p1",
		EntityID:   "d1",
		EntityType: EntityDose,
		Before:     adherence.StatusOverdue,
		After:      adherence.StatusTaken,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected 1 transition, got %d", len(repo.items))
	}
	got := repo.items[0]
	if got.ID == "" || got.CorrelationID == "" {
		t.Fatalf("expected generated id and correlation id")
	}
	if !got.RecordedAt.Equal(now) {
		t.Fatalf("expected RecordedAt=now, got %v", got.RecordedAt)
	}
}

func TestService_RecordTransition_UsesRequestID(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo, nil)

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = svc.RecordTransition(r.Context(), Transition{
			PatientID: "p1", EntityID: "e1", EntityType: EntityExam,
			Before: adherence.StatusScheduled, After: adherence.StatusCompleted,
		})
	})
	handler = chimw.RequestID(handler)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(chimw.RequestIDHeader, "req-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if len(repo.items) != 1 || repo.items[0].CorrelationID != "req-123" {
		t.Fatalf("expected correlation id from request, got %+v", repo.items)
	}
}

func TestService_RecordTransition_RejectsIncomplete(t *testing.T) {
	svc := NewService(&testRepo{}, nil)

	err := svc.RecordTransition(context.Background(), Transition{EntityType: EntityDose, After: adherence.StatusTaken})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_History_ScopedByPatient(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo, nil)
	ctx := context.Background()

	_ = svc.RecordTransition(ctx, Transition{PatientID: "p1", EntityID: "d1", EntityType: EntityDose, After: adherence.StatusTaken})
	_ = svc.RecordTransition(ctx, Transition{PatientID: "p2", EntityID: "d1", EntityType: EntityDose, After: adherence.StatusMissed})

	items, err := svc.History(ctx, "p1", "d1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 || items[0].After != adherence.StatusTaken {
		t.Fatalf("expected only p1 transition, got %+v", items)
	}
}

package exams

import (
	"context"
	"errors"
	"testing"
	"time"

	"patient-adherence/internal/domain/adherence"
	"patient-adherence/internal/domain/audit"
	"patient-adherence/internal/platform/civil"
	"patient-adherence/internal/platform/clock"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Exam
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Exam{}}
}

func (r *testRepo) Create(ctx context.Context, e Exam) error {
	r.byID[e.ID] = e
	return nil
}

func (r *testRepo) Update(ctx context.Context, e Exam) error {
	if _, ok := r.byID[e.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[e.ID] = e
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Exam, error) {
	e, ok := r.byID[id]
	if !ok {
		return Exam{}, errRepoNotFound
	}
	return e, nil
}

func (r *testRepo) ListByPatient(ctx context.Context, patientID string) ([]Exam, error) {
	out := make([]Exam, 0)
	for _, e := range r.byID {
		if e.PatientID == patientID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type captureRecorder struct {
	items []audit.Transition
}

func (c *captureRecorder) RecordTransition(ctx context.Context, t audit.Transition) error {
	c.items = append(c.items, t)
	return nil
}

func at(y int, m time.Month, d, h, mi int) time.Time {
	return time.Date(y, m, d, h, mi, 0, 0, civil.Location)
}

func TestService_Create_DerivesStatus(t *testing.T) {
	now := at(2025, 7, 9, 10, 0)
	svc := NewService(newTestRepo(), nil, clock.Fixed(now), nil)

	v, err := svc.Create(context.Background(), "p1", CreateInput{Name: "Hemograma", ScheduledAt: at(2025, 7, 15, 8, 0)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v.Status != adherence.StatusScheduled {
		t.Fatalf("expected scheduled, got %s", v.Status)
	}

	if _, err := svc.Create(context.Background(), "p1", CreateInput{Name: "X"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without date, got %v", err)
	}
}

func TestService_SetStatus(t *testing.T) {
	now := at(2025, 7, 9, 10, 0)
	rec := &captureRecorder{}
	svc := NewService(newTestRepo(), rec, clock.Fixed(now), nil)
	ctx := context.Background()

	v, _ := svc.Create(ctx, "p1", CreateInput{Name: "Ecografía", ScheduledAt: at(2025, 7, 9, 9, 0)})

	done, err := svc.SetStatus(ctx, "p1", v.ID, "completed")
	if err != nil || done.Status != adherence.StatusCompleted {
		t.Fatalf("expected completed, got %s (%v)", done.Status, err)
	}

	if _, err := svc.SetStatus(ctx, "p1", v.ID, "taken"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus for taken, got %v", err)
	}
	if _, err := svc.SetStatus(ctx, "p1", v.ID, "overdue"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus for derived status, got %v", err)
	}

	cleared, err := svc.SetStatus(ctx, "p1", v.ID, "scheduled")
	if err != nil || cleared.Status != adherence.StatusOverdue {
		t.Fatalf("expected derived overdue after clearing, got %s (%v)", cleared.Status, err)
	}

	if len(rec.items) != 2 {
		t.Fatalf("expected 2 transitions, got %d", len(rec.items))
	}
	if rec.items[0].Before != adherence.StatusOverdue || rec.items[0].After != adherence.StatusCompleted {
		t.Fatalf("unexpected first transition %+v", rec.items[0])
	}
	if rec.items[1].Before != adherence.StatusCompleted || rec.items[1].After != adherence.StatusOverdue {
		t.Fatalf("unexpected second transition %+v", rec.items[1])
	}
}

func TestService_SetStatus_UnchangedRecordIsNotAudited(t *testing.T) {
	now := at(2025, 7, 9, 10, 0)
	rec := &captureRecorder{}
	svc := NewService(newTestRepo(), rec, clock.Fixed(now), nil)
	ctx := context.Background()

	v, _ := svc.Create(ctx, "p1", CreateInput{Name: "Holter", ScheduledAt: at(2025, 7, 15, 9, 0)})

	// ya está derivado
	got, err := svc.SetStatus(ctx, "p1", v.ID, "scheduled")
	if err != nil || got.Status != adherence.StatusScheduled {
		t.Fatalf("expected scheduled, got %s (%v)", got.Status, err)
	}
	if len(rec.items) != 0 {
		t.Fatalf("expected no transition for derived->derived, got %+v", rec.items)
	}

	if _, err := svc.SetStatus(ctx, "p1", v.ID, "cancelled"); err != nil {
		t.Fatalf("set status: %v", err)
	}
	again, err := svc.SetStatus(ctx, "p1", v.ID, "cancelled")
	if err != nil || again.Status != adherence.StatusCancelled {
		t.Fatalf("expected cancelled, got %s (%v)", again.Status, err)
	}
	if len(rec.items) != 1 {
		t.Fatalf("expected 1 transition, got %d", len(rec.items))
	}
}

func TestService_Update_RescheduleRearms(t *testing.T) {
	now := at(2025, 7, 9, 10, 0)
	rec := &captureRecorder{}
	svc := NewService(newTestRepo(), rec, clock.Fixed(now), nil)
	ctx := context.Background()

	v, _ := svc.Create(ctx, "p1", CreateInput{Name: "Resonancia", ScheduledAt: at(2025, 7, 8, 9, 0)})
	if _, err := svc.SetStatus(ctx, "p1", v.ID, "completed"); err != nil {
		t.Fatalf("set status: %v", err)
	}
	rec.items = nil

	// a pasado: se conserva completed
	past := at(2025, 7, 7, 9, 0)
	got, err := svc.Update(ctx, "p1", v.ID, UpdateInput{ScheduledAt: &past})
	if err != nil || got.Status != adherence.StatusCompleted {
		t.Fatalf("expected completed kept, got %s (%v)", got.Status, err)
	}
	if len(rec.items) != 0 {
		t.Fatalf("expected no transition when record kept")
	}

	// a futuro: vuelve a derivarse
	future := at(2025, 7, 20, 9, 0)
	got, err = svc.Update(ctx, "p1", v.ID, UpdateInput{ScheduledAt: &future})
	if err != nil || got.Status != adherence.StatusScheduled {
		t.Fatalf("expected scheduled after rearm, got %s (%v)", got.Status, err)
	}
	if len(rec.items) != 1 || rec.items[0].After != adherence.StatusScheduled {
		t.Fatalf("expected rearm transition, got %+v", rec.items)
	}
}

func TestService_OtherPatientIsNotFound(t *testing.T) {
	svc := NewService(newTestRepo(), nil, clock.Fixed(at(2025, 7, 9, 10, 0)), nil)
	ctx := context.Background()

	v, _ := svc.Create(ctx, "p1", CreateInput{Name: "A", ScheduledAt: at(2025, 7, 10, 9, 0)})

	if _, err := svc.Get(ctx, "p2", v.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "p2", v.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
	if err := svc.Delete(ctx, "p1", v.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

package exams

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"patient-adherence/internal/domain/adherence"
	"patient-adherence/internal/domain/audit"
	"patient-adherence/internal/platform/clock"
	"patient-adherence/internal/platform/logger"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("exam not found")
	ErrInvalidStatus = errors.New("invalid exam status")
)

type Service struct {
	repo     Repository
	recorder audit.Recorder
	clock    clock.Clock
	log      logger.Logger
}

func NewService(repo Repository, rec audit.Recorder, clk clock.Clock, log logger.Logger) *Service {
	if rec == nil {
		rec = audit.Discard
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:     repo,
		recorder: rec,
		clock:    clock.OrSystem(clk),
		log:      log,
	}
}

type CreateInput struct {
	Name        string
	Type        string
	Location    string
	ScheduledAt time.Time
}

func (s *Service) Create(ctx context.Context, patientID string, in CreateInput) (View, error) {
	if strings.TrimSpace(patientID) == "" || strings.TrimSpace(in.Name) == "" {
		return View{}, ErrInvalidInput
	}
	if in.ScheduledAt.IsZero() {
		return View{}, fmt.Errorf("%w: scheduled_at is required", ErrInvalidInput)
	}

	now := s.clock.Now()
	e := Exam{
		ID:          uuid.NewString(),
		PatientID:   patientID,
		Name:        strings.TrimSpace(in.Name),
		Type:        strings.TrimSpace(in.Type),
		Location:    strings.TrimSpace(in.Location),
		ScheduledAt: in.ScheduledAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return View{}, err
	}
	return s.view(e, now), nil
}

func (s *Service) List(ctx context.Context, patientID string) ([]View, error) {
	items, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	out := make([]View, 0, len(items))
	for _, e := range items {
		out = append(out, s.view(e, now))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, patientID, id string) (View, error) {
	e, err := s.get(ctx, patientID, id)
	if err != nil {
		return View{}, err
	}
	return s.view(e, s.clock.Now()), nil
}

// SetStatus fija completed/cancelled/missed, o "scheduled" para volver a
// derivar el estado. taken no aplica a exámenes.
func (s *Service) SetStatus(ctx context.Context, patientID, id, raw string) (View, error) {
	rec, err := adherence.ParseRecord(raw)
	if err != nil {
		return View{}, fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	if st, ok := rec.Terminal(); ok && st == adherence.StatusTaken {
		return View{}, fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}

	e, err := s.get(ctx, patientID, id)
	if err != nil {
		return View{}, err
	}

	now := s.clock.Now()
	if e.Record == rec {
		return s.view(e, now), nil
	}
	before := s.view(e, now).Status

	e.Record = rec
	e.UpdatedAt = now
	elapsed, err := s.write(ctx, e)
	if err != nil {
		return View{}, err
	}

	v := s.view(e, now)
	s.audit(ctx, e, before, v.Status, elapsed)
	return v, nil
}

// UpdateInput usa punteros: nil = no tocar.
type UpdateInput struct {
	Name         *string
	Type         *string
	Location     *string
	ScheduledAt  *time.Time
	FileAttached *bool
}

// Update aplica el patch. Mover la fecha a futuro limpia un estado terminal
// previo; a pasado lo conserva.
func (s *Service) Update(ctx context.Context, patientID, id string, in UpdateInput) (View, error) {
	e, err := s.get(ctx, patientID, id)
	if err != nil {
		return View{}, err
	}

	now := s.clock.Now()
	before := s.view(e, now).Status
	prevRecord := e.Record

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return View{}, ErrInvalidInput
		}
		e.Name = name
	}
	if in.Type != nil {
		e.Type = strings.TrimSpace(*in.Type)
	}
	if in.Location != nil {
		e.Location = strings.TrimSpace(*in.Location)
	}
	if in.FileAttached != nil {
		e.FileAttached = *in.FileAttached
	}
	if in.ScheduledAt != nil {
		if in.ScheduledAt.IsZero() {
			return View{}, ErrInvalidInput
		}
		e.ScheduledAt = *in.ScheduledAt
		e.Record = adherence.Rearm(e.Record, e.ScheduledAt, now)
	}
	e.UpdatedAt = now

	elapsed, err := s.write(ctx, e)
	if err != nil {
		return View{}, err
	}

	v := s.view(e, now)
	if prevRecord != e.Record {
		s.audit(ctx, e, before, v.Status, elapsed)
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, patientID, id string) error {
	e, err := s.get(ctx, patientID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, e.ID)
}

func (s *Service) get(ctx context.Context, patientID, id string) (Exam, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Exam{}, ErrNotFound
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil || e.PatientID != patientID {
		return Exam{}, ErrNotFound
	}
	return e, nil
}

func (s *Service) write(ctx context.Context, e Exam) (time.Duration, error) {
	started := time.Now()
	if err := s.repo.Update(ctx, e); err != nil {
		return 0, fmt.Errorf("update exam: %w", err)
	}
	return time.Since(started), nil
}

func (s *Service) audit(ctx context.Context, e Exam, before, after adherence.Status, elapsed time.Duration) {
	if err := s.recorder.RecordTransition(ctx, audit.Transition{
		PatientID:        e.PatientID,
		EntityID:         e.ID,
		EntityType:       audit.EntityExam,
		Before:           before,
		After:            after,
		CorrelationID:    audit.CorrelationID(ctx),
		ProcessingTimeMs: elapsed.Milliseconds(),
	}); err != nil {
		s.log.Error("audit transition failed", map[string]any{
			"exam_id": e.ID,
			"error":   err,
		})
	}
}

func (s *Service) view(e Exam, now time.Time) View {
	st, err := adherence.DeriveStatus(e.Entry(), now)
	if err != nil {
		s.log.Warn("exam without usable schedule", map[string]any{
			"exam_id": e.ID,
			"error":   err,
		})
	}
	return View{Exam: e, Status: st}
}

package doses

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
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("dose not found")
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

// List devuelve las dosis del paciente con el estado derivado contra now.
func (s *Service) List(ctx context.Context, patientID, medicationID string) ([]View, error) {
	items, err := s.repo.ListByPatient(ctx, patientID, strings.TrimSpace(medicationID))
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	out := make([]View, 0, len(items))
	for _, d := range items {
		out = append(out, s.view(d, now))
	}
	return out, nil
}

// Entries es la vista que consume el motor de adherencia.
func (s *Service) Entries(ctx context.Context, patientID, medicationID string) ([]adherence.Entry, error) {
	items, err := s.repo.ListByPatient(ctx, patientID, strings.TrimSpace(medicationID))
	if err != nil {
		return nil, err
	}
	out := make([]adherence.Entry, 0, len(items))
	for _, d := range items {
		out = append(out, d.Entry())
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, patientID, id string) (Dose, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Dose{}, ErrNotFound
	}
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Dose{}, ErrNotFound
	}
	if d.PatientID != patientID {
		return Dose{}, ErrNotFound
	}
	return d, nil
}

// Confirm registra la toma. actualAt nil = ahora.
func (s *Service) Confirm(ctx context.Context, patientID, id string, actualAt *time.Time) (View, error) {
	now := s.clock.Now()
	at := now
	if actualAt != nil {
		if actualAt.IsZero() || actualAt.After(now) {
			return View{}, ErrInvalidInput
		}
		at = *actualAt
	}
	return s.record(ctx, patientID, id, adherence.MustStored(adherence.StatusTaken), &at)
}

// MarkMissed registra la omisión explícita.
func (s *Service) MarkMissed(ctx context.Context, patientID, id string) (View, error) {
	return s.record(ctx, patientID, id, adherence.MustStored(adherence.StatusMissed), nil)
}

func (s *Service) record(ctx context.Context, patientID, id string, rec adherence.Record, actualAt *time.Time) (View, error) {
	d, err := s.Get(ctx, patientID, id)
	if err != nil {
		return View{}, err
	}
	if !d.Record.IsDerived() {
		return View{}, ErrAlreadyRecorded
	}

	now := s.clock.Now()
	before := s.view(d, now).Status

	started := time.Now()
	if err := s.repo.RecordOutcome(ctx, d.ID, rec, actualAt); err != nil {
		if errors.Is(err, ErrAlreadyRecorded) {
			return View{}, ErrAlreadyRecorded
		}
		return View{}, fmt.Errorf("record dose outcome: %w", err)
	}
	elapsed := time.Since(started)

	d.Record = rec
	d.ActualAt = actualAt
	after, _ := rec.Terminal()

	// la escritura ya quedó confirmada; un fallo de auditoría solo se loguea
	if err := s.recorder.RecordTransition(ctx, audit.Transition{
		PatientID:        d.PatientID,
		EntityID:         d.ID,
		EntityType:       audit.EntityDose,
		Before:           before,
		After:            after,
		CorrelationID:    audit.CorrelationID(ctx),
		ProcessingTimeMs: elapsed.Milliseconds(),
	}); err != nil {
		s.log.Error("audit transition failed", map[string]any{
			"dose_id": d.ID,
			"error":   err,
		})
	}

	return View{Dose: d, Status: after}, nil
}

// Schedule crea las dosis que falten para los instantes dados.
// Es idempotente sobre (medicationID, scheduledAt).
func (s *Service) Schedule(ctx context.Context, patientID, medicationID string, times []time.Time) (int, error) {
	if strings.TrimSpace(patientID) == "" || strings.TrimSpace(medicationID) == "" {
		return 0, ErrInvalidInput
	}

	now := s.clock.Now()
	batch := make([]Dose, 0, len(times))
	for _, at := range times {
		exists, err := s.repo.Exists(ctx, medicationID, at)
		if err != nil {
			return 0, err
		}
		if exists {
			continue
		}
		batch = append(batch, Dose{
			ID:           uuid.NewString(),
			MedicationID: medicationID,
			PatientID:    patientID,
			ScheduledAt:  at,
			CreatedAt:    now,
		})
	}
	if len(batch) == 0 {
		return 0, nil
	}
	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return 0, fmt.Errorf("create doses: %w", err)
	}
	return len(batch), nil
}

// ClearPendingFrom borra las dosis aún sin registrar desde from.
// Las tomas confirmadas u omitidas se conservan.
func (s *Service) ClearPendingFrom(ctx context.Context, medicationID string, from time.Time) (int, error) {
	return s.repo.DeleteUnrecordedFrom(ctx, medicationID, from)
}

func (s *Service) DeleteByMedication(ctx context.Context, medicationID string) error {
	return s.repo.DeleteByMedication(ctx, medicationID)
}

func (s *Service) view(d Dose, now time.Time) View {
	st, err := adherence.DeriveStatus(d.Entry(), now)
	if err != nil {
		s.log.Warn("dose without usable schedule", map[string]any{
			"dose_id":       d.ID,
			"medication_id": d.MedicationID,
			"error":         err,
		})
	}
	return View{Dose: d, Status: st}
}

package medications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"patient-adherence/internal/domain/adherence"
	"patient-adherence/internal/platform/civil"
	"patient-adherence/internal/platform/clock"
	"patient-adherence/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medication not found")
)

type Service struct {
	repo  Repository
	doses DoseScheduler
	clock clock.Clock
	log   logger.Logger
}

func NewService(repo Repository, doses DoseScheduler, clk clock.Clock, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:  repo,
		doses: doses,
		clock: clock.OrSystem(clk),
		log:   log,
	}
}

type CreateInput struct {
	Name      string
	Dosage    string
	Frequency adherence.Frequency
	StartTime adherence.TimeOfDay
	StartDate civil.Date // cero = hoy
	EndDate   *civil.Date
}

func (s *Service) Create(ctx context.Context, patientID string, in CreateInput) (Medication, error) {
	if strings.TrimSpace(patientID) == "" {
		return Medication{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Dosage) == "" {
		return Medication{}, ErrInvalidInput
	}

	now := s.clock.Now()
	start := in.StartDate
	if start.IsZero() {
		start = civil.DateOf(now)
	}

	m := Medication{
		ID:        uuid.NewString(),
		PatientID: patientID,
		Name:      strings.TrimSpace(in.Name),
		Dosage:    strings.TrimSpace(in.Dosage),
		Frequency: in.Frequency,
		StartTime: in.StartTime,
		StartDate: start,
		EndDate:   in.EndDate,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validate(m); err != nil {
		return Medication{}, err
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	if err := s.expandToday(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, patientID, id string) (Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medication{}, ErrNotFound
	}
	m, err := s.repo.GetByID(ctx, id)
	if err != nil || m.PatientID != patientID {
		return Medication{}, ErrNotFound
	}
	return m, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]Medication, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// UpdateInput usa punteros: nil = no tocar.
type UpdateInput struct {
	Name         *string
	Dosage       *string
	Frequency    *adherence.Frequency
	StartTime    *adherence.TimeOfDay
	EndDate      *civil.Date
	ClearEndDate bool
}

func (in UpdateInput) changesSchedule() bool {
	return in.Frequency != nil || in.StartTime != nil || in.EndDate != nil || in.ClearEndDate
}

// Update aplica el patch. Si cambia el horario, las dosis aún sin registrar
// desde hoy se borran y se regenera el día actual; las registradas quedan.
func (s *Service) Update(ctx context.Context, patientID, id string, in UpdateInput) (Medication, error) {
	m, err := s.Get(ctx, patientID, id)
	if err != nil {
		return Medication{}, err
	}

	if in.Name != nil {
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Dosage != nil {
		m.Dosage = strings.TrimSpace(*in.Dosage)
	}
	if in.Frequency != nil {
		m.Frequency = *in.Frequency
	}
	if in.StartTime != nil {
		m.StartTime = *in.StartTime
	}
	switch {
	case in.ClearEndDate:
		m.EndDate = nil
	case in.EndDate != nil:
		end := *in.EndDate
		m.EndDate = &end
	}

	if m.Name == "" || m.Dosage == "" {
		return Medication{}, ErrInvalidInput
	}
	if err := validate(m); err != nil {
		return Medication{}, err
	}

	now := s.clock.Now()
	m.UpdatedAt = now
	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}

	if in.changesSchedule() {
		if err := s.rebuildToday(ctx, m); err != nil {
			return Medication{}, err
		}
	}
	return m, nil
}

// Deactivate deja de generar dosis y borra las pendientes posteriores a ahora.
func (s *Service) Deactivate(ctx context.Context, patientID, id string) (Medication, error) {
	m, err := s.Get(ctx, patientID, id)
	if err != nil {
		return Medication{}, err
	}
	if !m.IsActive {
		return m, nil
	}

	now := s.clock.Now()
	m.IsActive = false
	m.UpdatedAt = now
	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	if _, err := s.doses.ClearPendingFrom(ctx, m.ID, now); err != nil {
		return Medication{}, fmt.Errorf("clear pending doses: %w", err)
	}
	return m, nil
}

func (s *Service) Reactivate(ctx context.Context, patientID, id string) (Medication, error) {
	m, err := s.Get(ctx, patientID, id)
	if err != nil {
		return Medication{}, err
	}
	if m.IsActive {
		return m, nil
	}

	m.IsActive = true
	m.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	if err := s.expandToday(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

// Delete borra el medicamento y todas sus dosis.
func (s *Service) Delete(ctx context.Context, patientID, id string) error {
	m, err := s.Get(ctx, patientID, id)
	if err != nil {
		return err
	}
	if err := s.doses.DeleteByMedication(ctx, m.ID); err != nil {
		return fmt.Errorf("delete doses: %w", err)
	}
	return s.repo.Delete(ctx, m.ID)
}

// ExpandDay crea las dosis faltantes del día d para cada medicamento activo
// vigente. Es idempotente; devuelve cuántas dosis creó.
func (s *Service) ExpandDay(ctx context.Context, d civil.Date) (int, error) {
	meds, err := s.repo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	var (
		created int
		errs    []error
	)
	for _, m := range meds {
		n, err := s.expand(ctx, m, d)
		if err != nil {
			s.log.Error("expand medication failed", map[string]any{
				"medication_id": m.ID,
				"date":          d.String(),
				"error":         err,
			})
			errs = append(errs, err)
			continue
		}
		created += n
	}
	return created, errors.Join(errs...)
}

func (s *Service) expandToday(ctx context.Context, m Medication) error {
	_, err := s.expand(ctx, m, civil.DateOf(s.clock.Now()))
	return err
}

func (s *Service) rebuildToday(ctx context.Context, m Medication) error {
	today := civil.DateOf(s.clock.Now())
	if _, err := s.doses.ClearPendingFrom(ctx, m.ID, today.Start()); err != nil {
		return fmt.Errorf("clear pending doses: %w", err)
	}
	return s.expandToday(ctx, m)
}

func (s *Service) expand(ctx context.Context, m Medication, d civil.Date) (int, error) {
	if !m.IsActive || !m.Covers(d) {
		return 0, nil
	}
	times, err := m.DoseTimes(d)
	if err != nil {
		return 0, err
	}
	return s.doses.Schedule(ctx, m.PatientID, m.ID, times)
}

func validate(m Medication) error {
	if _, err := adherence.ExpandSchedule(m.StartTime, m.Frequency); err != nil {
		return err
	}
	if m.StartTime.Hour < 0 || m.StartTime.Hour > 23 || m.StartTime.Minute < 0 || m.StartTime.Minute > 59 {
		return fmt.Errorf("%w: start time %s", ErrInvalidInput, m.StartTime)
	}
	if m.EndDate != nil && m.EndDate.Before(m.StartDate) {
		return fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidInput, m.EndDate, m.StartDate)
	}
	return nil
}

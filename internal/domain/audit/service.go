package audit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"patient-adherence/internal/platform/clock"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo  Repository
	clock clock.Clock
}

func NewService(repo Repository, clk clock.Clock) *Service {
	return &Service{
		repo:  repo,
		clock: clock.OrSystem(clk),
	}
}

// RecordTransition completa ID, RecordedAt y CorrelationID si faltan.
func (s *Service) RecordTransition(ctx context.Context, t Transition) error {
	if strings.TrimSpace(t.EntityID) == "" || t.EntityType == "" {
		return ErrInvalidInput
	}
	if t.After == "" {
		return ErrInvalidInput
	}

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.RecordedAt.IsZero() {
		t.RecordedAt = s.clock.Now()
	}
	if t.CorrelationID == "" {
		t.CorrelationID = CorrelationID(ctx)
	}

	if err := s.repo.Append(ctx, t); err != nil {
		return fmt.Errorf("append transition: %w", err)
	}
	return nil
}

func (s *Service) History(ctx context.Context, patientID, entityID string) ([]Transition, error) {
	patientID = strings.TrimSpace(patientID)
	entityID = strings.TrimSpace(entityID)
	if patientID == "" || entityID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByEntity(ctx, patientID, entityID)
}

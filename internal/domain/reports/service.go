package reports

import (
	"context"
	"fmt"

	"patient-adherence/internal/domain/adherence"
	"patient-adherence/internal/platform/civil"
	"patient-adherence/internal/platform/clock"
	"patient-adherence/internal/platform/logger"
)

// EntrySource entrega las dosis de un paciente como entradas del motor.
type EntrySource interface {
	Entries(ctx context.Context, patientID, medicationID string) ([]adherence.Entry, error)
}

// Report es el resultado del reporte de adherencia de un período.
type Report struct {
	From  civil.Date
	To    civil.Date
	Stats adherence.Stats
	Trend adherence.WeeklyTrend
}

type Service struct {
	source EntrySource
	clock  clock.Clock
	log    logger.Logger
}

func NewService(source EntrySource, clk clock.Clock, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		source: source,
		clock:  clock.OrSystem(clk),
		log:    log,
	}
}

// Adherence calcula el reporte del paciente para la ventana w.
// medicationID "" incluye todos los medicamentos.
func (s *Service) Adherence(ctx context.Context, patientID string, w adherence.Window, medicationID string) (Report, error) {
	entries, err := s.source.Entries(ctx, patientID, medicationID)
	if err != nil {
		return Report{}, fmt.Errorf("load entries: %w", err)
	}

	now := s.clock.Now()
	from, to := w.Bounds(now)

	inPeriod := adherence.FilterByPeriod(entries, w, now)
	stats := adherence.ComputeAdherence(inPeriod, now)
	stats.Skipped = append(stats.Skipped, adherence.InvalidEntries(entries)...)

	if len(stats.Skipped) > 0 {
		s.log.Warn("entries without usable schedule skipped", map[string]any{
			"patient_id": patientID,
			"skipped":    stats.Skipped,
		})
	}

	return Report{
		From:  from,
		To:    to,
		Stats: stats,
		Trend: adherence.ComputeWeeklyTrend(inPeriod, w, now),
	}, nil
}

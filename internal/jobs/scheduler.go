package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"patient-adherence/internal/platform/civil"
	"patient-adherence/internal/platform/clock"
	"patient-adherence/internal/platform/logger"
)

// DefaultExpansionSpec corre la expansión 5 minutos después de medianoche civil.
const DefaultExpansionSpec = "5 0 * * *"

// DayExpander genera las dosis de un día (medications.Service).
type DayExpander interface {
	ExpandDay(ctx context.Context, d civil.Date) (int, error)
}

// Scheduler corre los jobs periódicos en la zona civil.
type Scheduler struct {
	cron     *cron.Cron
	spec     string
	expander DayExpander
	clock    clock.Clock
	log      logger.Logger
	timeout  time.Duration
}

func NewScheduler(expander DayExpander, spec string, clk clock.Clock, log logger.Logger) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultExpansionSpec
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid expansion cron %q: %w", spec, err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(civil.Location)),
		spec:     spec,
		expander: expander,
		clock:    clock.OrSystem(clk),
		log:      log.With(map[string]any{"component": "scheduler"}),
		timeout:  5 * time.Minute,
	}, nil
}

// Start registra los jobs, expande el día actual una vez y arranca el cron.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() {
		_, _ = s.RunOnce(context.Background())
	}); err != nil {
		return fmt.Errorf("register expansion job: %w", err)
	}

	if _, err := s.RunOnce(ctx); err != nil {
		s.log.Warn("startup expansion incomplete", map[string]any{"error": err})
	}

	s.cron.Start()
	s.log.Info("scheduler started", map[string]any{"expansion_cron": s.spec})
	return nil
}

// Stop espera a que terminen los jobs en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped", nil)
}

// RunOnce expande el día civil actual.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	return s.ExpandDate(ctx, civil.DateOf(s.clock.Now()))
}

// ExpandDate expande un día concreto (CLI expand).
func (s *Scheduler) ExpandDate(ctx context.Context, d civil.Date) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	n, err := s.expander.ExpandDay(ctx, d)
	fields := map[string]any{
		"date":       d.String(),
		"created":    n,
		"elapsed_ms": time.Since(started).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err
		s.log.Error("dose expansion failed", fields)
		return n, err
	}
	s.log.Info("dose expansion done", fields)
	return n, nil
}

// Package scheduler drives periodic analysis runs from a cron expression.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hurricanecontrol/bulletin-notifier/internal/domain"
)

// runTimeout bounds a single scheduled run.
const runTimeout = 5 * time.Minute

// Runner is the unit of work the scheduler invokes.
type Runner interface {
	Run(ctx context.Context) ([]domain.Outcome, error)
}

// Scheduler runs the analyzer on a cron schedule. Overlapping runs are
// skipped rather than queued.
type Scheduler struct {
	cron    *cron.Cron
	runner  Runner
	logger  *slog.Logger
	running atomic.Bool
}

// New builds a scheduler for the given cron expression. The expression uses
// the standard five-field format.
func New(expr string, runner Runner, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		runner: runner,
		logger: logger,
	}
	if _, err := s.cron.AddFunc(expr, s.tick); err != nil {
		return nil, fmt.Errorf("parse cron expression %q: %w", expr, err)
	}
	return s, nil
}

// Start begins scheduling in a background goroutine.
func (s *Scheduler) Start() {
	s.logger.Info("scheduler started")
	s.cron.Start()
}

// Stop halts scheduling and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) tick() {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("previous analysis run still in flight, skipping")
		return
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if _, err := s.runner.Run(ctx); err != nil {
		s.logger.Error("scheduled analysis run failed", "error", err)
	}
}

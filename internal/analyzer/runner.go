// Package analyzer orchestrates a single analysis run: fetch the latest
// tropical weather discussion, estimate storm arrivals for the tracked
// locations, publish notifications, and persist the results.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hurricanecontrol/bulletin-notifier/internal/domain"
	"github.com/hurricanecontrol/bulletin-notifier/internal/observability"
)

// BulletinFetcher retrieves the raw text of the latest bulletin.
type BulletinFetcher interface {
	FetchBulletin(ctx context.Context) (string, error)
}

// OutlookFetcher retrieves the current graphical outlook image.
type OutlookFetcher interface {
	FetchOutlookImage(ctx context.Context) (data []byte, contentType string, err error)
}

// Publisher delivers a notification to the topic of its location.
type Publisher interface {
	Publish(ctx context.Context, topic string, n domain.Notification) error
}

// ArrivalStore appends arrival records to the history.
type ArrivalStore interface {
	AppendArrival(ctx context.Context, rec domain.ArrivalRecord) error
}

// SnapshotStore keeps the latest summary document and outlook image.
type SnapshotStore interface {
	PutSummary(ctx context.Context, doc domain.SummaryDocument) error
	PutOutlookImage(ctx context.Context, data []byte, contentType string) error
}

// Runner executes analysis runs against the configured stores and publisher.
type Runner struct {
	bulletins BulletinFetcher
	outlooks  OutlookFetcher
	publisher Publisher
	arrivals  ArrivalStore
	snapshots SnapshotStore
	logger    *slog.Logger
	metrics   *observability.Metrics

	ready atomic.Bool
}

// NewRunner wires an analysis Runner from its collaborators.
func NewRunner(
	bulletins BulletinFetcher,
	outlooks OutlookFetcher,
	publisher Publisher,
	arrivals ArrivalStore,
	snapshots SnapshotStore,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Runner {
	return &Runner{
		bulletins: bulletins,
		outlooks:  outlooks,
		publisher: publisher,
		arrivals:  arrivals,
		snapshots: snapshots,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness reports whether at least one run has completed without error.
func (r *Runner) CheckReadiness() error {
	if !r.ready.Load() {
		return errors.New("no successful analysis run yet")
	}
	return nil
}

// Run performs one full analysis pass and returns the per-location outcomes.
// A missing special features section is not an error: every location is
// reported as no-threat and the summary is still refreshed. Every location
// gets a history row per run; a failed publish skips that location's row.
// Persistence failures are logged and counted but do not fail the run;
// publish failures do, after the remaining locations have been attempted.
func (r *Runner) Run(ctx context.Context) ([]domain.Outcome, error) {
	r.metrics.Runs.Inc()
	timer := r.metrics.RunDuration
	start := domain.Now()
	defer func() { timer.Observe(domain.Now().Sub(start).Seconds()) }()

	r.refreshOutlook(ctx)

	bulletin, err := r.bulletins.FetchBulletin(ctx)
	if err != nil {
		r.metrics.RunsFailed.Inc()
		return nil, fmt.Errorf("fetch bulletin: %w", err)
	}

	var outcomes []domain.Outcome
	section, err := domain.ExtractSpecialFeatures(bulletin)
	switch {
	case errors.Is(err, domain.ErrSectionNotFound):
		r.metrics.SectionFound.Set(0)
		r.logger.Info("no special features section in bulletin")
		outcomes = domain.NoThreatOutcomes()
	case err != nil:
		r.metrics.RunsFailed.Inc()
		return nil, err
	default:
		r.metrics.SectionFound.Set(1)
		outcomes = domain.AnalyzeSection(section, domain.Today())
	}

	recordedAt := domain.Now()
	var publishErrs []error
	for _, o := range outcomes {
		if !o.Notify() {
			r.appendArrival(ctx, o, recordedAt)
			continue
		}
		if err := r.publisher.Publish(ctx, o.Location.Topic, domain.NewNotification(o)); err != nil {
			r.metrics.PublishErrors.Inc()
			r.logger.Error("publish notification failed",
				"location", o.Location.Name,
				"topic", o.Location.Topic,
				"error", err)
			publishErrs = append(publishErrs, fmt.Errorf("publish %s: %w", o.Location.Name, err))
			continue
		}
		r.metrics.NotificationsPublished.Inc()
		r.logger.Info("notification published",
			"location", o.Location.Name,
			"days", *o.Days)

		r.appendArrival(ctx, o, recordedAt)
	}

	r.putSummary(ctx, outcomes)

	if len(publishErrs) > 0 {
		r.metrics.RunsFailed.Inc()
		return outcomes, errors.Join(publishErrs...)
	}

	r.ready.Store(true)
	return outcomes, nil
}

func (r *Runner) refreshOutlook(ctx context.Context) {
	data, contentType, err := r.outlooks.FetchOutlookImage(ctx)
	if err != nil {
		r.logger.Warn("outlook image refresh failed", "error", err)
		return
	}
	if err := r.snapshots.PutOutlookImage(ctx, data, contentType); err != nil {
		r.metrics.PersistenceErrors.WithLabelValues("image").Inc()
		r.logger.Error("store outlook image failed", "error", err)
	}
}

func (r *Runner) appendArrival(ctx context.Context, o domain.Outcome, recordedAt time.Time) {
	rec := domain.ArrivalRecord{
		Location:   o.Location.Name,
		RecordedAt: recordedAt,
		Days:       o.Days,
		Excerpt:    o.Excerpt,
	}
	if err := r.arrivals.AppendArrival(ctx, rec); err != nil {
		r.metrics.PersistenceErrors.WithLabelValues("arrivals").Inc()
		r.logger.Error("append arrival record failed",
			"location", o.Location.Name,
			"error", err)
	}
}

func (r *Runner) putSummary(ctx context.Context, outcomes []domain.Outcome) {
	doc := domain.SummaryDocument{
		Message:     domain.Summary(outcomes),
		GeneratedAt: domain.Now(),
	}
	if err := r.snapshots.PutSummary(ctx, doc); err != nil {
		r.metrics.PersistenceErrors.WithLabelValues("summary").Inc()
		r.logger.Error("store summary failed", "error", err)
	}
}

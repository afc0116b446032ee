package jobs

import (
	"context"
	"log/slog"
	"time"

	"pharmacy/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// StaleRequestJob finds medication requests left pending past the configured
// age and re-emits a reminder notification so pharmacies respond to them.
type StaleRequestJob struct {
	uowFactory ports.UnitOfWorkFactory
	notifier   ports.Notifier
	staleAfter time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewStaleRequestJob creates the hourly stale request reminder.
func NewStaleRequestJob(
	uowFactory ports.UnitOfWorkFactory,
	notifier ports.Notifier,
	staleAfter time.Duration,
	logger *slog.Logger,
) *StaleRequestJob {
	return &StaleRequestJob{
		uowFactory: uowFactory,
		notifier:   notifier,
		staleAfter: staleAfter,
		cron:       cron.New(),
		logger:     logger.With("component", "stale_request_job"),
	}
}

// Start schedules the reminder to run hourly.
func (j *StaleRequestJob) Start() error {
	_, err := j.cron.AddFunc("@hourly", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Stale request job started (running hourly)", "stale_after", j.staleAfter)
	return nil
}

// Stop stops the reminder job.
func (j *StaleRequestJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Stale request job stopped")
}

func (j *StaleRequestJob) run() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-j.staleAfter)

	requests, err := j.uowFactory.Create().RequestRepository().GetAllPendingOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale request scan failed", "error", err)
		return
	}

	for _, aggregate := range requests {
		j.logger.InfoContext(ctx, "Request still pending past cutoff",
			"request_id", aggregate.ID().String(),
			"pharmacy_id", aggregate.PharmacyID().String(),
			"requested_at", aggregate.RequestedAt(),
		)
		j.notifier.RequestStatusChanged(ctx, aggregate)
	}
}

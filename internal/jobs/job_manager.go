package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"pharmacy/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	lowStockScanJob *LowStockScanJob
	staleRequestJob *StaleRequestJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	uowFactory ports.UnitOfWorkFactory,
	notifier ports.Notifier,
	staleAfter time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		lowStockScanJob: NewLowStockScanJob(uowFactory, notifier, logger),
		staleRequestJob: NewStaleRequestJob(uowFactory, notifier, staleAfter, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.lowStockScanJob.Start(); err != nil {
		return fmt.Errorf("failed to start low stock scan job: %w", err)
	}

	if err := jm.staleRequestJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.lowStockScanJob.Stop()
		return fmt.Errorf("failed to start stale request job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleRequestJob.Stop()
	jm.lowStockScanJob.Stop()
}

package jobs

import (
	"context"
	"log/slog"

	"pharmacy/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// LowStockScanJob reports inventory items at or below their low stock
// threshold to the pharmacy staff once per hour.
type LowStockScanJob struct {
	uowFactory ports.UnitOfWorkFactory
	notifier   ports.Notifier
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewLowStockScanJob creates the hourly low stock scan.
func NewLowStockScanJob(uowFactory ports.UnitOfWorkFactory, notifier ports.Notifier, logger *slog.Logger) *LowStockScanJob {
	return &LowStockScanJob{
		uowFactory: uowFactory,
		notifier:   notifier,
		cron:       cron.New(),
		logger:     logger.With("component", "low_stock_scan_job"),
	}
}

// Start schedules the scan to run hourly.
func (j *LowStockScanJob) Start() error {
	_, err := j.cron.AddFunc("@hourly", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Low stock scan job started (running hourly)")
	return nil
}

// Stop stops the scan job.
func (j *LowStockScanJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Low stock scan job stopped")
}

func (j *LowStockScanJob) run() {
	ctx := context.Background()

	// Read outside any transaction; the scan only observes.
	items, err := j.uowFactory.Create().InventoryRepository().GetAllLowStock(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Low stock scan failed", "error", err)
		return
	}

	if len(items) == 0 {
		return
	}

	for _, item := range items {
		j.logger.WarnContext(ctx, "Inventory item is low on stock",
			"pharmacy_id", item.PharmacyID().String(),
			"medication", item.MedicationName(),
			"quantity", item.Quantity(),
			"threshold", item.LowStockThreshold(),
		)
	}

	j.notifier.LowStock(ctx, items)
}

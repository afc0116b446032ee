// Package jobs provides scheduled background tasks for the pharmacy service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the request and order lifecycle.
//
// # Available Jobs
//
// 1. LowStockScanJob - Runs hourly to report inventory items at or below
// their low stock threshold to the pharmacy staff.
// 2. StaleRequestJob - Runs hourly to find medication requests left pending
// past the configured age and re-emit a reminder notification.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(uowFactory, notifier, staleAfter, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Jobs log failures and keep their schedule; a failed scan is retried on the
// next tick. Failed job starts stop any already running jobs.
package jobs

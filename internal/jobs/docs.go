// Package jobs provides scheduled background tasks for the commerce system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the order lifecycle.
//
// # Available Jobs
//
// 1. OrderReconciliationJob - Runs every minute to re-derive totals and
// payment/shipment states for incomplete orders.
// 2. AbandonedCartJob - Runs hourly to expire carts idle past a configured
// age.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(reconcileHandler, staleCartsHandler, cartMaxAgeHours, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job errors are logged and the schedule keeps running; a failed tick is
// retried at the next interval. Failed job starts stop any already running
// jobs.
package jobs

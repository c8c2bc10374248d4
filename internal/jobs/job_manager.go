package jobs

import (
	"fmt"
	"log/slog"

	"commerce/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderReconciliationJob *OrderReconciliationJob
	abandonedCartJob       *AbandonedCartJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	reconcileHandler commands.ReconcileOrdersCommandHandler,
	staleCartsHandler commands.CancelStaleCartsCommandHandler,
	cartMaxAgeHours int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderReconciliationJob: NewOrderReconciliationJob(reconcileHandler, logger),
		abandonedCartJob:       NewAbandonedCartJob(staleCartsHandler, cartMaxAgeHours, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderReconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start order reconciliation job: %w", err)
	}

	if err := jm.abandonedCartJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.orderReconciliationJob.Stop()
		return fmt.Errorf("failed to start abandoned cart job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.abandonedCartJob.Stop()
	jm.orderReconciliationJob.Stop()
}

package jobs

import (
	"context"
	"log/slog"

	"commerce/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderReconciliationJob periodically re-derives totals and payment/shipment
// states for orders still moving through checkout, keeping stored rows in
// line with what the aggregates compute.
type OrderReconciliationJob struct {
	handler commands.ReconcileOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderReconciliationJob creates a job that reconciles incomplete orders
// every minute.
func NewOrderReconciliationJob(handler commands.ReconcileOrdersCommandHandler, logger *slog.Logger) *OrderReconciliationJob {
	return &OrderReconciliationJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "order_reconciliation_job"),
	}
}

// Start begins the reconciliation schedule.
func (j *OrderReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewReconcileOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Order reconciliation job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order reconciliation job started (running every minute)")
	return nil
}

// Stop stops the reconciliation job.
func (j *OrderReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order reconciliation job stopped")
}

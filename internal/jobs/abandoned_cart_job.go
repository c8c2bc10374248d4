package jobs

import (
	"context"
	"log/slog"

	"commerce/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AbandonedCartJob expires carts that have been idle past the configured
// age, dropping them out of the active checkout set.
type AbandonedCartJob struct {
	handler     commands.CancelStaleCartsCommandHandler
	maxAgeHours int
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewAbandonedCartJob creates a job that expires stale carts hourly.
func NewAbandonedCartJob(handler commands.CancelStaleCartsCommandHandler, maxAgeHours int, logger *slog.Logger) *AbandonedCartJob {
	return &AbandonedCartJob{
		handler:     handler,
		maxAgeHours: maxAgeHours,
		cron:        cron.New(),
		logger:      logger.With("component", "abandoned_cart_job"),
	}
}

// Start begins the hourly cart expiry schedule.
func (j *AbandonedCartJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewCancelStaleCartsCommand(j.maxAgeHours)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Abandoned cart job misconfigured", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Abandoned cart job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Abandoned cart job started (running hourly)")
	return nil
}

// Stop stops the cart expiry job.
func (j *AbandonedCartJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Abandoned cart job stopped")
}

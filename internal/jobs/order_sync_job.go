package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderSyncJob manages the scheduled ingestion of sales orders from inFlow.
// Runs every five minutes to pull started orders into the local store.
type OrderSyncJob struct {
	handler commands.SyncOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderSyncJob creates a new job for ingesting upstream orders.
// Uses SyncOrdersCommandHandler to run one ingestion pass per tick.
func NewOrderSyncJob(handler commands.SyncOrdersCommandHandler, logger *slog.Logger) *OrderSyncJob {
	return &OrderSyncJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "order_sync_job"),
	}
}

// Start begins the order sync job to run every five minutes.
func (j *OrderSyncJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewSyncOrdersCommand()

		report, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order sync job failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Order sync run complete",
			"synced", report.Synced,
			"created", report.Created,
			"updated", report.Updated,
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order sync job started (running every five minutes)")
	return nil
}

// Stop stops the order sync job.
func (j *OrderSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order sync job stopped")
}

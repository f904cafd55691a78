package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// SyncOrdersCommandHandler pulls recent started orders from the upstream
// sales-order source and upserts them into the store. New orders enter the
// lifecycle in PRE_DELIVERY; existing orders get their descriptive fields
// refreshed while status and timestamps are left untouched.
//
// Each order is upserted in its own transaction; a bad upstream record is
// logged and skipped, it never aborts the run.
type SyncOrdersCommandHandler struct {
	source     ports.OrderSource
	uowFactory UnitOfWorkFactory
	logger     *slog.Logger
}

// NewSyncOrdersCommandHandler creates the ingestion handler.
func NewSyncOrdersCommandHandler(
	source ports.OrderSource,
	uowFactory UnitOfWorkFactory,
	logger *slog.Logger,
) SyncOrdersCommandHandler {
	return SyncOrdersCommandHandler{
		source:     source,
		uowFactory: uowFactory,
		logger:     logger.With("component", "sync_orders"),
	}
}

// Handle runs one ingestion pass and reports how many orders were fetched,
// created and refreshed.
func (h *SyncOrdersCommandHandler) Handle(ctx context.Context, cmd SyncOrdersCommand) (SyncReport, error) {
	if err := cmd.Validate(); err != nil {
		return SyncReport{}, err
	}

	sourceOrders, err := h.source.FetchStartedOrders(ctx, syncTargetMatches)
	if err != nil {
		return SyncReport{}, err
	}

	report := SyncReport{Synced: len(sourceOrders)}
	for _, src := range sourceOrders {
		created, upsertErr := h.upsertOne(ctx, src)
		if upsertErr != nil {
			h.logger.ErrorContext(ctx, "skipping upstream order",
				"order_number", src.OrderNumber, "error", upsertErr)
			continue
		}

		if created {
			report.Created++
		} else {
			report.Updated++
		}
	}

	h.logger.InfoContext(ctx, "sync completed",
		"synced", report.Synced, "created", report.Created, "updated", report.Updated)
	return report, nil
}

func (h *SyncOrdersCommandHandler) upsertOne(ctx context.Context, src ports.SourceOrder) (bool, error) {
	o, err := order.NewOrder(src.OrderNumber, src.CustomerName, src.Address)
	if err != nil {
		return false, err
	}

	o.SetDeliveryDetails(src.Location, src.BuildingCode, src.ExtractedLocation, src.Remarks)

	items := make([]order.Item, 0, len(src.Lines))
	for _, line := range src.Lines {
		items = append(items, order.Item{
			SKU:      line.SKU,
			Name:     line.Name,
			Quantity: line.Quantity,
		})
	}
	o.SetItems(items)

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	created, err := uow.OrderRepository().Upsert(ctx, o)
	if err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return created, nil
}

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"dispatch/internal/core/domain/model/order"
)

// BulkChangeStatusCommandHandler applies one transition to many orders as a
// sequence of independent attempts, in caller-supplied order. It is best
// effort: a failing id is logged and dropped from the result, never an error
// for the batch. Callers detect partial failure by comparing the result
// length against the request length.
type BulkChangeStatusCommandHandler struct {
	change ChangeOrderStatusCommandHandler
	logger *slog.Logger
}

// NewBulkChangeStatusCommandHandler creates the bulk transition handler on
// top of the single-transition handler, so every item gets the full
// transition semantics (audit entry, notification on IN_DELIVERY) in its own
// transaction. An earlier success is never rolled back by a later failure.
func NewBulkChangeStatusCommandHandler(change ChangeOrderStatusCommandHandler, logger *slog.Logger) BulkChangeStatusCommandHandler {
	return BulkChangeStatusCommandHandler{
		change: change,
		logger: logger.With("component", "bulk_change_status"),
	}
}

// Handle transitions each order and returns the successfully updated orders
// in the same relative order as the input ids, skipping failures.
func (h *BulkChangeStatusCommandHandler) Handle(ctx context.Context, cmd BulkChangeStatusCommand) ([]*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	reason := "Bulk transition"
	if cmd.ChangedBy() != "" {
		reason = fmt.Sprintf("Bulk by %s", cmd.ChangedBy())
	}

	updated := make([]*order.Order, 0, len(cmd.OrderIDs()))
	for _, orderID := range cmd.OrderIDs() {
		itemCmd, err := NewChangeOrderStatusCommand(orderID, cmd.TargetStatus(), reason, cmd.ChangedBy())
		if err != nil {
			h.logger.WarnContext(ctx, "skipping bulk transition item",
				"order_id", orderID, "error", err)
			continue
		}

		o, err := h.change.Handle(ctx, itemCmd)
		if err != nil {
			h.logger.WarnContext(ctx, "skipping bulk transition item",
				"order_id", orderID, "error", err)
			continue
		}

		updated = append(updated, o)
	}

	return updated, nil
}

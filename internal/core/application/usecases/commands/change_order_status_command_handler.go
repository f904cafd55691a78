package commands

import (
	"context"
	"fmt"
	"log/slog"

	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// ChangeOrderStatusCommandHandler is the order lifecycle engine for a single
// transition: it authorizes the transition against the injected policy,
// mutates the order through the store, appends the audit entry and, for
// transitions into IN_DELIVERY, dispatches the Teams notification.
//
// A failed notification send is recorded with a "failed" outcome and never
// rolls back the status change; retry is operator-initiated.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UnitOfWorkFactory
	policy     services.TransitionPolicy
	sender     ports.NotificationSender
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates the transition handler.
func NewChangeOrderStatusCommandHandler(
	uowFactory UnitOfWorkFactory,
	policy services.TransitionPolicy,
	sender ports.NotificationSender,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		sender:     sender,
		logger:     logger.With("component", "change_order_status"),
	}
}

// Handle applies the transition and returns the updated order.
// ObjectNotFound propagates for an unknown order id.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.Authorize(o.Status(), cmd.TargetStatus()); err != nil {
		return nil, err
	}

	if err = o.ChangeStatus(cmd.TargetStatus()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	entry, err := audit.NewEntry(o.ID(), audit.ActionStatusChange, auditDetails(cmd), cmd.ChangedBy())
	if err != nil {
		return nil, err
	}

	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return nil, err
	}

	if cmd.TargetStatus() == order.InDelivery {
		if err = h.notify(ctx, uow, o); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// notify records one notification for the order entering IN_DELIVERY.
// Only a failure to record the notification is an error; a failed transport
// call just flips the outcome.
func (h *ChangeOrderStatusCommandHandler) notify(ctx context.Context, uow ports.UnitOfWork, o *order.Order) error {
	message := fmt.Sprintf("Order %s is now %s", o.ID(), order.InDelivery.DisplayName())

	outcome := notification.OutcomeSent
	if sendErr := h.sender.Send(ctx, message); sendErr != nil {
		outcome = notification.OutcomeFailed
		h.logger.WarnContext(ctx, "Teams notification send failed",
			"order_id", o.ID(), "error", sendErr)
	}

	n, err := notification.NewNotification(o.ID(), message, outcome)
	if err != nil {
		return err
	}

	return uow.NotificationRepository().Add(ctx, n)
}

// auditDetails renders the audit description for a transition: the supplied
// reason when present, otherwise a generated line naming the target status.
func auditDetails(cmd ChangeOrderStatusCommand) string {
	if cmd.Reason() != "" {
		return fmt.Sprintf("Reason: %s", cmd.Reason())
	}
	return fmt.Sprintf("Set to %s", cmd.TargetStatus())
}

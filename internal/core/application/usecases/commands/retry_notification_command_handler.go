package commands

import (
	"context"
	"fmt"
	"log/slog"

	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/ports"
)

// RetryNotificationCommandHandler re-sends the Teams notification for an
// order, records the new notification and appends the corresponding audit
// entry.
//
// The order must exist: a retry against an unknown id fails with
// ObjectNotFound. The upstream system the service was modeled on proceeded
// unconditionally here; strict validation was chosen deliberately so a typo
// cannot produce notification records for orders that were never ingested.
type RetryNotificationCommandHandler struct {
	uowFactory UnitOfWorkFactory
	sender     ports.NotificationSender
	logger     *slog.Logger
}

// NewRetryNotificationCommandHandler creates the retry handler.
func NewRetryNotificationCommandHandler(
	uowFactory UnitOfWorkFactory,
	sender ports.NotificationSender,
	logger *slog.Logger,
) RetryNotificationCommandHandler {
	return RetryNotificationCommandHandler{
		uowFactory: uowFactory,
		sender:     sender,
		logger:     logger.With("component", "retry_notification"),
	}
}

// Handle sends the ad-hoc notification and returns the new notification's
// id together with the transport outcome. Every retry creates a fresh
// notification record, distinct from all prior ids for the order.
func (h *RetryNotificationCommandHandler) Handle(ctx context.Context, cmd RetryNotificationCommand) (RetryNotificationResult, error) {
	if err := cmd.Validate(); err != nil {
		return RetryNotificationResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RetryNotificationResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return RetryNotificationResult{}, err
	}

	message := fmt.Sprintf("Retried Teams notification for %s", o.ID())

	outcome := notification.OutcomeSent
	if sendErr := h.sender.Send(ctx, message); sendErr != nil {
		outcome = notification.OutcomeFailed
		h.logger.WarnContext(ctx, "Teams notification retry send failed",
			"order_id", o.ID(), "error", sendErr)
	}

	n, err := notification.NewNotification(o.ID(), message, outcome)
	if err != nil {
		return RetryNotificationResult{}, err
	}

	if err = uow.NotificationRepository().Add(ctx, n); err != nil {
		return RetryNotificationResult{}, err
	}

	entry, err := audit.NewEntry(
		o.ID(),
		audit.ActionTeamsRetry,
		fmt.Sprintf("Notification %s", n.ID()),
		"",
	)
	if err != nil {
		return RetryNotificationResult{}, err
	}

	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return RetryNotificationResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RetryNotificationResult{}, err
	}

	return RetryNotificationResult{
		Success:        outcome == notification.OutcomeSent,
		NotificationID: n.ID(),
	}, nil
}

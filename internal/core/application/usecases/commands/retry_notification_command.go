package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrRetryNotificationCommandIsNotConstructed = errors.New(
		"RetryNotificationCommand must be created via NewRetryNotificationCommand constructor",
	)
)

// RetryNotificationCommand requests an operator-triggered re-send of the
// Teams notification for one order. A retry is unconditional: it does not
// require a prior failed notification; it is effectively "send now".
type RetryNotificationCommand struct { //nolint:recvcheck //using for validation
	orderID string

	guard guard.ConstructorGuard
}

// NewRetryNotificationCommand creates a retry request for the given order.
func NewRetryNotificationCommand(orderID string) (RetryNotificationCommand, error) {
	cmd := RetryNotificationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if orderID == "" {
		return RetryNotificationCommand{}, errs.NewValueIsRequiredError("orderID")
	}
	cmd.orderID = orderID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RetryNotificationCommand) Validate() error {
	return c.guard.Validate(ErrRetryNotificationCommandIsNotConstructed)
}

// OrderID returns the order whose notification is re-sent.
func (c RetryNotificationCommand) OrderID() string {
	return c.orderID
}

// RetryNotificationResult reports the outcome of a retry: whether the
// transport accepted the message and the id of the newly created
// notification record.
type RetryNotificationResult struct {
	Success        bool
	NotificationID kernel.UUID
}

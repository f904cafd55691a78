package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
)

// ChangeOrderStatusCommand requests a lifecycle transition for one order.
// Reason and changedBy are optional: a missing reason yields a generated
// audit description, a missing actor is attributed to the system.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand("SO-10421", order.InDelivery, "Courier picked up", "jdoe")
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//
//	updated, err := handler.Handle(ctx, cmd)
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID      string
	targetStatus order.Status
	reason       string
	changedBy    string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a transition request. The order id is
// required and the target must belong to the closed status set; any other
// target is rejected here, before the engine is ever reached.
func NewChangeOrderStatusCommand(orderID string, targetStatus order.Status, reason, changedBy string) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		reason:    reason,
		changedBy: changedBy,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTargetStatus(targetStatus),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c ChangeOrderStatusCommand) OrderID() string {
	return c.orderID
}

// TargetStatus returns the requested lifecycle status.
func (c ChangeOrderStatusCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// Reason returns the optional operator-supplied reason.
func (c ChangeOrderStatusCommand) Reason() string {
	return c.reason
}

// ChangedBy returns the optional actor identifier.
func (c ChangeOrderStatusCommand) ChangedBy() string {
	return c.changedBy
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderID")
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setTargetStatus(targetStatus order.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}
	c.targetStatus = targetStatus
	return nil
}

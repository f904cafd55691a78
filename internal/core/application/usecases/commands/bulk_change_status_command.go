package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrBulkChangeStatusCommandIsNotConstructed = errors.New(
		"BulkChangeStatusCommand must be created via NewBulkChangeStatusCommand constructor",
	)
)

// BulkChangeStatusCommand requests the same transition for many orders.
// Each order is attempted independently: ids that fail are skipped, they
// never abort the batch.
type BulkChangeStatusCommand struct { //nolint:recvcheck //using for validation
	orderIDs     []string
	targetStatus order.Status
	changedBy    string

	guard guard.ConstructorGuard
}

// NewBulkChangeStatusCommand creates a bulk transition request. At least one
// order id is required and the target must belong to the closed status set.
func NewBulkChangeStatusCommand(orderIDs []string, targetStatus order.Status, changedBy string) (BulkChangeStatusCommand, error) {
	cmd := BulkChangeStatusCommand{
		changedBy: changedBy,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		cmd.setTargetStatus(targetStatus),
	); err != nil {
		return BulkChangeStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkChangeStatusCommand) Validate() error {
	return c.guard.Validate(ErrBulkChangeStatusCommandIsNotConstructed)
}

// OrderIDs returns the ids to transition, in caller-supplied order.
func (c BulkChangeStatusCommand) OrderIDs() []string {
	return append([]string(nil), c.orderIDs...)
}

// TargetStatus returns the requested lifecycle status.
func (c BulkChangeStatusCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// ChangedBy returns the optional actor identifier.
func (c BulkChangeStatusCommand) ChangedBy() string {
	return c.changedBy
}

func (c *BulkChangeStatusCommand) setOrderIDs(orderIDs []string) error {
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("orderIDs")
	}
	c.orderIDs = append([]string(nil), orderIDs...)
	return nil
}

func (c *BulkChangeStatusCommand) setTargetStatus(targetStatus order.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}
	c.targetStatus = targetStatus
	return nil
}

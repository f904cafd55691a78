// Package audit contains the immutable audit trail records of the order
// lifecycle. Entries are created as a side effect of lifecycle operations,
// never updated or deleted, and read back newest-first per order.
package audit

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// SystemActor is recorded as the changed-by label when the caller did not
// identify an operator.
const SystemActor = "system"

// Action classifies the event an audit entry records.
type Action string

const (
	// ActionStatusChange records a lifecycle status transition.
	ActionStatusChange Action = "STATUS_CHANGE"

	// ActionTeamsRetry records an operator-triggered notification re-send.
	ActionTeamsRetry Action = "TEAMS_RETRY"
)

// ErrEntryIsNotConstructed is returned when an Entry was not created through
// NewEntry or RestoreEntry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// Validate checks that the action is one of the known kinds.
func (a Action) Validate() error {
	switch a {
	case ActionStatusChange, ActionTeamsRetry:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"action",
			fmt.Errorf("%q is not a valid audit action", string(a)),
		)
	}
}

// Entry is one immutable audit record for one order. All fields are fixed at
// construction; the type intentionally exposes no mutators.
type Entry struct {
	id        kernel.UUID
	orderID   string
	action    Action
	details   string
	changedBy string
	createdAt time.Time

	isConstructed bool
}

// NewEntry creates an audit entry for the given order with a fresh id and
// timestamp. An empty changedBy defaults to SystemActor.
func NewEntry(orderID string, action Action, details, changedBy string) (Entry, error) {
	if orderID == "" {
		return Entry{}, errs.NewValueIsRequiredError("orderID")
	}
	if err := action.Validate(); err != nil {
		return Entry{}, err
	}

	if changedBy == "" {
		changedBy = SystemActor
	}

	return Entry{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		action:        action,
		details:       details,
		changedBy:     changedBy,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreEntry reconstructs an entry from persistence.
func RestoreEntry(id kernel.UUID, orderID string, action Action, details, changedBy string, createdAt time.Time) (Entry, error) {
	if err := id.Validate(); err != nil {
		return Entry{}, err
	}
	if orderID == "" {
		return Entry{}, errs.NewValueIsRequiredError("orderID")
	}
	if err := action.Validate(); err != nil {
		return Entry{}, err
	}

	return Entry{
		id:            id,
		orderID:       orderID,
		action:        action,
		details:       details,
		changedBy:     changedBy,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the entry went through a factory function.
func (e Entry) Validate() error {
	if !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the generated entry identifier.
func (e Entry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order this entry belongs to.
func (e Entry) OrderID() string {
	return e.orderID
}

// Action returns the event kind.
func (e Entry) Action() Action {
	return e.action
}

// Details returns the free-text description of the event.
func (e Entry) Details() string {
	return e.details
}

// ChangedBy returns the actor label, SystemActor when none was supplied.
func (e Entry) ChangedBy() string {
	return e.changedBy
}

// CreatedAt returns the creation timestamp.
func (e Entry) CreatedAt() time.Time {
	return e.createdAt
}

// Package notification contains the records of outbound Teams alerts tied to
// orders. A notification is written for every send attempt, successful or
// not; a failed transport never erases the record, it just flips the outcome.
package notification

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Outcome is the delivery result of one send attempt.
type Outcome string

const (
	// OutcomeSent means the transport accepted the message.
	OutcomeSent Outcome = "sent"

	// OutcomeFailed means the transport call did not succeed. Failed
	// notifications stay on record and are surfaced for manual retry.
	OutcomeFailed Outcome = "failed"
)

// ErrNotificationIsNotConstructed is returned when a Notification was not
// created through NewNotification or RestoreNotification.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification or RestoreNotification")

// Validate checks that the outcome is one of the known values.
func (o Outcome) Validate() error {
	switch o {
	case OutcomeSent, OutcomeFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"outcome",
			fmt.Errorf("%q is not a valid notification outcome", string(o)),
		)
	}
}

// Notification is one immutable record of an outbound alert for an order.
type Notification struct {
	id        kernel.UUID
	orderID   string
	outcome   Outcome
	message   string
	createdAt time.Time

	isConstructed bool
}

// NewNotification records a send attempt with a fresh id and timestamp.
func NewNotification(orderID, message string, outcome Outcome) (Notification, error) {
	if orderID == "" {
		return Notification{}, errs.NewValueIsRequiredError("orderID")
	}
	if err := outcome.Validate(); err != nil {
		return Notification{}, err
	}

	return Notification{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		outcome:       outcome,
		message:       message,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreNotification reconstructs a notification from persistence.
func RestoreNotification(id kernel.UUID, orderID, message string, outcome Outcome, createdAt time.Time) (Notification, error) {
	if err := id.Validate(); err != nil {
		return Notification{}, err
	}
	if orderID == "" {
		return Notification{}, errs.NewValueIsRequiredError("orderID")
	}
	if err := outcome.Validate(); err != nil {
		return Notification{}, err
	}

	return Notification{
		id:            id,
		orderID:       orderID,
		outcome:       outcome,
		message:       message,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the notification went through a factory function.
func (n Notification) Validate() error {
	if !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the generated notification identifier.
func (n Notification) ID() kernel.UUID {
	return n.id
}

// OrderID returns the order this notification belongs to.
func (n Notification) OrderID() string {
	return n.orderID
}

// Outcome returns the delivery result.
func (n Notification) Outcome() Outcome {
	return n.outcome
}

// Message returns the message body that was sent.
func (n Notification) Message() string {
	return n.message
}

// CreatedAt returns the creation timestamp.
func (n Notification) CreatedAt() time.Time {
	return n.createdAt
}

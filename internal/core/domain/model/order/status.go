package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// All four valid states are reachable from all four valid states; the
// workflow must never block an operator correcting a mistaken status.
// Status only guards the boundary of the set: values outside it are
// rejected, never coerced.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PreDelivery marks an order queued for delivery.
	PreDelivery

	// InDelivery marks an order currently out for delivery.
	// Entering this state triggers a Teams notification.
	InDelivery

	// Delivered marks an order that reached its destination.
	Delivered

	// Issue marks an order blocked by a delivery problem.
	Issue
)

// getStatusStrings returns the wire names for every Status value,
// including Unknown, to support string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "UNKNOWN",
		PreDelivery: "PRE_DELIVERY",
		InDelivery:  "IN_DELIVERY",
		Delivered:   "DELIVERED",
		Issue:       "ISSUE",
	}
}

// getValidStatusStrings returns only the members of the closed set.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		PreDelivery: "PRE_DELIVERY",
		InDelivery:  "IN_DELIVERY",
		Delivered:   "DELIVERED",
		Issue:       "ISSUE",
	}
}

// StatusFromString parses a wire name ("PRE_DELIVERY", "IN_DELIVERY",
// "DELIVERED", "ISSUE") into a Status. Anything else is rejected with a
// ValueIsInvalid error; no coercion is attempted.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks that the Status is a member of the closed set.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire name of the status ("PRE_DELIVERY" etc.).
// Safe on any value; invalid values yield "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// DisplayName returns the human form used in notification text,
// e.g. "In Delivery" for InDelivery.
func (s Status) DisplayName() string {
	switch s {
	case PreDelivery:
		return "Pre-Delivery"
	case InDelivery:
		return "In Delivery"
	case Delivered:
		return "Delivered"
	case Issue:
		return "Issue"
	default:
		return "Unknown"
	}
}

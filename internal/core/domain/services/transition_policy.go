package services

import (
	"fmt"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// TransitionPolicy decides whether a status transition is allowed.
//
// The lifecycle engine treats the policy as an injected dependency so the
// transition rules can change without touching the engine. The shipped
// default is PermissivePolicy; a table-driven RestrictedPolicy exists for
// deployments that want to forbid specific corrections (for example
// DELIVERED back to PRE_DELIVERY).
type TransitionPolicy interface {
	// Authorize returns nil when the transition from -> to may proceed.
	// The target is always re-validated against the closed Status set.
	Authorize(from, to order.Status) error
}

// PermissivePolicy allows every transition over the closed status set,
// including no-op transitions. This is the reference behavior: the workflow
// is operator-driven and must not block a human correcting a mistake.
type PermissivePolicy struct{}

// NewPermissivePolicy creates the default, total transition policy.
func NewPermissivePolicy() PermissivePolicy {
	return PermissivePolicy{}
}

// Authorize accepts any pair of valid statuses.
func (PermissivePolicy) Authorize(_, to order.Status) error {
	return to.Validate()
}

// RestrictedPolicy allows only the transitions listed in its table.
// Unlisted pairs are rejected with a ValueIsInvalid error naming both ends.
type RestrictedPolicy struct {
	allowed map[order.Status][]order.Status
}

// NewRestrictedPolicy creates a policy from an explicit transition table.
// The table maps a current status to the statuses reachable from it; a
// status absent from the table allows nothing.
func NewRestrictedPolicy(allowed map[order.Status][]order.Status) RestrictedPolicy {
	return RestrictedPolicy{allowed: allowed}
}

// Authorize checks the transition against the table.
func (p RestrictedPolicy) Authorize(from, to order.Status) error {
	if err := to.Validate(); err != nil {
		return err
	}

	for _, candidate := range p.allowed[from] {
		if candidate == to {
			return nil
		}
	}

	return errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("transition %s -> %s is not allowed", from, to),
	)
}

package ports

import (
	"context"

	"dispatch/internal/core/domain/model/audit"
)

// AuditRepository is the append-only audit trail. Entries are never updated
// or deleted once appended.
type AuditRepository interface {
	// Append inserts a new immutable entry.
	Append(ctx context.Context, entry audit.Entry) error

	// ListByOrder returns the order's entries newest-first. An order with
	// no history, including an unknown order id, yields an empty slice,
	// never an error; audit lookups do not validate order existence.
	ListByOrder(ctx context.Context, orderID string) ([]audit.Entry, error)
}

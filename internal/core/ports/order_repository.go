package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// OrderFilter narrows an order listing. A nil Status means no status filter;
// an empty Search matches everything. Search is a case-insensitive substring
// match across order id, customer name, address, extracted location and
// building code; an order matches if the term appears in any of them.
type OrderFilter struct {
	Status *order.Status
	Search string
}

// OrderRepository is the order store: the single source of truth for order
// state. All order mutations go through Update (existing orders) or Upsert
// (ingestion); no other component writes an order record directly.
type OrderRepository interface {
	// List returns all orders matching the filter, most recently updated
	// first. An unmatched filter yields an empty slice, never an error.
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// Get retrieves one order by its upstream identifier.
	// Returns ObjectNotFound for an unknown id.
	Get(ctx context.Context, orderID string) (*order.Order, error)

	// Update atomically replaces the stored record for the aggregate's id.
	// Returns ObjectNotFound for an unknown id.
	Update(ctx context.Context, aggregate *order.Order) error

	// Upsert creates the order or refreshes an existing record from the
	// upstream source, preserving the stored status and creation time on
	// refresh. Reports whether a new record was created.
	Upsert(ctx context.Context, aggregate *order.Order) (created bool, err error)

	// Count returns the total number of stored orders.
	Count(ctx context.Context) (int64, error)
}

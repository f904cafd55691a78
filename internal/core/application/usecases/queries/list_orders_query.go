package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery retrieves orders for the dashboard, optionally narrowed by
// lifecycle status and a free-text search term. Both filters are optional
// and combine with AND.
//
// Example:
//
//	status := order.InDelivery
//	query, err := NewListOrdersQuery(&status, "bldg 7")
//	if err != nil {
//	    return fmt.Errorf("invalid listing request: %w", err)
//	}
//
//	views, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	status *order.Status
	search string

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a listing request. A nil status means no status
// filter; a non-nil status must belong to the closed status set.
func NewListOrdersQuery(status *order.Status, search string) (ListOrdersQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	return ListOrdersQuery{
		status: status,
		search: search,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Status returns the optional status filter.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

// Search returns the optional search term.
func (q ListOrdersQuery) Search() string {
	return q.search
}

package queries

import (
	"context"

	"dispatch/internal/core/ports"
)

// ListOrdersQueryHandler serves the dashboard order listing. Results come
// back most recently updated first, so just-transitioned orders surface at
// the top.
type ListOrdersQueryHandler struct {
	orderRepo ports.OrderRepository
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(orderRepo ports.OrderRepository) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orderRepo: orderRepo}
}

// Handle returns the matching orders as read models. An unmatched filter
// yields an empty slice, never an error.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orderRepo.List(ctx, ports.OrderFilter{
		Status: query.Status(),
		Search: query.Search(),
	})
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderView(o))
	}
	return views, nil
}

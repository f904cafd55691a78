package queries

import (
	"context"

	"dispatch/internal/core/ports"
)

// GetOrderQueryHandler serves the order detail page: the order record plus
// its complete audit and notification history.
type GetOrderQueryHandler struct {
	orderRepo        ports.OrderRepository
	auditRepo        ports.AuditRepository
	notificationRepo ports.NotificationRepository
}

// NewGetOrderQueryHandler creates a handler for order detail lookups.
func NewGetOrderQueryHandler(
	orderRepo ports.OrderRepository,
	auditRepo ports.AuditRepository,
	notificationRepo ports.NotificationRepository,
) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		orderRepo:        orderRepo,
		auditRepo:        auditRepo,
		notificationRepo: notificationRepo,
	}
}

// Handle returns the detail view for one order.
// ObjectNotFound propagates for an unknown order id.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, err := h.orderRepo.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	entries, err := h.auditRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	notifications, err := h.notificationRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response := GetOrderQueryResponse{
		Order:         orderView(o),
		Audit:         make([]AuditEntryView, 0, len(entries)),
		Notifications: make([]NotificationView, 0, len(notifications)),
	}
	for _, entry := range entries {
		response.Audit = append(response.Audit, auditEntryView(entry))
	}
	for _, n := range notifications {
		response.Notifications = append(response.Notifications, notificationView(n))
	}
	return response, nil
}

package queries

import (
	"context"

	"dispatch/internal/core/ports"
)

// GetOrderAuditQueryHandler serves an order's audit trail, newest-first.
type GetOrderAuditQueryHandler struct {
	auditRepo ports.AuditRepository
}

// NewGetOrderAuditQueryHandler creates a handler for audit trail lookups.
func NewGetOrderAuditQueryHandler(auditRepo ports.AuditRepository) GetOrderAuditQueryHandler {
	return GetOrderAuditQueryHandler{auditRepo: auditRepo}
}

// Handle returns the order's audit entries, newest-first. An order with no
// history yields an empty slice.
func (h GetOrderAuditQueryHandler) Handle(ctx context.Context, query GetOrderAuditQuery) ([]AuditEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries, err := h.auditRepo.ListByOrder(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	views := make([]AuditEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, auditEntryView(entry))
	}
	return views, nil
}

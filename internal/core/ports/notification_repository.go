package ports

import (
	"context"

	"dispatch/internal/core/domain/model/notification"
)

// NotificationRepository records outbound alert attempts per order.
type NotificationRepository interface {
	// Add inserts a new notification record.
	Add(ctx context.Context, n notification.Notification) error

	// ListByOrder returns the order's notifications newest-first,
	// an empty slice if there are none.
	ListByOrder(ctx context.Context, orderID string) ([]notification.Notification, error)
}

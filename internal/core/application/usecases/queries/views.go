// Package queries contains read operations in the CQRS split. Query
// handlers never mutate state; they read through the ports so any store
// implementation can serve them, and they return flat view structs rather
// than domain aggregates.
package queries

import (
	"time"

	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/domain/model/order"
)

// OrderView is the read model of one order.
type OrderView struct {
	ID                string
	CustomerName      string
	Location          string
	Address           string
	BuildingCode      string
	ExtractedLocation string
	Remarks           string
	Items             []ItemView
	Status            order.Status
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ItemView is one order line in the read model.
type ItemView struct {
	SKU      string
	Name     string
	Quantity int
}

// AuditEntryView is one audit log entry in the read model.
type AuditEntryView struct {
	ID        kernel.UUID
	OrderID   string
	Action    audit.Action
	Details   string
	ChangedBy string
	CreatedAt time.Time
}

// NotificationView is one notification record in the read model.
type NotificationView struct {
	ID        kernel.UUID
	OrderID   string
	Message   string
	Outcome   notification.Outcome
	CreatedAt time.Time
}

func orderView(o *order.Order) OrderView {
	items := make([]ItemView, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemView{
			SKU:      item.SKU,
			Name:     item.Name,
			Quantity: item.Quantity,
		})
	}

	return OrderView{
		ID:                o.ID(),
		CustomerName:      o.CustomerName(),
		Location:          o.Location(),
		Address:           o.Address(),
		BuildingCode:      o.BuildingCode(),
		ExtractedLocation: o.ExtractedLocation(),
		Remarks:           o.Remarks(),
		Items:             items,
		Status:            o.Status(),
		CreatedAt:         o.CreatedAt(),
		UpdatedAt:         o.UpdatedAt(),
	}
}

func auditEntryView(e audit.Entry) AuditEntryView {
	return AuditEntryView{
		ID:        e.ID(),
		OrderID:   e.OrderID(),
		Action:    e.Action(),
		Details:   e.Details(),
		ChangedBy: e.ChangedBy(),
		CreatedAt: e.CreatedAt(),
	}
}

func notificationView(n notification.Notification) NotificationView {
	return NotificationView{
		ID:        n.ID(),
		OrderID:   n.OrderID(),
		Message:   n.Message(),
		Outcome:   n.Outcome(),
		CreatedAt: n.CreatedAt(),
	}
}

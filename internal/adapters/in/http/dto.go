package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
)

// Error is the uniform error body for all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderResponse is the wire representation of one order.
type OrderResponse struct {
	ID                string         `json:"id"`
	CustomerName      string         `json:"customer_name"`
	Location          string         `json:"location"`
	Address           string         `json:"address"`
	BuildingCode      string         `json:"building_code"`
	ExtractedLocation string         `json:"extracted_location"`
	Remarks           string         `json:"remarks"`
	Items             []ItemResponse `json:"items"`
	Status            string         `json:"status"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// ItemResponse is one order line on the wire.
type ItemResponse struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// AuditEntryResponse is one audit log entry on the wire.
type AuditEntryResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	ChangedBy string    `json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationResponse is one notification record on the wire.
type NotificationResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Message   string    `json:"message"`
	Outcome   string    `json:"outcome"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderDetailResponse combines an order with its histories.
type OrderDetailResponse struct {
	Order         OrderResponse          `json:"order"`
	Audit         []AuditEntryResponse   `json:"audit"`
	Notifications []NotificationResponse `json:"notifications"`
}

// ChangeStatusRequest asks for one lifecycle transition.
type ChangeStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// BulkTransitionRequest asks for the same transition on many orders.
type BulkTransitionRequest struct {
	OrderIDs []string `json:"order_ids"`
	Status   string   `json:"status"`
}

// BulkTransitionResponse reports the batch outcome. Failed ids are simply
// absent from Orders; Requested versus Updated exposes the gap.
type BulkTransitionResponse struct {
	Orders    []OrderResponse `json:"orders"`
	Requested int             `json:"requested"`
	Updated   int             `json:"updated"`
}

// RetryNotificationResponse reports an operator-triggered re-send.
type RetryNotificationResponse struct {
	Success        bool   `json:"success"`
	NotificationID string `json:"notification_id"`
}

// SyncResponse reports one ingestion run.
type SyncResponse struct {
	Success       bool   `json:"success"`
	OrdersSynced  int    `json:"orders_synced"`
	OrdersCreated int    `json:"orders_created"`
	OrdersUpdated int    `json:"orders_updated"`
	Message       string `json:"message"`
}

// SyncStatusResponse reports ingestion state.
type SyncStatusResponse struct {
	TotalOrders int64 `json:"total_orders"`
	SyncEnabled bool  `json:"sync_enabled"`
}

func orderResponse(view queries.OrderView) OrderResponse {
	items := make([]ItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, ItemResponse{
			SKU:      item.SKU,
			Name:     item.Name,
			Quantity: item.Quantity,
		})
	}

	return OrderResponse{
		ID:                view.ID,
		CustomerName:      view.CustomerName,
		Location:          view.Location,
		Address:           view.Address,
		BuildingCode:      view.BuildingCode,
		ExtractedLocation: view.ExtractedLocation,
		Remarks:           view.Remarks,
		Items:             items,
		Status:            view.Status.String(),
		CreatedAt:         view.CreatedAt,
		UpdatedAt:         view.UpdatedAt,
	}
}

func orderResponseFromAggregate(o *order.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemResponse{
			SKU:      item.SKU,
			Name:     item.Name,
			Quantity: item.Quantity,
		})
	}

	return OrderResponse{
		ID:                o.ID(),
		CustomerName:      o.CustomerName(),
		Location:          o.Location(),
		Address:           o.Address(),
		BuildingCode:      o.BuildingCode(),
		ExtractedLocation: o.ExtractedLocation(),
		Remarks:           o.Remarks(),
		Items:             items,
		Status:            o.Status().String(),
		CreatedAt:         o.CreatedAt(),
		UpdatedAt:         o.UpdatedAt(),
	}
}

func auditEntryResponse(view queries.AuditEntryView) AuditEntryResponse {
	return AuditEntryResponse{
		ID:        view.ID.String(),
		OrderID:   view.OrderID,
		Action:    string(view.Action),
		Details:   view.Details,
		ChangedBy: view.ChangedBy,
		CreatedAt: view.CreatedAt,
	}
}

func notificationResponse(view queries.NotificationView) NotificationResponse {
	return NotificationResponse{
		ID:        view.ID.String(),
		OrderID:   view.OrderID,
		Message:   view.Message,
		Outcome:   string(view.Outcome),
		CreatedAt: view.CreatedAt,
	}
}

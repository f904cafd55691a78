// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The primary key is the upstream order number, not a generated id. Timestamp
// auto-tracking is disabled: updated_at changes only on a successful status
// transition, never on a plain save.
type OrderDTO struct {
	ID                string         `gorm:"type:varchar(64);primaryKey"`
	CustomerName      string         `gorm:"type:varchar(255);not null"`
	Location          string         `gorm:"type:varchar(255)"`
	Address           string         `gorm:"type:text"`
	BuildingCode      string         `gorm:"type:varchar(64)"`
	ExtractedLocation string         `gorm:"type:varchar(255)"`
	Remarks           string         `gorm:"type:text"`
	Items             []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Status            int            `gorm:"type:smallint;not null;index"`
	CreatedAt         time.Time      `gorm:"autoCreateTime:false"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime:false;index"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one order line. Lines are owned by their order and
// replaced wholesale on ingestion refresh.
type OrderItemDTO struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	OrderID  string `gorm:"type:varchar(64);not null;index"`
	SKU      string `gorm:"type:varchar(64)"`
	Name     string `gorm:"type:varchar(255)"`
	Quantity int    `gorm:"type:int;not null"`
}

// TableName overrides GORM's default naming convention to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:  aggregate.ID(),
			SKU:      item.SKU,
			Name:     item.Name,
			Quantity: item.Quantity,
		})
	}

	return OrderDTO{
		ID:                aggregate.ID(),
		CustomerName:      aggregate.CustomerName(),
		Location:          aggregate.Location(),
		Address:           aggregate.Address(),
		BuildingCode:      aggregate.BuildingCode(),
		ExtractedLocation: aggregate.ExtractedLocation(),
		Remarks:           aggregate.Remarks(),
		Items:             items,
		Status:            int(aggregate.Status()),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder, which re-validates the identifier and status.
func toDomain(dto OrderDTO) (*order.Order, error) {
	items := make([]order.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, order.Item{
			SKU:      item.SKU,
			Name:     item.Name,
			Quantity: item.Quantity,
		})
	}

	return order.RestoreOrder(
		dto.ID,
		dto.CustomerName,
		dto.Location,
		dto.Address,
		dto.BuildingCode,
		dto.ExtractedLocation,
		dto.Remarks,
		items,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

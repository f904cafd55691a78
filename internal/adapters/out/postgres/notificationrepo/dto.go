// Package notificationrepo persists outbound notification records.
package notificationrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for one notification
// record.
type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   string    `gorm:"type:varchar(64);not null;index"`
	Message   string    `gorm:"type:text;not null"`
	Outcome   string    `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

// TableName overrides GORM's default naming convention to use "notifications".
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification to its database representation.
func fromDomain(n notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID().Bytes(),
		OrderID:   n.OrderID(),
		Message:   n.Message(),
		Outcome:   string(n.Outcome()),
		CreatedAt: n.CreatedAt(),
	}
}

// toDomain converts a database DTO to a notification using
// RestoreNotification.
func toDomain(dto NotificationDTO) (notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return notification.Notification{}, err
	}

	return notification.RestoreNotification(
		id,
		dto.OrderID,
		dto.Message,
		notification.Outcome(dto.Outcome),
		dto.CreatedAt,
	)
}

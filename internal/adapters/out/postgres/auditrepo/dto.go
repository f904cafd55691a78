// Package auditrepo persists the append-only audit trail. Rows are inserted
// once and never updated or deleted.
package auditrepo

import (
	"time"

	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AuditEntryDTO represents the database structure for one audit log entry.
type AuditEntryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   string    `gorm:"type:varchar(64);not null;index"`
	Action    string    `gorm:"type:varchar(32);not null"`
	Details   string    `gorm:"type:text"`
	ChangedBy string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

// TableName overrides GORM's default naming convention to use "audit_entries".
func (AuditEntryDTO) TableName() string {
	return "audit_entries"
}

// fromDomain converts an audit entry to its database representation.
func fromDomain(entry audit.Entry) AuditEntryDTO {
	return AuditEntryDTO{
		ID:        entry.ID().Bytes(),
		OrderID:   entry.OrderID(),
		Action:    string(entry.Action()),
		Details:   entry.Details(),
		ChangedBy: entry.ChangedBy(),
		CreatedAt: entry.CreatedAt(),
	}
}

// toDomain converts a database DTO to an audit entry using RestoreEntry.
func toDomain(dto AuditEntryDTO) (audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return audit.Entry{}, err
	}

	return audit.RestoreEntry(
		id,
		dto.OrderID,
		audit.Action(dto.Action),
		dto.Details,
		dto.ChangedBy,
		dto.CreatedAt,
	)
}

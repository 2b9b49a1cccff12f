package asset

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// AuditAction classifies an entry in an asset's history
type AuditAction string

const (
	AuditActionCheckout AuditAction = "CHECKOUT"
	AuditActionCheckin  AuditAction = "CHECKIN"
	AuditActionAudit    AuditAction = "AUDIT" // Physical verification
	AuditActionUpdate   AuditAction = "UPDATE"
)

// IsValid checks if the action is a valid AuditAction
func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCheckout, AuditActionCheckin, AuditActionAudit, AuditActionUpdate:
		return true
	}
	return false
}

// Audit is an append-only entry in an asset's history
type Audit struct {
	shared.BaseEntity
	AssetID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	UserID     *uuid.UUID  `gorm:"type:uuid;index"` // Who performed or received the action
	Action     AuditAction `gorm:"type:varchar(20);not null;index"`
	Note       string      `gorm:"type:text"`
	LocationID *uuid.UUID  `gorm:"type:uuid"` // Where the asset was seen, for AUDIT entries
	AuditedAt  time.Time   `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Audit) TableName() string {
	return "asset_audits"
}

// NewAudit records a history entry for the given asset
func NewAudit(assetID uuid.UUID, userID *uuid.UUID, action AuditAction, note string) (*Audit, error) {
	if assetID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ASSET", "Asset ID cannot be empty")
	}
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Unknown audit action")
	}
	if len(note) > 2000 {
		return nil, shared.NewDomainError("INVALID_NOTE", "Audit note cannot exceed 2000 characters")
	}

	return &Audit{
		BaseEntity: shared.NewBaseEntity(),
		AssetID:    assetID,
		UserID:     userID,
		Action:     action,
		Note:       note,
		AuditedAt:  time.Now(),
	}, nil
}

// SetLocation records where the asset was found during the audit
func (a *Audit) SetLocation(locationID *uuid.UUID) {
	a.LocationID = locationID
}

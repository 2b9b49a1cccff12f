package asset

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AssetStatus represents the lifecycle status of an asset
type AssetStatus string

const (
	AssetStatusInService AssetStatus = "in_service"
	AssetStatusRetired   AssetStatus = "retired"
)

// Asset represents a tracked piece of equipment or property
type Asset struct {
	shared.AuditedAggregateRoot
	Tag             string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_asset_tag"` // Asset tag printed on the label
	Name            string          `gorm:"type:varchar(200);not null"`
	Description     string          `gorm:"type:text"`
	SerialNumber    string          `gorm:"type:varchar(100);index"`
	ModelName       string          `gorm:"type:varchar(100)"`
	CategoryID      *uuid.UUID      `gorm:"type:uuid;index"`
	ManufacturerID  *uuid.UUID      `gorm:"type:uuid;index"`
	ConditionID     *uuid.UUID      `gorm:"type:uuid;index"`
	LocationID      *uuid.UUID      `gorm:"type:uuid;index"`
	PurchaseDate    *time.Time      `gorm:"type:date"`
	PurchasePrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	WarrantyExpires *time.Time      `gorm:"type:date"`
	AssignedToID    *uuid.UUID      `gorm:"type:uuid;index"` // User currently holding the asset
	CheckedOutAt    *time.Time
	DueBack         *time.Time `gorm:"type:date"`
	Notes           string      `gorm:"type:text"`
	Status          AssetStatus `gorm:"type:varchar(20);not null;default:'in_service'"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (Asset) TableName() string {
	return "assets"
}

// NewAsset creates a new asset with required fields
func NewAsset(tag, name string) (*Asset, error) {
	if err := validateAssetTag(tag); err != nil {
		return nil, err
	}
	if err := validateAssetName(name); err != nil {
		return nil, err
	}

	asset := &Asset{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Tag:                  strings.ToUpper(strings.TrimSpace(tag)),
		Name:                 strings.TrimSpace(name),
		PurchasePrice:        decimal.Zero,
		Status:               AssetStatusInService,
	}

	asset.AddDomainEvent(NewAssetCreatedEvent(asset))

	return asset, nil
}

// Update updates the asset's descriptive fields
func (a *Asset) Update(name, description, serialNumber, modelName string) error {
	if err := validateAssetName(name); err != nil {
		return err
	}
	if serialNumber != "" && len(serialNumber) > 100 {
		return shared.NewDomainError("INVALID_SERIAL", "Serial number cannot exceed 100 characters")
	}
	if modelName != "" && len(modelName) > 100 {
		return shared.NewDomainError("INVALID_MODEL", "Model name cannot exceed 100 characters")
	}

	a.Name = strings.TrimSpace(name)
	a.Description = description
	a.SerialNumber = serialNumber
	a.ModelName = modelName
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAssetUpdatedEvent(a))

	return nil
}

// UpdateTag changes the asset tag
func (a *Asset) UpdateTag(tag string) error {
	if err := validateAssetTag(tag); err != nil {
		return err
	}

	a.Tag = strings.ToUpper(strings.TrimSpace(tag))
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// Classify sets the asset's picklist references
// Any of the IDs may be nil to clear that classification
func (a *Asset) Classify(categoryID, manufacturerID, conditionID, locationID *uuid.UUID) {
	a.CategoryID = categoryID
	a.ManufacturerID = manufacturerID
	a.ConditionID = conditionID
	a.LocationID = locationID
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// SetPurchaseInfo records when the asset was bought, for how much, and
// when its warranty runs out
func (a *Asset) SetPurchaseInfo(purchaseDate *time.Time, price decimal.Decimal, warrantyExpires *time.Time) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}

	a.PurchaseDate = purchaseDate
	a.PurchasePrice = price
	a.WarrantyExpires = warrantyExpires
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// SetNotes sets the asset's notes
func (a *Asset) SetNotes(notes string) {
	a.Notes = notes
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// Checkout assigns the asset to a user, optionally with a due-back date
func (a *Asset) Checkout(userID uuid.UUID, dueBack *time.Time) error {
	if a.Status == AssetStatusRetired {
		return shared.NewDomainError("ASSET_RETIRED", "Retired assets cannot be checked out")
	}
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if a.AssignedToID != nil {
		return shared.NewDomainError("ALREADY_CHECKED_OUT", "Asset is already checked out")
	}

	now := time.Now()
	a.AssignedToID = &userID
	a.CheckedOutAt = &now
	a.DueBack = dueBack
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewAssetCheckedOutEvent(a, userID))

	return nil
}

// Checkin returns the asset
func (a *Asset) Checkin() error {
	if a.AssignedToID == nil {
		return shared.NewDomainError("NOT_CHECKED_OUT", "Asset is not checked out")
	}

	userID := *a.AssignedToID
	a.AssignedToID = nil
	a.CheckedOutAt = nil
	a.DueBack = nil
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAssetCheckedInEvent(a, userID))

	return nil
}

// Retire removes the asset from service
// A checked out asset must be checked in first
func (a *Asset) Retire() error {
	if a.Status == AssetStatusRetired {
		return shared.NewDomainError("ALREADY_RETIRED", "Asset is already retired")
	}
	if a.AssignedToID != nil {
		return shared.NewDomainError("ASSET_CHECKED_OUT", "Check the asset in before retiring it")
	}

	a.Status = AssetStatusRetired
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAssetRetiredEvent(a))

	return nil
}

// Restore returns a retired asset to service
func (a *Asset) Restore() error {
	if a.Status == AssetStatusInService {
		return shared.NewDomainError("ALREADY_IN_SERVICE", "Asset is already in service")
	}

	a.Status = AssetStatusInService
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// IsCheckedOut returns true if the asset is assigned to someone
func (a *Asset) IsCheckedOut() bool {
	return a.AssignedToID != nil
}

// IsRetired returns true if the asset is retired
func (a *Asset) IsRetired() bool {
	return a.Status == AssetStatusRetired
}

// Validation functions

func validateAssetTag(tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return shared.NewDomainError("INVALID_TAG", "Asset tag cannot be empty")
	}
	if len(tag) > 50 {
		return shared.NewDomainError("INVALID_TAG", "Asset tag cannot exceed 50 characters")
	}
	for _, r := range tag {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_TAG", "Asset tag can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateAssetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Asset name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Asset name cannot exceed 200 characters")
	}
	return nil
}

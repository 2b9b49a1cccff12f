package asset

import (
	"context"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// AssetRepository defines the interface for asset persistence
type AssetRepository interface {
	// FindByID finds an asset by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Asset, error)

	// FindByTag finds an asset by its tag
	FindByTag(ctx context.Context, tag string) (*Asset, error)

	// FindBySerial finds an asset by its serial number
	FindBySerial(ctx context.Context, serial string) (*Asset, error)

	// FindAll finds all assets matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Asset, error)

	// FindByAssignee finds assets checked out to a user
	FindByAssignee(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Asset, error)

	// FindByLocation finds assets at a location
	FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]Asset, error)

	// Save creates or updates an asset
	Save(ctx context.Context, asset *Asset) error

	// Delete deletes an asset
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts assets matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByTag checks if an asset with the given tag exists
	ExistsByTag(ctx context.Context, tag string) (bool, error)
}

// AuditRepository defines the interface for asset audit persistence
type AuditRepository interface {
	// FindByAsset returns audits for an asset, newest first
	FindByAsset(ctx context.Context, assetID uuid.UUID, filter shared.Filter) ([]Audit, error)

	// Save records an audit
	Save(ctx context.Context, audit *Audit) error
}

// PicklistRepository defines the interface for asset picklist persistence
// Each picklist is small, so lists are returned without pagination
type PicklistRepository interface {
	// Categories
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAllCategories(ctx context.Context) ([]Category, error)
	SaveCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// Manufacturers
	FindManufacturerByID(ctx context.Context, id uuid.UUID) (*Manufacturer, error)
	FindAllManufacturers(ctx context.Context) ([]Manufacturer, error)
	SaveManufacturer(ctx context.Context, m *Manufacturer) error
	DeleteManufacturer(ctx context.Context, id uuid.UUID) error

	// Conditions
	FindConditionByID(ctx context.Context, id uuid.UUID) (*Condition, error)
	FindAllConditions(ctx context.Context) ([]Condition, error)
	SaveCondition(ctx context.Context, c *Condition) error
	DeleteCondition(ctx context.Context, id uuid.UUID) error

	// Locations
	FindLocationByID(ctx context.Context, id uuid.UUID) (*Location, error)
	FindAllLocations(ctx context.Context) ([]Location, error)
	SaveLocation(ctx context.Context, l *Location) error
	DeleteLocation(ctx context.Context, id uuid.UUID) error
}

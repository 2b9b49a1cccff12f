package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/asset"
	"github.com/opsdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAssetPicklistRepository implements PicklistRepository using GORM.
// The four picklists share one access pattern, so the lookups are generic
// over the concrete list type.
type GormAssetPicklistRepository struct {
	db *gorm.DB
}

// NewGormAssetPicklistRepository creates a new GormAssetPicklistRepository
func NewGormAssetPicklistRepository(db *gorm.DB) *GormAssetPicklistRepository {
	return &GormAssetPicklistRepository{db: db}
}

func findPicklistEntry[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) (*T, error) {
	var entry T
	if err := db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func findAllPicklistEntries[T any](ctx context.Context, db *gorm.DB) ([]T, error) {
	var entries []T
	if err := db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func deletePicklistEntry[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	var entry T
	result := db.WithContext(ctx).Delete(&entry, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindCategoryByID finds an asset category by ID
func (r *GormAssetPicklistRepository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*asset.Category, error) {
	return findPicklistEntry[asset.Category](ctx, r.db, id)
}

// FindAllCategories returns all asset categories in display order
func (r *GormAssetPicklistRepository) FindAllCategories(ctx context.Context) ([]asset.Category, error) {
	return findAllPicklistEntries[asset.Category](ctx, r.db)
}

// SaveCategory creates or updates an asset category
func (r *GormAssetPicklistRepository) SaveCategory(ctx context.Context, c *asset.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// DeleteCategory deletes an asset category
func (r *GormAssetPicklistRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return deletePicklistEntry[asset.Category](ctx, r.db, id)
}

// FindManufacturerByID finds a manufacturer by ID
func (r *GormAssetPicklistRepository) FindManufacturerByID(ctx context.Context, id uuid.UUID) (*asset.Manufacturer, error) {
	return findPicklistEntry[asset.Manufacturer](ctx, r.db, id)
}

// FindAllManufacturers returns all manufacturers in display order
func (r *GormAssetPicklistRepository) FindAllManufacturers(ctx context.Context) ([]asset.Manufacturer, error) {
	return findAllPicklistEntries[asset.Manufacturer](ctx, r.db)
}

// SaveManufacturer creates or updates a manufacturer
func (r *GormAssetPicklistRepository) SaveManufacturer(ctx context.Context, m *asset.Manufacturer) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// DeleteManufacturer deletes a manufacturer
func (r *GormAssetPicklistRepository) DeleteManufacturer(ctx context.Context, id uuid.UUID) error {
	return deletePicklistEntry[asset.Manufacturer](ctx, r.db, id)
}

// FindConditionByID finds a condition by ID
func (r *GormAssetPicklistRepository) FindConditionByID(ctx context.Context, id uuid.UUID) (*asset.Condition, error) {
	return findPicklistEntry[asset.Condition](ctx, r.db, id)
}

// FindAllConditions returns all conditions in display order
func (r *GormAssetPicklistRepository) FindAllConditions(ctx context.Context) ([]asset.Condition, error) {
	return findAllPicklistEntries[asset.Condition](ctx, r.db)
}

// SaveCondition creates or updates a condition
func (r *GormAssetPicklistRepository) SaveCondition(ctx context.Context, c *asset.Condition) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// DeleteCondition deletes a condition
func (r *GormAssetPicklistRepository) DeleteCondition(ctx context.Context, id uuid.UUID) error {
	return deletePicklistEntry[asset.Condition](ctx, r.db, id)
}

// FindLocationByID finds a location by ID
func (r *GormAssetPicklistRepository) FindLocationByID(ctx context.Context, id uuid.UUID) (*asset.Location, error) {
	return findPicklistEntry[asset.Location](ctx, r.db, id)
}

// FindAllLocations returns all locations in display order
func (r *GormAssetPicklistRepository) FindAllLocations(ctx context.Context) ([]asset.Location, error) {
	return findAllPicklistEntries[asset.Location](ctx, r.db)
}

// SaveLocation creates or updates a location
func (r *GormAssetPicklistRepository) SaveLocation(ctx context.Context, l *asset.Location) error {
	return r.db.WithContext(ctx).Save(l).Error
}

// DeleteLocation deletes a location
func (r *GormAssetPicklistRepository) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	return deletePicklistEntry[asset.Location](ctx, r.db, id)
}

// Ensure GormAssetPicklistRepository implements PicklistRepository
var _ asset.PicklistRepository = (*GormAssetPicklistRepository)(nil)

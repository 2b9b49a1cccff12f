package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/asset"
	"github.com/opsdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAssetRepository implements AssetRepository using GORM
type GormAssetRepository struct {
	db *gorm.DB
}

// NewGormAssetRepository creates a new GormAssetRepository
func NewGormAssetRepository(db *gorm.DB) *GormAssetRepository {
	return &GormAssetRepository{db: db}
}

// FindByID finds an asset by its ID
func (r *GormAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*asset.Asset, error) {
	var a asset.Asset
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByTag finds an asset by its tag
func (r *GormAssetRepository) FindByTag(ctx context.Context, tag string) (*asset.Asset, error) {
	var a asset.Asset
	if err := r.db.WithContext(ctx).
		First(&a, "tag = ?", strings.ToUpper(strings.TrimSpace(tag))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindBySerial finds an asset by its serial number
func (r *GormAssetRepository) FindBySerial(ctx context.Context, serial string) (*asset.Asset, error) {
	var a asset.Asset
	if err := r.db.WithContext(ctx).
		First(&a, "serial_number = ?", strings.TrimSpace(serial)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindAll finds all assets matching the filter
func (r *GormAssetRepository) FindAll(ctx context.Context, filter shared.Filter) ([]asset.Asset, error) {
	var assets []asset.Asset
	query := r.applyFilter(r.db.WithContext(ctx).Model(&asset.Asset{}), filter)

	if err := query.Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// FindByAssignee finds assets checked out to a user
func (r *GormAssetRepository) FindByAssignee(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]asset.Asset, error) {
	var assets []asset.Asset
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&asset.Asset{}).
			Where("assigned_to_id = ?", userID),
		filter,
	)

	if err := query.Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// FindByLocation finds assets at a location
func (r *GormAssetRepository) FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]asset.Asset, error) {
	var assets []asset.Asset
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&asset.Asset{}).
			Where("location_id = ?", locationID),
		filter,
	)

	if err := query.Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// Save creates or updates an asset
func (r *GormAssetRepository) Save(ctx context.Context, a *asset.Asset) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// Delete deletes an asset (soft delete)
func (r *GormAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&asset.Asset{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts assets matching the filter
func (r *GormAssetRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&asset.Asset{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByTag checks if an asset with the given tag exists
func (r *GormAssetRepository) ExistsByTag(ctx context.Context, tag string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&asset.Asset{}).
		Where("tag = ?", strings.ToUpper(strings.TrimSpace(tag))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormAssetRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering with whitelist validation to prevent SQL injection
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, AssetSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			query = query.Order("tag ASC")
		}
	} else {
		// Tag order matches the physical labels
		query = query.Order("tag ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormAssetRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("tag ILIKE ? OR name ILIKE ? OR serial_number ILIKE ? OR model_name ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "manufacturer_id":
			query = query.Where("manufacturer_id = ?", value)
		case "condition_id":
			query = query.Where("condition_id = ?", value)
		case "location_id":
			query = query.Where("location_id = ?", value)
		case "assigned_to_id":
			query = query.Where("assigned_to_id = ?", value)
		case "checked_out":
			if b, ok := value.(bool); ok {
				if b {
					query = query.Where("assigned_to_id IS NOT NULL")
				} else {
					query = query.Where("assigned_to_id IS NULL")
				}
			}
		case "overdue":
			if b, ok := value.(bool); ok && b {
				query = query.Where("due_back IS NOT NULL AND due_back < ?", time.Now())
			}
		}
	}

	return query
}

// Ensure GormAssetRepository implements AssetRepository
var _ asset.AssetRepository = (*GormAssetRepository)(nil)

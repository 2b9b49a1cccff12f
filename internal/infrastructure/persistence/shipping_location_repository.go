package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/partner"
	"github.com/opsdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormShippingLocationRepository implements ShippingLocationRepository using GORM
type GormShippingLocationRepository struct {
	db *gorm.DB
}

// NewGormShippingLocationRepository creates a new GormShippingLocationRepository
func NewGormShippingLocationRepository(db *gorm.DB) *GormShippingLocationRepository {
	return &GormShippingLocationRepository{db: db}
}

// FindByID finds a shipping location by its ID
func (r *GormShippingLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.ShippingLocation, error) {
	var location partner.ShippingLocation
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindByName finds a shipping location by its exact name
func (r *GormShippingLocationRepository) FindByName(ctx context.Context, name string) (*partner.ShippingLocation, error) {
	var location partner.ShippingLocation
	if err := r.db.WithContext(ctx).
		First(&location, "name = ?", strings.TrimSpace(name)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindDefault finds the default shipping location, if one is set
func (r *GormShippingLocationRepository) FindDefault(ctx context.Context) (*partner.ShippingLocation, error) {
	var location partner.ShippingLocation
	if err := r.db.WithContext(ctx).
		First(&location, "is_default = ?", true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindAll finds all shipping locations matching the filter
func (r *GormShippingLocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.ShippingLocation, error) {
	var locations []partner.ShippingLocation
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.ShippingLocation{}), filter)

	if err := query.Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Save creates or updates a shipping location
func (r *GormShippingLocationRepository) Save(ctx context.Context, location *partner.ShippingLocation) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// Delete deletes a shipping location
func (r *GormShippingLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.ShippingLocation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts shipping locations matching the filter
func (r *GormShippingLocationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&partner.ShippingLocation{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a shipping location with the given name exists
func (r *GormShippingLocationRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.ShippingLocation{}).
		Where("name = ?", strings.TrimSpace(name)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormShippingLocationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering with whitelist validation to prevent SQL injection
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, ShippingLocationSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			query = query.Order("name ASC")
		}
	} else {
		// Default first, then alphabetical
		query = query.Order("is_default DESC, name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormShippingLocationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "active":
			if b, ok := value.(bool); ok {
				query = query.Where("active = ?", b)
			}
		}
	}

	return query
}

// Ensure GormShippingLocationRepository implements ShippingLocationRepository
var _ partner.ShippingLocationRepository = (*GormShippingLocationRepository)(nil)

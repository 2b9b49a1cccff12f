package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/mailroom"
	"github.com/opsdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMailFilterRepository implements FilterRepository using GORM
type GormMailFilterRepository struct {
	db *gorm.DB
}

// NewGormMailFilterRepository creates a new GormMailFilterRepository
func NewGormMailFilterRepository(db *gorm.DB) *GormMailFilterRepository {
	return &GormMailFilterRepository{db: db}
}

// FindAllowedDomains returns every allowed domain
func (r *GormMailFilterRepository) FindAllowedDomains(ctx context.Context) ([]mailroom.AllowedDomain, error) {
	var domains []mailroom.AllowedDomain
	if err := r.db.WithContext(ctx).
		Order("domain ASC").
		Find(&domains).Error; err != nil {
		return nil, err
	}
	return domains, nil
}

// FindActiveAllowedDomains returns the active allow list
func (r *GormMailFilterRepository) FindActiveAllowedDomains(ctx context.Context) ([]mailroom.AllowedDomain, error) {
	var domains []mailroom.AllowedDomain
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("domain ASC").
		Find(&domains).Error; err != nil {
		return nil, err
	}
	return domains, nil
}

// FindAllowedDomainByID finds one allowed domain
func (r *GormMailFilterRepository) FindAllowedDomainByID(ctx context.Context, id uuid.UUID) (*mailroom.AllowedDomain, error) {
	var domain mailroom.AllowedDomain
	if err := r.db.WithContext(ctx).First(&domain, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &domain, nil
}

// SaveAllowedDomain saves an allowed domain
func (r *GormMailFilterRepository) SaveAllowedDomain(ctx context.Context, domain *mailroom.AllowedDomain) error {
	return r.db.WithContext(ctx).Save(domain).Error
}

// DeleteAllowedDomain deletes an allowed domain
func (r *GormMailFilterRepository) DeleteAllowedDomain(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&mailroom.AllowedDomain{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsAllowedDomain checks whether a domain is already listed
func (r *GormMailFilterRepository) ExistsAllowedDomain(ctx context.Context, domain string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&mailroom.AllowedDomain{}).
		Where("domain = ?", strings.ToLower(strings.TrimSpace(domain))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindDenyFilters returns every deny filter
func (r *GormMailFilterRepository) FindDenyFilters(ctx context.Context) ([]mailroom.DenyFilter, error) {
	var filters []mailroom.DenyFilter
	if err := r.db.WithContext(ctx).
		Order("pattern ASC").
		Find(&filters).Error; err != nil {
		return nil, err
	}
	return filters, nil
}

// FindActiveDenyFilters returns the active deny filters
func (r *GormMailFilterRepository) FindActiveDenyFilters(ctx context.Context) ([]mailroom.DenyFilter, error) {
	var filters []mailroom.DenyFilter
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("pattern ASC").
		Find(&filters).Error; err != nil {
		return nil, err
	}
	return filters, nil
}

// FindDenyFilterByID finds one deny filter
func (r *GormMailFilterRepository) FindDenyFilterByID(ctx context.Context, id uuid.UUID) (*mailroom.DenyFilter, error) {
	var filter mailroom.DenyFilter
	if err := r.db.WithContext(ctx).First(&filter, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &filter, nil
}

// SaveDenyFilter saves a deny filter
func (r *GormMailFilterRepository) SaveDenyFilter(ctx context.Context, filter *mailroom.DenyFilter) error {
	return r.db.WithContext(ctx).Save(filter).Error
}

// DeleteDenyFilter deletes a deny filter
func (r *GormMailFilterRepository) DeleteDenyFilter(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&mailroom.DenyFilter{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormMailFilterRepository implements FilterRepository
var _ mailroom.FilterRepository = (*GormMailFilterRepository)(nil)

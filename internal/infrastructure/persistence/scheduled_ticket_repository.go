package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/schedule"
	"github.com/opsdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormScheduledTicketRepository implements schedule.Repository using GORM
type GormScheduledTicketRepository struct {
	db *gorm.DB
}

// NewGormScheduledTicketRepository creates a new GormScheduledTicketRepository
func NewGormScheduledTicketRepository(db *gorm.DB) *GormScheduledTicketRepository {
	return &GormScheduledTicketRepository{db: db}
}

// FindByID finds a scheduled ticket by its ID
func (r *GormScheduledTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*schedule.ScheduledTicket, error) {
	var st schedule.ScheduledTicket
	if err := r.db.WithContext(ctx).First(&st, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

// FindAll finds all scheduled tickets matching the filter
func (r *GormScheduledTicketRepository) FindAll(ctx context.Context, filter shared.Filter) ([]schedule.ScheduledTicket, error) {
	var schedules []schedule.ScheduledTicket
	query := r.applyFilter(r.db.WithContext(ctx).Model(&schedule.ScheduledTicket{}), filter)

	if err := query.Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// FindActive finds all schedules that are enabled
func (r *GormScheduledTicketRepository) FindActive(ctx context.Context) ([]schedule.ScheduledTicket, error) {
	var schedules []schedule.ScheduledTicket
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// Save creates or updates a scheduled ticket
func (r *GormScheduledTicketRepository) Save(ctx context.Context, st *schedule.ScheduledTicket) error {
	return r.db.WithContext(ctx).Save(st).Error
}

// Delete deletes a scheduled ticket
func (r *GormScheduledTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&schedule.ScheduledTicket{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the total number of scheduled tickets
func (r *GormScheduledTicketRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&schedule.ScheduledTicket{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormScheduledTicketRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR subject ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			if b, ok := value.(bool); ok {
				query = query.Where("active = ?", b)
			}
		case "cadence":
			query = query.Where("cadence = ?", value)
		}
	}

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering with whitelist validation to prevent SQL injection
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, ScheduledTicketSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			query = query.Order("name ASC")
		}
	} else {
		query = query.Order("name ASC")
	}

	return query
}

// Ensure GormScheduledTicketRepository implements schedule.Repository
var _ schedule.Repository = (*GormScheduledTicketRepository)(nil)

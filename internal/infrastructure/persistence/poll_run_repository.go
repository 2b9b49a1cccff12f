package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/mailroom"
	"github.com/opsdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPollRunRepository implements PollRunRepository using GORM
type GormPollRunRepository struct {
	db *gorm.DB
}

// NewGormPollRunRepository creates a new GormPollRunRepository
func NewGormPollRunRepository(db *gorm.DB) *GormPollRunRepository {
	return &GormPollRunRepository{db: db}
}

// FindByID finds a poll run by its ID with its entries
func (r *GormPollRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*mailroom.PollRun, error) {
	var run mailroom.PollRun
	if err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&run, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &run, nil
}

// FindRecent finds recent runs, newest first, without entries
func (r *GormPollRunRepository) FindRecent(ctx context.Context, filter shared.Filter) ([]mailroom.PollRun, error) {
	var runs []mailroom.PollRun

	query := r.db.WithContext(ctx).Model(&mailroom.PollRun{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("started_at DESC").Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// FindLatest returns the most recently started run, or nil when none exist
func (r *GormPollRunRepository) FindLatest(ctx context.Context) (*mailroom.PollRun, error) {
	var run mailroom.PollRun
	if err := r.db.WithContext(ctx).
		Order("started_at DESC").
		First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// Save saves a poll run without touching its entries
func (r *GormPollRunRepository) Save(ctx context.Context, run *mailroom.PollRun) error {
	return r.db.WithContext(ctx).Omit("Entries").Save(run).Error
}

// SaveEntry saves a single poll entry
func (r *GormPollRunRepository) SaveEntry(ctx context.Context, entry *mailroom.PollEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// DeleteOlderThan purges runs started before the cutoff, entries included.
// Returns the number of runs removed.
func (r *GormPollRunRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var runIDs []uuid.UUID
		if err := tx.Model(&mailroom.PollRun{}).
			Where("started_at < ?", cutoff).
			Pluck("id", &runIDs).Error; err != nil {
			return err
		}
		if len(runIDs) == 0 {
			return nil
		}

		if err := tx.Where("poll_run_id IN ?", runIDs).
			Delete(&mailroom.PollEntry{}).Error; err != nil {
			return err
		}

		result := tx.Where("id IN ?", runIDs).Delete(&mailroom.PollRun{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}

// Count returns the total number of poll runs
func (r *GormPollRunRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&mailroom.PollRun{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormPollRunRepository implements PollRunRepository
var _ mailroom.PollRunRepository = (*GormPollRunRepository)(nil)

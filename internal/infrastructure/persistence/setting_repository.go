package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/opsdesk/backend/internal/domain/setting"
	"github.com/opsdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingRepository implements setting.Repository using GORM
type GormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository creates a new GormSettingRepository
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// FindByKey finds a setting by its key
func (r *GormSettingRepository) FindByKey(ctx context.Context, key string) (*setting.Setting, error) {
	var s setting.Setting
	if err := r.db.WithContext(ctx).First(&s, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetValue returns the value for a key, or the fallback if the key does not exist
func (r *GormSettingRepository) GetValue(ctx context.Context, key, fallback string) (string, error) {
	s, err := r.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return fallback, nil
		}
		return "", err
	}
	return s.Value, nil
}

// FindAll returns all settings ordered by key
func (r *GormSettingRepository) FindAll(ctx context.Context) ([]setting.Setting, error) {
	var settings []setting.Setting
	if err := r.db.WithContext(ctx).
		Order("key ASC").
		Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// Save creates or updates a setting
func (r *GormSettingRepository) Save(ctx context.Context, s *setting.Setting) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// Upsert writes key to value, creating the setting if needed.
// The write resolves against the key's unique index so concurrent
// upserts of the same key cannot fail.
func (r *GormSettingRepository) Upsert(ctx context.Context, key, value string) error {
	s, err := setting.NewSetting(key, value)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value":      value,
				"updated_at": time.Now(),
			}),
		}).
		Create(s).Error
}

// Delete removes a setting by key
func (r *GormSettingRepository) Delete(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).Delete(&setting.Setting{}, "key = ?", key)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormSettingRepository implements setting.Repository
var _ setting.Repository = (*GormSettingRepository)(nil)

package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/asset"
	"github.com/opsdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAssetAuditRepository implements AuditRepository using GORM
type GormAssetAuditRepository struct {
	db *gorm.DB
}

// NewGormAssetAuditRepository creates a new GormAssetAuditRepository
func NewGormAssetAuditRepository(db *gorm.DB) *GormAssetAuditRepository {
	return &GormAssetAuditRepository{db: db}
}

// FindByAsset returns audits for an asset, newest first
func (r *GormAssetAuditRepository) FindByAsset(ctx context.Context, assetID uuid.UUID, filter shared.Filter) ([]asset.Audit, error) {
	var audits []asset.Audit

	query := r.db.WithContext(ctx).Model(&asset.Audit{}).
		Where("asset_id = ?", assetID)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("audited_at DESC").Find(&audits).Error; err != nil {
		return nil, err
	}
	return audits, nil
}

// Save records an audit
func (r *GormAssetAuditRepository) Save(ctx context.Context, audit *asset.Audit) error {
	return r.db.WithContext(ctx).Save(audit).Error
}

// Ensure GormAssetAuditRepository implements AuditRepository
var _ asset.AuditRepository = (*GormAssetAuditRepository)(nil)

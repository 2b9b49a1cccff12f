// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormWorkloadStatsProvider implements WorkloadStatsProvider using GORM.
// It queries the aggregate tables directly with count queries so the
// collector never loads full rows.
type GormWorkloadStatsProvider struct {
	db *gorm.DB
}

// NewGormWorkloadStatsProvider creates a new GormWorkloadStatsProvider.
func NewGormWorkloadStatsProvider(db *gorm.DB) *GormWorkloadStatsProvider {
	return &GormWorkloadStatsProvider{db: db}
}

// OpenTickets returns the number of tickets in OPEN or IN_PROGRESS status.
func (p *GormWorkloadStatsProvider) OpenTickets(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("tickets").
		Where("status IN ? AND deleted_at IS NULL", []string{"OPEN", "IN_PROGRESS"}).
		Count(&count).Error
	return count, err
}

// SnoozedTickets returns the number of tickets currently snoozed.
func (p *GormWorkloadStatsProvider) SnoozedTickets(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("tickets").
		Where("snoozed_until IS NOT NULL AND snoozed_until > CURRENT_TIMESTAMP AND deleted_at IS NULL").
		Count(&count).Error
	return count, err
}

// OpenPurchaseOrders returns the number of finalized purchase orders that
// have not yet been completed or cancelled.
func (p *GormWorkloadStatsProvider) OpenPurchaseOrders(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("purchase_orders").
		Where("status IN ? AND deleted_at IS NULL", []string{"FINALIZED", "PARTIALLY_RECEIVED"}).
		Count(&count).Error
	return count, err
}

// CheckedOutAssets returns the number of assets currently assigned to a user.
func (p *GormWorkloadStatsProvider) CheckedOutAssets(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("assets").
		Where("assigned_to_id IS NOT NULL AND deleted_at IS NULL").
		Count(&count).Error
	return count, err
}

// PendingOutboxEvents returns the number of outbox entries awaiting delivery.
func (p *GormWorkloadStatsProvider) PendingOutboxEvents(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("outbox_events").
		Where("status IN ?", []string{"PENDING", "PROCESSING"}).
		Count(&count).Error
	return count, err
}

package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/procurement"
	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/opsdesk/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements procurement.Repository using GORM
type GormPurchaseOrderRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormPurchaseOrderRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindByID finds a purchase order by its ID with its items
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPONumber finds a purchase order by its assigned number
func (r *GormPurchaseOrderRepository) FindByPONumber(ctx context.Context, poNumber string) (*procurement.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&model, "po_number = ?", poNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all purchase orders matching the filter
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	var orderModels []models.PurchaseOrderModel

	query := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{})
	query = r.applyFilter(query, filter)

	if err := query.Preload("Items").Find(&orderModels).Error; err != nil {
		return nil, err
	}
	orders := make([]procurement.PurchaseOrder, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// FindByStatus finds purchase orders in a status
func (r *GormPurchaseOrderRepository) FindByStatus(ctx context.Context, status procurement.PurchaseOrderStatus, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	var orderModels []models.PurchaseOrderModel

	query := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}).
		Where("status = ?", status)
	query = r.applyFilter(query, filter)

	if err := query.Preload("Items").Find(&orderModels).Error; err != nil {
		return nil, err
	}
	orders := make([]procurement.PurchaseOrder, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// FindByVendor finds purchase orders for a vendor
func (r *GormPurchaseOrderRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	var orderModels []models.PurchaseOrderModel

	query := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}).
		Where("vendor_id = ?", vendorID)
	query = r.applyFilter(query, filter)

	if err := query.Preload("Items").Find(&orderModels).Error; err != nil {
		return nil, err
	}
	orders := make([]procurement.PurchaseOrder, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// MaxNumericPONumber returns the highest assigned PO number as an integer.
// Returns 0 when no order has been numbered yet. Soft-deleted orders keep
// their numbers, so they stay in the max.
func (r *GormPurchaseOrderRepository) MaxNumericPONumber(ctx context.Context) (int, error) {
	var max int
	if err := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}).
		Unscoped().
		Where("po_number IS NOT NULL").
		Select("COALESCE(MAX(CAST(po_number AS BIGINT)), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

// ExistsPONumber checks whether a PO number is already taken
func (r *GormPurchaseOrderRepository) ExistsPONumber(ctx context.Context, poNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}).
		Unscoped().
		Where("po_number = ?", poNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a purchase order
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *procurement.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Convert to persistence model
		model := models.PurchaseOrderModelFromDomain(order)

		// Save the order without auto-saving associations
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}

		if order.ID != uuid.Nil {
			if err := r.saveItems(tx, order); err != nil {
				return err
			}
		}

		return nil
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormPurchaseOrderRepository) SaveWithLock(ctx context.Context, order *procurement.PurchaseOrder) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.updateWithVersionCheck(tx, order); err != nil {
			return err
		}
		return r.saveItems(tx, order)
	})
	return translateOrderSaveError(err)
}

// translateOrderSaveError maps a PO-number unique violation to the domain
// error the finalize retry loop watches for
func translateOrderSaveError(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err, "idx_purchase_order_number", "purchase_orders.po_number") {
		return shared.NewDomainError("PO_NUMBER_TAKEN", "PO number is already in use")
	}
	return err
}

// SaveWithLockAndEvents saves with optimistic locking and persists domain events atomically
// This implements the transactional outbox pattern - events are saved to the outbox table
// in the same transaction as the aggregate, ensuring guaranteed event delivery
func (r *GormPurchaseOrderRepository) SaveWithLockAndEvents(ctx context.Context, order *procurement.PurchaseOrder, events []shared.DomainEvent) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.updateWithVersionCheck(tx, order); err != nil {
			return err
		}
		if err := r.saveItems(tx, order); err != nil {
			return err
		}

		// Save events to outbox within the same transaction
		if r.outboxSaver != nil && len(events) > 0 {
			if err := r.outboxSaver.SaveEvents(ctx, tx, events...); err != nil {
				return fmt.Errorf("failed to save events to outbox: %w", err)
			}
		}

		return nil
	})
	return translateOrderSaveError(err)
}

// updateWithVersionCheck updates the order row guarded by its version column
func (r *GormPurchaseOrderRepository) updateWithVersionCheck(tx *gorm.DB, order *procurement.PurchaseOrder) error {
	var currentVersion int
	versionQuery := tx.Model(&models.PurchaseOrderModel{}).
		Where("id = ?", order.ID).
		Select("version").
		Scan(&currentVersion)
	if versionQuery.Error != nil {
		return versionQuery.Error
	}
	// Scan reports zero rows through RowsAffected, not ErrRecordNotFound
	if versionQuery.RowsAffected == 0 {
		return shared.ErrNotFound
	}

	if currentVersion != order.Version {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The order has been modified by another user")
	}

	order.Version++
	order.UpdatedAt = time.Now()

	// Draft orders have no number yet; stored as NULL so the unique index
	// only covers assigned numbers
	var poNumber *string
	if order.PONumber != "" {
		poNumber = &order.PONumber
	}

	result := tx.Model(&models.PurchaseOrderModel{}).
		Where("id = ? AND version = ?", order.ID, currentVersion).
		Updates(map[string]interface{}{
			"po_number":            poNumber,
			"vendor_id":            order.VendorID,
			"vendor_name":          order.VendorName,
			"vendor_address":       order.VendorAddress,
			"company_id":           order.CompanyID,
			"company_name":         order.CompanyName,
			"company_address":      order.CompanyAddress,
			"shipping_location_id": order.ShippingLocationID,
			"ship_to_name":         order.ShipToName,
			"ship_to_address":      order.ShipToAddress,
			"tax_rate":             order.TaxRate,
			"quote_number":         order.QuoteNumber,
			"notes":                order.Notes,
			"shipping_cost":        order.ShippingCost,
			"subtotal":             order.Subtotal,
			"tax_amount":           order.TaxAmount,
			"grand_total":          order.GrandTotal,
			"status":               order.Status,
			"finalized_at":         order.FinalizedAt,
			"completed_at":         order.CompletedAt,
			"cancelled_at":         order.CancelledAt,
			"cancel_reason":        order.CancelReason,
			"document_storage_key": order.DocumentStorageKey,
			"version":              order.Version,
			"updated_at":           order.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The order has been modified by another user")
	}

	return nil
}

// saveItems reconciles stored items with the aggregate state
func (r *GormPurchaseOrderRepository) saveItems(tx *gorm.DB, order *procurement.PurchaseOrder) error {
	currentItemIDs := make([]uuid.UUID, len(order.Items))
	for i, item := range order.Items {
		currentItemIDs[i] = item.ID
	}

	// Delete items not in the current list
	if len(currentItemIDs) > 0 {
		if err := tx.Where("purchase_order_id = ? AND id NOT IN ?", order.ID, currentItemIDs).
			Delete(&models.PlannedItemModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("purchase_order_id = ?", order.ID).
			Delete(&models.PlannedItemModel{}).Error; err != nil {
			return err
		}
	}

	// Save/update remaining items
	for i := range order.Items {
		order.Items[i].PurchaseOrderID = order.ID
		itemModel := models.PlannedItemModelFromDomain(&order.Items[i])
		if err := tx.Save(itemModel).Error; err != nil {
			return err
		}
	}

	return nil
}

// Delete deletes a purchase order (soft delete, items kept for the number history)
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PurchaseOrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts purchase orders with optional filters
func (r *GormPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts purchase orders grouped by status
func (r *GormPurchaseOrderRepository) CountByStatus(ctx context.Context) (map[procurement.PurchaseOrderStatus]int64, error) {
	var rows []struct {
		Status procurement.PurchaseOrderStatus
		Total  int64
	}
	if err := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}).
		Select("status, COUNT(*) as total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[procurement.PurchaseOrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// applyFilter applies filter options to the query
func (r *GormPurchaseOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering with whitelist validation to prevent SQL injection
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, PurchaseOrderSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			// Default ordering if invalid field
			query = query.Order("created_at DESC")
		}
	} else {
		// Default ordering
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPurchaseOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("po_number ILIKE ? OR vendor_name ILIKE ? OR quote_number ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "vendor_id":
			query = query.Where("vendor_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		case "min_total":
			if d, ok := value.(decimal.Decimal); ok {
				query = query.Where("grand_total >= ?", d)
			}
		case "max_total":
			if d, ok := value.(decimal.Decimal); ok {
				query = query.Where("grand_total <= ?", d)
			}
		}
	}

	return query
}

// Ensure GormPurchaseOrderRepository implements procurement.Repository
var _ procurement.Repository = (*GormPurchaseOrderRepository)(nil)

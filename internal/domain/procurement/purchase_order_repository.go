package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// Repository defines the purchase order repository interface
type Repository interface {
	// FindByID finds a purchase order by ID with its items
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByPONumber finds a purchase order by its assigned number
	FindByPONumber(ctx context.Context, poNumber string) (*PurchaseOrder, error)

	// FindAll finds purchase orders with pagination, filtering, and search
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)

	// FindByStatus finds purchase orders in the given status
	FindByStatus(ctx context.Context, status PurchaseOrderStatus, filter shared.Filter) ([]PurchaseOrder, error)

	// FindByVendor finds purchase orders for a vendor
	FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)

	// MaxNumericPONumber returns the highest assigned PO number as an integer,
	// 0 when no order has a number yet
	MaxNumericPONumber(ctx context.Context) (int, error)

	// ExistsPONumber checks whether a PO number is already taken
	ExistsPONumber(ctx context.Context, poNumber string) (bool, error)

	// Save saves a purchase order and its items
	Save(ctx context.Context, order *PurchaseOrder) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, order *PurchaseOrder) error

	// SaveWithLockAndEvents saves with optimistic locking and persists domain events atomically
	// Events are written to the outbox in the same transaction as the order,
	// guaranteeing delivery
	SaveWithLockAndEvents(ctx context.Context, order *PurchaseOrder, events []shared.DomainEvent) error

	// Delete soft deletes a purchase order
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts purchase orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus returns purchase order counts grouped by status
	CountByStatus(ctx context.Context) (map[PurchaseOrderStatus]int64, error)
}

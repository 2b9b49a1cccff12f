package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	// FindByID finds a vendor by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)

	// FindByName finds a vendor by its exact name
	FindByName(ctx context.Context, name string) (*Vendor, error)

	// FindAll finds all vendors matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Vendor, error)

	// FindActive finds all active vendors
	FindActive(ctx context.Context, filter shared.Filter) ([]Vendor, error)

	// FindByIDs finds multiple vendors by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Vendor, error)

	// Save creates or updates a vendor
	Save(ctx context.Context, vendor *Vendor) error

	// Delete deletes a vendor
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts vendors matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName checks if a vendor with the given name exists
	ExistsByName(ctx context.Context, name string) (bool, error)
}

package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// ShippingLocationRepository defines the interface for shipping location persistence
type ShippingLocationRepository interface {
	// FindByID finds a shipping location by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ShippingLocation, error)

	// FindByName finds a shipping location by its exact name
	FindByName(ctx context.Context, name string) (*ShippingLocation, error)

	// FindDefault finds the default shipping location, if one is set
	FindDefault(ctx context.Context) (*ShippingLocation, error)

	// FindAll finds all shipping locations matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]ShippingLocation, error)

	// Save creates or updates a shipping location
	Save(ctx context.Context, location *ShippingLocation) error

	// Delete deletes a shipping location
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts shipping locations matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName checks if a shipping location with the given name exists
	ExistsByName(ctx context.Context, name string) (bool, error)
}

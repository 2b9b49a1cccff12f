package partner

import (
	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for ShippingLocation
const AggregateTypeShippingLocation = "ShippingLocation"

// Event type constants for ShippingLocation
const (
	EventTypeShippingLocationCreated        = "ShippingLocationCreated"
	EventTypeShippingLocationUpdated        = "ShippingLocationUpdated"
	EventTypeShippingLocationTaxRateChanged = "ShippingLocationTaxRateChanged"
	EventTypeShippingLocationDeleted        = "ShippingLocationDeleted"
)

// ShippingLocationCreatedEvent is published when a new shipping location is created
type ShippingLocationCreatedEvent struct {
	shared.BaseDomainEvent
	LocationID uuid.UUID       `json:"location_id"`
	Name       string          `json:"name"`
	TaxRate    decimal.Decimal `json:"tax_rate"`
}

// NewShippingLocationCreatedEvent creates a new ShippingLocationCreatedEvent
func NewShippingLocationCreatedEvent(location *ShippingLocation) *ShippingLocationCreatedEvent {
	return &ShippingLocationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShippingLocationCreated, AggregateTypeShippingLocation, location.ID),
		LocationID:      location.ID,
		Name:            location.Name,
		TaxRate:         location.TaxRate,
	}
}

// ShippingLocationUpdatedEvent is published when a shipping location is updated
type ShippingLocationUpdatedEvent struct {
	shared.BaseDomainEvent
	LocationID uuid.UUID `json:"location_id"`
	Name       string    `json:"name"`
}

// NewShippingLocationUpdatedEvent creates a new ShippingLocationUpdatedEvent
func NewShippingLocationUpdatedEvent(location *ShippingLocation) *ShippingLocationUpdatedEvent {
	return &ShippingLocationUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShippingLocationUpdated, AggregateTypeShippingLocation, location.ID),
		LocationID:      location.ID,
		Name:            location.Name,
	}
}

// ShippingLocationTaxRateChangedEvent is published when a location's tax rate changes
type ShippingLocationTaxRateChangedEvent struct {
	shared.BaseDomainEvent
	LocationID uuid.UUID       `json:"location_id"`
	Name       string          `json:"name"`
	OldRate    decimal.Decimal `json:"old_rate"`
	NewRate    decimal.Decimal `json:"new_rate"`
}

// NewShippingLocationTaxRateChangedEvent creates a new ShippingLocationTaxRateChangedEvent
func NewShippingLocationTaxRateChangedEvent(location *ShippingLocation, oldRate, newRate decimal.Decimal) *ShippingLocationTaxRateChangedEvent {
	return &ShippingLocationTaxRateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShippingLocationTaxRateChanged, AggregateTypeShippingLocation, location.ID),
		LocationID:      location.ID,
		Name:            location.Name,
		OldRate:         oldRate,
		NewRate:         newRate,
	}
}

// ShippingLocationDeletedEvent is published when a shipping location is deleted
type ShippingLocationDeletedEvent struct {
	shared.BaseDomainEvent
	LocationID uuid.UUID `json:"location_id"`
	Name       string    `json:"name"`
}

// NewShippingLocationDeletedEvent creates a new ShippingLocationDeletedEvent
func NewShippingLocationDeletedEvent(location *ShippingLocation) *ShippingLocationDeletedEvent {
	return &ShippingLocationDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShippingLocationDeleted, AggregateTypeShippingLocation, location.ID),
		LocationID:      location.ID,
		Name:            location.Name,
	}
}

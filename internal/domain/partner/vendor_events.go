package partner

import (
	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// Aggregate type constant for Vendor
const AggregateTypeVendor = "Vendor"

// Event type constants for Vendor
const (
	EventTypeVendorCreated       = "VendorCreated"
	EventTypeVendorUpdated       = "VendorUpdated"
	EventTypeVendorStatusChanged = "VendorStatusChanged"
	EventTypeVendorDeleted       = "VendorDeleted"
)

// VendorCreatedEvent is published when a new vendor is created
type VendorCreatedEvent struct {
	shared.BaseDomainEvent
	VendorID uuid.UUID `json:"vendor_id"`
	Name     string    `json:"name"`
}

// NewVendorCreatedEvent creates a new VendorCreatedEvent
func NewVendorCreatedEvent(vendor *Vendor) *VendorCreatedEvent {
	return &VendorCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorCreated, AggregateTypeVendor, vendor.ID),
		VendorID:        vendor.ID,
		Name:            vendor.Name,
	}
}

// VendorUpdatedEvent is published when a vendor is updated
type VendorUpdatedEvent struct {
	shared.BaseDomainEvent
	VendorID      uuid.UUID `json:"vendor_id"`
	Name          string    `json:"name"`
	AccountNumber string    `json:"account_number,omitempty"`
	ContactName   string    `json:"contact_name,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
}

// NewVendorUpdatedEvent creates a new VendorUpdatedEvent
func NewVendorUpdatedEvent(vendor *Vendor) *VendorUpdatedEvent {
	return &VendorUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorUpdated, AggregateTypeVendor, vendor.ID),
		VendorID:        vendor.ID,
		Name:            vendor.Name,
		AccountNumber:   vendor.AccountNumber,
		ContactName:     vendor.ContactName,
		Phone:           vendor.Phone,
		Email:           vendor.Email,
	}
}

// VendorStatusChangedEvent is published when a vendor's status changes
type VendorStatusChangedEvent struct {
	shared.BaseDomainEvent
	VendorID  uuid.UUID    `json:"vendor_id"`
	Name      string       `json:"name"`
	OldStatus VendorStatus `json:"old_status"`
	NewStatus VendorStatus `json:"new_status"`
}

// NewVendorStatusChangedEvent creates a new VendorStatusChangedEvent
func NewVendorStatusChangedEvent(vendor *Vendor, oldStatus, newStatus VendorStatus) *VendorStatusChangedEvent {
	return &VendorStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorStatusChanged, AggregateTypeVendor, vendor.ID),
		VendorID:        vendor.ID,
		Name:            vendor.Name,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// VendorDeletedEvent is published when a vendor is deleted
type VendorDeletedEvent struct {
	shared.BaseDomainEvent
	VendorID uuid.UUID `json:"vendor_id"`
	Name     string    `json:"name"`
}

// NewVendorDeletedEvent creates a new VendorDeletedEvent
func NewVendorDeletedEvent(vendor *Vendor) *VendorDeletedEvent {
	return &VendorDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorDeleted, AggregateTypeVendor, vendor.ID),
		VendorID:        vendor.ID,
		Name:            vendor.Name,
	}
}

package partner

import (
	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// Aggregate type constant for Contact
const AggregateTypeContact = "Contact"

// Event type constants for Contact
const (
	EventTypeContactCreated = "ContactCreated"
	EventTypeContactDeleted = "ContactDeleted"
)

// ContactCreatedEvent is published when a new contact is created
type ContactCreatedEvent struct {
	shared.BaseDomainEvent
	ContactID uuid.UUID `json:"contact_id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email"`
}

// NewContactCreatedEvent creates a new ContactCreatedEvent
func NewContactCreatedEvent(contact *Contact) *ContactCreatedEvent {
	return &ContactCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContactCreated, AggregateTypeContact, contact.ID),
		ContactID:       contact.ID,
		Name:            contact.Name,
		Email:           contact.Email,
	}
}

// ContactDeletedEvent is published when a contact is deleted
type ContactDeletedEvent struct {
	shared.BaseDomainEvent
	ContactID uuid.UUID `json:"contact_id"`
	Email     string    `json:"email"`
}

// NewContactDeletedEvent creates a new ContactDeletedEvent
func NewContactDeletedEvent(contact *Contact) *ContactDeletedEvent {
	return &ContactDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContactDeleted, AggregateTypeContact, contact.ID),
		ContactID:       contact.ID,
		Email:           contact.Email,
	}
}

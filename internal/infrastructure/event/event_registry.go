package event

import (
	"github.com/opsdesk/backend/internal/domain/asset"
	"github.com/opsdesk/backend/internal/domain/document"
	"github.com/opsdesk/backend/internal/domain/identity"
	"github.com/opsdesk/backend/internal/domain/partner"
	"github.com/opsdesk/backend/internal/domain/procurement"
	"github.com/opsdesk/backend/internal/domain/project"
	"github.com/opsdesk/backend/internal/domain/schedule"
	"github.com/opsdesk/backend/internal/domain/ticket"
)

// RegisterAllEvents registers every domain event type with the serializer.
// The OutboxProcessor needs this to deserialize events read back from the
// outbox table; an unregistered event would dead-letter on first delivery.
func RegisterAllEvents(serializer *EventSerializer) {
	// Ticket events
	serializer.Register(ticket.EventTypeTicketCreated, &ticket.TicketCreatedEvent{})
	serializer.Register(ticket.EventTypeTicketAssigned, &ticket.TicketAssignedEvent{})
	serializer.Register(ticket.EventTypeTicketClosed, &ticket.TicketClosedEvent{})
	serializer.Register(ticket.EventTypeTicketReopened, &ticket.TicketReopenedEvent{})
	serializer.Register(ticket.EventTypeTicketSnoozed, &ticket.TicketSnoozedEvent{})
	serializer.Register(ticket.EventTypeTicketWoke, &ticket.TicketWokeEvent{})
	serializer.Register(ticket.EventTypeTicketNoteAdded, &ticket.TicketNoteAddedEvent{})
	serializer.Register(ticket.EventTypeTicketDeleted, &ticket.TicketDeletedEvent{})

	// Purchase order events
	serializer.Register(procurement.EventTypePurchaseOrderCreated, &procurement.PurchaseOrderCreatedEvent{})
	serializer.Register(procurement.EventTypePurchaseOrderFinalized, &procurement.PurchaseOrderFinalizedEvent{})
	serializer.Register(procurement.EventTypePurchaseOrderItemReceived, &procurement.PurchaseOrderItemReceivedEvent{})
	serializer.Register(procurement.EventTypePurchaseOrderCompleted, &procurement.PurchaseOrderCompletedEvent{})
	serializer.Register(procurement.EventTypePurchaseOrderCancelled, &procurement.PurchaseOrderCancelledEvent{})
	serializer.Register(procurement.EventTypePurchaseOrderDeleted, &procurement.PurchaseOrderDeletedEvent{})

	// Partner events: vendors, contacts, the company and ship-to locations
	serializer.Register(partner.EventTypeVendorCreated, &partner.VendorCreatedEvent{})
	serializer.Register(partner.EventTypeVendorUpdated, &partner.VendorUpdatedEvent{})
	serializer.Register(partner.EventTypeVendorStatusChanged, &partner.VendorStatusChangedEvent{})
	serializer.Register(partner.EventTypeVendorDeleted, &partner.VendorDeletedEvent{})
	serializer.Register(partner.EventTypeContactCreated, &partner.ContactCreatedEvent{})
	serializer.Register(partner.EventTypeContactDeleted, &partner.ContactDeletedEvent{})
	serializer.Register(partner.EventTypeCompanyCreated, &partner.CompanyCreatedEvent{})
	serializer.Register(partner.EventTypeCompanyUpdated, &partner.CompanyUpdatedEvent{})
	serializer.Register(partner.EventTypeShippingLocationCreated, &partner.ShippingLocationCreatedEvent{})
	serializer.Register(partner.EventTypeShippingLocationUpdated, &partner.ShippingLocationUpdatedEvent{})
	serializer.Register(partner.EventTypeShippingLocationTaxRateChanged, &partner.ShippingLocationTaxRateChangedEvent{})
	serializer.Register(partner.EventTypeShippingLocationDeleted, &partner.ShippingLocationDeletedEvent{})

	// User events
	serializer.Register(identity.EventTypeUserCreated, &identity.UserCreatedEvent{})
	serializer.Register(identity.EventTypeUserPasswordChanged, &identity.UserPasswordChangedEvent{})
	serializer.Register(identity.EventTypeUserStatusChanged, &identity.UserStatusChangedEvent{})
	serializer.Register(identity.EventTypeUserDeleted, &identity.UserDeletedEvent{})

	// Asset events
	serializer.Register(asset.EventTypeAssetCreated, &asset.AssetCreatedEvent{})
	serializer.Register(asset.EventTypeAssetUpdated, &asset.AssetUpdatedEvent{})
	serializer.Register(asset.EventTypeAssetCheckedOut, &asset.AssetCheckedOutEvent{})
	serializer.Register(asset.EventTypeAssetCheckedIn, &asset.AssetCheckedInEvent{})
	serializer.Register(asset.EventTypeAssetRetired, &asset.AssetRetiredEvent{})
	serializer.Register(asset.EventTypeAssetDeleted, &asset.AssetDeletedEvent{})

	// Document events
	serializer.Register(document.EventTypeDocumentCreated, &document.DocumentCreatedEvent{})
	serializer.Register(document.EventTypeDocumentUpdated, &document.DocumentUpdatedEvent{})
	serializer.Register(document.EventTypeDocumentDeleted, &document.DocumentDeletedEvent{})

	// Project events
	serializer.Register(project.EventTypeProjectCreated, &project.ProjectCreatedEvent{})
	serializer.Register(project.EventTypeProjectUpdated, &project.ProjectUpdatedEvent{})
	serializer.Register(project.EventTypeProjectArchived, &project.ProjectArchivedEvent{})
	serializer.Register(project.EventTypeProjectDeleted, &project.ProjectDeletedEvent{})

	// Scheduled ticket events
	serializer.Register(schedule.EventTypeScheduledTicketCreated, &schedule.ScheduledTicketCreatedEvent{})
	serializer.Register(schedule.EventTypeScheduledTicketFired, &schedule.ScheduledTicketFiredEvent{})
	serializer.Register(schedule.EventTypeScheduledTicketDeleted, &schedule.ScheduledTicketDeletedEvent{})
}

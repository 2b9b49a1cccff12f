package schedule

import (
	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// AggregateTypeScheduledTicket is the aggregate type for scheduled tickets
const AggregateTypeScheduledTicket = "ScheduledTicket"

// Event type constants
const (
	EventTypeScheduledTicketCreated = "ScheduledTicketCreated"
	EventTypeScheduledTicketFired   = "ScheduledTicketFired"
	EventTypeScheduledTicketDeleted = "ScheduledTicketDeleted"
)

// ScheduledTicketCreatedEvent is published when a scheduled ticket is created
type ScheduledTicketCreatedEvent struct {
	shared.BaseDomainEvent
	ScheduledTicketID uuid.UUID `json:"scheduled_ticket_id"`
	Name              string    `json:"name"`
	Cadence           Cadence   `json:"cadence"`
}

// NewScheduledTicketCreatedEvent creates a new scheduled ticket created event
func NewScheduledTicketCreatedEvent(st *ScheduledTicket) *ScheduledTicketCreatedEvent {
	return &ScheduledTicketCreatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeScheduledTicketCreated, AggregateTypeScheduledTicket, st.ID),
		ScheduledTicketID: st.ID,
		Name:              st.Name,
		Cadence:           st.Cadence,
	}
}

// ScheduledTicketFiredEvent is published when a schedule opens a ticket
type ScheduledTicketFiredEvent struct {
	shared.BaseDomainEvent
	ScheduledTicketID uuid.UUID `json:"scheduled_ticket_id"`
	TicketID          uuid.UUID `json:"ticket_id"`
}

// NewScheduledTicketFiredEvent creates a new scheduled ticket fired event
func NewScheduledTicketFiredEvent(st *ScheduledTicket, ticketID uuid.UUID) *ScheduledTicketFiredEvent {
	return &ScheduledTicketFiredEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeScheduledTicketFired, AggregateTypeScheduledTicket, st.ID),
		ScheduledTicketID: st.ID,
		TicketID:          ticketID,
	}
}

// ScheduledTicketDeletedEvent is published when a scheduled ticket is deleted
type ScheduledTicketDeletedEvent struct {
	shared.BaseDomainEvent
	ScheduledTicketID uuid.UUID `json:"scheduled_ticket_id"`
	Name              string    `json:"name"`
}

// NewScheduledTicketDeletedEvent creates a new scheduled ticket deleted event
func NewScheduledTicketDeletedEvent(st *ScheduledTicket) *ScheduledTicketDeletedEvent {
	return &ScheduledTicketDeletedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeScheduledTicketDeleted, AggregateTypeScheduledTicket, st.ID),
		ScheduledTicketID: st.ID,
		Name:              st.Name,
	}
}

package ticket

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// AggregateTypeTicket is the aggregate type for tickets
const AggregateTypeTicket = "Ticket"

// Event type constants
const (
	EventTypeTicketCreated   = "TicketCreated"
	EventTypeTicketAssigned  = "TicketAssigned"
	EventTypeTicketClosed    = "TicketClosed"
	EventTypeTicketReopened  = "TicketReopened"
	EventTypeTicketSnoozed   = "TicketSnoozed"
	EventTypeTicketWoke      = "TicketWoke"
	EventTypeTicketNoteAdded = "TicketNoteAdded"
	EventTypeTicketDeleted   = "TicketDeleted"
)

// TicketCreatedEvent is published when a ticket is created
// Notification handlers fan mailbox and intake tickets out to subscribers
type TicketCreatedEvent struct {
	shared.BaseDomainEvent
	TicketID           uuid.UUID    `json:"ticket_id"`
	Number             int          `json:"number"`
	Subject            string       `json:"subject"`
	Source             TicketSource `json:"source"`
	RequesterContactID *uuid.UUID   `json:"requester_contact_id,omitempty"`
	AssigneeID         *uuid.UUID   `json:"assignee_id,omitempty"`
}

// NewTicketCreatedEvent creates a new ticket created event
func NewTicketCreatedEvent(t *Ticket) *TicketCreatedEvent {
	return &TicketCreatedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeTicketCreated, AggregateTypeTicket, t.ID),
		TicketID:           t.ID,
		Number:             t.Number,
		Subject:            t.Subject,
		Source:             t.Source,
		RequesterContactID: t.RequesterContactID,
		AssigneeID:         t.AssigneeID,
	}
}

// TicketAssignedEvent is published when a ticket is handed to a user
type TicketAssignedEvent struct {
	shared.BaseDomainEvent
	TicketID   uuid.UUID `json:"ticket_id"`
	Number     int       `json:"number"`
	Subject    string    `json:"subject"`
	AssigneeID uuid.UUID `json:"assignee_id"`
}

// NewTicketAssignedEvent creates a new ticket assigned event
func NewTicketAssignedEvent(t *Ticket, assigneeID uuid.UUID) *TicketAssignedEvent {
	return &TicketAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTicketAssigned, AggregateTypeTicket, t.ID),
		TicketID:        t.ID,
		Number:          t.Number,
		Subject:         t.Subject,
		AssigneeID:      assigneeID,
	}
}

// TicketClosedEvent is published when a ticket is closed
type TicketClosedEvent struct {
	shared.BaseDomainEvent
	TicketID uuid.UUID `json:"ticket_id"`
	Number   int       `json:"number"`
}

// NewTicketClosedEvent creates a new ticket closed event
func NewTicketClosedEvent(t *Ticket) *TicketClosedEvent {
	return &TicketClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTicketClosed, AggregateTypeTicket, t.ID),
		TicketID:        t.ID,
		Number:          t.Number,
	}
}

// TicketReopenedEvent is published when a closed ticket comes back
type TicketReopenedEvent struct {
	shared.BaseDomainEvent
	TicketID uuid.UUID `json:"ticket_id"`
	Number   int       `json:"number"`
}

// NewTicketReopenedEvent creates a new ticket reopened event
func NewTicketReopenedEvent(t *Ticket) *TicketReopenedEvent {
	return &TicketReopenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTicketReopened, AggregateTypeTicket, t.ID),
		TicketID:        t.ID,
		Number:          t.Number,
	}
}

// TicketSnoozedEvent is published when a ticket is parked
type TicketSnoozedEvent struct {
	shared.BaseDomainEvent
	TicketID uuid.UUID `json:"ticket_id"`
	Number   int       `json:"number"`
	Until    time.Time `json:"until"`
}

// NewTicketSnoozedEvent creates a new ticket snoozed event
func NewTicketSnoozedEvent(t *Ticket, until time.Time) *TicketSnoozedEvent {
	return &TicketSnoozedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTicketSnoozed, AggregateTypeTicket, t.ID),
		TicketID:        t.ID,
		Number:          t.Number,
		Until:           until,
	}
}

// TicketWokeEvent is published when a snooze expires or is cleared
// The assignee is notified that the ticket is active again
type TicketWokeEvent struct {
	shared.BaseDomainEvent
	TicketID   uuid.UUID  `json:"ticket_id"`
	Number     int        `json:"number"`
	Subject    string     `json:"subject"`
	AssigneeID *uuid.UUID `json:"assignee_id,omitempty"`
}

// NewTicketWokeEvent creates a new ticket woke event
func NewTicketWokeEvent(t *Ticket) *TicketWokeEvent {
	return &TicketWokeEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTicketWoke, AggregateTypeTicket, t.ID),
		TicketID:        t.ID,
		Number:          t.Number,
		Subject:         t.Subject,
		AssigneeID:      t.AssigneeID,
	}
}

// TicketNoteAddedEvent is published when a note lands on a ticket
// Private and system notes are excluded from requester notifications
type TicketNoteAddedEvent struct {
	shared.BaseDomainEvent
	TicketID           uuid.UUID  `json:"ticket_id"`
	Number             int        `json:"number"`
	NoteID             uuid.UUID  `json:"note_id"`
	AuthorID           *uuid.UUID `json:"author_id,omitempty"`
	Private            bool       `json:"private"`
	RequesterContactID *uuid.UUID `json:"requester_contact_id,omitempty"`
}

// NewTicketNoteAddedEvent creates a new note added event
func NewTicketNoteAddedEvent(t *Ticket, note *TicketNote) *TicketNoteAddedEvent {
	return &TicketNoteAddedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeTicketNoteAdded, AggregateTypeTicket, t.ID),
		TicketID:           t.ID,
		Number:             t.Number,
		NoteID:             note.ID,
		AuthorID:           note.AuthorID,
		Private:            note.Private,
		RequesterContactID: t.RequesterContactID,
	}
}

// TicketDeletedEvent is published when a ticket is soft deleted
type TicketDeletedEvent struct {
	shared.BaseDomainEvent
	TicketID uuid.UUID `json:"ticket_id"`
	Number   int       `json:"number"`
}

// NewTicketDeletedEvent creates a new ticket deleted event
func NewTicketDeletedEvent(t *Ticket) *TicketDeletedEvent {
	return &TicketDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTicketDeleted, AggregateTypeTicket, t.ID),
		TicketID:        t.ID,
		Number:          t.Number,
	}
}

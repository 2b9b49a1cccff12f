package ticket

import (
	"strings"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// TicketNote is one entry in a ticket's timeline
// Private notes are hidden from the requester; system notes record
// automatic transitions and carry no author
type TicketNote struct {
	shared.BaseEntity
	TicketID uuid.UUID
	AuthorID *uuid.UUID // Nil for system notes and inbound mail
	Body     string     // Sanitized HTML
	Private  bool
	System   bool
}

// NewNote creates a note written by a user or an inbound reply
func NewNote(ticketID uuid.UUID, authorID *uuid.UUID, body string, private bool) (*TicketNote, error) {
	if ticketID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TICKET", "Ticket ID cannot be empty")
	}
	if strings.TrimSpace(body) == "" {
		return nil, shared.NewDomainError("INVALID_NOTE", "Note body cannot be empty")
	}

	return &TicketNote{
		BaseEntity: shared.NewBaseEntity(),
		TicketID:   ticketID,
		AuthorID:   authorID,
		Body:       body,
		Private:    private,
	}, nil
}

// NewSystemNote creates an automatic timeline entry
func NewSystemNote(ticketID uuid.UUID, body string) *TicketNote {
	return &TicketNote{
		BaseEntity: shared.NewBaseEntity(),
		TicketID:   ticketID,
		Body:       body,
		System:     true,
	}
}

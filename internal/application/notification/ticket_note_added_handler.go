package notification

import (
	"context"
	"errors"
	"fmt"
	"html"

	"go.uber.org/zap"

	"github.com/opsdesk/backend/internal/domain/partner"
	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/opsdesk/backend/internal/domain/ticket"
	"github.com/opsdesk/backend/internal/infrastructure/sanitize"
)

// TicketNoteAddedHandler handles TicketNoteAddedEvent and mails public staff
// replies to the requester contact
type TicketNoteAddedHandler struct {
	ticketRepo  ticket.Repository
	contactRepo partner.ContactRepository
	sanitizer   *sanitize.Sanitizer
	mailer      Mailer
	logger      *zap.Logger
}

// NewTicketNoteAddedHandler creates a new handler for note added events
func NewTicketNoteAddedHandler(
	ticketRepo ticket.Repository,
	contactRepo partner.ContactRepository,
	sanitizer *sanitize.Sanitizer,
	mailer Mailer,
	logger *zap.Logger,
) *TicketNoteAddedHandler {
	return &TicketNoteAddedHandler{
		ticketRepo:  ticketRepo,
		contactRepo: contactRepo,
		sanitizer:   sanitizer,
		mailer:      mailer,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *TicketNoteAddedHandler) EventTypes() []string {
	return []string{ticket.EventTypeTicketNoteAdded}
}

// Handle processes a TicketNoteAddedEvent
func (h *TicketNoteAddedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	noteEvent, ok := event.(*ticket.TicketNoteAddedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", ticket.EventTypeTicketNoteAdded),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			ticket.EventTypeTicketNoteAdded, event.EventType())
	}

	// Private notes stay internal
	if noteEvent.Private {
		return nil
	}
	// Notes without an author are inbound replies and system notes, the
	// requester wrote or caused those themselves
	if noteEvent.AuthorID == nil {
		return nil
	}
	// Nobody to notify without a requester on file
	if noteEvent.RequesterContactID == nil {
		return nil
	}

	t, err := h.ticketRepo.FindByID(ctx, noteEvent.TicketID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.logger.Warn("ticket no longer exists, skipping note notification",
				zap.String("ticket_id", noteEvent.TicketID.String()),
			)
			return nil
		}
		return fmt.Errorf("failed to load ticket: %w", err)
	}

	note := t.GetNote(noteEvent.NoteID)
	if note == nil {
		h.logger.Warn("note no longer exists, skipping notification",
			zap.Int("ticket_number", t.Number),
			zap.String("note_id", noteEvent.NoteID.String()),
		)
		return nil
	}

	contact, err := h.contactRepo.FindByID(ctx, *noteEvent.RequesterContactID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.logger.Warn("requester contact no longer exists, skipping note notification",
				zap.Int("ticket_number", t.Number),
				zap.String("contact_id", noteEvent.RequesterContactID.String()),
			)
			return nil
		}
		return fmt.Errorf("failed to load requester contact: %w", err)
	}
	if contact.Email == "" {
		return nil
	}

	// The subject keeps the ticket reference so a reply threads back onto
	// the ticket through the mailbox poller
	subject := fmt.Sprintf("Re: %s: %s", t.Reference(), t.Subject)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>There is a new reply on %s: %s</p>
			<hr>
			%s
			<hr>
			<p>Reply to this email to add to the ticket.</p>
		</body>
		</html>
	`, t.Reference(), html.EscapeString(t.Subject), note.Body)
	plainBody := fmt.Sprintf(`
There is a new reply on %s: %s

%s

Reply to this email to add to the ticket.
	`, t.Reference(), t.Subject, h.sanitizer.PlainText(note.Body))

	if err := h.mailer.Send(ctx, contact.Email, subject, htmlBody, plainBody); err != nil {
		h.logger.Error("failed to send note notification",
			zap.String("to", contact.Email),
			zap.Int("ticket_number", t.Number),
			zap.Error(err),
		)
		// Don't return error - notification failure shouldn't fail the event handling
		return nil
	}

	h.logger.Info("note notification sent",
		zap.String("to", contact.Email),
		zap.Int("ticket_number", t.Number),
	)

	return nil
}

// Ensure TicketNoteAddedHandler implements shared.EventHandler
var _ shared.EventHandler = (*TicketNoteAddedHandler)(nil)

package notification

import (
	"context"
	"fmt"
	"html"

	"go.uber.org/zap"

	"github.com/opsdesk/backend/internal/domain/identity"
	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/opsdesk/backend/internal/domain/ticket"
)

// TicketCreatedHandler handles TicketCreatedEvent and mails the intake
// subscribers when a ticket arrives from the mailbox or the scanner folder
type TicketCreatedHandler struct {
	userRepo identity.UserRepository
	mailer   Mailer
	logger   *zap.Logger
}

// NewTicketCreatedHandler creates a new handler for ticket created events
func NewTicketCreatedHandler(
	userRepo identity.UserRepository,
	mailer Mailer,
	logger *zap.Logger,
) *TicketCreatedHandler {
	return &TicketCreatedHandler{
		userRepo: userRepo,
		mailer:   mailer,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *TicketCreatedHandler) EventTypes() []string {
	return []string{ticket.EventTypeTicketCreated}
}

// Handle processes a TicketCreatedEvent
func (h *TicketCreatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	createdEvent, ok := event.(*ticket.TicketCreatedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", ticket.EventTypeTicketCreated),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			ticket.EventTypeTicketCreated, event.EventType())
	}

	// Manually created and recurring tickets are already in front of whoever
	// made them, only unattended intake channels notify
	if createdEvent.Source != ticket.TicketSourceEmail && createdEvent.Source != ticket.TicketSourceIntake {
		return nil
	}

	recipients, err := h.userRepo.FindIntakeRecipients(ctx)
	if err != nil {
		h.logger.Error("failed to load intake recipients",
			zap.Int("ticket_number", createdEvent.Number),
			zap.Error(err),
		)
		return fmt.Errorf("failed to load intake recipients: %w", err)
	}
	if len(recipients) == 0 {
		h.logger.Info("no intake recipients configured, skipping notification",
			zap.Int("ticket_number", createdEvent.Number),
		)
		return nil
	}

	subject := fmt.Sprintf("New ticket #%d: %s", createdEvent.Number, createdEvent.Subject)
	htmlBody, plainBody := ticketCreatedBodies(createdEvent)

	sent := 0
	for _, user := range recipients {
		if err := h.mailer.Send(ctx, user.Email, subject, htmlBody, plainBody); err != nil {
			h.logger.Error("failed to send intake notification",
				zap.String("to", user.Email),
				zap.Int("ticket_number", createdEvent.Number),
				zap.Error(err),
			)
			// Don't return error - notification failure shouldn't fail the event handling
			continue
		}
		sent++
	}

	h.logger.Info("intake notifications sent",
		zap.Int("ticket_number", createdEvent.Number),
		zap.Int("recipients", sent),
	)

	return nil
}

// ticketCreatedBodies builds the HTML and plain text bodies for an intake
// notification
func ticketCreatedBodies(e *ticket.TicketCreatedEvent) (string, string) {
	origin := "the shared mailbox"
	if e.Source == ticket.TicketSourceIntake {
		origin = "the scanner intake folder"
	}

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Ticket #%d</h2>
			<p><strong>%s</strong></p>
			<p>A new ticket arrived from %s.</p>
		</body>
		</html>
	`, e.Number, html.EscapeString(e.Subject), origin)

	plainBody := fmt.Sprintf(`
Ticket #%d: %s

A new ticket arrived from %s.
	`, e.Number, e.Subject, origin)

	return htmlBody, plainBody
}

// Ensure TicketCreatedHandler implements shared.EventHandler
var _ shared.EventHandler = (*TicketCreatedHandler)(nil)

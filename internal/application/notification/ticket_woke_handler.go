package notification

import (
	"context"
	"errors"
	"fmt"
	"html"

	"go.uber.org/zap"

	"github.com/opsdesk/backend/internal/domain/identity"
	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/opsdesk/backend/internal/domain/ticket"
)

// TicketWokeHandler handles TicketWokeEvent and mails the assignee that a
// snoozed ticket is active again
type TicketWokeHandler struct {
	userRepo identity.UserRepository
	mailer   Mailer
	logger   *zap.Logger
}

// NewTicketWokeHandler creates a new handler for ticket woke events
func NewTicketWokeHandler(
	userRepo identity.UserRepository,
	mailer Mailer,
	logger *zap.Logger,
) *TicketWokeHandler {
	return &TicketWokeHandler{
		userRepo: userRepo,
		mailer:   mailer,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *TicketWokeHandler) EventTypes() []string {
	return []string{ticket.EventTypeTicketWoke}
}

// Handle processes a TicketWokeEvent
func (h *TicketWokeHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	wokeEvent, ok := event.(*ticket.TicketWokeEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", ticket.EventTypeTicketWoke),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			ticket.EventTypeTicketWoke, event.EventType())
	}

	// Unassigned tickets wake silently
	if wokeEvent.AssigneeID == nil {
		return nil
	}

	user, err := h.userRepo.FindByID(ctx, *wokeEvent.AssigneeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.logger.Warn("assignee no longer exists, skipping wake notification",
				zap.Int("ticket_number", wokeEvent.Number),
				zap.String("assignee_id", wokeEvent.AssigneeID.String()),
			)
			return nil
		}
		return fmt.Errorf("failed to load assignee: %w", err)
	}
	if !user.IsActive() {
		h.logger.Info("assignee is deactivated, skipping wake notification",
			zap.Int("ticket_number", wokeEvent.Number),
			zap.String("assignee_id", wokeEvent.AssigneeID.String()),
		)
		return nil
	}

	subject := fmt.Sprintf("Ticket #%d is back: %s", wokeEvent.Number, wokeEvent.Subject)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Ticket #%d</h2>
			<p><strong>%s</strong></p>
			<p>The snooze on this ticket has ended and it is open again.</p>
		</body>
		</html>
	`, wokeEvent.Number, html.EscapeString(wokeEvent.Subject))
	plainBody := fmt.Sprintf(`
Ticket #%d: %s

The snooze on this ticket has ended and it is open again.
	`, wokeEvent.Number, wokeEvent.Subject)

	if err := h.mailer.Send(ctx, user.Email, subject, htmlBody, plainBody); err != nil {
		h.logger.Error("failed to send wake notification",
			zap.String("to", user.Email),
			zap.Int("ticket_number", wokeEvent.Number),
			zap.Error(err),
		)
		// Don't return error - notification failure shouldn't fail the event handling
		return nil
	}

	h.logger.Info("wake notification sent",
		zap.String("to", user.Email),
		zap.Int("ticket_number", wokeEvent.Number),
	)

	return nil
}

// Ensure TicketWokeHandler implements shared.EventHandler
var _ shared.EventHandler = (*TicketWokeHandler)(nil)

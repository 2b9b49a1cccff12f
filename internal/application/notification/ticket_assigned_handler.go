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

// TicketAssignedHandler handles TicketAssignedEvent and mails the assignee
type TicketAssignedHandler struct {
	userRepo identity.UserRepository
	mailer   Mailer
	logger   *zap.Logger
}

// NewTicketAssignedHandler creates a new handler for ticket assigned events
func NewTicketAssignedHandler(
	userRepo identity.UserRepository,
	mailer Mailer,
	logger *zap.Logger,
) *TicketAssignedHandler {
	return &TicketAssignedHandler{
		userRepo: userRepo,
		mailer:   mailer,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *TicketAssignedHandler) EventTypes() []string {
	return []string{ticket.EventTypeTicketAssigned}
}

// Handle processes a TicketAssignedEvent
func (h *TicketAssignedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	assignedEvent, ok := event.(*ticket.TicketAssignedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", ticket.EventTypeTicketAssigned),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			ticket.EventTypeTicketAssigned, event.EventType())
	}

	user, err := h.userRepo.FindByID(ctx, assignedEvent.AssigneeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.logger.Warn("assignee no longer exists, skipping notification",
				zap.Int("ticket_number", assignedEvent.Number),
				zap.String("assignee_id", assignedEvent.AssigneeID.String()),
			)
			return nil
		}
		return fmt.Errorf("failed to load assignee: %w", err)
	}
	if !user.IsActive() {
		h.logger.Info("assignee is deactivated, skipping notification",
			zap.Int("ticket_number", assignedEvent.Number),
			zap.String("assignee_id", assignedEvent.AssigneeID.String()),
		)
		return nil
	}

	subject := fmt.Sprintf("Ticket #%d assigned to you: %s", assignedEvent.Number, assignedEvent.Subject)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Ticket #%d</h2>
			<p><strong>%s</strong></p>
			<p>This ticket has been assigned to you.</p>
		</body>
		</html>
	`, assignedEvent.Number, html.EscapeString(assignedEvent.Subject))
	plainBody := fmt.Sprintf(`
Ticket #%d: %s

This ticket has been assigned to you.
	`, assignedEvent.Number, assignedEvent.Subject)

	if err := h.mailer.Send(ctx, user.Email, subject, htmlBody, plainBody); err != nil {
		h.logger.Error("failed to send assignment notification",
			zap.String("to", user.Email),
			zap.Int("ticket_number", assignedEvent.Number),
			zap.Error(err),
		)
		// Don't return error - notification failure shouldn't fail the event handling
		return nil
	}

	h.logger.Info("assignment notification sent",
		zap.String("to", user.Email),
		zap.Int("ticket_number", assignedEvent.Number),
	)

	return nil
}

// Ensure TicketAssignedHandler implements shared.EventHandler
var _ shared.EventHandler = (*TicketAssignedHandler)(nil)

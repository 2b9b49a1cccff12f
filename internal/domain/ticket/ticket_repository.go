package ticket

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// Repository defines the ticket repository interface
type Repository interface {
	// FindByID finds a ticket by ID with its notes, tasks, and attachments
	FindByID(ctx context.Context, id uuid.UUID) (*Ticket, error)

	// FindByNumber finds a ticket by its human-facing number
	FindByNumber(ctx context.Context, number int) (*Ticket, error)

	// FindByExternalMessageID finds the ticket ingested from a mailbox message
	// Returns nil without error when no ticket has the ID
	FindByExternalMessageID(ctx context.Context, messageID string) (*Ticket, error)

	// FindAll finds tickets with pagination, filtering, and search
	FindAll(ctx context.Context, filter shared.Filter) ([]Ticket, error)

	// FindByStatus finds tickets in the given status
	FindByStatus(ctx context.Context, status TicketStatus, filter shared.Filter) ([]Ticket, error)

	// FindByAssignee finds tickets assigned to a user
	FindByAssignee(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Ticket, error)

	// FindByProject finds a project's tickets ordered by their position
	FindByProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]Ticket, error)

	// FindSnoozedDue finds snoozed tickets whose wake time has passed
	FindSnoozedDue(ctx context.Context, now time.Time) ([]Ticket, error)

	// MaxNumber returns the highest ticket number in use, 0 when none exist
	MaxNumber(ctx context.Context) (int, error)

	// MaxProjectPosition returns the highest position within a project
	MaxProjectPosition(ctx context.Context, projectID uuid.UUID) (int, error)

	// Save saves a ticket and its notes, tasks, and attachments
	Save(ctx context.Context, t *Ticket) error

	// SaveWithEvents saves a new ticket and writes its domain events to the
	// outbox in the same transaction
	// Used on creation, where no version check applies yet
	SaveWithEvents(ctx context.Context, t *Ticket, events []shared.DomainEvent) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, t *Ticket) error

	// SaveWithLockAndEvents saves with optimistic locking and persists domain events atomically
	// Events are written to the outbox in the same transaction as the ticket,
	// guaranteeing delivery
	SaveWithLockAndEvents(ctx context.Context, t *Ticket, events []shared.DomainEvent) error

	// Delete soft deletes a ticket
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts tickets matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus returns ticket counts grouped by status
	CountByStatus(ctx context.Context) (map[TicketStatus]int64, error)
}

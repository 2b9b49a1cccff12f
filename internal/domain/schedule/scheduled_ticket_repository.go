package schedule

import (
	"context"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// Repository defines the scheduled ticket repository interface
type Repository interface {
	// FindByID finds a scheduled ticket by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ScheduledTicket, error)

	// FindAll finds all scheduled tickets with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]ScheduledTicket, error)

	// FindActive finds all schedules that are not paused
	FindActive(ctx context.Context) ([]ScheduledTicket, error)

	// Save saves a scheduled ticket
	Save(ctx context.Context, st *ScheduledTicket) error

	// Delete deletes a scheduled ticket
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total number of scheduled tickets
	Count(ctx context.Context) (int64, error)
}

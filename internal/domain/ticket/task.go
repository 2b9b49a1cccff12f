package ticket

import (
	"strings"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// TicketTask is a checklist item on a ticket
// A ticket cannot close while any of its tasks are not done
type TicketTask struct {
	shared.BaseEntity
	TicketID uuid.UUID
	Label    string
	Done     bool
	Position int
}

// NewTask creates a checklist task
func NewTask(ticketID uuid.UUID, label string, position int) (*TicketTask, error) {
	if ticketID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TICKET", "Ticket ID cannot be empty")
	}
	if err := validateTaskLabel(label); err != nil {
		return nil, err
	}

	return &TicketTask{
		BaseEntity: shared.NewBaseEntity(),
		TicketID:   ticketID,
		Label:      strings.TrimSpace(label),
		Position:   position,
	}, nil
}

// Relabel changes the task text
func (task *TicketTask) Relabel(label string) error {
	if err := validateTaskLabel(label); err != nil {
		return err
	}

	task.Label = strings.TrimSpace(label)
	return nil
}

// SetDone checks or unchecks the task
func (task *TicketTask) SetDone(done bool) {
	task.Done = done
}

func validateTaskLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return shared.NewDomainError("INVALID_TASK", "Task label cannot be empty")
	}
	if len(label) > 500 {
		return shared.NewDomainError("INVALID_TASK", "Task label cannot exceed 500 characters")
	}
	return nil
}

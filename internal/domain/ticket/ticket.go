package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// TicketStatus represents the status of a ticket
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusOnHold     TicketStatus = "ON_HOLD"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// IsValid checks if the status is a valid TicketStatus
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusOnHold, TicketStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of TicketStatus
func (s TicketStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
// The three working states move freely among themselves; closed tickets
// reopen only into IN_PROGRESS
func (s TicketStatus) CanTransitionTo(target TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusOnHold:
		return target != s && target.IsValid()
	case TicketStatusClosed:
		return target == TicketStatusInProgress
	}
	return false
}

// TicketPriority represents how urgent a ticket is
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityNormal TicketPriority = "NORMAL"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// IsValid checks if the priority is a valid TicketPriority
func (p TicketPriority) IsValid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityNormal, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// String returns the string representation of TicketPriority
func (p TicketPriority) String() string {
	return string(p)
}

// TicketSource records how a ticket entered the system
type TicketSource string

const (
	// TicketSourceManual means a staff member typed it in
	TicketSourceManual TicketSource = "MANUAL"
	// TicketSourceEmail means the mailbox poller created it
	TicketSourceEmail TicketSource = "EMAIL"
	// TicketSourceRecurring means a scheduled ticket fired
	TicketSourceRecurring TicketSource = "RECURRING"
	// TicketSourceIntake means the scanner drop folder produced it
	TicketSourceIntake TicketSource = "INTAKE"
)

// IsValid checks if the source is a valid TicketSource
func (s TicketSource) IsValid() bool {
	switch s {
	case TicketSourceManual, TicketSourceEmail, TicketSourceRecurring, TicketSourceIntake:
		return true
	}
	return false
}

// Ticket represents a helpdesk ticket aggregate root
// It owns its notes, checklist tasks, and attachments
type Ticket struct {
	shared.AuditedAggregateRoot
	Number             int    // Sequential human-facing number, unique
	Subject            string
	Body               string // Sanitized HTML
	Status             TicketStatus
	Priority           TicketPriority
	Source             TicketSource
	RequesterContactID *uuid.UUID // External contact who asked for help
	AssigneeID         *uuid.UUID
	ProjectID          *uuid.UUID
	ProjectPosition    int    // Manual ordering within the project
	ExternalMessageID  string // Mailbox message ID, write-once, empty when not from mail
	SnoozedUntil       *time.Time
	ClosedAt           *time.Time

	Notes       []TicketNote
	Tasks       []TicketTask
	Attachments []TicketAttachment
}

// NewTicket creates a new open ticket
// The number comes from the ticket counter and must be unique
func NewTicket(number int, subject, body string, source TicketSource) (*Ticket, error) {
	if number <= 0 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Ticket number must be positive")
	}
	if err := validateSubject(subject); err != nil {
		return nil, err
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", fmt.Sprintf("Unknown ticket source: %s", source))
	}

	t := &Ticket{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Number:               number,
		Subject:              strings.TrimSpace(subject),
		Body:                 body,
		Status:               TicketStatusOpen,
		Priority:             TicketPriorityNormal,
		Source:               source,
		Notes:                make([]TicketNote, 0),
		Tasks:                make([]TicketTask, 0),
		Attachments:          make([]TicketAttachment, 0),
	}

	t.AddDomainEvent(NewTicketCreatedEvent(t))

	return t, nil
}

// Update changes the subject and body
// Closed tickets must be reopened first
func (t *Ticket) Update(subject, body string) error {
	if t.Status == TicketStatusClosed {
		return shared.NewDomainError("TICKET_CLOSED", "Reopen the ticket before editing it")
	}
	if err := validateSubject(subject); err != nil {
		return err
	}

	t.Subject = strings.TrimSpace(subject)
	t.Body = body
	t.UpdatedAt = time.Now()

	return nil
}

// SetPriority changes the ticket priority
func (t *Ticket) SetPriority(priority TicketPriority) error {
	if !priority.IsValid() {
		return shared.NewDomainError("INVALID_PRIORITY", fmt.Sprintf("Unknown priority: %s", priority))
	}

	t.Priority = priority
	t.UpdatedAt = time.Now()

	return nil
}

// Assign hands the ticket to a user, or nil to unassign
// Assigning an OPEN ticket moves it to IN_PROGRESS
func (t *Ticket) Assign(userID *uuid.UUID) error {
	if t.Status == TicketStatusClosed {
		return shared.NewDomainError("TICKET_CLOSED", "Closed tickets cannot be reassigned")
	}

	t.AssigneeID = userID
	if userID != nil && t.Status == TicketStatusOpen {
		t.Status = TicketStatusInProgress
	}
	t.UpdatedAt = time.Now()

	if userID != nil {
		t.AddDomainEvent(NewTicketAssignedEvent(t, *userID))
	}

	return nil
}

// SetRequester links the external contact the ticket is for
func (t *Ticket) SetRequester(contactID *uuid.UUID) {
	t.RequesterContactID = contactID
	t.UpdatedAt = time.Now()
}

// ChangeStatus moves the ticket between working states
// Use Close, Reopen, Snooze, and Wake for the lifecycle transitions
func (t *Ticket) ChangeStatus(target TicketStatus) error {
	if target == TicketStatusClosed {
		return t.Close()
	}
	if !t.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move ticket from %s to %s", t.Status, target))
	}

	t.Status = target
	t.UpdatedAt = time.Now()

	return nil
}

// Close closes the ticket
// Every checklist task must be done first
func (t *Ticket) Close() error {
	if t.Status == TicketStatusClosed {
		return shared.NewDomainError("ALREADY_CLOSED", "Ticket is already closed")
	}
	if t.HasOpenTasks() {
		return shared.NewDomainError("OPEN_TASKS", "Finish or remove the open tasks before closing")
	}

	now := time.Now()
	t.Status = TicketStatusClosed
	t.ClosedAt = &now
	t.SnoozedUntil = nil
	t.UpdatedAt = now

	t.AddDomainEvent(NewTicketClosedEvent(t))

	return nil
}

// Reopen puts a closed ticket back in progress
func (t *Ticket) Reopen() error {
	if t.Status != TicketStatusClosed {
		return shared.NewDomainError("NOT_CLOSED", "Only closed tickets can be reopened")
	}

	t.Status = TicketStatusInProgress
	t.ClosedAt = nil
	t.UpdatedAt = time.Now()

	t.AddDomainEvent(NewTicketReopenedEvent(t))

	return nil
}

// Snooze parks the ticket until the given time
func (t *Ticket) Snooze(until time.Time) error {
	if t.Status == TicketStatusClosed {
		return shared.NewDomainError("TICKET_CLOSED", "Closed tickets cannot be snoozed")
	}
	if !until.After(time.Now()) {
		return shared.NewDomainError("INVALID_SNOOZE", "Snooze time must be in the future")
	}

	t.SnoozedUntil = &until
	t.Status = TicketStatusOnHold
	t.UpdatedAt = time.Now()

	t.AddDomainEvent(NewTicketSnoozedEvent(t, until))

	return nil
}

// Wake clears the snooze, moves the ticket to IN_PROGRESS, and leaves a
// system note so the timeline shows why the status changed
func (t *Ticket) Wake() error {
	if t.SnoozedUntil == nil {
		return shared.NewDomainError("NOT_SNOOZED", "Ticket is not snoozed")
	}

	t.SnoozedUntil = nil
	t.Status = TicketStatusInProgress
	t.UpdatedAt = time.Now()

	note := NewSystemNote(t.ID, "Ticket woke from snooze")
	t.Notes = append(t.Notes, *note)

	t.AddDomainEvent(NewTicketWokeEvent(t))

	return nil
}

// IsSnoozeExpired reports whether the snooze has run out at the given time
func (t *Ticket) IsSnoozeExpired(now time.Time) bool {
	return t.SnoozedUntil != nil && !t.SnoozedUntil.After(now)
}

// MoveToProject files the ticket under a project at the given position,
// or removes it from its project when projectID is nil
func (t *Ticket) MoveToProject(projectID *uuid.UUID, position int) {
	t.ProjectID = projectID
	if projectID == nil {
		position = 0
	}
	t.ProjectPosition = position
	t.UpdatedAt = time.Now()
}

// SetExternalMessageID records the mailbox message the ticket came from
// The ID is write-once; the poller relies on it for dedup
func (t *Ticket) SetExternalMessageID(messageID string) error {
	if t.ExternalMessageID != "" {
		return shared.NewDomainError("EXTERNAL_ID_SET", "Ticket already has an external message ID")
	}
	if strings.TrimSpace(messageID) == "" {
		return shared.NewDomainError("INVALID_MESSAGE_ID", "External message ID cannot be empty")
	}

	t.ExternalMessageID = messageID
	t.UpdatedAt = time.Now()

	return nil
}

// AddNote appends a note and returns it
func (t *Ticket) AddNote(authorID *uuid.UUID, body string, private bool) (*TicketNote, error) {
	note, err := NewNote(t.ID, authorID, body, private)
	if err != nil {
		return nil, err
	}

	t.Notes = append(t.Notes, *note)
	t.UpdatedAt = time.Now()

	t.AddDomainEvent(NewTicketNoteAddedEvent(t, note))

	return note, nil
}

// AppendReply records an inbound mail reply as a public note and reopens
// the ticket if it was closed
func (t *Ticket) AppendReply(body string) (*TicketNote, error) {
	if t.Status == TicketStatusClosed {
		if err := t.Reopen(); err != nil {
			return nil, err
		}
	}

	return t.AddNote(nil, body, false)
}

// AddTask appends a checklist task at the end of the list
func (t *Ticket) AddTask(label string) (*TicketTask, error) {
	if t.Status == TicketStatusClosed {
		return nil, shared.NewDomainError("TICKET_CLOSED", "Closed tickets cannot take new tasks")
	}

	task, err := NewTask(t.ID, label, len(t.Tasks)+1)
	if err != nil {
		return nil, err
	}

	t.Tasks = append(t.Tasks, *task)
	t.UpdatedAt = time.Now()

	return task, nil
}

// UpdateTask relabels a task and sets its done flag
func (t *Ticket) UpdateTask(taskID uuid.UUID, label string, done bool) error {
	for idx := range t.Tasks {
		if t.Tasks[idx].ID == taskID {
			if err := t.Tasks[idx].Relabel(label); err != nil {
				return err
			}
			t.Tasks[idx].SetDone(done)
			t.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("TASK_NOT_FOUND", "Ticket task not found")
}

// RemoveTask deletes a task from the checklist
func (t *Ticket) RemoveTask(taskID uuid.UUID) error {
	for idx := range t.Tasks {
		if t.Tasks[idx].ID == taskID {
			t.Tasks = append(t.Tasks[:idx], t.Tasks[idx+1:]...)
			t.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("TASK_NOT_FOUND", "Ticket task not found")
}

// HasOpenTasks returns true while any checklist task is not done
func (t *Ticket) HasOpenTasks() bool {
	for _, task := range t.Tasks {
		if !task.Done {
			return true
		}
	}
	return false
}

// AddAttachment records a stored file against the ticket
func (t *Ticket) AddAttachment(fileName, contentType string, sizeBytes int64, storageKey string) (*TicketAttachment, error) {
	attachment, err := NewAttachment(t.ID, fileName, contentType, sizeBytes, storageKey)
	if err != nil {
		return nil, err
	}

	t.Attachments = append(t.Attachments, *attachment)
	t.UpdatedAt = time.Now()

	return attachment, nil
}

// GetTask returns a task by its ID, or nil
func (t *Ticket) GetTask(taskID uuid.UUID) *TicketTask {
	for idx := range t.Tasks {
		if t.Tasks[idx].ID == taskID {
			return &t.Tasks[idx]
		}
	}
	return nil
}

// GetAttachment returns an attachment by its ID, or nil
func (t *Ticket) GetAttachment(attachmentID uuid.UUID) *TicketAttachment {
	for idx := range t.Attachments {
		if t.Attachments[idx].ID == attachmentID {
			return &t.Attachments[idx]
		}
	}
	return nil
}

// GetNote returns a note by its ID, or nil
func (t *Ticket) GetNote(noteID uuid.UUID) *TicketNote {
	for idx := range t.Notes {
		if t.Notes[idx].ID == noteID {
			return &t.Notes[idx]
		}
	}
	return nil
}

// PublicNotes returns the notes visible to requesters
func (t *Ticket) PublicNotes() []TicketNote {
	notes := make([]TicketNote, 0, len(t.Notes))
	for _, n := range t.Notes {
		if !n.Private {
			notes = append(notes, n)
		}
	}
	return notes
}

// Reference returns the human-facing ticket reference, such as "Ticket #1042"
// Mail subjects containing it are treated as replies
func (t *Ticket) Reference() string {
	return fmt.Sprintf("Ticket #%d", t.Number)
}

// IsClosed returns true if the ticket is closed
func (t *Ticket) IsClosed() bool {
	return t.Status == TicketStatusClosed
}

// IsSnoozed returns true while a snooze is set
func (t *Ticket) IsSnoozed() bool {
	return t.SnoozedUntil != nil
}

func validateSubject(subject string) error {
	if strings.TrimSpace(subject) == "" {
		return shared.NewDomainError("INVALID_SUBJECT", "Subject cannot be empty")
	}
	if len(subject) > 500 {
		return shared.NewDomainError("INVALID_SUBJECT", "Subject cannot exceed 500 characters")
	}
	return nil
}

package mailroom

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// PollRunStatus represents the state of a mailbox poll run
type PollRunStatus string

const (
	PollRunStatusRunning PollRunStatus = "RUNNING"
	PollRunStatusOK      PollRunStatus = "OK"
	PollRunStatusFailed  PollRunStatus = "FAILED"
)

// IsValid checks if the status is a valid PollRunStatus
func (s PollRunStatus) IsValid() bool {
	switch s {
	case PollRunStatusRunning, PollRunStatusOK, PollRunStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of PollRunStatus
func (s PollRunStatus) String() string {
	return string(s)
}

// PollRunRetention is how long finished runs and their entries are kept
const PollRunRetention = 7 * 24 * time.Hour

// PollRun records one sweep of the shared mailbox
// Runs older than PollRunRetention are purged along with their entries
type PollRun struct {
	shared.BaseAggregateRoot
	Status         PollRunStatus `gorm:"type:varchar(20);not null;index"`
	StartedAt      time.Time     `gorm:"not null;index"`
	FinishedAt     *time.Time
	MessagesSeen   int    `gorm:"not null;default:0"`
	TicketsCreated int    `gorm:"not null;default:0"`
	NotesAppended  int    `gorm:"not null;default:0"`
	Error          string `gorm:"type:text"`

	Entries []PollEntry `gorm:"foreignKey:PollRunID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PollRun) TableName() string {
	return "mail_poll_runs"
}

// NewPollRun starts a poll run
func NewPollRun() *PollRun {
	return &PollRun{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Status:            PollRunStatusRunning,
		StartedAt:         time.Now(),
	}
}

// RecordMessage tallies one inspected mailbox message
func (r *PollRun) RecordMessage(action PollAction) {
	r.MessagesSeen++
	switch action {
	case PollActionNewTicket:
		r.TicketsCreated++
	case PollActionAppendNote:
		r.NotesAppended++
	}
}

// Complete marks the run finished
func (r *PollRun) Complete() error {
	if r.Status != PollRunStatusRunning {
		return shared.NewDomainError("RUN_NOT_RUNNING", "Poll run has already finished")
	}

	now := time.Now()
	r.Status = PollRunStatusOK
	r.FinishedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// Fail marks the run failed with the given reason
func (r *PollRun) Fail(reason string) error {
	if r.Status != PollRunStatusRunning {
		return shared.NewDomainError("RUN_NOT_RUNNING", "Poll run has already finished")
	}

	now := time.Now()
	r.Status = PollRunStatusFailed
	r.Error = strings.TrimSpace(reason)
	r.FinishedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// IsRunning returns true while the run is in flight
func (r *PollRun) IsRunning() bool {
	return r.Status == PollRunStatusRunning
}

// Duration returns how long the run took, or how long it has been running
func (r *PollRun) Duration() time.Duration {
	if r.FinishedAt != nil {
		return r.FinishedAt.Sub(r.StartedAt)
	}
	return time.Since(r.StartedAt)
}

// PollAction classifies what the poller did with one mailbox message
type PollAction string

const (
	// PollActionNewTicket means a fresh ticket was opened
	PollActionNewTicket PollAction = "NEW_TICKET"
	// PollActionAppendNote means the message was a reply appended to an existing ticket
	PollActionAppendNote PollAction = "APPEND_NOTE"
	// PollActionDuplicate means the message ID had already been ingested
	PollActionDuplicate PollAction = "DUPLICATE"
	// PollActionFilteredDeny means a deny filter matched the sender or subject
	PollActionFilteredDeny PollAction = "FILTERED_DENY"
	// PollActionFilteredDomain means the sender domain was not on the allow list
	PollActionFilteredDomain PollAction = "FILTERED_DOMAIN"
	// PollActionSkipped means the message was left alone, such as mail the app itself sent
	PollActionSkipped PollAction = "SKIPPED"
	// PollActionError means processing the message failed
	PollActionError PollAction = "ERROR"
)

// PollEntry records the outcome for one mailbox message within a run
type PollEntry struct {
	shared.BaseEntity
	PollRunID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	ExternalMessageID string     `gorm:"type:varchar(512);not null"` // Provider message ID
	Sender            string     `gorm:"type:varchar(320)"`
	Subject           string     `gorm:"type:varchar(500)"`
	Action            PollAction `gorm:"type:varchar(20);not null;index"`
	TicketID          *uuid.UUID `gorm:"type:uuid;index"`
	Detail            string     `gorm:"type:text"` // Filter pattern, error text, or duplicate reference
}

// TableName returns the table name for GORM
func (PollEntry) TableName() string {
	return "mail_poll_entries"
}

// NewPollEntry records one processed message
func NewPollEntry(runID uuid.UUID, externalMessageID, sender, subject string, action PollAction) *PollEntry {
	return &PollEntry{
		BaseEntity:        shared.NewBaseEntity(),
		PollRunID:         runID,
		ExternalMessageID: externalMessageID,
		Sender:            strings.ToLower(strings.TrimSpace(sender)),
		Subject:           truncate(subject, 500),
		Action:            action,
	}
}

// LinkTicket points the entry at the ticket it created or touched
func (e *PollEntry) LinkTicket(ticketID uuid.UUID) {
	e.TicketID = &ticketID
}

// SetDetail attaches explanatory text, such as the filter that matched
func (e *PollEntry) SetDetail(detail string) {
	e.Detail = detail
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

package mailroom

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/mailroom"
)

// PollRunListFilter represents filters for listing poll runs
type PollRunListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=RUNNING OK FAILED"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// PollRunResponse represents a poll run in API responses
type PollRunResponse struct {
	ID             uuid.UUID  `json:"id"`
	Status         string     `json:"status"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	DurationMs     int64      `json:"duration_ms"`
	MessagesSeen   int        `json:"messages_seen"`
	TicketsCreated int        `json:"tickets_created"`
	NotesAppended  int        `json:"notes_appended"`
	Error          string     `json:"error,omitempty"`
}

// PollEntryResponse represents one processed mailbox message
type PollEntryResponse struct {
	ID                uuid.UUID  `json:"id"`
	ExternalMessageID string     `json:"external_message_id"`
	Sender            string     `json:"sender"`
	Subject           string     `json:"subject"`
	Action            string     `json:"action"`
	TicketID          *uuid.UUID `json:"ticket_id,omitempty"`
	Detail            string     `json:"detail,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// CreateAllowedDomainRequest represents a request to allow a sender domain
type CreateAllowedDomainRequest struct {
	Domain string `json:"domain" binding:"required,max=255"`
}

// UpdateAllowedDomainRequest toggles an allowed domain.
// The domain itself is immutable; delete and recreate to change it.
type UpdateAllowedDomainRequest struct {
	Active *bool `json:"active"`
}

// AllowedDomainResponse represents an allowed domain in API responses
type AllowedDomainResponse struct {
	ID        uuid.UUID `json:"id"`
	Domain    string    `json:"domain"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateDenyFilterRequest represents a request to create a deny filter
type CreateDenyFilterRequest struct {
	Pattern string `json:"pattern" binding:"required,max=255"`
	Note    string `json:"note" binding:"max=500"`
}

// UpdateDenyFilterRequest represents a request to update a deny filter
type UpdateDenyFilterRequest struct {
	Pattern *string `json:"pattern" binding:"omitempty,max=255"`
	Note    *string `json:"note" binding:"omitempty,max=500"`
	Active  *bool   `json:"active"`
}

// DenyFilterResponse represents a deny filter in API responses
type DenyFilterResponse struct {
	ID        uuid.UUID `json:"id"`
	Pattern   string    `json:"pattern"`
	Note      string    `json:"note,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToPollRunResponse converts a domain poll run to a response DTO
func ToPollRunResponse(run *mailroom.PollRun) *PollRunResponse {
	return &PollRunResponse{
		ID:             run.ID,
		Status:         run.Status.String(),
		StartedAt:      run.StartedAt,
		FinishedAt:     run.FinishedAt,
		DurationMs:     run.Duration().Milliseconds(),
		MessagesSeen:   run.MessagesSeen,
		TicketsCreated: run.TicketsCreated,
		NotesAppended:  run.NotesAppended,
		Error:          run.Error,
	}
}

// ToPollRunResponses converts a slice of domain poll runs to response DTOs
func ToPollRunResponses(runs []mailroom.PollRun) []*PollRunResponse {
	responses := make([]*PollRunResponse, len(runs))
	for i := range runs {
		responses[i] = ToPollRunResponse(&runs[i])
	}
	return responses
}

// ToPollEntryResponse converts a domain poll entry to a response DTO
func ToPollEntryResponse(entry *mailroom.PollEntry) *PollEntryResponse {
	return &PollEntryResponse{
		ID:                entry.ID,
		ExternalMessageID: entry.ExternalMessageID,
		Sender:            entry.Sender,
		Subject:           entry.Subject,
		Action:            string(entry.Action),
		TicketID:          entry.TicketID,
		Detail:            entry.Detail,
		CreatedAt:         entry.CreatedAt,
	}
}

// ToPollEntryResponses converts a slice of domain poll entries to response DTOs
func ToPollEntryResponses(entries []mailroom.PollEntry) []*PollEntryResponse {
	responses := make([]*PollEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToPollEntryResponse(&entries[i])
	}
	return responses
}

// ToAllowedDomainResponse converts a domain allowed domain to a response DTO
func ToAllowedDomainResponse(d *mailroom.AllowedDomain) *AllowedDomainResponse {
	return &AllowedDomainResponse{
		ID:        d.ID,
		Domain:    d.Domain,
		Active:    d.Active,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// ToAllowedDomainResponses converts a slice of allowed domains to response DTOs
func ToAllowedDomainResponses(domains []mailroom.AllowedDomain) []*AllowedDomainResponse {
	responses := make([]*AllowedDomainResponse, len(domains))
	for i := range domains {
		responses[i] = ToAllowedDomainResponse(&domains[i])
	}
	return responses
}

// ToDenyFilterResponse converts a domain deny filter to a response DTO
func ToDenyFilterResponse(f *mailroom.DenyFilter) *DenyFilterResponse {
	return &DenyFilterResponse{
		ID:        f.ID,
		Pattern:   f.Pattern,
		Note:      f.Note,
		Active:    f.Active,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// ToDenyFilterResponses converts a slice of deny filters to response DTOs
func ToDenyFilterResponses(filters []mailroom.DenyFilter) []*DenyFilterResponse {
	responses := make([]*DenyFilterResponse, len(filters))
	for i := range filters {
		responses[i] = ToDenyFilterResponse(&filters[i])
	}
	return responses
}

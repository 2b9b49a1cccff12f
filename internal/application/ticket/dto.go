package ticket

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/ticket"
)

// ==================== Ticket DTOs ====================

// CreateTicketRequest represents a request to create a ticket
type CreateTicketRequest struct {
	Subject            string     `json:"subject" binding:"required,min=1,max=500"`
	Body               string     `json:"body"`
	Priority           string     `json:"priority" binding:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	Source             string     `json:"source" binding:"omitempty,oneof=MANUAL INTAKE"`
	RequesterContactID *uuid.UUID `json:"requester_contact_id"`
	AssigneeID         *uuid.UUID `json:"assignee_id"`
	ProjectID          *uuid.UUID `json:"project_id"`
}

// UpdateTicketRequest represents a request to update a ticket
type UpdateTicketRequest struct {
	Subject  *string `json:"subject" binding:"omitempty,min=1,max=500"`
	Body     *string `json:"body"`
	Priority *string `json:"priority" binding:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
}

// AssignTicketRequest represents a request to assign a ticket
// A nil assignee unassigns the ticket
type AssignTicketRequest struct {
	AssigneeID *uuid.UUID `json:"assignee_id"`
}

// SetRequesterRequest links or clears the ticket's external requester
type SetRequesterRequest struct {
	RequesterContactID *uuid.UUID `json:"requester_contact_id"`
}

// ChangeTicketStatusRequest represents a request to move a ticket between states
type ChangeTicketStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=OPEN IN_PROGRESS ON_HOLD CLOSED"`
}

// SnoozeTicketRequest represents a request to snooze a ticket
type SnoozeTicketRequest struct {
	Until time.Time `json:"until" binding:"required"`
}

// MoveTicketToProjectRequest files the ticket under a project
// A nil project removes the ticket from its current project
type MoveTicketToProjectRequest struct {
	ProjectID *uuid.UUID `json:"project_id"`
}

// AddNoteRequest represents a request to add a note to a ticket
type AddNoteRequest struct {
	Body    string `json:"body" binding:"required"`
	Private bool   `json:"private"`
}

// AddTaskRequest represents a request to add a checklist task
type AddTaskRequest struct {
	Label string `json:"label" binding:"required,min=1,max=200"`
}

// UpdateTaskRequest represents a request to update a checklist task
type UpdateTaskRequest struct {
	Label *string `json:"label" binding:"omitempty,min=1,max=200"`
	Done  *bool   `json:"done"`
}

// TicketListFilter represents filter options for ticket list
type TicketListFilter struct {
	Search             string     `form:"search"`
	Status             string     `form:"status" binding:"omitempty,oneof=OPEN IN_PROGRESS ON_HOLD CLOSED"`
	Statuses           []string   `form:"statuses"`
	Priority           string     `form:"priority" binding:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	Source             string     `form:"source" binding:"omitempty,oneof=MANUAL EMAIL RECURRING INTAKE"`
	AssigneeID         *uuid.UUID `form:"assignee_id"`
	Unassigned         bool       `form:"unassigned"`
	ProjectID          *uuid.UUID `form:"project_id"`
	RequesterContactID *uuid.UUID `form:"requester_contact_id"`
	StartDate          *time.Time `form:"start_date"`
	EndDate            *time.Time `form:"end_date"`
	Page               int        `form:"page" binding:"omitempty,min=1"`
	PageSize           int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy            string     `form:"order_by"`
	OrderDir           string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InboundAttachment carries raw attachment bytes from the mail poller
type InboundAttachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

// CreateMailTicketRequest carries a mailbox message the poller turned into a ticket
type CreateMailTicketRequest struct {
	Subject            string
	BodyHTML           string
	ExternalMessageID  string
	RequesterContactID *uuid.UUID
	Attachments        []InboundAttachment
}

// CreateIntakeTicketRequest carries a scanner drop folder submission
type CreateIntakeTicketRequest struct {
	Subject            string
	BodyHTML           string
	ExternalMessageID  string
	RequesterContactID *uuid.UUID
	Attachments        []InboundAttachment
}

// CreateRecurringTicketRequest carries a scheduled ticket occurrence
type CreateRecurringTicketRequest struct {
	Subject    string
	BodyHTML   string
	Priority   string
	AssigneeID *uuid.UUID
	ProjectID  *uuid.UUID
}

// TicketResponse represents a ticket in API responses
type TicketResponse struct {
	ID                 uuid.UUID            `json:"id"`
	Number             int                  `json:"number"`
	Subject            string               `json:"subject"`
	Body               string               `json:"body"`
	Status             string               `json:"status"`
	Priority           string               `json:"priority"`
	Source             string               `json:"source"`
	RequesterContactID *uuid.UUID           `json:"requester_contact_id,omitempty"`
	AssigneeID         *uuid.UUID           `json:"assignee_id,omitempty"`
	ProjectID          *uuid.UUID           `json:"project_id,omitempty"`
	ProjectPosition    int                  `json:"project_position,omitempty"`
	ExternalMessageID  string               `json:"external_message_id,omitempty"`
	SnoozedUntil       *time.Time           `json:"snoozed_until,omitempty"`
	ClosedAt           *time.Time           `json:"closed_at,omitempty"`
	Notes              []NoteResponse       `json:"notes"`
	Tasks              []TaskResponse       `json:"tasks"`
	Attachments        []AttachmentResponse `json:"attachments"`
	CreatedBy          *uuid.UUID           `json:"created_by,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
	Version            int                  `json:"version"`
}

// TicketListItemResponse represents a ticket in list responses (less detail)
type TicketListItemResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Number             int        `json:"number"`
	Subject            string     `json:"subject"`
	Status             string     `json:"status"`
	Priority           string     `json:"priority"`
	Source             string     `json:"source"`
	RequesterContactID *uuid.UUID `json:"requester_contact_id,omitempty"`
	AssigneeID         *uuid.UUID `json:"assignee_id,omitempty"`
	ProjectID          *uuid.UUID `json:"project_id,omitempty"`
	SnoozedUntil       *time.Time `json:"snoozed_until,omitempty"`
	ClosedAt           *time.Time `json:"closed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// NoteResponse represents a ticket note in API responses
type NoteResponse struct {
	ID        uuid.UUID  `json:"id"`
	AuthorID  *uuid.UUID `json:"author_id,omitempty"`
	Body      string     `json:"body"`
	Private   bool       `json:"private"`
	System    bool       `json:"system"`
	CreatedAt time.Time  `json:"created_at"`
}

// TaskResponse represents a checklist task in API responses
type TaskResponse struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	Done      bool      `json:"done"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AttachmentResponse represents a ticket attachment in API responses
type AttachmentResponse struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// TicketStatusSummary represents ticket counts by status
type TicketStatusSummary struct {
	Open       int64 `json:"open"`
	InProgress int64 `json:"in_progress"`
	OnHold     int64 `json:"on_hold"`
	Closed     int64 `json:"closed"`
	Total      int64 `json:"total"`
}

// ToTicketResponse converts a domain Ticket to a response DTO
func ToTicketResponse(t *ticket.Ticket) TicketResponse {
	return TicketResponse{
		ID:                 t.ID,
		Number:             t.Number,
		Subject:            t.Subject,
		Body:               t.Body,
		Status:             string(t.Status),
		Priority:           string(t.Priority),
		Source:             string(t.Source),
		RequesterContactID: t.RequesterContactID,
		AssigneeID:         t.AssigneeID,
		ProjectID:          t.ProjectID,
		ProjectPosition:    t.ProjectPosition,
		ExternalMessageID:  t.ExternalMessageID,
		SnoozedUntil:       t.SnoozedUntil,
		ClosedAt:           t.ClosedAt,
		Notes:              ToNoteResponses(t.Notes),
		Tasks:              ToTaskResponses(t.Tasks),
		Attachments:        ToAttachmentResponses(t.Attachments),
		CreatedBy:          t.CreatedBy,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
		Version:            t.Version,
	}
}

// ToTicketListItemResponse converts a domain Ticket to a list response DTO
func ToTicketListItemResponse(t *ticket.Ticket) TicketListItemResponse {
	return TicketListItemResponse{
		ID:                 t.ID,
		Number:             t.Number,
		Subject:            t.Subject,
		Status:             string(t.Status),
		Priority:           string(t.Priority),
		Source:             string(t.Source),
		RequesterContactID: t.RequesterContactID,
		AssigneeID:         t.AssigneeID,
		ProjectID:          t.ProjectID,
		SnoozedUntil:       t.SnoozedUntil,
		ClosedAt:           t.ClosedAt,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

// ToTicketListItemResponses converts a slice of domain tickets to list responses
func ToTicketListItemResponses(tickets []ticket.Ticket) []TicketListItemResponse {
	responses := make([]TicketListItemResponse, len(tickets))
	for i := range tickets {
		responses[i] = ToTicketListItemResponse(&tickets[i])
	}
	return responses
}

// ToNoteResponse converts a domain note to a response DTO
func ToNoteResponse(n *ticket.TicketNote) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		AuthorID:  n.AuthorID,
		Body:      n.Body,
		Private:   n.Private,
		System:    n.System,
		CreatedAt: n.CreatedAt,
	}
}

// ToNoteResponses converts a slice of domain notes to response DTOs
func ToNoteResponses(notes []ticket.TicketNote) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i := range notes {
		responses[i] = ToNoteResponse(&notes[i])
	}
	return responses
}

// ToTaskResponse converts a domain task to a response DTO
func ToTaskResponse(t *ticket.TicketTask) TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		Label:     t.Label,
		Done:      t.Done,
		Position:  t.Position,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTaskResponses converts a slice of domain tasks to response DTOs
func ToTaskResponses(tasks []ticket.TicketTask) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = ToTaskResponse(&tasks[i])
	}
	return responses
}

// ToAttachmentResponse converts a domain attachment to a response DTO
func ToAttachmentResponse(a *ticket.TicketAttachment) AttachmentResponse {
	return AttachmentResponse{
		ID:          a.ID,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		SizeBytes:   a.SizeBytes,
		CreatedAt:   a.CreatedAt,
	}
}

// ToAttachmentResponses converts a slice of domain attachments to response DTOs
func ToAttachmentResponses(attachments []ticket.TicketAttachment) []AttachmentResponse {
	responses := make([]AttachmentResponse, len(attachments))
	for i := range attachments {
		responses[i] = ToAttachmentResponse(&attachments[i])
	}
	return responses
}

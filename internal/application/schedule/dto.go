package schedule

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/schedule"
)

// CreateScheduledTicketRequest represents a request to create a scheduled ticket
type CreateScheduledTicketRequest struct {
	Name       string     `json:"name" binding:"required,max=200"`
	Subject    string     `json:"subject" binding:"required,max=500"`
	BodyHTML   string     `json:"body_html"`
	Priority   string     `json:"priority" binding:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	AssigneeID *uuid.UUID `json:"assignee_id"`
	ProjectID  *uuid.UUID `json:"project_id"`
	Cadence    string     `json:"cadence" binding:"required,oneof=DAILY WEEKLY MONTHLY"`
	Weekday    *int       `json:"weekday" binding:"omitempty,min=0,max=6"`
	MonthDay   *int       `json:"month_day" binding:"omitempty,min=1,max=28"`
	TimeOfDay  string     `json:"time_of_day" binding:"required,len=5"`
}

// UpdateScheduledTicketRequest represents a request to update a scheduled ticket.
// Unassign clears the assignee and ClearProject clears the project; the
// pointer fields move them. Cadence fields are merged with the stored ones,
// so a weekly schedule can change its weekday without resending the cadence.
type UpdateScheduledTicketRequest struct {
	Name         *string    `json:"name" binding:"omitempty,max=200"`
	Subject      *string    `json:"subject" binding:"omitempty,max=500"`
	BodyHTML     *string    `json:"body_html"`
	Priority     *string    `json:"priority" binding:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	AssigneeID   *uuid.UUID `json:"assignee_id"`
	Unassign     bool       `json:"unassign"`
	ProjectID    *uuid.UUID `json:"project_id"`
	ClearProject bool       `json:"clear_project"`
	Cadence      *string    `json:"cadence" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY"`
	Weekday      *int       `json:"weekday" binding:"omitempty,min=0,max=6"`
	MonthDay     *int       `json:"month_day" binding:"omitempty,min=1,max=28"`
	TimeOfDay    *string    `json:"time_of_day" binding:"omitempty,len=5"`
}

// ScheduledTicketListFilter represents filters for listing scheduled tickets
type ScheduledTicketListFilter struct {
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
	Cadence  string `form:"cadence" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ScheduledTicketResponse represents a scheduled ticket in API responses
type ScheduledTicketResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	Priority   string     `json:"priority"`
	AssigneeID *uuid.UUID `json:"assignee_id,omitempty"`
	ProjectID  *uuid.UUID `json:"project_id,omitempty"`
	Cadence    string     `json:"cadence"`
	Weekday    *int       `json:"weekday,omitempty"`
	MonthDay   *int       `json:"month_day,omitempty"`
	TimeOfDay  string     `json:"time_of_day"`
	Active     bool       `json:"active"`
	LastRunAt  *time.Time `json:"last_run_at,omitempty"`
	CreatedBy  *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Version    int        `json:"version"`
}

// ToScheduledTicketResponse converts a domain schedule to a response DTO
func ToScheduledTicketResponse(st *schedule.ScheduledTicket) *ScheduledTicketResponse {
	resp := &ScheduledTicketResponse{
		ID:         st.ID,
		Name:       st.Name,
		Subject:    st.Subject,
		Body:       st.Body,
		Priority:   st.Priority,
		AssigneeID: st.AssigneeID,
		ProjectID:  st.ProjectID,
		Cadence:    st.Cadence.String(),
		TimeOfDay:  st.TimeOfDay,
		Active:     st.Active,
		LastRunAt:  st.LastRunAt,
		CreatedBy:  st.CreatedBy,
		CreatedAt:  st.CreatedAt,
		UpdatedAt:  st.UpdatedAt,
		Version:    st.Version,
	}
	if st.Weekday != nil {
		wd := int(*st.Weekday)
		resp.Weekday = &wd
	}
	if st.MonthDay != nil {
		md := *st.MonthDay
		resp.MonthDay = &md
	}
	return resp
}

// ToScheduledTicketResponses converts a slice of domain schedules to response DTOs
func ToScheduledTicketResponses(schedules []schedule.ScheduledTicket) []*ScheduledTicketResponse {
	responses := make([]*ScheduledTicketResponse, len(schedules))
	for i := range schedules {
		responses[i] = ToScheduledTicketResponse(&schedules[i])
	}
	return responses
}

package project

import (
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/backend/internal/domain/project"
	"github.com/opsdesk/backend/internal/domain/ticket"
)

// CreateProjectRequest creates a project
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty,max=5000"`
}

// UpdateProjectRequest updates a project, nil fields are left unchanged
type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
}

// ProjectListFilter filters the project list
type ProjectListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active archived"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// ProjectResponse is the project representation returned to clients
type ProjectResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// ProjectTicketResponse is the slim ticket row for the project board,
// ordered by position within the project
type ProjectTicketResponse struct {
	ID              uuid.UUID  `json:"id"`
	Number          int        `json:"number"`
	Subject         string     `json:"subject"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority"`
	AssigneeID      *uuid.UUID `json:"assignee_id,omitempty"`
	ProjectPosition int        `json:"project_position"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ToProjectResponse converts a domain project to a response DTO
func ToProjectResponse(p *project.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// ToProjectResponses converts a list of domain projects to response DTOs
func ToProjectResponses(projects []project.Project) []*ProjectResponse {
	responses := make([]*ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = ToProjectResponse(&projects[i])
	}
	return responses
}

// ToProjectTicketResponses converts project tickets to board rows
func ToProjectTicketResponses(tickets []ticket.Ticket) []*ProjectTicketResponse {
	responses := make([]*ProjectTicketResponse, len(tickets))
	for i := range tickets {
		t := &tickets[i]
		responses[i] = &ProjectTicketResponse{
			ID:              t.ID,
			Number:          t.Number,
			Subject:         t.Subject,
			Status:          string(t.Status),
			Priority:        string(t.Priority),
			AssigneeID:      t.AssigneeID,
			ProjectPosition: t.ProjectPosition,
			CreatedAt:       t.CreatedAt,
		}
	}
	return responses
}

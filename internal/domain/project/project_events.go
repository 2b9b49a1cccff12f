package project

import (
	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// Aggregate type constant for Project
const AggregateTypeProject = "Project"

// Event type constants for Project
const (
	EventTypeProjectCreated  = "ProjectCreated"
	EventTypeProjectUpdated  = "ProjectUpdated"
	EventTypeProjectArchived = "ProjectArchived"
	EventTypeProjectDeleted  = "ProjectDeleted"
)

// ProjectCreatedEvent is published when a new project is created
type ProjectCreatedEvent struct {
	shared.BaseDomainEvent
	ProjectID uuid.UUID `json:"project_id"`
	Name      string    `json:"name"`
}

// NewProjectCreatedEvent creates a new ProjectCreatedEvent
func NewProjectCreatedEvent(p *Project) *ProjectCreatedEvent {
	return &ProjectCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProjectCreated, AggregateTypeProject, p.ID),
		ProjectID:       p.ID,
		Name:            p.Name,
	}
}

// ProjectUpdatedEvent is published when a project is updated
type ProjectUpdatedEvent struct {
	shared.BaseDomainEvent
	ProjectID uuid.UUID `json:"project_id"`
	Name      string    `json:"name"`
}

// NewProjectUpdatedEvent creates a new ProjectUpdatedEvent
func NewProjectUpdatedEvent(p *Project) *ProjectUpdatedEvent {
	return &ProjectUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProjectUpdated, AggregateTypeProject, p.ID),
		ProjectID:       p.ID,
		Name:            p.Name,
	}
}

// ProjectArchivedEvent is published when a project is archived
type ProjectArchivedEvent struct {
	shared.BaseDomainEvent
	ProjectID uuid.UUID `json:"project_id"`
	Name      string    `json:"name"`
}

// NewProjectArchivedEvent creates a new ProjectArchivedEvent
func NewProjectArchivedEvent(p *Project) *ProjectArchivedEvent {
	return &ProjectArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProjectArchived, AggregateTypeProject, p.ID),
		ProjectID:       p.ID,
		Name:            p.Name,
	}
}

// ProjectDeletedEvent is published when a project is deleted
type ProjectDeletedEvent struct {
	shared.BaseDomainEvent
	ProjectID uuid.UUID `json:"project_id"`
	Name      string    `json:"name"`
}

// NewProjectDeletedEvent creates a new ProjectDeletedEvent
func NewProjectDeletedEvent(p *Project) *ProjectDeletedEvent {
	return &ProjectDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProjectDeleted, AggregateTypeProject, p.ID),
		ProjectID:       p.ID,
		Name:            p.Name,
	}
}

package project

import (
	"strings"
	"time"

	"github.com/opsdesk/backend/internal/domain/shared"
)

// ProjectStatus represents the status of a project
type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusArchived ProjectStatus = "archived"
)

// Project groups related tickets so they can be worked as a unit
// Tickets keep their own position within the project for manual ordering
type Project struct {
	shared.AuditedAggregateRoot
	Name        string        `gorm:"type:varchar(200);not null;uniqueIndex:idx_project_name"`
	Description string        `gorm:"type:text"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// NewProject creates a new project
func NewProject(name, description string) (*Project, error) {
	if err := validateProjectName(name); err != nil {
		return nil, err
	}

	project := &Project{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Name:                 strings.TrimSpace(name),
		Description:          description,
		Status:               ProjectStatusActive,
	}

	project.AddDomainEvent(NewProjectCreatedEvent(project))

	return project, nil
}

// Update updates the project's name and description
func (p *Project) Update(name, description string) error {
	if err := validateProjectName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProjectUpdatedEvent(p))

	return nil
}

// Archive archives the project so it no longer appears in active lists
// Open tickets keep their project assignment
func (p *Project) Archive() error {
	if p.Status == ProjectStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Project is already archived")
	}

	p.Status = ProjectStatusArchived
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProjectArchivedEvent(p))

	return nil
}

// Unarchive restores an archived project to the active list
func (p *Project) Unarchive() error {
	if p.Status == ProjectStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Project is already active")
	}

	p.Status = ProjectStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsActive returns true if the project is active
func (p *Project) IsActive() bool {
	return p.Status == ProjectStatusActive
}

func validateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Project name cannot exceed 200 characters")
	}
	return nil
}

package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/opsdesk/backend/internal/domain/project"
	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/opsdesk/backend/internal/domain/ticket"
)

// ProjectService manages projects and their ticket boards
type ProjectService struct {
	projectRepo    project.ProjectRepository
	ticketRepo     ticket.Repository
	eventPublisher shared.EventPublisher
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo project.ProjectRepository, ticketRepo ticket.Repository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		ticketRepo:  ticketRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *ProjectService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateProject creates a new project
func (s *ProjectService) CreateProject(ctx context.Context, req *CreateProjectRequest, createdBy *uuid.UUID) (*ProjectResponse, error) {
	exists, err := s.projectRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A project with this name already exists")
	}

	p, err := project.NewProject(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if createdBy != nil {
		p.SetCreatedBy(*createdBy)
	}

	if err := s.projectRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	p.ClearDomainEvents()

	return ToProjectResponse(p), nil
}

// GetProject retrieves a project by ID
func (s *ProjectService) GetProject(ctx context.Context, projectID uuid.UUID) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return ToProjectResponse(p), nil
}

// ListProjects lists projects with filters and pagination
func (s *ProjectService) ListProjects(ctx context.Context, filter *ProjectListFilter) ([]*ProjectResponse, int64, error) {
	domainFilter := buildProjectFilter(filter)

	projects, err := s.projectRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.projectRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProjectResponses(projects), total, nil
}

// ListActiveProjects lists active projects for pickers
func (s *ProjectService) ListActiveProjects(ctx context.Context) ([]*ProjectResponse, error) {
	projects, err := s.projectRepo.FindActive(ctx, shared.Filter{Page: 1, PageSize: 500, OrderBy: "name", OrderDir: "asc"})
	if err != nil {
		return nil, err
	}
	return ToProjectResponses(projects), nil
}

// UpdateProject updates a project
func (s *ProjectService) UpdateProject(ctx context.Context, projectID uuid.UUID, req *UpdateProjectRequest) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != p.Name {
		exists, err := s.projectRepo.ExistsByName(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A project with this name already exists")
		}
	}

	name := p.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := p.Description
	if req.Description != nil {
		description = *req.Description
	}

	if err := p.Update(name, description); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	p.ClearDomainEvents()

	return ToProjectResponse(p), nil
}

// ArchiveProject archives a project
func (s *ProjectService) ArchiveProject(ctx context.Context, projectID uuid.UUID) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := p.Archive(); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	p.ClearDomainEvents()

	return ToProjectResponse(p), nil
}

// UnarchiveProject restores an archived project
func (s *ProjectService) UnarchiveProject(ctx context.Context, projectID uuid.UUID) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := p.Unarchive(); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	return ToProjectResponse(p), nil
}

// DeleteProject deletes a project.
// Its tickets are unfiled by the repository, not deleted.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		event := project.NewProjectDeletedEvent(p)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			// Log error but don't fail the operation
		}
	}

	return nil
}

// ListTickets returns the project's tickets ordered by their board position
func (s *ProjectService) ListTickets(ctx context.Context, projectID uuid.UUID) ([]*ProjectTicketResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	tickets, err := s.ticketRepo.FindByProject(ctx, projectID, shared.Filter{Page: 1, PageSize: 500})
	if err != nil {
		return nil, err
	}

	return ToProjectTicketResponses(tickets), nil
}

func buildProjectFilter(filter *ProjectListFilter) shared.Filter {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "name"
	}
	orderDir := filter.OrderDir
	if orderDir == "" {
		orderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  orderBy,
		OrderDir: orderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	return domainFilter
}

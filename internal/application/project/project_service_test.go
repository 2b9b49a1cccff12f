package project

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/opsdesk/backend/internal/domain/project"
	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/opsdesk/backend/internal/domain/ticket"
)

// MockProjectRepository is a mock implementation of project.ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByName(ctx context.Context, name string) (*project.Project, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]project.Project, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindActive(ctx context.Context, filter shared.Filter) ([]project.Project, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockTicketRepository is a mock implementation of ticket.Repository
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*ticket.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindByNumber(ctx context.Context, number int) (*ticket.Ticket, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindByExternalMessageID(ctx context.Context, messageID string) (*ticket.Ticket, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ticket.Ticket, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ticket.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindByStatus(ctx context.Context, status ticket.TicketStatus, filter shared.Filter) ([]ticket.Ticket, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ticket.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindByAssignee(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]ticket.Ticket, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ticket.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindByProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]ticket.Ticket, error) {
	args := m.Called(ctx, projectID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ticket.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindSnoozedDue(ctx context.Context, now time.Time) ([]ticket.Ticket, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ticket.Ticket), args.Error(1)
}

func (m *MockTicketRepository) MaxNumber(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockTicketRepository) MaxProjectPosition(ctx context.Context, projectID uuid.UUID) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

func (m *MockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTicketRepository) SaveWithEvents(ctx context.Context, t *ticket.Ticket, events []shared.DomainEvent) error {
	args := m.Called(ctx, t, events)
	return args.Error(0)
}

func (m *MockTicketRepository) SaveWithLock(ctx context.Context, t *ticket.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTicketRepository) SaveWithLockAndEvents(ctx context.Context, t *ticket.Ticket, events []shared.DomainEvent) error {
	args := m.Called(ctx, t, events)
	return args.Error(0)
}

func (m *MockTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTicketRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTicketRepository) CountByStatus(ctx context.Context) (map[ticket.TicketStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[ticket.TicketStatus]int64), args.Error(1)
}

func newProjectTestService() (*ProjectService, *MockProjectRepository, *MockTicketRepository) {
	projects := new(MockProjectRepository)
	tickets := new(MockTicketRepository)
	return NewProjectService(projects, tickets), projects, tickets
}

func createTestProject(t *testing.T, name string) *project.Project {
	t.Helper()
	p, err := project.NewProject(name, "")
	assert.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestProjectService_CreateProject_Success(t *testing.T) {
	service, projects, _ := newProjectTestService()

	projects.On("ExistsByName", mock.Anything, "Office move").Return(false, nil)
	projects.On("Save", mock.Anything, mock.AnythingOfType("*project.Project")).Return(nil)

	createdBy := uuid.New()
	resp, err := service.CreateProject(context.Background(), &CreateProjectRequest{
		Name:        "Office move",
		Description: "Everything for the new floor",
	}, &createdBy)

	assert.NoError(t, err)
	assert.Equal(t, "Office move", resp.Name)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, &createdBy, resp.CreatedBy)
}

func TestProjectService_CreateProject_DuplicateName(t *testing.T) {
	service, projects, _ := newProjectTestService()

	projects.On("ExistsByName", mock.Anything, "Office move").Return(true, nil)

	_, err := service.CreateProject(context.Background(), &CreateProjectRequest{Name: "Office move"}, nil)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	projects.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProjectService_ArchiveProject_Twice(t *testing.T) {
	service, projects, _ := newProjectTestService()

	p := createTestProject(t, "Office move")

	projects.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	projects.On("Save", mock.Anything, p).Return(nil)

	resp, err := service.ArchiveProject(context.Background(), p.ID)
	assert.NoError(t, err)
	assert.Equal(t, "archived", resp.Status)

	_, err = service.ArchiveProject(context.Background(), p.ID)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_ARCHIVED", domainErr.Code)
	projects.AssertNumberOfCalls(t, "Save", 1)
}

func TestProjectService_ListTickets_OrderedByPosition(t *testing.T) {
	service, projects, tickets := newProjectTestService()

	p := createTestProject(t, "Office move")

	first, err := ticket.NewTicket(101, "Order desks", "", ticket.TicketSourceManual)
	assert.NoError(t, err)
	first.MoveToProject(&p.ID, 1)
	second, err := ticket.NewTicket(102, "Hire movers", "", ticket.TicketSourceManual)
	assert.NoError(t, err)
	second.MoveToProject(&p.ID, 2)

	projects.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	tickets.On("FindByProject", mock.Anything, p.ID, mock.Anything).Return([]ticket.Ticket{*first, *second}, nil)

	rows, err := service.ListTickets(context.Background(), p.ID)

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "Order desks", rows[0].Subject)
	assert.Equal(t, 1, rows[0].ProjectPosition)
	assert.Equal(t, 102, rows[1].Number)
}

func TestProjectService_ListTickets_UnknownProject(t *testing.T) {
	service, projects, tickets := newProjectTestService()

	projectID := uuid.New()
	projects.On("FindByID", mock.Anything, projectID).Return(nil, shared.ErrNotFound)

	_, err := service.ListTickets(context.Background(), projectID)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	tickets.AssertNotCalled(t, "FindByProject", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_UpdateProject_RenameChecksUniqueness(t *testing.T) {
	service, projects, _ := newProjectTestService()

	p := createTestProject(t, "Office move")

	projects.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	projects.On("ExistsByName", mock.Anything, "Relocation").Return(true, nil)

	newName := "Relocation"
	_, err := service.UpdateProject(context.Background(), p.ID, &UpdateProjectRequest{Name: &newName})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

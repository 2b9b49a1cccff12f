package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	ticketapp "github.com/opsdesk/backend/internal/application/ticket"
	"github.com/opsdesk/backend/internal/domain/identity"
	"github.com/opsdesk/backend/internal/domain/project"
	"github.com/opsdesk/backend/internal/domain/schedule"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// RecurringTicketCreator opens tickets for fired schedules.
// Satisfied by the ticket application service.
type RecurringTicketCreator interface {
	CreateRecurring(ctx context.Context, req ticketapp.CreateRecurringTicketRequest) (*ticketapp.TicketResponse, error)
}

// ScheduleService manages scheduled tickets and fires the ones that are due
type ScheduleService struct {
	scheduleRepo   schedule.Repository
	userRepo       identity.UserRepository
	projectRepo    project.ProjectRepository
	tickets        RecurringTicketCreator
	eventPublisher shared.EventPublisher
}

// NewScheduleService creates a new schedule service
func NewScheduleService(
	scheduleRepo schedule.Repository,
	userRepo identity.UserRepository,
	projectRepo project.ProjectRepository,
	tickets RecurringTicketCreator,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
		projectRepo:  projectRepo,
		tickets:      tickets,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *ScheduleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateScheduledTicket creates a new scheduled ticket
func (s *ScheduleService) CreateScheduledTicket(ctx context.Context, req *CreateScheduledTicketRequest, createdBy *uuid.UUID) (*ScheduledTicketResponse, error) {
	if err := s.checkAssignee(ctx, req.AssigneeID); err != nil {
		return nil, err
	}
	if err := s.checkProject(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	st, err := schedule.NewScheduledTicket(req.Name, req.Subject, req.BodyHTML, req.TimeOfDay)
	if err != nil {
		return nil, err
	}

	if err := st.SetCadence(schedule.Cadence(req.Cadence), toWeekday(req.Weekday), req.MonthDay, req.TimeOfDay); err != nil {
		return nil, err
	}

	if req.Priority != "" {
		if err := st.SetPriority(req.Priority); err != nil {
			return nil, err
		}
	}

	if req.AssigneeID != nil {
		st.Assign(req.AssigneeID)
	}
	if req.ProjectID != nil {
		st.SetProject(req.ProjectID)
	}

	if createdBy != nil {
		st.SetCreatedBy(*createdBy)
	}

	if err := s.scheduleRepo.Save(ctx, st); err != nil {
		return nil, err
	}

	st.ClearDomainEvents()

	return ToScheduledTicketResponse(st), nil
}

// GetScheduledTicket retrieves a scheduled ticket by ID
func (s *ScheduleService) GetScheduledTicket(ctx context.Context, scheduleID uuid.UUID) (*ScheduledTicketResponse, error) {
	st, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	return ToScheduledTicketResponse(st), nil
}

// ListScheduledTickets retrieves scheduled tickets with filtering and pagination
func (s *ScheduleService) ListScheduledTickets(ctx context.Context, filter *ScheduledTicketListFilter) ([]*ScheduledTicketResponse, int64, error) {
	repoFilter := buildScheduleFilter(filter)

	schedules, err := s.scheduleRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.scheduleRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return ToScheduledTicketResponses(schedules), total, nil
}

// UpdateScheduledTicket updates a scheduled ticket's template and cadence
func (s *ScheduleService) UpdateScheduledTicket(ctx context.Context, scheduleID uuid.UUID, req *UpdateScheduledTicketRequest) (*ScheduledTicketResponse, error) {
	st, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	name := st.Name
	subject := st.Subject
	body := st.Body
	if req.Name != nil {
		name = *req.Name
	}
	if req.Subject != nil {
		subject = *req.Subject
	}
	if req.BodyHTML != nil {
		body = *req.BodyHTML
	}
	if err := st.Update(name, subject, body); err != nil {
		return nil, err
	}

	if req.Cadence != nil || req.Weekday != nil || req.MonthDay != nil || req.TimeOfDay != nil {
		cadence := st.Cadence
		if req.Cadence != nil {
			cadence = schedule.Cadence(*req.Cadence)
		}
		weekday := st.Weekday
		if req.Weekday != nil {
			weekday = toWeekday(req.Weekday)
		}
		monthDay := st.MonthDay
		if req.MonthDay != nil {
			monthDay = req.MonthDay
		}
		timeOfDay := st.TimeOfDay
		if req.TimeOfDay != nil {
			timeOfDay = *req.TimeOfDay
		}
		if err := st.SetCadence(cadence, weekday, monthDay, timeOfDay); err != nil {
			return nil, err
		}
	}

	if req.Priority != nil {
		if err := st.SetPriority(*req.Priority); err != nil {
			return nil, err
		}
	}

	if req.Unassign {
		st.Assign(nil)
	} else if req.AssigneeID != nil {
		if err := s.checkAssignee(ctx, req.AssigneeID); err != nil {
			return nil, err
		}
		st.Assign(req.AssigneeID)
	}

	if req.ClearProject {
		st.SetProject(nil)
	} else if req.ProjectID != nil {
		if err := s.checkProject(ctx, req.ProjectID); err != nil {
			return nil, err
		}
		st.SetProject(req.ProjectID)
	}

	if err := s.scheduleRepo.Save(ctx, st); err != nil {
		return nil, err
	}

	return ToScheduledTicketResponse(st), nil
}

// EnableScheduledTicket lets a schedule fire again
func (s *ScheduleService) EnableScheduledTicket(ctx context.Context, scheduleID uuid.UUID) (*ScheduledTicketResponse, error) {
	st, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if err := st.Enable(); err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.Save(ctx, st); err != nil {
		return nil, err
	}

	return ToScheduledTicketResponse(st), nil
}

// DisableScheduledTicket stops a schedule from firing
func (s *ScheduleService) DisableScheduledTicket(ctx context.Context, scheduleID uuid.UUID) (*ScheduledTicketResponse, error) {
	st, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if err := st.Disable(); err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.Save(ctx, st); err != nil {
		return nil, err
	}

	return ToScheduledTicketResponse(st), nil
}

// DeleteScheduledTicket deletes a scheduled ticket.
// Tickets it already opened are not touched.
func (s *ScheduleService) DeleteScheduledTicket(ctx context.Context, scheduleID uuid.UUID) error {
	st, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return err
	}

	if err := s.scheduleRepo.Delete(ctx, scheduleID); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		event := schedule.NewScheduledTicketDeletedEvent(st)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			// Log error but don't fail the operation
		}
	}

	return nil
}

// RunNow fires a schedule immediately, regardless of its cadence.
// The fire still counts as the schedule's last run.
func (s *ScheduleService) RunNow(ctx context.Context, scheduleID uuid.UUID) (*ticketapp.TicketResponse, error) {
	st, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	return s.fire(ctx, st, time.Now())
}

// RunDue fires every active schedule that is due at the given time and
// returns how many fired. A failing schedule does not stop the others.
func (s *ScheduleService) RunDue(ctx context.Context, now time.Time) (int, error) {
	schedules, err := s.scheduleRepo.FindActive(ctx)
	if err != nil {
		return 0, err
	}

	fired := 0
	var errs []error
	for i := range schedules {
		st := &schedules[i]
		if !st.IsDue(now) {
			continue
		}
		if _, err := s.fire(ctx, st, now); err != nil {
			errs = append(errs, err)
			continue
		}
		fired++
	}

	return fired, errors.Join(errs...)
}

// fire opens a ticket from the schedule's template and records the run
func (s *ScheduleService) fire(ctx context.Context, st *schedule.ScheduledTicket, now time.Time) (*ticketapp.TicketResponse, error) {
	created, err := s.tickets.CreateRecurring(ctx, ticketapp.CreateRecurringTicketRequest{
		Subject:    st.Subject,
		BodyHTML:   st.Body,
		Priority:   st.Priority,
		AssigneeID: st.AssigneeID,
		ProjectID:  st.ProjectID,
	})
	if err != nil {
		return nil, err
	}

	st.MarkRan(now)

	if err := s.scheduleRepo.Save(ctx, st); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := schedule.NewScheduledTicketFiredEvent(st, created.ID)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			// Log error but don't fail the operation
		}
	}

	return created, nil
}

func (s *ScheduleService) checkAssignee(ctx context.Context, assigneeID *uuid.UUID) error {
	if assigneeID == nil {
		return nil
	}
	user, err := s.userRepo.FindByID(ctx, *assigneeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_ASSIGNEE", "Assignee does not exist")
		}
		return err
	}
	if !user.IsActive() {
		return shared.NewDomainError("USER_DEACTIVATED", "Assignee is deactivated")
	}
	return nil
}

func (s *ScheduleService) checkProject(ctx context.Context, projectID *uuid.UUID) error {
	if projectID == nil {
		return nil
	}
	if _, err := s.projectRepo.FindByID(ctx, *projectID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_PROJECT", "Project does not exist")
		}
		return err
	}
	return nil
}

func toWeekday(day *int) *time.Weekday {
	if day == nil {
		return nil
	}
	wd := time.Weekday(*day)
	return &wd
}

func buildScheduleFilter(filter *ScheduledTicketListFilter) shared.Filter {
	repoFilter := shared.Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "name",
		OrderDir: "asc",
		Filters:  make(map[string]interface{}),
	}

	if filter == nil {
		return repoFilter
	}

	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		repoFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		repoFilter.OrderDir = filter.OrderDir
	}
	if filter.Search != "" {
		repoFilter.Search = filter.Search
	}
	if filter.Active != nil {
		repoFilter.Filters["active"] = *filter.Active
	}
	if filter.Cadence != "" {
		repoFilter.Filters["cadence"] = filter.Cadence
	}

	return repoFilter
}

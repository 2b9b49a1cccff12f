package schedule

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// Cadence represents how often a scheduled ticket fires
type Cadence string

const (
	CadenceDaily   Cadence = "DAILY"
	CadenceWeekly  Cadence = "WEEKLY"
	CadenceMonthly Cadence = "MONTHLY"
)

// IsValid checks if the cadence is a valid Cadence
func (c Cadence) IsValid() bool {
	switch c {
	case CadenceDaily, CadenceWeekly, CadenceMonthly:
		return true
	}
	return false
}

// String returns the string representation of Cadence
func (c Cadence) String() string {
	return string(c)
}

// timeOfDayRegex validates HH:MM in 24-hour form
var timeOfDayRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ticketPriorities mirrors the priorities accepted by the ticket domain
var ticketPriorities = map[string]bool{
	"LOW":    true,
	"NORMAL": true,
	"HIGH":   true,
	"URGENT": true,
}

// ScheduledTicket is a template that opens a ticket on a recurring cadence.
// The scheduler checks every minute; LastRunAt guards against double fires
// within the same minute. Monthly schedules are capped at day 28 so they
// fire in every month.
type ScheduledTicket struct {
	shared.AuditedAggregateRoot
	Name       string        `gorm:"type:varchar(200);not null"` // Admin-facing label
	Subject    string        `gorm:"type:varchar(500);not null"` // Becomes the ticket subject
	Body       string        `gorm:"type:text"`                  // Becomes the ticket body
	Priority   string        `gorm:"type:varchar(20);not null;default:'NORMAL'"`
	AssigneeID *uuid.UUID    `gorm:"type:uuid;index"`
	ProjectID  *uuid.UUID    `gorm:"type:uuid;index"`
	Cadence    Cadence       `gorm:"type:varchar(20);not null"`
	Weekday    *time.Weekday `gorm:"type:smallint"` // Required for weekly, 0=Sunday
	MonthDay   *int          `gorm:"type:smallint"` // Required for monthly, 1-28
	TimeOfDay  string        `gorm:"type:varchar(5);not null"` // HH:MM, 24-hour
	Active     bool          `gorm:"not null;default:true"`
	LastRunAt  *time.Time
}

// TableName returns the table name for GORM
func (ScheduledTicket) TableName() string {
	return "scheduled_tickets"
}

// NewScheduledTicket creates a daily scheduled ticket with NORMAL priority
// Use SetCadence and SetPriority to adjust
func NewScheduledTicket(name, subject, body, timeOfDay string) (*ScheduledTicket, error) {
	if err := validateScheduleName(name); err != nil {
		return nil, err
	}
	if err := validateSubject(subject); err != nil {
		return nil, err
	}
	if err := validateTimeOfDay(timeOfDay); err != nil {
		return nil, err
	}

	st := &ScheduledTicket{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Name:                 strings.TrimSpace(name),
		Subject:              strings.TrimSpace(subject),
		Body:                 body,
		Priority:             "NORMAL",
		Cadence:              CadenceDaily,
		TimeOfDay:            timeOfDay,
		Active:               true,
	}

	st.AddDomainEvent(NewScheduledTicketCreatedEvent(st))

	return st, nil
}

// Update updates the name, subject, and body
func (st *ScheduledTicket) Update(name, subject, body string) error {
	if err := validateScheduleName(name); err != nil {
		return err
	}
	if err := validateSubject(subject); err != nil {
		return err
	}

	st.Name = strings.TrimSpace(name)
	st.Subject = strings.TrimSpace(subject)
	st.Body = body
	st.UpdatedAt = time.Now()
	st.IncrementVersion()

	return nil
}

// SetCadence sets when the ticket fires
// Weekly cadences need a weekday; monthly cadences need a day of month
func (st *ScheduledTicket) SetCadence(cadence Cadence, weekday *time.Weekday, monthDay *int, timeOfDay string) error {
	if err := validateTimeOfDay(timeOfDay); err != nil {
		return err
	}

	switch cadence {
	case CadenceDaily:
		weekday = nil
		monthDay = nil
	case CadenceWeekly:
		if weekday == nil {
			return shared.NewDomainError("INVALID_CADENCE", "Weekly schedules require a weekday")
		}
		if *weekday < time.Sunday || *weekday > time.Saturday {
			return shared.NewDomainError("INVALID_CADENCE", "Weekday must be between Sunday and Saturday")
		}
		monthDay = nil
	case CadenceMonthly:
		if monthDay == nil {
			return shared.NewDomainError("INVALID_CADENCE", "Monthly schedules require a day of month")
		}
		if *monthDay < 1 || *monthDay > 28 {
			return shared.NewDomainError("INVALID_CADENCE", "Day of month must be between 1 and 28")
		}
		weekday = nil
	default:
		return shared.NewDomainError("INVALID_CADENCE", fmt.Sprintf("Unknown cadence: %s", cadence))
	}

	st.Cadence = cadence
	st.Weekday = weekday
	st.MonthDay = monthDay
	st.TimeOfDay = timeOfDay
	st.UpdatedAt = time.Now()
	st.IncrementVersion()

	return nil
}

// SetPriority sets the priority given to generated tickets
func (st *ScheduledTicket) SetPriority(priority string) error {
	priority = strings.ToUpper(strings.TrimSpace(priority))
	if !ticketPriorities[priority] {
		return shared.NewDomainError("INVALID_PRIORITY", fmt.Sprintf("Unknown priority: %s", priority))
	}

	st.Priority = priority
	st.UpdatedAt = time.Now()
	st.IncrementVersion()

	return nil
}

// Assign sets the user new tickets will be assigned to, or nil for unassigned
func (st *ScheduledTicket) Assign(userID *uuid.UUID) {
	st.AssigneeID = userID
	st.UpdatedAt = time.Now()
	st.IncrementVersion()
}

// SetProject sets the project new tickets are filed under, or nil for none
func (st *ScheduledTicket) SetProject(projectID *uuid.UUID) {
	st.ProjectID = projectID
	st.UpdatedAt = time.Now()
	st.IncrementVersion()
}

// Disable stops the schedule from firing
func (st *ScheduledTicket) Disable() error {
	if !st.Active {
		return shared.NewDomainError("ALREADY_DISABLED", "Schedule is already disabled")
	}

	st.Active = false
	st.UpdatedAt = time.Now()
	st.IncrementVersion()

	return nil
}

// Enable lets the schedule fire again
func (st *ScheduledTicket) Enable() error {
	if st.Active {
		return shared.NewDomainError("ALREADY_ENABLED", "Schedule is already enabled")
	}

	st.Active = true
	st.UpdatedAt = time.Now()
	st.IncrementVersion()

	return nil
}

// IsDue reports whether the schedule should fire at the given time.
// A schedule fires when its date rule matches, the clock reads its
// configured HH:MM, and it has not already fired in that same minute.
func (st *ScheduledTicket) IsDue(now time.Time) bool {
	if !st.Active {
		return false
	}

	if now.Format("15:04") != st.TimeOfDay {
		return false
	}

	switch st.Cadence {
	case CadenceDaily:
		// Always matches the date
	case CadenceWeekly:
		if st.Weekday == nil || now.Weekday() != *st.Weekday {
			return false
		}
	case CadenceMonthly:
		if st.MonthDay == nil || now.Day() != *st.MonthDay {
			return false
		}
	default:
		return false
	}

	if st.LastRunAt != nil && st.LastRunAt.Truncate(time.Minute).Equal(now.Truncate(time.Minute)) {
		return false
	}

	return true
}

// MarkRan records that the schedule fired
func (st *ScheduledTicket) MarkRan(at time.Time) {
	st.LastRunAt = &at
	st.UpdatedAt = time.Now()
	st.IncrementVersion()
}

func validateScheduleName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Schedule name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Schedule name cannot exceed 200 characters")
	}
	return nil
}

func validateSubject(subject string) error {
	if strings.TrimSpace(subject) == "" {
		return shared.NewDomainError("INVALID_SUBJECT", "Subject cannot be empty")
	}
	if len(subject) > 500 {
		return shared.NewDomainError("INVALID_SUBJECT", "Subject cannot exceed 500 characters")
	}
	return nil
}

func validateTimeOfDay(timeOfDay string) error {
	if !timeOfDayRegex.MatchString(timeOfDay) {
		return shared.NewDomainError("INVALID_TIME", "Time of day must be HH:MM in 24-hour form")
	}
	return nil
}

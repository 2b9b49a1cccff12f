package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	mailroomapp "github.com/opsdesk/backend/internal/application/mailroom"
	ticketapp "github.com/opsdesk/backend/internal/application/ticket"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// Job names as they appear in logs and job history
const (
	JobMailboxPoll      = "mailbox_poll"
	JobDropFolderScan   = "drop_folder_scan"
	JobRecurringTickets = "recurring_tickets"
	JobSnoozeWake       = "snooze_wake"
	JobPollLockWatchdog = "poll_lock_watchdog"
	JobIntakeRetention  = "intake_retention"
)

// ---------------------------------------------------------------------------
// Job dependencies
// ---------------------------------------------------------------------------

// MailboxPoller runs mailbox poll cycles and owns the poll bookkeeping
type MailboxPoller interface {
	// PollInterval returns the configured time between poll cycles
	PollInterval(ctx context.Context) time.Duration

	// Poll runs one mailbox poll cycle
	Poll(ctx context.Context) (*mailroomapp.PollRunResponse, error)

	// PurgeOldRuns deletes poll runs older than the retention window
	PurgeOldRuns(ctx context.Context, now time.Time) (int64, error)

	// ClearStaleLock releases a poll lock left behind by a dead process
	ClearStaleLock(ctx context.Context) (bool, error)
}

// ScheduleRunner opens tickets for recurring schedules that are due
type ScheduleRunner interface {
	RunDue(ctx context.Context, now time.Time) (int, error)
}

// SnoozeWaker finds and wakes tickets whose snooze has expired
type SnoozeWaker interface {
	ListSnoozeExpired(ctx context.Context, now time.Time) ([]ticketapp.TicketListItemResponse, error)
	Wake(ctx context.Context, ticketID uuid.UUID) (*ticketapp.TicketResponse, error)
}

// DropFolderScanner imports scanner submissions from the drop folder
type DropFolderScanner interface {
	Scan(ctx context.Context) (*mailroomapp.PollRunResponse, error)
}

// ---------------------------------------------------------------------------
// CronTriggerConfig
// ---------------------------------------------------------------------------

// CronTriggerConfig holds configuration for the cron trigger
type CronTriggerConfig struct {
	// CheckInterval is how often job schedules are evaluated
	CheckInterval time.Duration

	// WatchdogInterval is how often the poll lock watchdog runs
	WatchdogInterval time.Duration

	// RetentionHour and RetentionMinute set the daily intake log purge time
	RetentionHour   int
	RetentionMinute int
}

// DefaultCronTriggerConfig returns default configuration
func DefaultCronTriggerConfig() CronTriggerConfig {
	return CronTriggerConfig{
		CheckInterval:    time.Minute,
		WatchdogInterval: 5 * time.Minute,
		RetentionHour:    3,
		RetentionMinute:  0,
	}
}

// Validate checks the configuration
func (c CronTriggerConfig) Validate() error {
	if c.CheckInterval <= 0 {
		return fmt.Errorf("%w: check interval must be positive", ErrInvalidConfig)
	}
	if c.WatchdogInterval <= 0 {
		return fmt.Errorf("%w: watchdog interval must be positive", ErrInvalidConfig)
	}
	if c.RetentionHour < 0 || c.RetentionHour > 23 {
		return fmt.Errorf("%w: retention hour must be 0-23", ErrInvalidConfig)
	}
	if c.RetentionMinute < 0 || c.RetentionMinute > 59 {
		return fmt.Errorf("%w: retention minute must be 0-59", ErrInvalidConfig)
	}
	return nil
}

// ---------------------------------------------------------------------------
// CronTrigger
// ---------------------------------------------------------------------------

// CronTrigger submits the recurring background jobs to the scheduler: mailbox
// polls, drop folder scans, recurring ticket schedules, snooze wakeups, the
// poll lock watchdog, and the daily intake log purge.
type CronTrigger struct {
	config    CronTriggerConfig
	scheduler *Scheduler
	poller    MailboxPoller
	schedules ScheduleRunner
	tickets   SnoozeWaker
	intake    DropFolderScanner
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	// lastRunMu guards the per-job trigger bookkeeping below
	lastRunMu         sync.Mutex
	lastPollAt        time.Time
	lastScanAt        time.Time
	lastWatchdogAt    time.Time
	lastRetentionDate string
}

// NewCronTrigger creates a cron trigger. The intake scanner may be nil when
// no drop folder is configured.
func NewCronTrigger(
	config CronTriggerConfig,
	sched *Scheduler,
	poller MailboxPoller,
	schedules ScheduleRunner,
	tickets SnoozeWaker,
	intake DropFolderScanner,
	logger *zap.Logger,
) (*CronTrigger, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &CronTrigger{
		config:    config,
		scheduler: sched,
		poller:    poller,
		schedules: schedules,
		tickets:   tickets,
		intake:    intake,
		logger:    logger,
	}, nil
}

// Start starts the trigger loop
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Cron trigger started",
		zap.Duration("check_interval", c.config.CheckInterval),
		zap.Duration("watchdog_interval", c.config.WatchdogInterval),
		zap.String("retention_at", fmt.Sprintf("%02d:%02d", c.config.RetentionHour, c.config.RetentionMinute)),
		zap.Bool("drop_folder_enabled", c.intake != nil),
	)

	return nil
}

// Stop stops the trigger loop
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop evaluates job schedules on every tick
func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	// Run immediately on start
	c.checkAndTrigger(ctx, time.Now())

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger(ctx, time.Now())
		}
	}
}

// checkAndTrigger submits every job whose schedule has come due
func (c *CronTrigger) checkAndTrigger(ctx context.Context, now time.Time) {
	// Recurring schedules and snooze wakeups run on every tick. Both are
	// cheap no-ops when nothing is due.
	c.submit(NewJob(JobRecurringTickets, 0, c.runRecurringTickets))
	c.submit(NewJob(JobSnoozeWake, 0, c.runSnoozeWake))

	c.lastRunMu.Lock()
	defer c.lastRunMu.Unlock()

	// The poll interval is a runtime setting, so it is re-read on every
	// tick. Intervals below the check interval degrade to one poll per tick.
	pollInterval := c.poller.PollInterval(ctx)
	if now.Sub(c.lastPollAt) >= pollInterval {
		c.lastPollAt = now
		c.submit(NewJob(JobMailboxPoll, 0, c.runMailboxPoll))
	}

	if c.intake != nil && now.Sub(c.lastScanAt) >= pollInterval {
		c.lastScanAt = now
		c.submit(NewJob(JobDropFolderScan, 0, c.runDropFolderScan))
	}

	if now.Sub(c.lastWatchdogAt) >= c.config.WatchdogInterval {
		c.lastWatchdogAt = now
		c.submit(NewJob(JobPollLockWatchdog, 0, c.runPollLockWatchdog))
	}

	if c.shouldRunRetention(now) {
		c.lastRetentionDate = now.Format("2006-01-02")
		c.submit(NewJob(JobIntakeRetention, c.scheduler.config.RetryAttempts, c.runIntakeRetention))
	}
}

// shouldRunRetention checks whether the daily purge is due. Callers must hold
// lastRunMu.
func (c *CronTrigger) shouldRunRetention(now time.Time) bool {
	if now.Hour() != c.config.RetentionHour || now.Minute() != c.config.RetentionMinute {
		return false
	}
	return c.lastRetentionDate != now.Format("2006-01-02")
}

// submit queues a job, logging instead of failing when the queue is full
func (c *CronTrigger) submit(job *Job) {
	if err := c.scheduler.SubmitJob(job); err != nil {
		c.logger.Warn("Failed to submit scheduled job",
			zap.String("job", job.Name),
			zap.Error(err),
		)
	}
}

// ---------------------------------------------------------------------------
// Job tasks
// ---------------------------------------------------------------------------

// runMailboxPoll runs one mailbox poll cycle. A disabled mailbox or a poll
// already holding the lock is routine, not a job failure.
func (c *CronTrigger) runMailboxPoll(ctx context.Context) error {
	run, err := c.poller.Poll(ctx)
	if err != nil {
		if code := domainErrorCode(err); code == "POLL_DISABLED" || code == "POLL_IN_PROGRESS" {
			c.logger.Debug("Mailbox poll skipped", zap.String("reason", code))
			return nil
		}
		return err
	}

	if run.TicketsCreated > 0 || run.NotesAppended > 0 {
		c.logger.Info("Mailbox poll imported mail",
			zap.Int("messages_seen", run.MessagesSeen),
			zap.Int("tickets_created", run.TicketsCreated),
			zap.Int("notes_appended", run.NotesAppended),
		)
	}
	return nil
}

// runDropFolderScan imports pending scanner submissions
func (c *CronTrigger) runDropFolderScan(ctx context.Context) error {
	run, err := c.intake.Scan(ctx)
	if err != nil {
		return err
	}

	// A nil run means the drop folder was empty.
	if run != nil && run.TicketsCreated > 0 {
		c.logger.Info("Drop folder scan imported submissions",
			zap.Int("messages_seen", run.MessagesSeen),
			zap.Int("tickets_created", run.TicketsCreated),
		)
	}
	return nil
}

// runRecurringTickets opens tickets for schedules that are due
func (c *CronTrigger) runRecurringTickets(ctx context.Context) error {
	opened, err := c.schedules.RunDue(ctx, time.Now())
	if err != nil {
		return err
	}

	if opened > 0 {
		c.logger.Info("Recurring schedules opened tickets", zap.Int("tickets", opened))
	}
	return nil
}

// runSnoozeWake wakes every ticket whose snooze has expired
func (c *CronTrigger) runSnoozeWake(ctx context.Context) error {
	due, err := c.tickets.ListSnoozeExpired(ctx, time.Now())
	if err != nil {
		return err
	}

	for _, item := range due {
		if _, err := c.tickets.Wake(ctx, item.ID); err != nil {
			// The ticket stays snoozed and the next pass retries it.
			c.logger.Error("Failed to wake snoozed ticket",
				zap.String("ticket_id", item.ID.String()),
				zap.Int("number", item.Number),
				zap.Error(err),
			)
		}
	}
	return nil
}

// runPollLockWatchdog releases a poll lock abandoned by a dead process
func (c *CronTrigger) runPollLockWatchdog(ctx context.Context) error {
	cleared, err := c.poller.ClearStaleLock(ctx)
	if err != nil {
		return err
	}

	if cleared {
		c.logger.Warn("Cleared stale mailbox poll lock")
	}
	return nil
}

// runIntakeRetention purges poll runs older than the retention window
func (c *CronTrigger) runIntakeRetention(ctx context.Context) error {
	purged, err := c.poller.PurgeOldRuns(ctx, time.Now())
	if err != nil {
		return err
	}

	if purged > 0 {
		c.logger.Info("Purged old intake runs", zap.Int64("runs", purged))
	}
	return nil
}

// GetStatus returns the trigger state for diagnostics
func (c *CronTrigger) GetStatus() map[string]interface{} {
	c.mu.Lock()
	running := c.isRunning
	c.mu.Unlock()

	c.lastRunMu.Lock()
	defer c.lastRunMu.Unlock()

	status := map[string]interface{}{
		"is_running":          running,
		"check_interval":      c.config.CheckInterval.String(),
		"watchdog_interval":   c.config.WatchdogInterval.String(),
		"retention_at":        fmt.Sprintf("%02d:%02d", c.config.RetentionHour, c.config.RetentionMinute),
		"drop_folder_enabled": c.intake != nil,
	}
	if !c.lastPollAt.IsZero() {
		status["last_poll_at"] = c.lastPollAt.Format(time.RFC3339)
	}
	if !c.lastScanAt.IsZero() {
		status["last_scan_at"] = c.lastScanAt.Format(time.RFC3339)
	}
	if c.lastRetentionDate != "" {
		status["last_retention_date"] = c.lastRetentionDate
	}
	return status
}

// domainErrorCode extracts the code from a domain error, or returns ""
func domainErrorCode(err error) string {
	var derr *shared.DomainError
	if errors.As(err, &derr) {
		return derr.Code
	}
	return ""
}

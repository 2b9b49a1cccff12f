package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailroomapp "github.com/opsdesk/backend/internal/application/mailroom"
	ticketapp "github.com/opsdesk/backend/internal/application/ticket"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// ---------------------------------------------------------------------------
// Test Fakes
// ---------------------------------------------------------------------------

type fakePoller struct {
	interval    time.Duration
	pollResult  *mailroomapp.PollRunResponse
	pollErr     error
	purgeResult int64
	purgeErr    error
	cleared     bool
	clearErr    error

	pollCount  int32
	purgeCount int32
	clearCount int32
}

func (f *fakePoller) PollInterval(ctx context.Context) time.Duration {
	if f.interval > 0 {
		return f.interval
	}
	return time.Minute
}

func (f *fakePoller) Poll(ctx context.Context) (*mailroomapp.PollRunResponse, error) {
	atomic.AddInt32(&f.pollCount, 1)
	if f.pollErr != nil {
		return nil, f.pollErr
	}
	if f.pollResult != nil {
		return f.pollResult, nil
	}
	return &mailroomapp.PollRunResponse{Status: "OK"}, nil
}

func (f *fakePoller) PurgeOldRuns(ctx context.Context, now time.Time) (int64, error) {
	atomic.AddInt32(&f.purgeCount, 1)
	return f.purgeResult, f.purgeErr
}

func (f *fakePoller) ClearStaleLock(ctx context.Context) (bool, error) {
	atomic.AddInt32(&f.clearCount, 1)
	return f.cleared, f.clearErr
}

type fakeScheduleRunner struct {
	opened   int
	runErr   error
	runCount int32
}

func (f *fakeScheduleRunner) RunDue(ctx context.Context, now time.Time) (int, error) {
	atomic.AddInt32(&f.runCount, 1)
	return f.opened, f.runErr
}

type fakeSnoozeWaker struct {
	due     []ticketapp.TicketListItemResponse
	listErr error
	wakeErr error

	listCount int32
	mu        sync.Mutex
	woken     []uuid.UUID
}

func (f *fakeSnoozeWaker) ListSnoozeExpired(ctx context.Context, now time.Time) ([]ticketapp.TicketListItemResponse, error) {
	atomic.AddInt32(&f.listCount, 1)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.due, nil
}

func (f *fakeSnoozeWaker) Wake(ctx context.Context, ticketID uuid.UUID) (*ticketapp.TicketResponse, error) {
	f.mu.Lock()
	f.woken = append(f.woken, ticketID)
	f.mu.Unlock()
	if f.wakeErr != nil {
		return nil, f.wakeErr
	}
	return &ticketapp.TicketResponse{}, nil
}

func (f *fakeSnoozeWaker) wokenIDs() []uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uuid.UUID(nil), f.woken...)
}

type fakeDropScanner struct {
	result    *mailroomapp.PollRunResponse
	scanErr   error
	scanCount int32
}

func (f *fakeDropScanner) Scan(ctx context.Context) (*mailroomapp.PollRunResponse, error) {
	atomic.AddInt32(&f.scanCount, 1)
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	return f.result, nil
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type triggerFixture struct {
	trigger   *CronTrigger
	scheduler *Scheduler
	poller    *fakePoller
	schedules *fakeScheduleRunner
	tickets   *fakeSnoozeWaker
	intake    *fakeDropScanner
}

func newTriggerFixture(t *testing.T, cfg CronTriggerConfig, withIntake bool) *triggerFixture {
	t.Helper()

	s, err := NewScheduler(DefaultConfig(), newTestLogger())
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Stop(stopCtx)
	})

	f := &triggerFixture{
		scheduler: s,
		poller:    &fakePoller{},
		schedules: &fakeScheduleRunner{},
		tickets:   &fakeSnoozeWaker{},
	}

	// A typed nil would not compare equal to nil inside the trigger, so the
	// interface stays unset unless a scanner really exists.
	var intake DropFolderScanner
	if withIntake {
		f.intake = &fakeDropScanner{}
		intake = f.intake
	}

	trigger, err := NewCronTrigger(cfg, s, f.poller, f.schedules, f.tickets, intake, newTestLogger())
	require.NoError(t, err)
	f.trigger = trigger
	return f
}

// ---------------------------------------------------------------------------
// ParseCronSchedule Tests
// ---------------------------------------------------------------------------

func TestParseCronSchedule(t *testing.T) {
	tests := []struct {
		name         string
		cronExpr     string
		expectedHour int
		expectedMin  int
		wantErr      bool
	}{
		{"Default purge time", "0 3 * * *", 3, 0, false},
		{"2:30am", "30 2 * * *", 2, 30, false},
		{"Midnight", "0 0 * * *", 0, 0, false},
		{"11pm", "0 23 * * *", 23, 0, false},
		{"Empty string defaults", "", 3, 0, false},
		{"Wildcards default", "* * * * *", 3, 0, false},
		{"Extra whitespace", "  15   4   *   *   *  ", 4, 15, false},
		{"Too few fields defaults", "5", 3, 0, false},
		{"Non-numeric minute falls back", "abc 5 * * *", 5, 0, false},
		{"Minute out of range", "99 2 * * *", 0, 0, true},
		{"Hour out of range", "0 24 * * *", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := ParseCronSchedule(tt.cronExpr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedHour, hour, "hour mismatch")
			assert.Equal(t, tt.expectedMin, minute, "minute mismatch")
		})
	}
}

// ---------------------------------------------------------------------------
// CronTriggerConfig Tests
// ---------------------------------------------------------------------------

func TestDefaultCronTriggerConfig(t *testing.T) {
	cfg := DefaultCronTriggerConfig()

	assert.Equal(t, time.Minute, cfg.CheckInterval)
	assert.Equal(t, 5*time.Minute, cfg.WatchdogInterval)
	assert.Equal(t, 3, cfg.RetentionHour)
	assert.Equal(t, 0, cfg.RetentionMinute)
}

func TestCronTriggerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CronTriggerConfig)
		wantErr bool
	}{
		{"Valid default config", func(c *CronTriggerConfig) {}, false},
		{"Zero check interval", func(c *CronTriggerConfig) { c.CheckInterval = 0 }, true},
		{"Zero watchdog interval", func(c *CronTriggerConfig) { c.WatchdogInterval = 0 }, true},
		{"Retention hour too large", func(c *CronTriggerConfig) { c.RetentionHour = 24 }, true},
		{"Retention minute negative", func(c *CronTriggerConfig) { c.RetentionMinute = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCronTriggerConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewCronTrigger_InvalidConfig(t *testing.T) {
	trigger, err := NewCronTrigger(CronTriggerConfig{}, nil, nil, nil, nil, nil, newTestLogger())

	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, trigger)
}

// ---------------------------------------------------------------------------
// CronTrigger Tests
// ---------------------------------------------------------------------------

func TestCronTrigger_StartStop(t *testing.T) {
	cfg := DefaultCronTriggerConfig()
	cfg.CheckInterval = time.Hour
	f := newTriggerFixture(t, cfg, false)

	ctx := context.Background()

	err := f.trigger.Start(ctx)
	require.NoError(t, err)

	// Start again should be idempotent
	err = f.trigger.Start(ctx)
	require.NoError(t, err)

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err = f.trigger.Stop(stopCtx)
	require.NoError(t, err)

	// Stop again should be idempotent
	err = f.trigger.Stop(stopCtx)
	require.NoError(t, err)
}

func TestCronTrigger_CheckAndTrigger(t *testing.T) {
	f := newTriggerFixture(t, DefaultCronTriggerConfig(), true)
	f.poller.interval = 5 * time.Minute

	ctx := context.Background()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	// First check fires everything whose gate starts cold, the second is one
	// minute later and only the per-tick jobs run, the third crosses both the
	// poll and watchdog intervals.
	f.trigger.checkAndTrigger(ctx, base)
	f.trigger.checkAndTrigger(ctx, base.Add(time.Minute))
	f.trigger.checkAndTrigger(ctx, base.Add(5*time.Minute))

	time.Sleep(300 * time.Millisecond)

	assert.Equal(t, int32(3), atomic.LoadInt32(&f.schedules.runCount))
	assert.Equal(t, int32(3), atomic.LoadInt32(&f.tickets.listCount))
	assert.Equal(t, int32(2), atomic.LoadInt32(&f.poller.pollCount))
	assert.Equal(t, int32(2), atomic.LoadInt32(&f.intake.scanCount))
	assert.Equal(t, int32(2), atomic.LoadInt32(&f.poller.clearCount))
	assert.Equal(t, int32(0), atomic.LoadInt32(&f.poller.purgeCount))
}

func TestCronTrigger_NoDropFolder(t *testing.T) {
	f := newTriggerFixture(t, DefaultCronTriggerConfig(), false)

	ctx := context.Background()
	f.trigger.checkAndTrigger(ctx, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	time.Sleep(200 * time.Millisecond)

	assert.Equal(t, int32(1), atomic.LoadInt32(&f.poller.pollCount))
	assert.Equal(t, int32(1), atomic.LoadInt32(&f.schedules.runCount))
}

func TestCronTrigger_RetentionOncePerDay(t *testing.T) {
	f := newTriggerFixture(t, DefaultCronTriggerConfig(), false)

	ctx := context.Background()
	day1 := time.Date(2026, 3, 10, 3, 0, 10, 0, time.UTC)

	f.trigger.checkAndTrigger(ctx, day1)
	f.trigger.checkAndTrigger(ctx, day1.Add(20*time.Second))
	f.trigger.checkAndTrigger(ctx, day1.AddDate(0, 0, 1))

	time.Sleep(300 * time.Millisecond)

	assert.Equal(t, int32(2), atomic.LoadInt32(&f.poller.purgeCount))
}

func TestShouldRunRetention(t *testing.T) {
	c := &CronTrigger{
		config: CronTriggerConfig{RetentionHour: 3, RetentionMinute: 30},
	}

	tests := []struct {
		name     string
		time     time.Time
		lastDate string
		expected bool
	}{
		{"Exact match", time.Date(2026, 1, 15, 3, 30, 0, 0, time.UTC), "", true},
		{"Wrong hour", time.Date(2026, 1, 15, 4, 30, 0, 0, time.UTC), "", false},
		{"Wrong minute", time.Date(2026, 1, 15, 3, 31, 0, 0, time.UTC), "", false},
		{"Already ran today", time.Date(2026, 1, 15, 3, 30, 0, 0, time.UTC), "2026-01-15", false},
		{"Ran yesterday", time.Date(2026, 1, 15, 3, 30, 0, 0, time.UTC), "2026-01-14", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.lastRetentionDate = tt.lastDate
			assert.Equal(t, tt.expected, c.shouldRunRetention(tt.time))
		})
	}
}

func TestCronTrigger_RunLoop(t *testing.T) {
	cfg := DefaultCronTriggerConfig()
	cfg.CheckInterval = 20 * time.Millisecond
	f := newTriggerFixture(t, cfg, true)
	f.poller.interval = time.Millisecond

	ctx := context.Background()
	require.NoError(t, f.trigger.Start(ctx))

	time.Sleep(150 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, f.trigger.Stop(stopCtx))

	assert.GreaterOrEqual(t, atomic.LoadInt32(&f.poller.pollCount), int32(2))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&f.schedules.runCount), int32(2))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&f.tickets.listCount), int32(2))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&f.intake.scanCount), int32(2))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&f.poller.clearCount), int32(1))
}

// ---------------------------------------------------------------------------
// Job Task Tests
// ---------------------------------------------------------------------------

func TestRunMailboxPoll(t *testing.T) {
	f := newTriggerFixture(t, DefaultCronTriggerConfig(), false)
	ctx := context.Background()

	t.Run("Successful poll", func(t *testing.T) {
		f.poller.pollErr = nil
		assert.NoError(t, f.trigger.runMailboxPoll(ctx))
	})

	t.Run("Disabled mailbox is not a failure", func(t *testing.T) {
		f.poller.pollErr = shared.NewDomainError("POLL_DISABLED", "Mailbox polling is disabled")
		assert.NoError(t, f.trigger.runMailboxPoll(ctx))
	})

	t.Run("Concurrent poll is not a failure", func(t *testing.T) {
		f.poller.pollErr = shared.NewDomainError("POLL_IN_PROGRESS", "A mailbox poll is already running")
		assert.NoError(t, f.trigger.runMailboxPoll(ctx))
	})

	t.Run("Other errors propagate", func(t *testing.T) {
		f.poller.pollErr = assert.AnError
		assert.ErrorIs(t, f.trigger.runMailboxPoll(ctx), assert.AnError)
	})
}

func TestRunDropFolderScan(t *testing.T) {
	f := newTriggerFixture(t, DefaultCronTriggerConfig(), true)
	ctx := context.Background()

	t.Run("Empty folder returns nil run", func(t *testing.T) {
		f.intake.result = nil
		assert.NoError(t, f.trigger.runDropFolderScan(ctx))
	})

	t.Run("Imported submissions", func(t *testing.T) {
		f.intake.result = &mailroomapp.PollRunResponse{Status: "OK", MessagesSeen: 2, TicketsCreated: 2}
		assert.NoError(t, f.trigger.runDropFolderScan(ctx))
	})

	t.Run("Scan errors propagate", func(t *testing.T) {
		f.intake.scanErr = assert.AnError
		assert.ErrorIs(t, f.trigger.runDropFolderScan(ctx), assert.AnError)
	})
}

func TestRunSnoozeWake(t *testing.T) {
	f := newTriggerFixture(t, DefaultCronTriggerConfig(), false)
	ctx := context.Background()

	idA := uuid.New()
	idB := uuid.New()
	f.tickets.due = []ticketapp.TicketListItemResponse{
		{ID: idA, Number: 101},
		{ID: idB, Number: 102},
	}

	require.NoError(t, f.trigger.runSnoozeWake(ctx))
	assert.Equal(t, []uuid.UUID{idA, idB}, f.tickets.wokenIDs())
}

func TestRunSnoozeWake_WakeFailureTolerated(t *testing.T) {
	f := newTriggerFixture(t, DefaultCronTriggerConfig(), false)
	ctx := context.Background()

	f.tickets.due = []ticketapp.TicketListItemResponse{{ID: uuid.New(), Number: 103}}
	f.tickets.wakeErr = assert.AnError

	// A wake failure is logged and retried on the next pass.
	assert.NoError(t, f.trigger.runSnoozeWake(ctx))
	assert.Len(t, f.tickets.wokenIDs(), 1)
}

func TestRunSnoozeWake_ListFailure(t *testing.T) {
	f := newTriggerFixture(t, DefaultCronTriggerConfig(), false)
	ctx := context.Background()

	f.tickets.listErr = assert.AnError

	assert.ErrorIs(t, f.trigger.runSnoozeWake(ctx), assert.AnError)
}

func TestRunPollLockWatchdog(t *testing.T) {
	f := newTriggerFixture(t, DefaultCronTriggerConfig(), false)
	ctx := context.Background()

	f.poller.cleared = true
	assert.NoError(t, f.trigger.runPollLockWatchdog(ctx))

	f.poller.clearErr = assert.AnError
	assert.ErrorIs(t, f.trigger.runPollLockWatchdog(ctx), assert.AnError)
}

func TestRunIntakeRetention(t *testing.T) {
	f := newTriggerFixture(t, DefaultCronTriggerConfig(), false)
	ctx := context.Background()

	f.poller.purgeResult = 4
	assert.NoError(t, f.trigger.runIntakeRetention(ctx))

	f.poller.purgeErr = assert.AnError
	assert.ErrorIs(t, f.trigger.runIntakeRetention(ctx), assert.AnError)
}

func TestCronTrigger_GetStatus(t *testing.T) {
	f := newTriggerFixture(t, DefaultCronTriggerConfig(), true)

	status := f.trigger.GetStatus()
	assert.Equal(t, false, status["is_running"])
	assert.Equal(t, "1m0s", status["check_interval"])
	assert.Equal(t, "5m0s", status["watchdog_interval"])
	assert.Equal(t, "03:00", status["retention_at"])
	assert.Equal(t, true, status["drop_folder_enabled"])
	assert.NotContains(t, status, "last_poll_at")

	f.trigger.checkAndTrigger(context.Background(), time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	status = f.trigger.GetStatus()
	assert.Contains(t, status, "last_poll_at")
}

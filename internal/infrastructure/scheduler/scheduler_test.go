package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

// ---------------------------------------------------------------------------
// Job Tests
// ---------------------------------------------------------------------------

func TestNewJob(t *testing.T) {
	job := NewJob(JobMailboxPoll, 3, func(ctx context.Context) error { return nil })

	assert.NotEqual(t, uuid.Nil, job.ID)
	assert.Equal(t, JobMailboxPoll, job.Name)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, 3, job.MaxRetries)
	assert.Equal(t, 0, job.RetryCount)
	assert.Nil(t, job.StartedAt)
	assert.Nil(t, job.CompletedAt)
}

func TestJob_Start(t *testing.T) {
	job := NewJob(JobSnoozeWake, 0, func(ctx context.Context) error { return nil })
	job.Error = "previous error"

	job.Start()

	assert.Equal(t, JobStatusRunning, job.Status)
	assert.NotNil(t, job.StartedAt)
	assert.Empty(t, job.Error)
	assert.Nil(t, job.NextRetryAt)
}

func TestJob_Complete(t *testing.T) {
	job := NewJob(JobSnoozeWake, 0, func(ctx context.Context) error { return nil })
	job.Start()

	job.Complete()

	assert.Equal(t, JobStatusSuccess, job.Status)
	assert.NotNil(t, job.CompletedAt)
}

func TestJob_Fail(t *testing.T) {
	job := NewJob(JobIntakeRetention, 0, func(ctx context.Context) error { return nil })
	job.Start()

	job.Fail("connection timeout")

	assert.Equal(t, JobStatusFailed, job.Status)
	assert.NotNil(t, job.CompletedAt)
	assert.Equal(t, "connection timeout", job.Error)
}

func TestJob_ShouldRetry(t *testing.T) {
	tests := []struct {
		name       string
		status     JobStatus
		retryCount int
		maxRetries int
		expected   bool
	}{
		{"Failed with retries available", JobStatusFailed, 0, 3, true},
		{"Failed max retries reached", JobStatusFailed, 3, 3, false},
		{"Failed no retries configured", JobStatusFailed, 0, 0, false},
		{"Success should not retry", JobStatusSuccess, 0, 3, false},
		{"Running should not retry", JobStatusRunning, 0, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &Job{
				Status:     tt.status,
				RetryCount: tt.retryCount,
				MaxRetries: tt.maxRetries,
			}
			assert.Equal(t, tt.expected, job.ShouldRetry())
		})
	}
}

func TestJob_ScheduleRetry_ExponentialBackoff(t *testing.T) {
	job := NewJob(JobIntakeRetention, 5, func(ctx context.Context) error { return nil })
	job.Status = JobStatusFailed
	baseDelay := time.Minute

	// First retry: 1 minute
	job.ScheduleRetry(baseDelay)
	assert.Equal(t, 1, job.RetryCount)
	assert.Equal(t, JobStatusPending, job.Status)
	require.NotNil(t, job.NextRetryAt)
	firstDelay := time.Until(*job.NextRetryAt)
	assert.True(t, firstDelay > 50*time.Second && firstDelay <= time.Minute+time.Second)

	// Second retry: 2 minutes
	job.Status = JobStatusFailed
	job.ScheduleRetry(baseDelay)
	assert.Equal(t, 2, job.RetryCount)
	secondDelay := time.Until(*job.NextRetryAt)
	assert.True(t, secondDelay > 110*time.Second && secondDelay <= 2*time.Minute+time.Second)

	// Third retry: 4 minutes
	job.Status = JobStatusFailed
	job.ScheduleRetry(baseDelay)
	assert.Equal(t, 3, job.RetryCount)
	thirdDelay := time.Until(*job.NextRetryAt)
	assert.True(t, thirdDelay > 230*time.Second && thirdDelay <= 4*time.Minute+time.Second)
}

func TestJob_ScheduleRetry_CapsDelay(t *testing.T) {
	job := NewJob(JobIntakeRetention, 20, func(ctx context.Context) error { return nil })
	job.Status = JobStatusFailed
	job.RetryCount = 10

	job.ScheduleRetry(time.Minute)

	require.NotNil(t, job.NextRetryAt)
	delay := time.Until(*job.NextRetryAt)
	assert.True(t, delay > 29*time.Minute && delay <= maxRetryDelay+time.Second)
}

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3, cfg.MaxConcurrentJobs)
	assert.Equal(t, 10*time.Minute, cfg.JobTimeout)
	assert.Equal(t, 100, cfg.QueueSize)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, 30*time.Second, cfg.RetryDelay)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Valid default config", func(c *Config) {}, false},
		{"Zero workers", func(c *Config) { c.MaxConcurrentJobs = 0 }, true},
		{"Zero job timeout", func(c *Config) { c.JobTimeout = 0 }, true},
		{"Zero queue size", func(c *Config) { c.QueueSize = 0 }, true},
		{"Negative retry attempts", func(c *Config) { c.RetryAttempts = -1 }, true},
		{"Retries without delay", func(c *Config) { c.RetryDelay = 0 }, true},
		{"No retries needs no delay", func(c *Config) { c.RetryAttempts = 0; c.RetryDelay = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
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

// ---------------------------------------------------------------------------
// Scheduler Tests
// ---------------------------------------------------------------------------

func TestNewScheduler(t *testing.T) {
	s, err := NewScheduler(DefaultConfig(), newTestLogger())

	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestNewScheduler_InvalidConfig(t *testing.T) {
	s, err := NewScheduler(Config{MaxConcurrentJobs: 0}, newTestLogger())

	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, s)
}

func TestScheduler_StartStop(t *testing.T) {
	s, err := NewScheduler(DefaultConfig(), newTestLogger())
	require.NoError(t, err)

	ctx := context.Background()

	err = s.Start(ctx)
	require.NoError(t, err)

	// Start again should be idempotent
	err = s.Start(ctx)
	require.NoError(t, err)

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err = s.Stop(stopCtx)
	require.NoError(t, err)

	// Stop again should be idempotent
	err = s.Stop(stopCtx)
	require.NoError(t, err)
}

func TestScheduler_SubmitJob_NotRunning(t *testing.T) {
	s, err := NewScheduler(DefaultConfig(), newTestLogger())
	require.NoError(t, err)

	err = s.SubmitJob(NewJob(JobMailboxPoll, 0, func(ctx context.Context) error { return nil }))

	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}

func TestScheduler_SubmitJob_RunsTask(t *testing.T) {
	s, err := NewScheduler(DefaultConfig(), newTestLogger())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	var calls int32
	job := NewJob(JobMailboxPoll, 0, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	require.NoError(t, s.SubmitJob(job))

	time.Sleep(100 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	history := s.JobHistory(10)
	require.Len(t, history, 1)
	assert.Equal(t, JobStatusSuccess, history[0].Status)
}

func TestScheduler_SubmitJob_QueueFull(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxConcurrentJobs = 1
	cfg.QueueSize = 1

	s, err := NewScheduler(cfg, newTestLogger())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	release := make(chan struct{})
	blocking := func(ctx context.Context) error {
		<-release
		return nil
	}

	// The first job occupies the only worker, the second fills the queue.
	require.NoError(t, s.SubmitJob(NewJob("blocker", 0, blocking)))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, s.SubmitJob(NewJob("queued", 0, blocking)))

	err = s.SubmitJob(NewJob("overflow", 0, blocking))
	assert.ErrorIs(t, err, ErrJobQueueFull)

	close(release)
	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))
}

func TestScheduler_JobRetry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RetryDelay = 10 * time.Millisecond

	s, err := NewScheduler(cfg, newTestLogger())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	var calls int32
	job := NewJob("flaky", 5, func(ctx context.Context) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("temporary failure")
		}
		return nil
	})
	require.NoError(t, s.SubmitJob(job))

	// Two failures plus backoff, then success
	time.Sleep(500 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	history := s.JobHistory(10)
	require.Len(t, history, 1)
	assert.Equal(t, JobStatusSuccess, history[0].Status)
	assert.Equal(t, 2, history[0].RetryCount)
}

func TestScheduler_JobRetry_Exhausted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RetryDelay = 5 * time.Millisecond

	s, err := NewScheduler(cfg, newTestLogger())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	var calls int32
	job := NewJob("doomed", 1, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("permanent failure")
	})
	require.NoError(t, s.SubmitJob(job))

	time.Sleep(300 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	history := s.JobHistory(10)
	require.Len(t, history, 1)
	assert.Equal(t, JobStatusFailed, history[0].Status)
	assert.Equal(t, "permanent failure", history[0].Error)
	assert.Equal(t, 1, history[0].RetryCount)
}

func TestScheduler_JobHistory(t *testing.T) {
	s, err := NewScheduler(DefaultConfig(), newTestLogger())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	for i := 0; i < 5; i++ {
		job := NewJob(JobSnoozeWake, 0, func(ctx context.Context) error { return nil })
		require.NoError(t, s.SubmitJob(job))
	}

	time.Sleep(200 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))

	assert.Len(t, s.JobHistory(10), 5)
	assert.Len(t, s.JobHistory(3), 3)
	assert.Len(t, s.JobHistory(0), 5)
}

func TestScheduler_Stats(t *testing.T) {
	s, err := NewScheduler(DefaultConfig(), newTestLogger())
	require.NoError(t, err)

	stats := s.Stats()

	assert.Equal(t, false, stats["is_running"])
	assert.Equal(t, 3, stats["workers"])
	assert.Equal(t, 100, stats["queue_capacity"])
	assert.Contains(t, stats, "queue_depth")
	assert.Contains(t, stats, "finished_jobs")
}

package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ---------------------------------------------------------------------------
// Job
// ---------------------------------------------------------------------------

// Task is the unit of work a job executes
type Task func(ctx context.Context) error

// JobStatus represents the execution state of a job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// maxRetryDelay caps the exponential retry backoff
const maxRetryDelay = 30 * time.Minute

// Job is a single piece of background work submitted to the scheduler
type Job struct {
	ID          uuid.UUID
	Name        string
	Status      JobStatus
	Error       string
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	RetryCount  int
	MaxRetries  int
	NextRetryAt *time.Time

	run Task
}

// NewJob creates a pending job
func NewJob(name string, maxRetries int, run Task) *Job {
	return &Job{
		ID:         uuid.New(),
		Name:       name,
		Status:     JobStatusPending,
		CreatedAt:  time.Now(),
		MaxRetries: maxRetries,
		run:        run,
	}
}

// Start marks the job as running
func (j *Job) Start() {
	now := time.Now()
	j.Status = JobStatusRunning
	j.StartedAt = &now
	j.Error = ""
	j.NextRetryAt = nil
}

// Complete marks the job as successfully finished
func (j *Job) Complete() {
	now := time.Now()
	j.Status = JobStatusSuccess
	j.CompletedAt = &now
}

// Fail marks the job as failed
func (j *Job) Fail(errMsg string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.Error = errMsg
	j.CompletedAt = &now
}

// ShouldRetry returns true if the job failed and has retries left
func (j *Job) ShouldRetry() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// ScheduleRetry resets the job to pending with an exponential backoff delay
func (j *Job) ScheduleRetry(baseDelay time.Duration) {
	j.RetryCount++

	delay := baseDelay * time.Duration(1<<(j.RetryCount-1))
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}

	nextRetry := time.Now().Add(delay)
	j.NextRetryAt = &nextRetry
	j.Status = JobStatusPending
}

// ---------------------------------------------------------------------------
// Config
// ---------------------------------------------------------------------------

// Config holds worker pool settings
type Config struct {
	// MaxConcurrentJobs is the number of worker goroutines
	MaxConcurrentJobs int

	// JobTimeout is the maximum execution time for a single job
	JobTimeout time.Duration

	// QueueSize is the capacity of the job queue
	QueueSize int

	// RetryAttempts is the default number of retries for retryable jobs
	RetryAttempts int

	// RetryDelay is the base delay before the first retry
	RetryDelay time.Duration
}

// DefaultConfig returns default worker pool settings
func DefaultConfig() Config {
	return Config{
		MaxConcurrentJobs: 3,
		JobTimeout:        10 * time.Minute,
		QueueSize:         100,
		RetryAttempts:     3,
		RetryDelay:        30 * time.Second,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.MaxConcurrentJobs <= 0 {
		return fmt.Errorf("%w: max concurrent jobs must be positive", ErrInvalidConfig)
	}
	if c.JobTimeout <= 0 {
		return fmt.Errorf("%w: job timeout must be positive", ErrInvalidConfig)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("%w: queue size must be positive", ErrInvalidConfig)
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("%w: retry attempts must not be negative", ErrInvalidConfig)
	}
	if c.RetryAttempts > 0 && c.RetryDelay <= 0 {
		return fmt.Errorf("%w: retry delay must be positive", ErrInvalidConfig)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scheduler
// ---------------------------------------------------------------------------

// maxJobHistory bounds the in-memory record of finished jobs
const maxJobHistory = 100

// Scheduler runs submitted jobs on a bounded worker pool
type Scheduler struct {
	config Config
	logger *zap.Logger

	jobs   chan *Job
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	isRunning bool

	historyMu sync.RWMutex
	history   []*Job
}

// NewScheduler creates a scheduler with the given configuration
func NewScheduler(config Config, logger *zap.Logger) (*Scheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Scheduler{
		config: config,
		logger: logger,
		jobs:   make(chan *Job, config.QueueSize),
	}, nil
}

// Start starts the worker pool
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.config.MaxConcurrentJobs; i++ {
		s.wg.Add(1)
		go s.worker(ctx, i)
	}

	s.logger.Info("Job scheduler started",
		zap.Int("workers", s.config.MaxConcurrentJobs),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	close(s.jobs)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Job scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Job scheduler stop timed out")
		return ctx.Err()
	}
}

// SubmitJob queues a job for execution
func (s *Scheduler) SubmitJob(job *Job) error {
	// The send happens under the lock so Stop cannot close the channel
	// between the running check and the send.
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return ErrSchedulerNotRunning
	}

	select {
	case s.jobs <- job:
		s.logger.Debug("Job submitted",
			zap.String("job", job.Name),
			zap.String("job_id", job.ID.String()),
		)
		return nil
	default:
		return ErrJobQueueFull
	}
}

// worker processes jobs from the queue
func (s *Scheduler) worker(ctx context.Context, workerID int) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-s.jobs:
			if !ok {
				return
			}
			s.processJob(ctx, job, workerID)
		}
	}
}

// processJob executes a single job
func (s *Scheduler) processJob(ctx context.Context, job *Job, workerID int) {
	// Retried jobs come back through the queue before their backoff has
	// elapsed. Park them off-worker instead of spinning.
	if job.NextRetryAt != nil && time.Now().Before(*job.NextRetryAt) {
		s.requeueAfter(job, time.Until(*job.NextRetryAt))
		return
	}

	job.Start()
	s.logger.Debug("Processing job",
		zap.Int("worker_id", workerID),
		zap.String("job", job.Name),
		zap.String("job_id", job.ID.String()),
	)

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	if err := job.run(jobCtx); err != nil {
		job.Fail(err.Error())
		s.logger.Error("Job failed",
			zap.Int("worker_id", workerID),
			zap.String("job", job.Name),
			zap.String("job_id", job.ID.String()),
			zap.Error(err),
		)

		if job.ShouldRetry() {
			job.ScheduleRetry(s.config.RetryDelay)
			s.logger.Info("Job scheduled for retry",
				zap.String("job", job.Name),
				zap.String("job_id", job.ID.String()),
				zap.Int("retry_count", job.RetryCount),
				zap.Int("max_retries", job.MaxRetries),
			)
			s.requeueAfter(job, time.Until(*job.NextRetryAt))
			return
		}

		s.recordHistory(job)
		return
	}

	job.Complete()
	s.recordHistory(job)
	s.logger.Debug("Job completed",
		zap.Int("worker_id", workerID),
		zap.String("job", job.Name),
		zap.String("job_id", job.ID.String()),
	)
}

// requeueAfter resubmits a job once its retry delay has elapsed
func (s *Scheduler) requeueAfter(job *Job, wait time.Duration) {
	if wait < 0 {
		wait = 0
	}
	time.AfterFunc(wait, func() {
		if err := s.SubmitJob(job); err != nil {
			s.logger.Warn("Dropping retried job",
				zap.String("job", job.Name),
				zap.String("job_id", job.ID.String()),
				zap.Error(err),
			)
		}
	})
}

// recordHistory keeps the most recent finished jobs in memory
func (s *Scheduler) recordHistory(job *Job) {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	s.history = append(s.history, job)
	if len(s.history) > maxJobHistory {
		s.history = s.history[len(s.history)-maxJobHistory:]
	}
}

// JobHistory returns up to limit finished jobs, most recent first
func (s *Scheduler) JobHistory(limit int) []*Job {
	s.historyMu.RLock()
	defer s.historyMu.RUnlock()

	if limit <= 0 || limit > len(s.history) {
		limit = len(s.history)
	}

	result := make([]*Job, 0, limit)
	for i := len(s.history) - 1; i >= len(s.history)-limit; i-- {
		result = append(result, s.history[i])
	}
	return result
}

// Stats returns runtime statistics about the scheduler
func (s *Scheduler) Stats() map[string]interface{} {
	s.mu.Lock()
	running := s.isRunning
	s.mu.Unlock()

	s.historyMu.RLock()
	historyLen := len(s.history)
	s.historyMu.RUnlock()

	return map[string]interface{}{
		"is_running":     running,
		"workers":        s.config.MaxConcurrentJobs,
		"queue_depth":    len(s.jobs),
		"queue_capacity": cap(s.jobs),
		"finished_jobs":  historyLen,
	}
}

package background

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"toyshop/internal/metrics"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Warmer reloads a cached view of the catalog.
type Warmer interface {
	Warm(ctx context.Context) error
}

// JobScheduler runs the periodic catalog jobs.
type JobScheduler struct {
	scheduler gocron.Scheduler
	warmers   map[string]Warmer
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates a scheduler that warms every warmer once per interval.
// warmers maps a name ("categories", "products") to the cache it refreshes.
func NewJobScheduler(interval time.Duration, warmers map[string]Warmer, logger *zap.Logger, opts ...gocron.SchedulerOption) (*JobScheduler, error) {
	if interval <= 0 {
		return nil, errors.New("refresh interval must be positive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	scheduler, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		warmers:   warmers,
		interval:  interval,
		timeout:   interval,
		logger:    logger,
		jobs:      make(map[string]gocron.Job),
	}

	if err := js.registerJobs(); err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	js.logger.Info("starting background job scheduler", zap.Int("jobs", len(js.jobs)))
	js.scheduler.Start()
}

// Stop waits for running jobs and stops the scheduler
func (js *JobScheduler) Stop() error {
	js.logger.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	warmJob, err := js.scheduler.NewJob(
		gocron.DurationJob(js.interval),
		gocron.NewTask(js.warmCatalog),
		gocron.WithName("catalog-cache-warm"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to create catalog warm job: %w", err)
	}
	js.jobs["catalog-cache-warm"] = warmJob
	return nil
}

// warmCatalog refreshes every cache; one failing warmer does not stop the others.
func (js *JobScheduler) warmCatalog() error {
	ctx, cancel := context.WithTimeout(context.Background(), js.timeout)
	defer cancel()
	err := js.WarmNow(ctx)
	metrics.RefreshRun(err)
	return err
}

// WarmNow runs all warmers once, in name order.
func (js *JobScheduler) WarmNow(ctx context.Context) error {
	names := make([]string, 0, len(js.warmers))
	for name := range js.warmers {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		started := time.Now()
		if err := js.warmers[name].Warm(ctx); err != nil {
			js.logger.Warn("catalog warm failed", zap.String("cache", name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		js.logger.Debug("catalog warmed", zap.String("cache", name), zap.Duration("took", time.Since(started)))
	}
	return errors.Join(errs...)
}

// AddJob adds a custom job to the scheduler
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if _, exists := js.jobs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}
	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	js.jobs[name] = job
	js.logger.Info("added job", zap.String("job", name), zap.Duration("interval", interval))
	return nil
}

// RemoveJob removes a job from the scheduler
func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobs[name]; exists {
		err := js.scheduler.RemoveJob(job.ID())
		delete(js.jobs, name)
		return err
	}
	return nil
}

// RetryUntilReady runs check every interval until it succeeds once, then removes the job.
// It is used for dependencies that may come up after the server, such as the icon bucket.
func (js *JobScheduler) RetryUntilReady(name string, interval time.Duration, check func(ctx context.Context) error) error {
	return js.AddJob(name, interval, func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		if err := check(ctx); err != nil {
			js.logger.Warn("dependency still unavailable", zap.String("job", name), zap.Error(err))
			return
		}
		js.logger.Info("dependency ready", zap.String("job", name))
		if err := js.RemoveJob(name); err != nil {
			js.logger.Warn("failed to remove job", zap.String("job", name), zap.Error(err))
		}
	})
}

// JobStatus describes one scheduled job.
type JobStatus struct {
	Name    string    `json:"name"`
	LastRun time.Time `json:"lastRun,omitempty"`
	NextRun time.Time `json:"nextRun,omitempty"`
}

// GetJobStatus returns the scheduled jobs sorted by name
func (js *JobScheduler) GetJobStatus() []JobStatus {
	js.mu.RLock()
	defer js.mu.RUnlock()

	status := make([]JobStatus, 0, len(js.jobs))
	for name, job := range js.jobs {
		s := JobStatus{Name: name}
		if t, err := job.LastRun(); err == nil {
			s.LastRun = t
		}
		if t, err := job.NextRun(); err == nil {
			s.NextRun = t
		}
		status = append(status, s)
	}
	sort.Slice(status, func(i, j int) bool { return status[i].Name < status[j].Name })
	return status
}

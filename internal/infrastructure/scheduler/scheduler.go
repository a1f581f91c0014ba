// Package scheduler runs background jobs on fixed intervals.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fantaprof/fantaprof-server/pkg/logger"
)

// Job is a unit of background work.
type Job interface {
	// Name identifies the job in logs.
	Name() string

	// Run executes the job. It must respect ctx cancellation.
	Run(ctx context.Context) error
}

// Scheduler runs registered jobs on their intervals until stopped. Each
// job runs on its own goroutine; a run fires immediately at start and
// then once per interval.
type Scheduler struct {
	mu      sync.Mutex
	jobs    []scheduledJob
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	log     *logger.Logger
}

type scheduledJob struct {
	job      Job
	interval time.Duration
}

// New creates an empty scheduler.
func New(log *logger.Logger) *Scheduler {
	return &Scheduler{log: log}
}

// Register adds a job. Must be called before Start.
func (s *Scheduler) Register(job Job, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("scheduler: invalid interval for job %q", job.Name())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("scheduler: cannot register %q while running", job.Name())
	}
	s.jobs = append(s.jobs, scheduledJob{job: job, interval: interval})
	return nil
}

// Start launches all registered jobs.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("scheduler: already running")
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	for _, sj := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, sj)
	}

	s.log.Info("scheduler started", logger.F("jobs", len(s.jobs)))
	return nil
}

// Stop cancels all jobs and waits for them to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, sj scheduledJob) {
	defer s.wg.Done()

	ticker := time.NewTicker(sj.interval)
	defer ticker.Stop()

	s.run(ctx, sj.job)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.run(ctx, sj.job)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("job panicked",
				logger.F("job", job.Name()),
				logger.F("panic", fmt.Sprintf("%v", r)),
			)
		}
	}()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.log.Error("job failed",
			logger.F("job", job.Name()),
			logger.Latency(time.Since(start)),
			logger.Err(err),
		)
		return
	}
	s.log.Debug("job completed",
		logger.F("job", job.Name()),
		logger.Latency(time.Since(start)),
	)
}

// Package scheduler runs the sweep jobs on a fixed interval with an explicit
// start and stop lifecycle.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"castads/internal/core/port"
)

// ErrUnknownJob is returned by RunJob for a name that was never registered.
var ErrUnknownJob = errors.New("unknown job")

// Job is one named sweep. Run returns a short summary for the logs.
type Job struct {
	Name string
	Run  func(ctx context.Context) (string, error)
}

// Scheduler ticks every interval and runs all jobs concurrently. A failing
// job never stops the others; results are aggregated per tick.
type Scheduler struct {
	jobs     []Job
	interval time.Duration
	logger   *slog.Logger
	nowFn    func() time.Time

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	last    port.TickReport
}

var _ port.SweepTrigger = (*Scheduler)(nil)

// New returns a stopped scheduler.
func New(interval time.Duration, logger *slog.Logger, jobs ...Job) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{jobs: jobs, interval: interval, logger: logger, nowFn: time.Now}
}

// Start launches the tick loop. It returns immediately; calling it twice is
// an error.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("scheduler interval must be positive, got %s", s.interval)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errors.New("scheduler already running")
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.loop(ctx, s.done)
	s.logger.Info("scheduler started", slog.Duration("interval", s.interval), slog.Int("jobs", len(s.jobs)))
	return nil
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report := s.Tick(ctx)
			if failed := report.Failed(); len(failed) > 0 {
				s.logger.Warn("scheduler tick finished with failures", slog.Int("failed", len(failed)))
			}
		}
	}
}

// Stop cancels the loop and waits for the running tick to finish or ctx to
// expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.cancel()
	done := s.done
	s.running = false
	s.mu.Unlock()

	select {
	case <-done:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Tick runs every job once, concurrently, and waits for all of them.
func (s *Scheduler) Tick(ctx context.Context) port.TickReport {
	report := port.TickReport{Started: s.nowFn(), Jobs: make([]port.JobReport, len(s.jobs))}

	var g errgroup.Group
	for i, job := range s.jobs {
		g.Go(func() error {
			report.Jobs[i] = s.run(ctx, job)
			return nil
		})
	}
	_ = g.Wait()

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()
	return report
}

// RunJob runs a single named job now.
func (s *Scheduler) RunJob(ctx context.Context, name string) (port.JobReport, error) {
	for _, job := range s.jobs {
		if job.Name == name {
			return s.run(ctx, job), nil
		}
	}
	return port.JobReport{}, fmt.Errorf("%w: %q", ErrUnknownJob, name)
}

// LastTick returns the report of the most recent tick.
func (s *Scheduler) LastTick() port.TickReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Scheduler) run(ctx context.Context, job Job) (rep port.JobReport) {
	rep = port.JobReport{Name: job.Name, Started: s.nowFn()}
	defer func() {
		if r := recover(); r != nil {
			rep.Err = fmt.Errorf("job %s panicked: %v", job.Name, r)
		}
		rep.Duration = time.Since(rep.Started)
		if rep.Err != nil {
			s.logger.Error("job failed", slog.String("job", job.Name), slog.Any("error", rep.Err))
			return
		}
		s.logger.Info("job finished", slog.String("job", job.Name), slog.String("summary", rep.Summary),
			slog.Duration("took", rep.Duration))
	}()
	rep.Summary, rep.Err = job.Run(ctx)
	return rep
}

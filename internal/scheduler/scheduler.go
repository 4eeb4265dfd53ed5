package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/go-co-op/gocron"
	"github.com/rotisserie/eris"
)

// SchedulableService is a periodic batch job, such as a cache refresh.
type SchedulableService interface {
	Name() string
	RunBatchJob(ctx context.Context) error
}

// Scheduler runs batch jobs on a gocron schedule. WG counts runs in flight;
// once stopped no new run is admitted, so Stop's Wait never races an Add.
type Scheduler struct {
	Cron *gocron.Scheduler
	WG   *sync.WaitGroup

	mu      sync.Mutex
	stopped bool
}

func New() (*Scheduler, error) {
	s := gocron.NewScheduler(time.UTC)
	// a slow refresh must not overlap the next tick
	s.SingletonModeAll()
	return &Scheduler{
		Cron: s,
		WG:   &sync.WaitGroup{},
	}, nil
}

// StartJob runs services now and then every interval until Stop.
func (s *Scheduler) StartJob(ctx context.Context, interval time.Duration, services []SchedulableService) error {
	if interval <= 0 {
		return eris.Errorf("scheduler: invalid interval %s", interval)
	}

	_, err := s.Cron.Every(interval).Do(func() {
		s.runAllJobs(ctx, services)
	})
	if err != nil {
		logger.Error("Failed to schedule job: %v", err)
		return eris.Wrap(err, "scheduler: schedule")
	}

	s.Cron.StartAsync()
	return nil
}

func (s *Scheduler) runAllJobs(ctx context.Context, services []SchedulableService) {
	if !s.begin() {
		return
	}
	defer s.WG.Done()

	if ctx.Err() != nil {
		return
	}

	logger.Info("--- Refresh Job Started ---")
	defer logger.Info("--- Refresh Job Finished ---")

	for _, service := range services {
		if err := service.RunBatchJob(ctx); err != nil {
			logger.Error("Error running batch job for %s: %v", service.Name(), err)
		}
	}
}

func (s *Scheduler) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	s.WG.Add(1)
	return true
}

// RunImmediateJob runs services once on the calling goroutine. It does
// nothing after Stop.
func (s *Scheduler) RunImmediateJob(ctx context.Context, services []SchedulableService) {
	s.runAllJobs(ctx, services)
}

// Stop cancels future runs and waits for a run in progress.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	s.Cron.Stop()
	s.WG.Wait()
}

// Package scheduler runs background jobs on a fixed interval.
package scheduler

import (
	"context"
	"sync"
	"time"

	"expenis/internal/logger"
)

// Job is a unit of background work. Returning an error only logs it; the
// schedule keeps going.
type Job func(ctx context.Context) error

// Scheduler runs a named job on a fixed interval until its context is
// cancelled. Ticks that fire while a run is still in flight are skipped.
type Scheduler struct {
	name     string
	interval time.Duration
	job      Job

	wg      sync.WaitGroup
	running sync.Mutex
}

// New creates a scheduler for the given job.
func New(name string, interval time.Duration, job Job) *Scheduler {
	return &Scheduler{name: name, interval: interval, job: job}
}

// Start launches the schedule in a goroutine. The first run happens after one
// full interval.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Get().Infow("scheduler stopped", "job", s.name)
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()
}

// Wait blocks until the schedule goroutine has exited after cancellation.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if !s.running.TryLock() {
		logger.Get().Warnw("previous run still in flight, skipping tick", "job", s.name)
		return
	}
	defer s.running.Unlock()

	if err := s.job(ctx); err != nil {
		logger.Get().Errorw("job failed", "job", s.name, "error", err)
	}
}

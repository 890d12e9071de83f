// Package scheduler runs periodic maintenance jobs in the background.
package scheduler

import (
	"context"
	"sync"
	"time"

	"fieldtrans/internal/logger"
)

// Job is one maintenance task. It reports how many items it touched.
type Job func(ctx context.Context) (int, error)

type Scheduler struct {
	name       string
	job        Job
	interval   time.Duration
	stopCh     chan struct{}
	wg         sync.WaitGroup
	cancelFunc context.CancelFunc // cancels the running job
	mu         sync.Mutex         // protects cancelFunc
	stopOnce   sync.Once
}

// New returns a scheduler that runs job every interval once started.
func New(name string, job Job, interval time.Duration) *Scheduler {
	return &Scheduler{
		name:     name,
		job:      job,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// CacheSweep adapts a sweeping cache to a Job.
func CacheSweep(sweep func() int) Job {
	return func(context.Context) (int, error) {
		return sweep(), nil
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	logger.Info("scheduler started", "module", "scheduler", "action", "start", "resource", s.name, "result", "ok", "interval_ms", s.interval.Milliseconds())
}

// Stop cancels a running job and waits for the loop to exit. It is safe to
// call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		if s.cancelFunc != nil {
			s.cancelFunc()
		}
		s.mu.Unlock()

		close(s.stopCh)
		s.wg.Wait()
		logger.Info("scheduler stopped", "module", "scheduler", "action", "stop", "resource", s.name, "result", "ok")
	})
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)

	s.mu.Lock()
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancelFunc = nil
		s.mu.Unlock()
	}()

	n, err := s.job(ctx)
	if err != nil {
		if ctx.Err() != nil {
			logger.Warn("scheduled job cancelled", "module", "scheduler", "action", "run", "resource", s.name, "result", "cancelled")
			return
		}
		logger.Error("scheduled job failed", "module", "scheduler", "action", "run", "resource", s.name, "result", "failed", "error", err)
		return
	}
	logger.Debug("scheduled job completed", "module", "scheduler", "action", "run", "resource", s.name, "result", "ok", "count", n)
}

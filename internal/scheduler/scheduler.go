// Package scheduler fires jobs at wall-clock times (daily at HH:MM, monthly
// on day D at HH:MM) and hands execution to the worker pool, so a slow or
// failing job never delays the next trigger.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/urtzih/Lorapp/internal/domain"
	"github.com/urtzih/Lorapp/internal/logger"
	"github.com/urtzih/Lorapp/internal/worker"
)

// Scheduler manages scheduled jobs
type Scheduler struct {
	workerPool *worker.Pool
	clock      domain.Clock
	quit       chan struct{}
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool *worker.Pool, clock domain.Clock) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		clock:      clock,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.workerPool.Enqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

// ScheduleDaily registers a job to fire every day at the given UTC time.
func (s *Scheduler) ScheduleDaily(hour, min int, name string, job worker.Job) {
	s.runAt(name, job, func(now time.Time) time.Time {
		return nextDaily(now, hour, min)
	})
}

// ScheduleMonthly registers a job to fire on the given day of every month at
// the given UTC time.
func (s *Scheduler) ScheduleMonthly(day, hour, min int, name string, job worker.Job) {
	s.runAt(name, job, func(now time.Time) time.Time {
		return nextMonthly(now, day, hour, min)
	})
}

// runAt loops: sleep until the next fire time, enqueue, recompute.
func (s *Scheduler) runAt(name string, job worker.Job, next func(time.Time) time.Time) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log := logger.FromContext(context.Background())

		for {
			fireAt := next(s.clock.Now())
			timer := time.NewTimer(fireAt.Sub(s.clock.Now()))
			log.Info("Job scheduled", "job", name, "fire_at", fireAt)

			select {
			case <-timer.C:
				log.Info("Job triggered", "job", name)
				s.workerPool.Enqueue(job)
			case <-s.quit:
				timer.Stop()
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	close(s.quit)
	s.wg.Wait()
}

// nextDaily returns the next instant at hour:min UTC strictly after now.
func nextDaily(now time.Time, hour, min int) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// nextMonthly returns the next instant on the given day-of-month at hour:min
// UTC strictly after now.
func nextMonthly(now time.Time, day, hour, min int) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), day, hour, min, 0, 0, time.UTC)
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month()+1, day, hour, min, 0, 0, time.UTC)
	}
	return next
}

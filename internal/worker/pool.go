package worker

import (
	"context"
	"sync"

	"github.com/urtzih/Lorapp/internal/logger"
)

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a plain function to the Job interface
type JobFunc func(ctx context.Context) error

func (f JobFunc) Process(ctx context.Context) error { return f(ctx) }

// Pool is a bounded worker pool. Jobs that return an error are logged; a
// failing job never takes a worker down.
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			ctx := context.Background()
			if err := job.Process(ctx); err != nil {
				logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "error", err)
			}
		case <-p.quit:
			return
		}
	}
}

// Enqueue adds a job to the queue, blocking while the queue is full.
func (p *Pool) Enqueue(job Job) {
	p.jobQueue <- job
}

// Stop stops the workers and waits for them to finish
func (p *Pool) Stop() {
	close(p.quit)
	p.wg.Wait()
}

package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/urtzih/Lorapp/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
	err      error
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return j.err
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(2, 10)
	pool.Start()

	job := &testJob{executed: &executed}
	pool.Enqueue(job)
	pool.Enqueue(job)

	time.Sleep(100 * time.Millisecond)

	pool.Stop()

	if atomic.LoadInt32(&executed) != 2 {
		t.Errorf("Expected 2 jobs executed, got %d", executed)
	}
}

func TestPool_FailingJobDoesNotKillWorker(t *testing.T) {
	var executed int32
	pool := NewPool(1, 10)
	pool.Start()

	pool.Enqueue(&testJob{executed: &executed, err: errors.New("boom")})
	pool.Enqueue(&testJob{executed: &executed})

	time.Sleep(100 * time.Millisecond)

	pool.Stop()

	if atomic.LoadInt32(&executed) != 2 {
		t.Errorf("Expected 2 jobs executed, got %d", executed)
	}
}

func TestPool_StopReleasesWorkers(t *testing.T) {
	leaktest.CheckNone(t, func() {
		var executed int32
		pool := NewPool(4, 10)
		pool.Start()

		pool.Enqueue(&testJob{executed: &executed})
		time.Sleep(50 * time.Millisecond)

		pool.Stop()
	})
}

func TestJobFunc(t *testing.T) {
	called := false
	var job Job = JobFunc(func(ctx context.Context) error {
		called = true
		return nil
	})

	if err := job.Process(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected JobFunc to run")
	}
}

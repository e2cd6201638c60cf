package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countJob struct {
	counter *int64
	fail    bool
}

type countResult struct {
	err error
}

func (r *countResult) GetError() error { return r.err }

func (j *countJob) Execute(ctx context.Context) Result {
	atomic.AddInt64(j.counter, 1)
	if j.fail {
		return &countResult{err: errors.New("job failed")}
	}
	return &countResult{}
}

func TestPoolRunsAllJobs(t *testing.T) {
	var counter int64

	pool := NewPool(4)
	pool.Start()
	for i := 0; i < 20; i++ {
		pool.Submit(&countJob{counter: &counter})
	}
	results := pool.Wait()

	if got := atomic.LoadInt64(&counter); got != 20 {
		t.Errorf("executed %d jobs, want 20", got)
	}
	if len(results) != 20 {
		t.Errorf("collected %d results, want 20", len(results))
	}
}

func TestPoolCollectsErrors(t *testing.T) {
	var counter int64

	pool := NewPool(2)
	pool.Start()
	pool.Submit(&countJob{counter: &counter})
	pool.Submit(&countJob{counter: &counter, fail: true})
	results := pool.Wait()

	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("got %d failed results, want 1", failures)
	}
}

func TestPoolZeroWorkersDefaultsToOne(t *testing.T) {
	var counter int64

	pool := NewPool(0)
	pool.Start()
	pool.Submit(&countJob{counter: &counter})
	results := pool.Wait()

	if len(results) != 1 {
		t.Errorf("collected %d results, want 1", len(results))
	}
}

type slowJob struct{}

func (j *slowJob) Execute(ctx context.Context) Result {
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
	return &countResult{}
}

func TestPoolShutdownCancelsJobs(t *testing.T) {
	pool := NewPool(1)
	pool.Start()
	pool.Submit(&slowJob{})

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not cancel the running job")
	}
}

package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/GoPDFChat/internal/job"
)

func newTestPool(cfg PoolConfig) *Pool {
	jobSvc := job.InitJobService(job.ServiceConfig{
		TaskChannel:       make(chan *job.Task, 10),
		DispatcherChannel: make(chan bool, 1),
	})
	return NewPool(jobSvc, cfg)
}

func TestWorkerPool_Flow(t *testing.T) {
	pool := newTestPool(PoolConfig{MinWorkers: 1, MaxWorkers: 4, RequestsPerNewWorker: 2, IdleTimeout: time.Minute})
	defer pool.Shutdown(context.Background())

	t.Run("Submit runs the task before returning", func(t *testing.T) {
		ran := false
		if err := pool.Submit(context.Background(), func(ctx context.Context) { ran = true }); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if !ran {
			t.Error("expected the task to have run when Submit returned")
		}
	})

	t.Run("Concurrent submissions all run", func(t *testing.T) {
		var processed int32
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := pool.Submit(context.Background(), func(ctx context.Context) {
					time.Sleep(5 * time.Millisecond)
					atomic.AddInt32(&processed, 1)
				})
				if err != nil {
					t.Errorf("Submit failed: %v", err)
				}
			}()
		}
		wg.Wait()

		if got := atomic.LoadInt32(&processed); got != 20 {
			t.Errorf("Expected 20 tasks processed, got %d", got)
		}
	})

	t.Run("Dispatcher adds workers under load", func(t *testing.T) {
		count := pool.WorkerCount()
		if count < 2 || count > 4 {
			t.Errorf("Expected between 2 and 4 workers, got %d", count)
		}
	})
}

func TestSubmit_PanicIsReported(t *testing.T) {
	pool := newTestPool(PoolConfig{MinWorkers: 1, MaxWorkers: 1})
	defer pool.Shutdown(context.Background())

	err := pool.Submit(context.Background(), func(ctx context.Context) { panic("boom") })
	if !errors.Is(err, ErrTaskPanicked) {
		t.Fatalf("expected ErrTaskPanicked, got %v", err)
	}

	// the worker survives the panic
	if err := pool.Submit(context.Background(), func(ctx context.Context) {}); err != nil {
		t.Errorf("Submit after panic failed: %v", err)
	}
}

func TestSubmit_ContextCancelled(t *testing.T) {
	pool := newTestPool(PoolConfig{MinWorkers: 1, MaxWorkers: 1})
	defer pool.Shutdown(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := pool.Submit(ctx, func(ctx context.Context) { <-ctx.Done() })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
}

func TestShutdown_RejectsNewTasksAndWaits(t *testing.T) {
	pool := newTestPool(PoolConfig{MinWorkers: 2, MaxWorkers: 2})

	started := make(chan struct{})
	var finished int32
	go pool.Submit(context.Background(), func(ctx context.Context) {
		close(started)
		time.Sleep(50 * time.Millisecond)
		atomic.StoreInt32(&finished, 1)
	})
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if atomic.LoadInt32(&finished) != 1 {
		t.Error("Shutdown returned before the running task finished")
	}
	if pool.WorkerCount() != 0 {
		t.Errorf("expected no workers after shutdown, got %d", pool.WorkerCount())
	}

	err := pool.Submit(context.Background(), func(ctx context.Context) {})
	if !errors.Is(err, ErrPoolStopped) {
		t.Errorf("expected ErrPoolStopped, got %v", err)
	}
	if err := pool.Shutdown(ctx); err != nil {
		t.Errorf("second Shutdown should be a no-op, got %v", err)
	}
}

func TestWorker_IdleTimeout(t *testing.T) {
	pool := newTestPool(PoolConfig{MinWorkers: 1, MaxWorkers: 3, IdleTimeout: 30 * time.Millisecond})
	defer pool.Shutdown(context.Background())

	pool.createWorker()
	pool.createWorker()
	if pool.WorkerCount() != 3 {
		t.Fatalf("expected 3 workers, got %d", pool.WorkerCount())
	}

	deadline := time.Now().Add(2 * time.Second)
	for pool.WorkerCount() > 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if count := pool.WorkerCount(); count != 1 {
		t.Errorf("Idle workers should retire down to the minimum, count is %d", count)
	}
}

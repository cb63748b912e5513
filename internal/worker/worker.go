package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/GoPDFChat/internal/adapter/utils"
	"github.com/akolanti/GoPDFChat/internal/config"
	"github.com/akolanti/GoPDFChat/internal/job"
	"github.com/akolanti/GoPDFChat/internal/metrics"
	"github.com/akolanti/GoPDFChat/pkg/logger_i"
)

var (
	ErrPoolStopped  = errors.New("worker pool is stopped")
	ErrTaskPanicked = errors.New("task panicked")
)

// Runner executes fn on a pool worker and returns once fn has finished.
type Runner interface {
	Submit(ctx context.Context, fn func(ctx context.Context)) error
}

type PoolConfig struct {
	MinWorkers           int64
	MaxWorkers           int64
	RequestsPerNewWorker int64
	IdleTimeout          time.Duration
}

func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MinWorkers:           config.MinWorkerCount,
		MaxWorkers:           config.MaxWorkerCount,
		RequestsPerNewWorker: config.RequestsPerNewWorkerCount,
		IdleTimeout:          config.IdleWorkerTimeout,
	}
}

// Pool starts with MinWorkers and grows up to MaxWorkers. A worker is added every
// RequestsPerNewWorker submissions or when tasks are waiting. Workers above the
// minimum retire after IdleTimeout without work.
type Pool struct {
	jobService *job.Service
	cfg        PoolConfig

	stopWorkerChannel  chan struct{}
	workerWaitGroup    sync.WaitGroup
	dispatcherDone     chan struct{}
	currentWorkerCount int64

	mu      sync.RWMutex
	closing bool

	logger *logger_i.Logger
}

func NewPool(jobService *job.Service, cfg PoolConfig) *Pool {
	if cfg.MinWorkers < 1 {
		cfg.MinWorkers = 1
	}
	if cfg.MaxWorkers < cfg.MinWorkers {
		cfg.MaxWorkers = cfg.MinWorkers
	}
	if cfg.RequestsPerNewWorker < 1 {
		cfg.RequestsPerNewWorker = config.RequestsPerNewWorkerCount
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = config.IdleWorkerTimeout
	}

	p := &Pool{
		jobService:        jobService,
		cfg:               cfg,
		stopWorkerChannel: make(chan struct{}),
		dispatcherDone:    make(chan struct{}),
		logger:            logger_i.NewLogger("WorkerPool"),
	}
	p.logger.Info("Initializing worker pool", "min", cfg.MinWorkers, "max", cfg.MaxWorkers)
	for i := int64(0); i < cfg.MinWorkers; i++ {
		p.createWorker()
	}
	go p.dispatcher()
	return p
}

func (p *Pool) WorkerCount() int64 {
	return atomic.LoadInt64(&p.currentWorkerCount)
}

// Submit queues fn and blocks until it has run. fn receives ctx. If ctx ends first,
// Submit returns ctx.Err() without waiting and fn must give up on its own, so the
// caller must not read anything fn writes after an error.
func (p *Pool) Submit(ctx context.Context, fn func(ctx context.Context)) error {
	traceId, _ := ctx.Value(config.TRACE_ID_KEY).(string)
	task := job.NewTask(ctx, utils.GetNewUUID(), traceId, fn)

	if err := p.enqueue(ctx, task); err != nil {
		return err
	}

	select {
	case <-task.Done:
		if task.Panic != nil {
			return ErrTaskPanicked
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) enqueue(ctx context.Context, task *job.Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closing {
		return ErrPoolStopped
	}

	select {
	case p.jobService.TaskChannel <- task:
	case <-ctx.Done():
		return ctx.Err()
	}
	metrics.IncrementTasksInPool()

	count := atomic.AddInt64(&p.jobService.RequestCount, 1)
	if count%p.cfg.RequestsPerNewWorker == 0 || len(p.jobService.TaskChannel) > 0 {
		p.signalDispatcher()
	}
	return nil
}

func (p *Pool) signalDispatcher() {
	select {
	case p.jobService.DispatcherChannel <- true:
		metrics.StartDispatcherSignalCount()
	default:
		// a signal is already pending
	}
}

func (p *Pool) dispatcher() {
	defer close(p.dispatcherDone)
	p.logger.Info("Dispatcher started")
	for {
		select {
		case <-p.jobService.DispatcherChannel:
			p.mu.RLock()
			if !p.closing && atomic.LoadInt64(&p.currentWorkerCount) < p.cfg.MaxWorkers {
				p.logger.Debug("Creating new worker", "workerCount", p.WorkerCount())
				p.createWorker()
			}
			p.mu.RUnlock()
		case <-p.stopWorkerChannel:
			return
		}
	}
}

// Shutdown rejects new tasks, lets the workers finish what is queued and waits for
// them until ctx ends.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closing {
		p.mu.Unlock()
		return nil
	}
	p.closing = true
	p.mu.Unlock()

	close(p.stopWorkerChannel)

	done := make(chan struct{})
	go func() {
		p.workerWaitGroup.Wait()
		<-p.dispatcherDone
		// nothing can be queued after closing, run whatever the workers left behind
		p.drain()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("Worker pool stopped")
		return nil
	case <-ctx.Done():
		p.logger.Warn("Worker pool shutdown timed out", "workerCount", p.WorkerCount())
		return ctx.Err()
	}
}

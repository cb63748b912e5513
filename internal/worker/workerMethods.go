package worker

import (
	"sync/atomic"
	"time"

	"github.com/akolanti/GoPDFChat/internal/job"
	"github.com/akolanti/GoPDFChat/internal/metrics"
)

func (p *Pool) createWorker() {
	p.workerWaitGroup.Add(1)
	atomic.AddInt64(&p.currentWorkerCount, 1)
	metrics.IncrementActiveWorkerCount()
	go p.worker()
	p.logger.Debug("Created new worker")
}

func (p *Pool) worker() {
	idle := time.NewTimer(p.cfg.IdleTimeout)
	defer idle.Stop()

	for {
		select {
		case task := <-p.jobService.TaskChannel:
			p.executeTask(task)
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(p.cfg.IdleTimeout)

		case <-p.stopWorkerChannel:
			p.drain()
			atomic.AddInt64(&p.currentWorkerCount, -1)
			p.removeWorker("Stop worker signal received")
			return

		case <-idle.C:
			if p.tryRetire() {
				p.removeWorker("Idle worker timeout")
				return
			}
			idle.Reset(p.cfg.IdleTimeout)
		}
	}
}

// tryRetire reserves the retirement of one worker without going below the minimum.
func (p *Pool) tryRetire() bool {
	for {
		current := atomic.LoadInt64(&p.currentWorkerCount)
		if current <= p.cfg.MinWorkers {
			return false
		}
		if atomic.CompareAndSwapInt64(&p.currentWorkerCount, current, current-1) {
			return true
		}
	}
}

func (p *Pool) drain() {
	for {
		select {
		case task := <-p.jobService.TaskChannel:
			p.executeTask(task)
		default:
			return
		}
	}
}

func (p *Pool) executeTask(task *job.Task) {
	start := time.Now()
	log := p.logger.WithTrace(task.Ctx).With("taskId", task.Id)

	defer func() {
		if r := recover(); r != nil {
			task.Panic = r
			log.Error("Task panicked", "panic", r)
		}
		metrics.DecrementTasksInPool()
		metrics.CaptureExecutionMetrics("worker_task", time.Since(start))
		close(task.Done)
	}()

	log.Debug("Processing task")
	task.Run(task.Ctx)
}

// removeWorker expects currentWorkerCount to be decremented already.
func (p *Pool) removeWorker(reason string) {
	metrics.DecrementActiveWorkerCount()
	p.logger.Debug("Removed worker", "reason", reason, "workerCount", p.WorkerCount())
	p.workerWaitGroup.Done()
}

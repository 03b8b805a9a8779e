// Package worker provides the concurrency plumbing: a bounded worker pool,
// the parallel paragraph-classification map, and the multi-document batch
// processor.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of a job.
type Result interface {
	GetError() error
}

// Pool manages a fixed set of workers executing jobs concurrently. Both
// channels are bounded, so the submitting side and the result-draining side
// must run concurrently for job sets larger than the buffers: submit from
// one goroutine, drain Wait in another.
type Pool struct {
	workers        int
	jobQueue       chan Job
	results        chan Result
	wg             sync.WaitGroup
	ctx            context.Context
	cancelFunc     context.CancelFunc
	closeQueueOnce sync.Once
	closeOnce      sync.Once
}

// NewPool creates a pool with the given number of workers.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, workers*2),
		results:    make(chan Result, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the workers.
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
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job for execution. Submit blocks while the queue is full,
// so it must never share a goroutine with the Wait drain.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobQueue <- job:
	}
}

// Close marks submission complete. Workers exit once the queue drains; no
// Submit may follow. The goroutine that submits is the one that closes.
func (p *Pool) Close() {
	p.closeQueueOnce.Do(func() {
		close(p.jobQueue)
	})
}

// Wait drains results as workers produce them and returns the full set in
// completion order once every submitted job has finished. Because Wait
// consumes while jobs are still running, submission never wedges on a full
// results buffer. Close must be called by the submitting goroutine or Wait
// never returns. Callers needing input order must re-sort.
func (p *Pool) Wait() []Result {
	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var results []Result
	for result := range p.results {
		results = append(results, result)
	}
	return results
}

// Shutdown cancels outstanding work immediately.
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}

// Package pool implements the bounded, FIFO producer-consumer thread
// pool from SPEC_FULL.md §4.7, ported from the template
// ThreadPool<Job, Handler> in source/utility/ThreadPool.h using Go
// generics in place of C++ templates.
package pool

import (
	"log"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

const (
	defaultMaxLoad = 500
)

// Pool runs jobs of type J on a fixed set of worker goroutines, each job
// passed through call before execution. call is a property of the pool,
// not of any individual job, mirroring the Handler template parameter of
// the original ThreadPool.
type Pool[J any] struct {
	maxLoad int
	call    func(J)
	logger  *log.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	jobs    []J
	stopped bool
	wg      sync.WaitGroup
	sem     *semaphore.Weighted
}

// New starts maxThreads worker goroutines backed by a queue that admits
// at most maxLoad+1 outstanding jobs (P6: Add rejects once
// len(queue) > maxLoad). call is invoked with each dequeued job in place
// of direct invocation; pass a thunk that calls job() directly for the
// common func()-job case (see NewJobPool).
func New[J any](maxThreads, maxLoad int, call func(J)) *Pool[J] {
	if maxThreads <= 0 {
		maxThreads = runtime.NumCPU()
	}
	if maxLoad <= 0 {
		maxLoad = defaultMaxLoad
	}
	p := &Pool[J]{
		maxLoad: maxLoad,
		call:    call,
		logger:  log.Default(),
		sem:     semaphore.NewWeighted(int64(maxLoad) + 1),
	}
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(maxThreads)
	for i := 0; i < maxThreads; i++ {
		go p.worker()
	}
	return p
}

// NewJobPool is the common case: J is a plain func() job, invoked
// directly with no handler indirection.
func NewJobPool(maxThreads, maxLoad int) *Pool[func()] {
	return New[func()](maxThreads, maxLoad, func(job func()) { job() })
}

// SetLogger overrides the logger used for admission-rejection and
// shutdown warnings. nil is ignored.
func (p *Pool[J]) SetLogger(logger *log.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// Add enqueues job for execution. It returns false, without enqueuing,
// once the queue already holds maxLoad+1 jobs (P6). Add panics if called
// after Close — the original source throws a runtime error for the same
// programming mistake.
func (p *Pool[J]) Add(job J) bool {
	p.mu.Lock()
	stopped := p.stopped
	p.mu.Unlock()
	if stopped {
		panic("pool: Add called after Close")
	}

	if !p.sem.TryAcquire(1) {
		p.logger.Printf("pool: rejecting job, queue at capacity (maxLoad=%d)", p.maxLoad)
		return false
	}

	p.mu.Lock()
	p.jobs = append(p.jobs, job)
	p.mu.Unlock()
	p.cond.Signal()
	return true
}

func (p *Pool[J]) worker() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for !p.stopped && len(p.jobs) == 0 {
			p.cond.Wait()
		}
		if p.stopped {
			// In-flight jobs already dequeued still run to completion
			// (see the call below in the previous iteration); anything
			// still sitting in the queue at shutdown is dropped (P7).
			p.mu.Unlock()
			return
		}
		job := p.jobs[0]
		p.jobs = p.jobs[1:]
		p.mu.Unlock()
		p.sem.Release(1)
		p.call(job)
	}
}

// Close stops accepting new jobs, wakes every worker, and blocks until
// all of them have exited (P7: no enqueued-but-unstarted job runs after
// Close returns).
func (p *Pool[J]) Close() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	dropped := len(p.jobs)
	p.mu.Unlock()
	if dropped > 0 {
		p.logger.Printf("pool: dropping %d queued job(s) on shutdown", dropped)
	}
	p.cond.Broadcast()
	p.wg.Wait()
}

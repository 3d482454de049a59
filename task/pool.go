// Package task provides the fork-join plumbing used by the parallel sorting
// engine: a fixed-size worker pool and a counted-completer completion tracker
// with non-blocking propagation.
//
// A forking task never blocks waiting for a child. It either computes sibling
// work inline or returns its worker to the pool; whichever task drives its
// parent's pending count to zero runs the parent's continuation directly.
// This is what lets a fixed pool scale without starving on nested joins. See
// http://supertech.csail.mit.edu/papers/steal.pdf for background.
package task

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed-size worker pool. Workers are spawned once at creation and
// persist until Close. Unlike per-call goroutine spawning, a Pool bounds the
// parallelism of a sort to an explicit worker count, as required by the
// caller's configuration rather than global state.
type Pool struct {
	workers   int
	work      chan func()
	closeOnce sync.Once
	closed    atomic.Bool
}

// NewPool creates a pool with the given number of workers. If workers <= 0,
// runtime.GOMAXPROCS(0) is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: workers,
		// Buffered so that forking tasks rarely contend; overflow runs
		// inline in Submit instead of blocking.
		work: make(chan func(), workers*4),
	}
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for fn := range p.work {
		fn()
	}
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Submit schedules fn on the pool. If the queue is full or the pool is
// closed, fn runs inline on the calling goroutine. Running inline preserves
// the completion protocol: every submitted unit runs exactly once, somewhere.
func (p *Pool) Submit(fn func()) {
	if p.closed.Load() {
		fn()
		return
	}
	select {
	case p.work <- fn:
	default:
		fn()
	}
}

// Close shuts the pool down. Work already queued still runs. Close is
// idempotent.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.work)
	})
}

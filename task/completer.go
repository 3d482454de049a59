package task

import (
	"fmt"
	"runtime/debug"
	"sync/atomic"
)

// A Completer tracks the completion of a task and its forked children
// without ever blocking a worker. Its pending count holds the number of
// outstanding units other than the one currently accounted for: a completer
// is created with one implicit unit (its own computation), and every Fork or
// Child adds one. Each unit finishes by calling TryComplete; the unit that
// finds the count at zero runs the completion handler and continues the walk
// at the parent. This is the counted-completer discipline from
// java.util.concurrent, restated with explicit atomics.
type Completer struct {
	g          *Group
	parent     *Completer
	pending    atomic.Int32
	onComplete func()
}

// A Group ties a tree of completers to a pool and collects the first failure.
// The top-level caller is the only goroutine that ever blocks, in Wait.
type Group struct {
	pool   *Pool
	done   chan struct{}
	failed atomic.Bool
	err    atomic.Pointer[PanicError]
}

// PanicError is a panic recovered inside a task, with the stack at the point
// of recovery. Comparator panics surface to the top-level caller as one of
// these; the task tree still runs to completion so that no goroutine leaks,
// but all results after the failure are discarded.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task: recovered panic: %v\n%s", e.Value, e.Stack)
}

// NewGroup creates a group scheduling on pool.
func NewGroup(pool *Pool) *Group {
	return &Group{pool: pool, done: make(chan struct{})}
}

// NewRoot creates the root completer of the group. Its completion unblocks
// Wait.
func (g *Group) NewRoot() *Completer {
	return &Completer{g: g, onComplete: func() { close(g.done) }}
}

// Failed reports whether some unit of the group has already failed. Units
// use it to skip work whose result would be discarded anyway.
func (g *Group) Failed() bool {
	return g.failed.Load()
}

// Wait blocks until the root completer has completed and returns the first
// recorded failure, if any.
func (g *Group) Wait() error {
	<-g.done
	if e := g.err.Load(); e != nil {
		return e
	}
	return nil
}

func (g *Group) fail(value any) {
	e := &PanicError{Value: value, Stack: debug.Stack()}
	if g.err.CompareAndSwap(nil, e) {
		g.failed.Store(true)
	}
}

// capture must be invoked via defer. It converts a panic in the surrounding
// unit into a group failure instead of crashing the worker.
func (g *Group) capture() {
	if p := recover(); p != nil {
		g.fail(p)
	}
}

// Child creates a completer for a subtask of c. The child counts as one unit
// of c: c completes only after the child's whole subtree has completed.
// onComplete, if non-nil, runs exactly once when the child's own units are
// done, on whichever goroutine finished last.
func (c *Completer) Child(onComplete func()) *Completer {
	c.pending.Add(1)
	return &Completer{g: c.g, parent: c, onComplete: onComplete}
}

// Fork schedules fn as an additional unit of c on the pool.
func (c *Completer) Fork(fn func()) {
	c.pending.Add(1)
	c.g.pool.Submit(func() { c.exec(fn) })
}

// Compute runs fn inline as the unit the completer was created with. Every
// completer must have exactly one Compute or Invoke call (possibly with a
// nil fn) to balance its implicit unit.
func (c *Completer) Compute(fn func()) {
	c.exec(fn)
}

// Invoke schedules the completer's own unit on the pool instead of running
// it inline.
func (c *Completer) Invoke(fn func()) {
	c.g.pool.Submit(func() { c.exec(fn) })
}

func (c *Completer) exec(fn func()) {
	defer c.TryComplete()
	if fn == nil || c.g.Failed() {
		return
	}
	defer c.g.capture()
	fn()
}

// TryComplete records the end of one unit of c. If it was the last one, the
// calling goroutine runs c's completion handler and continues the walk
// upward, completing ancestors whose counts reach zero. No unit ever blocks
// here; the walk is pure atomics.
func (c *Completer) TryComplete() {
	cur := c
	for {
		p := cur.pending.Load()
		if p == 0 {
			cur.complete()
			if cur.parent == nil {
				return
			}
			cur = cur.parent
		} else if cur.pending.CompareAndSwap(p, p-1) {
			return
		}
	}
}

func (c *Completer) complete() {
	if c.onComplete == nil {
		return
	}
	// Completion handlers run merges that call user comparators, so they
	// get the same failure capture as regular units. A failed group still
	// propagates completion upward to unblock Wait.
	defer c.g.capture()
	if c.g.Failed() && c.parent != nil {
		return
	}
	c.onComplete()
}

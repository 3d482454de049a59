package task

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPoolRunsSubmittedWork(t *testing.T) {
	p := NewPool(4)
	defer p.Close()
	require.Equal(t, 4, p.Workers())

	var n atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 1000; i++ {
		wg.Add(1)
		p.Submit(func() {
			n.Add(1)
			wg.Done()
		})
	}
	wg.Wait()
	require.EqualValues(t, 1000, n.Load())
}

func TestPoolDefaultsWorkerCount(t *testing.T) {
	p := NewPool(0)
	defer p.Close()
	require.Greater(t, p.Workers(), 0)
}

func TestPoolSubmitAfterCloseRunsInline(t *testing.T) {
	p := NewPool(1)
	p.Close()
	ran := false
	p.Submit(func() { ran = true })
	require.True(t, ran)
}

func TestPoolSubmitOverflowRunsInline(t *testing.T) {
	p := NewPool(1)
	block := make(chan struct{})
	started := make(chan struct{})
	p.Submit(func() {
		close(started)
		<-block
	})
	<-started
	// The single worker is parked, so these fill the queue buffer.
	for i := 0; i < 4; i++ {
		p.Submit(func() { <-block })
	}
	ran := false
	p.Submit(func() { ran = true })
	require.True(t, ran, "overflow submit must run on the caller")
	close(block)
	p.Close()
}

func TestCompleterTreeCompletes(t *testing.T) {
	p := NewPool(4)
	defer p.Close()
	g := NewGroup(p)
	root := g.NewRoot()

	var sum atomic.Int64
	c := root.Child(nil)
	for i := 1; i <= 100; i++ {
		i := i
		c.Fork(func() { sum.Add(int64(i)) })
	}
	c.Compute(nil)
	root.Compute(nil)

	require.NoError(t, g.Wait())
	require.EqualValues(t, 5050, sum.Load())
}

func TestCompleterOnCompleteRunsOnce(t *testing.T) {
	p := NewPool(4)
	defer p.Close()
	g := NewGroup(p)
	root := g.NewRoot()

	var completions atomic.Int32
	c := root.Child(func() { completions.Add(1) })
	for i := 0; i < 64; i++ {
		c.Fork(func() {})
	}
	c.Compute(nil)
	root.Compute(nil)

	require.NoError(t, g.Wait())
	require.EqualValues(t, 1, completions.Load())
}

func TestCompletionOrderChildBeforeParent(t *testing.T) {
	p := NewPool(2)
	defer p.Close()
	g := NewGroup(p)
	root := g.NewRoot()

	var mu sync.Mutex
	var order []string
	record := func(name string) func() {
		return func() {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}
	}
	parent := root.Child(record("parent"))
	child := parent.Child(record("child"))
	child.Fork(func() {})
	child.Compute(nil)
	parent.Compute(nil)
	root.Compute(nil)

	require.NoError(t, g.Wait())
	require.Equal(t, []string{"child", "parent"}, order)
}

func TestCompletionHandlerCanAttachSibling(t *testing.T) {
	// The merge scheduling pattern: a node's completion handler attaches a
	// new child to the node's parent, and the parent must wait for it.
	p := NewPool(2)
	defer p.Close()
	g := NewGroup(p)
	root := g.NewRoot()

	var mergeRan atomic.Bool
	var parentDone atomic.Bool
	parent := root.Child(func() {
		require.True(t, mergeRan.Load(), "parent completed before attached sibling")
		parentDone.Store(true)
	})
	node := parent.Child(func() {
		m := parent.Child(nil)
		m.Compute(func() { mergeRan.Store(true) })
	})
	node.Fork(func() {})
	node.Compute(nil)
	parent.Compute(nil)
	root.Compute(nil)

	require.NoError(t, g.Wait())
	require.True(t, parentDone.Load())
}

func TestGroupPanicSurfacesAsError(t *testing.T) {
	p := NewPool(4)
	defer p.Close()
	g := NewGroup(p)
	root := g.NewRoot()

	c := root.Child(nil)
	for i := 0; i < 16; i++ {
		i := i
		c.Fork(func() {
			if i == 7 {
				panic("boom")
			}
		})
	}
	c.Compute(nil)
	root.Compute(nil)

	err := g.Wait()
	require.Error(t, err)
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "boom", pe.Value)
	require.NotEmpty(t, pe.Stack)
	require.True(t, g.Failed())
}

func TestGroupKeepsFirstPanic(t *testing.T) {
	p := NewPool(4)
	defer p.Close()
	g := NewGroup(p)
	root := g.NewRoot()

	c := root.Child(nil)
	c.Compute(func() { panic("first") })
	// The group is failed, so this unit is skipped entirely.
	d := root.Child(nil)
	d.Compute(func() { panic("second") })
	root.Compute(nil)

	err := g.Wait()
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "first", pe.Value)
}

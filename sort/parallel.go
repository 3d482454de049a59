package sort

import "dualpivot/task"

// mergeDepth computes how many levels of merge decomposition are worthwhile
// for the given worker count and range size. Each level doubles the leaf
// count and halves the leaf size; splitting stops once leaves would drop
// below the parallel threshold or outnumber the workers.
func mergeDepth(workers, size, minParallel int) int {
	depth := 0
	for workers > 1 && size >= 2*minParallel {
		depth++
		workers >>= 1
		size >>= 1
	}
	return depth
}

// parallelQuick sorts a[low:high] with parallel quicksort alone: partition
// segments above the threshold fork onto the pool, with no merge phase and
// no auxiliary buffer. Chosen when the range is too small to amortize merge
// levels but large enough that forked partitions help.
func (s *sorter[T]) parallelQuick(low, high int) error {
	pool := task.NewPool(s.cfg.Threads)
	defer pool.Close()
	g := task.NewGroup(pool)

	root := g.NewRoot()
	c := root.Child(nil)
	c.Compute(func() { s.sortRange(c, 0, low, high) })
	root.Compute(nil)
	return g.Wait()
}

// parallelSort sorts a[low:low+size] with depth levels of fork-join merge
// sort over quicksort leaves, ping-ponging between the slice and one
// auxiliary buffer so each element moves once per merge level.
func (s *sorter[T]) parallelSort(low, size, depth int) error {
	pool := task.NewPool(s.cfg.Threads)
	defer pool.Close()
	g := task.NewGroup(pool)

	s.aux = make([]T, size)
	s.auxOff = low

	root := g.NewRoot()
	// The final merge must land in the caller's slice.
	s.sortTask(root, low, size, -depth, true, true)
	root.Compute(nil)
	return g.Wait()
}

// sortTask schedules the sort of a[low:low+size] as a child node of parent.
// Negative depth counts remaining merge levels; at zero the node is a
// quicksort leaf. dstPrimary is the buffer generation the sorted range must
// land in: true for the caller's slice, false for the auxiliary buffer. Each
// split flips the children's generation, and the node's completion handler
// merges the two halves back into its own.
//
// One child of every split is submitted to the pool and the other computed
// inline, so the goroutine that schedules a subtree also works on it.
func (s *sorter[T]) sortTask(parent *task.Completer, low, size, depth int, dstPrimary, inline bool) {
	var c *task.Completer
	var work func()
	if depth < 0 {
		half := size >> 1
		c = parent.Child(func() { s.startMerge(parent, low, size, half, dstPrimary) })
		work = func() {
			s.sortTask(c, low, half, depth+1, !dstPrimary, false)
			s.sortTask(c, low+half, size-half, depth+1, !dstPrimary, true)
		}
	} else {
		c = parent.Child(nil)
		work = func() {
			if dstPrimary {
				s.sortRange(c, 0, low, low+size)
				return
			}
			off := s.auxOff
			copy(s.aux[low-off:low-off+size], s.a[low:low+size])
			s.withArray(s.aux).sortRange(c, 0, low-off, low-off+size)
		}
	}
	if inline {
		c.Compute(work)
	} else {
		c.Invoke(work)
	}
}

// startMerge runs as the completion handler of a split node, on whichever
// goroutine finished the node's last unit. It attaches a merger as a new
// child of the node's parent before the completion walk decrements it, so
// the parent now waits on the merge instead of the finished sort.
func (s *sorter[T]) startMerge(parent *task.Completer, low, size, half int, dstPrimary bool) {
	off := s.auxOff
	mid := low + half
	m := parent.Child(nil)
	if dstPrimary {
		// Children sorted into the auxiliary buffer; merge back into
		// the slice.
		m.Compute(func() {
			s.pMerge(m, s.a, low, s.aux, low-off, mid-off, s.aux, mid-off, low+size-off)
		})
	} else {
		m.Compute(func() {
			s.pMerge(m, s.aux, low-off, s.a, low, mid, s.a, mid, low+size)
		})
	}
}

// pMerge merges a1[lo1:hi1] and a2[lo2:hi2] into dst at k, forking the merge
// of one half onto the pool while the calling goroutine continues with the
// other. The split takes the midpoint of the larger segment and binary-
// searches its value in the smaller one, so both forked merges receive
// element ranges that are disjoint in dst.
func (s *sorter[T]) pMerge(c *task.Completer, dst []T, k int, a1 []T, lo1, hi1 int, a2 []T, lo2, hi2 int) {
	min := s.cfg.MinParallelMerge
	for hi1-lo1 >= min && hi2-lo2 >= min {
		if hi1-lo1 < hi2-lo2 {
			a1, a2 = a2, a1
			lo1, lo2 = lo2, lo1
			hi1, hi2 = hi2, hi1
		}
		mi1 := (lo1 + hi1) >> 1
		mi2 := lowerBound(s.less, a2, lo2, hi2, a1[mi1])

		d := k + (mi1 - lo1) + (mi2 - lo2)
		fa1, fa2, fm1, fm2, fh1, fh2 := a1, a2, mi1, mi2, hi1, hi2
		c.Fork(func() { s.pMerge(c, dst, d, fa1, fm1, fh1, fa2, fm2, fh2) })

		hi1, hi2 = mi1, mi2
	}
	mergeParts(s.less, dst, k, a1, lo1, hi1, a2, lo2, hi2)
}

// lowerBound returns the first index in a[lo:hi] whose element is not less
// than key, or hi if there is none.
func lowerBound[T any](less func(x, y T) bool, a []T, lo, hi int, key T) int {
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if less(a[mid], key) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

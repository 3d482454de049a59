package sort

import "dualpivot/task"

// sorter carries one sort invocation: the slice, the comparator, the
// optional counting-sort hook, the configuration, and the auxiliary buffer
// state of a parallel merge sort. It is not safe for concurrent invocations,
// but concurrent tasks of one invocation operate on disjoint ranges.
type sorter[T any] struct {
	a       []T
	less    func(x, y T) bool
	countFn func(a []T, low, high int) bool
	cfg     Config

	aux    []T // auxiliary buffer for parallel merging, nil otherwise
	auxOff int // aux index = slice index - auxOff
}

// withArray returns a copy of the sorter operating on a different slice.
// Parallel leaves sorting inside the auxiliary buffer use this.
func (s *sorter[T]) withArray(a []T) *sorter[T] {
	t := *s
	t.a = a
	return &t
}

// sortRange sorts a[low:high] with the adaptive dual-pivot quicksort. bits
// carries two pieces of state packed the way the recursion uses them: the
// low bit is set on every range except the leftmost at its level, which
// means a sentinel element exists to the left of low; the remaining bits
// accumulate Delta per partition step and trigger the heap-sort fallback
// past MaxRecursionDepth.
//
// If c is non-nil, partition segments above the parallel threshold are
// forked onto the pool as units of c instead of recursing.
func (s *sorter[T]) sortRange(c *task.Completer, bits, low, high int) {
	a, less := s.a, s.less
	for {
		end := high - 1
		size := high - low

		if size < s.cfg.MixedInsertionThreshold+bits && bits&1 > 0 {
			s.mixedInsertionSort(low, high)
			return
		}
		if size < s.cfg.InsertionThreshold {
			s.insertionSort(low, high)
			return
		}
		if bits == 0 && s.countFn != nil && size >= s.cfg.CountingMinSize && s.countFn(a, low, high) {
			return
		}
		if (bits == 0 || (size > s.cfg.MinTryMergeSize && bits&1 > 0)) && s.tryMergeRuns(low, size) {
			return
		}
		if bits += s.cfg.Delta; bits > s.cfg.MaxRecursionDepth {
			s.heapSort(low, high)
			return
		}

		// Five samples at equal spacing, sorted by a fixed network. If
		// they are strictly increasing, the 1st and 5th become the two
		// pivots; any tie among them signals duplicates and selects the
		// single-pivot three-way partition instead.
		step := (size>>3)*3 + 3
		e1 := low + step
		e5 := end - step
		e3 := (e1 + e5) >> 1
		e2 := (e1 + e3) >> 1
		e4 := (e3 + e5) >> 1
		s.sort5(e1, e2, e3, e4, e5)

		if less(a[e1], a[e2]) && less(a[e2], a[e3]) && less(a[e3], a[e4]) && less(a[e4], a[e5]) {
			lower, upper := s.partitionDualPivot(low, high, e1, e5)
			mlo, mhi := lower+1, upper
			if mhi-mlo > (size>>2)*3 {
				// Middle segment dominates: extract elements
				// equal to either pivot before recursing.
				mlo, mhi = s.extractPivotRuns(lower, upper)
			}
			if c != nil && size > s.cfg.ParallelThreshold {
				s.forkSort(c, bits|1, mlo, mhi)
				s.forkSort(c, bits|1, upper+1, high)
			} else {
				s.sortRange(c, bits|1, mlo, mhi)
				s.sortRange(c, bits|1, upper+1, high)
			}
			high = lower
		} else {
			lower, upper := s.partitionSinglePivot(low, high, e3)
			// The equal segment [lower, upper] is already in place.
			if c != nil && size > s.cfg.ParallelThreshold {
				s.forkSort(c, bits|1, upper+1, high)
			} else {
				s.sortRange(c, bits|1, upper+1, high)
			}
			high = lower
		}
	}
}

func (s *sorter[T]) forkSort(c *task.Completer, bits, low, high int) {
	c.Fork(func() { s.sortRange(c, bits, low, high) })
}

// sort5 sorts the five sample elements with a nine-exchange network.
func (s *sorter[T]) sort5(e1, e2, e3, e4, e5 int) {
	a, less := s.a, s.less
	if less(a[e2], a[e1]) {
		a[e1], a[e2] = a[e2], a[e1]
	}
	if less(a[e5], a[e4]) {
		a[e4], a[e5] = a[e5], a[e4]
	}
	if less(a[e3], a[e1]) {
		a[e1], a[e3] = a[e3], a[e1]
	}
	if less(a[e3], a[e2]) {
		a[e2], a[e3] = a[e3], a[e2]
	}
	if less(a[e4], a[e1]) {
		a[e1], a[e4] = a[e4], a[e1]
	}
	if less(a[e4], a[e3]) {
		a[e3], a[e4] = a[e4], a[e3]
	}
	if less(a[e5], a[e2]) {
		a[e2], a[e5] = a[e5], a[e2]
	}
	if less(a[e3], a[e2]) {
		a[e2], a[e3] = a[e3], a[e2]
	}
	if less(a[e5], a[e4]) {
		a[e4], a[e5] = a[e5], a[e4]
	}
}

// sorted reports whether a[low:high] is already nondecreasing.
func (s *sorter[T]) sorted(low, high int) bool {
	for i := low + 1; i < high; i++ {
		if s.less(s.a[i], s.a[i-1]) {
			return false
		}
	}
	return true
}

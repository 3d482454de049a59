package sort

// partitionDualPivot partitions a[low:high] around the two pivots at p1 and
// p2 (p1's element strictly below p2's). On return the pivots sit at the
// returned positions lower and upper, a[low:lower] holds elements below the
// first pivot, a[lower+1:upper] elements between the pivots, and
// a[upper+1:high] elements above the second pivot.
func (s *sorter[T]) partitionDualPivot(low, high, p1, p2 int) (int, int) {
	a, less := s.a, s.less
	end := high - 1

	a[low], a[p1] = a[p1], a[low]
	a[end], a[p2] = a[p2], a[end]
	pivot1, pivot2 := a[low], a[end]

	lt, gt := low+1, end-1
	for k := lt; k <= gt; k++ {
		if less(a[k], pivot1) {
			a[k], a[lt] = a[lt], a[k]
			lt++
		} else if less(pivot2, a[k]) {
			for k < gt && less(pivot2, a[gt]) {
				gt--
			}
			a[k], a[gt] = a[gt], a[k]
			gt--
			if less(a[k], pivot1) {
				a[k], a[lt] = a[lt], a[k]
				lt++
			}
		}
	}
	lt--
	gt++
	a[low], a[lt] = a[lt], a[low]
	a[end], a[gt] = a[gt], a[end]
	return lt, gt
}

// partitionSinglePivot is the three-way partition used when the five-sample
// network finds equal candidates, which signals duplicate-heavy input. It
// groups every element equal to the pivot into the middle segment, so that
// segment never recurses. Returns lower and upper such that a[low:lower]
// is below the pivot, a[lower:upper+1] equal to it, and a[upper+1:high]
// above it.
func (s *sorter[T]) partitionSinglePivot(low, high, p int) (int, int) {
	a, less := s.a, s.less
	pivot := a[p]
	a[low], a[p] = a[p], a[low]

	lt, gt := low, high
	i := low + 1
	for i < gt {
		if less(a[i], pivot) {
			a[lt], a[i] = a[i], a[lt]
			lt++
			i++
		} else if less(pivot, a[i]) {
			gt--
			for i < gt && less(pivot, a[gt]) {
				gt--
			}
			a[i], a[gt] = a[gt], a[i]
		} else {
			i++
		}
	}
	return lt, gt - 1
}

// extractPivotRuns is the duplicate escape valve for the dual-pivot path.
// When the middle segment (lower, upper) dominates the range, many of its
// elements are likely equal to one of the pivots; a single extra three-way
// pass moves those into contiguous runs adjacent to their pivot, and only
// the strictly-between remainder recurses. Returns the bounds [mlo, mhi) of
// that remainder.
func (s *sorter[T]) extractPivotRuns(lower, upper int) (int, int) {
	a, less := s.a, s.less
	p1, p2 := a[lower], a[upper]

	lt, gt := lower+1, upper-1
	for k := lt; k <= gt; {
		ak := a[k]
		switch {
		case !less(ak, p1) && !less(p1, ak):
			a[k] = a[lt]
			a[lt] = ak
			lt++
			k++
		case !less(ak, p2) && !less(p2, ak):
			for k < gt && !less(a[gt], p2) && !less(p2, a[gt]) {
				gt--
			}
			a[k] = a[gt]
			a[gt] = ak
			gt--
			// The element swapped in from gt is re-examined on the
			// next iteration.
		default:
			k++
		}
	}
	return lt, gt + 1
}

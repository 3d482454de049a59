package sort

// insertionSort sorts a[low:high] with a guarded insertion sort. It is the
// terminal sorter for small leftmost ranges, where no sentinel element exists
// to the left of low.
func (s *sorter[T]) insertionSort(low, high int) {
	a, less := s.a, s.less
	for k := low + 1; k < high; k++ {
		ai := a[k]
		if less(ai, a[k-1]) {
			i := k - 1
			for ; i >= low && less(ai, a[i]); i-- {
				a[i+1] = a[i]
			}
			a[i+1] = ai
		}
	}
}

// mixedInsertionSort sorts a[low:high], a small interior range. Interior
// ranges follow a partition step, so every element of some left sibling is a
// lower bound for the range. It combines simple insertion for the head of
// the range, a "pin" pass that moves elements above a pin value toward the
// tail before inserting, and pairwise insertion for the remainder, which
// saves roughly one shift scan per two elements.
func (s *sorter[T]) mixedInsertionSort(low, high int) {
	a, less := s.a, s.less
	start := low
	size := high - low
	end := high - 3*((size>>5)<<3)

	if end == high {
		for k := low + 1; k < end; k++ {
			ai := a[k]
			i := k - 1
			for i >= start && less(ai, a[i]) {
				a[i+1] = a[i]
				i--
			}
			a[i+1] = ai
		}
		return
	}

	// Head: insert elements one at a time, pushing values above the pin
	// (the element at the split point) toward the tail of the range so the
	// pair phase inserts into a shorter prefix.
	pin := a[end]
	p := high
	for k := low + 1; k < end; k++ {
		i := k
		ai := a[i]
		if less(ai, a[i-1]) {
			a[i] = a[i-1]
			i -= 2
			for i >= start && less(ai, a[i]) {
				a[i+1] = a[i]
				i--
			}
			a[i+1] = ai
		} else if p > i && less(pin, ai) {
			p--
			for less(pin, a[p]) {
				p--
			}
			if p > i {
				ai = a[p]
				a[p] = a[i]
			}
			i--
			for i >= start && less(ai, a[i]) {
				a[i+1] = a[i]
				i--
			}
			a[i+1] = ai
		}
	}

	// Tail: insert the remaining elements in pairs, sharing one shift scan
	// per pair. high-end is a multiple of two by construction of end.
	for k := end; k < high; k += 2 {
		a1, a2 := a[k], a[k+1]
		i := k
		if less(a2, a1) {
			i--
			for i >= start && less(a1, a[i]) {
				a[i+2] = a[i]
				i--
			}
			i++
			a[i+1] = a1
			i--
			for i >= start && less(a2, a[i]) {
				a[i+1] = a[i]
				i--
			}
			a[i+1] = a2
		} else if less(a1, a[i-1]) {
			i--
			for i >= start && less(a2, a[i]) {
				a[i+2] = a[i]
				i--
			}
			i++
			a[i+1] = a2
			i--
			for i >= start && less(a1, a[i]) {
				a[i+1] = a[i]
				i--
			}
			a[i+1] = a1
		}
	}
}

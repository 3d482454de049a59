package sort

// heapSort sorts a[low:high]. It is the fallback once the recursion budget
// is exhausted; it does more comparisons than quicksort on average but its
// worst case is O(n log n) with no extra space.
func (s *sorter[T]) heapSort(low, high int) {
	a := s.a
	for k := (low + high) >> 1; k > low; {
		k--
		s.pushDown(k, a[k], low, high)
	}
	for high--; high > low; high-- {
		max := a[low]
		s.pushDown(low, a[high], low, high)
		a[high] = max
	}
}

// pushDown sifts value from position p toward the leaves of the max-heap
// rooted at low with elements in a[low:high].
func (s *sorter[T]) pushDown(p int, value T, low, high int) {
	a, less := s.a, s.less
	for {
		k := (p << 1) - low + 2
		if k > high {
			break
		}
		if k == high || less(a[k], a[k-1]) {
			k--
		}
		if !less(value, a[k]) {
			break
		}
		a[p] = a[k]
		p = k
	}
	a[p] = value
}

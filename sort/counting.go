package sort

// countingSort tries to sort a[low:high] by counting occurrences. It first
// scans for the observed min and max; if their spread is at least maxRange
// it reports false without touching the slice, and quicksort proceeds. The
// spread test uses the observed values, not the width of the element type,
// so an int64 slice holding values 0..999 still qualifies.
func countingSort[T Integer](a []T, low, high, maxRange int) bool {
	min, max := a[low], a[low]
	for i := low + 1; i < high; i++ {
		if a[i] < min {
			min = a[i]
		} else if a[i] > max {
			max = a[i]
		}
	}
	// Unsigned subtraction is exact for signed types too under two's
	// complement, so the spread never overflows.
	spread := uint64(max) - uint64(min)
	if spread >= uint64(maxRange) {
		return false
	}

	counts := make([]int, spread+1)
	for i := low; i < high; i++ {
		counts[uint64(a[i])-uint64(min)]++
	}
	k := low
	for v, c := range counts {
		if c == 0 {
			continue
		}
		value := min + T(v)
		for ; c > 0; c-- {
			a[k] = value
			k++
		}
	}
	return true
}

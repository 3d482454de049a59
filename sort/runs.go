package sort

// tryMergeRuns scans a[low:low+size] for existing monotonic runs and, if the
// whole range decomposes into few enough long runs, finishes the sort with a
// balanced merge of those runs and reports true. Descending runs are reversed
// in place during the scan; runs of equal elements attach to whichever run
// follows. The scan aborts (reporting false) as soon as the input looks
// effectively random: a short first run, too many runs for the prefix already
// scanned, or more runs than the run table may hold.
func (s *sorter[T]) tryMergeRuns(low, size int) bool {
	a, less := s.a, s.less
	high := low + size
	count := 1
	last := low
	var run []int

	for k := low + 1; k < high; {
		if less(a[k-1], a[k]) {
			// Ascending run.
			for k++; k < high && !less(a[k], a[k-1]); k++ {
			}
		} else if less(a[k], a[k-1]) {
			// Descending run; reverse it in place.
			for k++; k < high && !less(a[k-1], a[k]); k++ {
			}
			for i, j := last, k-1; i < j && less(a[j], a[i]); {
				a[i], a[j] = a[j], a[i]
				i++
				j--
			}
		} else {
			// Equal elements; attach to the next run.
			ak := a[k]
			for k++; k < high && !less(ak, a[k]) && !less(a[k], ak); k++ {
			}
			if k < high {
				continue
			}
		}

		if run == nil {
			if k == high {
				// The whole range is one monotonic run.
				return true
			}
			if k-low < s.cfg.MinFirstRunSize {
				return false
			}
			run = make([]int, 0, ((size>>10)|0x7F)&0x3FF)
			run = append(run, low)
			last = k
			run = append(run, last)
		} else if less(a[last], a[last-1]) {
			// A new run starts at last.
			if count > (k-low)>>s.cfg.MinFirstRunsFactor {
				return false
			}
			count++
			if count == s.cfg.MaxRunCapacity {
				return false
			}
			last = k
			run = append(run, last)
		} else {
			// The previous run extends through last.
			last = k
			run[len(run)-1] = last
		}
	}

	if count > 1 {
		b := make([]T, size)
		s.mergeRuns(a, b, low, 1, run, 0, count)
	}
	return true
}

// mergeRuns merges run[lo:hi+1] (hi-lo runs) recursively, ping-ponging
// between a and the offset buffer b so each element is copied once per merge
// level. aim > 0 requires the result in a, aim < 0 in b, aim == 0 in either.
// Returns the buffer that holds the merged result.
func (s *sorter[T]) mergeRuns(a, b []T, offset, aim int, run []int, lo, hi int) []T {
	if hi-lo == 1 {
		if aim >= 0 {
			return a
		}
		for i, j := run[hi], run[hi]-offset; i > run[lo]; {
			i--
			j--
			b[j] = a[i]
		}
		return b
	}

	// Split at the run boundary nearest the midpoint.
	mi, rmi := lo, (run[lo]+run[hi])>>1
	for {
		mi++
		if run[mi+1] > rmi {
			break
		}
	}

	a1 := s.mergeRuns(a, b, offset, -aim, run, lo, mi)
	a2 := s.mergeRuns(a, b, offset, 0, run, mi, hi)

	var dst []T
	var k, lo1, hi1, lo2, hi2 int
	if sameBase(a1, a) {
		dst = b
		k = run[lo] - offset
	} else {
		dst = a
		k = run[lo]
	}
	if sameBase(a1, b) {
		lo1, hi1 = run[lo]-offset, run[mi]-offset
	} else {
		lo1, hi1 = run[lo], run[mi]
	}
	if sameBase(a2, b) {
		lo2, hi2 = run[mi]-offset, run[hi]-offset
	} else {
		lo2, hi2 = run[mi], run[hi]
	}
	mergeParts(s.less, dst, k, a1, lo1, hi1, a2, lo2, hi2)
	return dst
}

// mergeParts merges a1[lo1:hi1] and a2[lo2:hi2] into dst starting at k.
// Leftovers are copied only when they would actually move: when dst shares a
// buffer with the leftover source and the write position has caught up with
// the read position, the tail is already in place.
func mergeParts[T any](less func(x, y T) bool, dst []T, k int, a1 []T, lo1, hi1 int, a2 []T, lo2, hi2 int) {
	for lo1 < hi1 && lo2 < hi2 {
		if less(a2[lo2], a1[lo1]) {
			dst[k] = a2[lo2]
			lo2++
		} else {
			dst[k] = a1[lo1]
			lo1++
		}
		k++
	}
	if !sameBase(dst, a1) || k < lo1 {
		for lo1 < hi1 {
			dst[k] = a1[lo1]
			k++
			lo1++
		}
	}
	if !sameBase(dst, a2) || k < lo2 {
		for lo2 < hi2 {
			dst[k] = a2[lo2]
			k++
			lo2++
		}
	}
}

// sameBase reports whether two non-empty slices share a backing array start.
// The merge machinery only ever compares the full primary slice against the
// full auxiliary buffer, so comparing first-element addresses suffices.
func sameBase[T any](x, y []T) bool {
	return len(x) > 0 && len(y) > 0 && &x[0] == &y[0]
}

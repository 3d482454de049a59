// Package sort implements an in-place adaptive dual-pivot quicksort for
// primitive numeric slices, sequentially or on a fixed-size worker pool.
//
// All entry points take an explicit Config; a zero Config sorts sequentially
// with the tuned default thresholds. The engine never allocates beyond the
// run table and, for natural-merge and parallel paths, one auxiliary buffer
// of the range size.
//
// Floating-point slices are ordered by the total order of FloatLess: NaN
// sorts above everything and -0.0 strictly before +0.0. Integer slices with
// a narrow observed value range are sorted by an exact counting sort.
package sort

import (
	"runtime/debug"

	"dualpivot/task"
)

// Ints sorts a slice of integers in ascending order.
func Ints[T Integer](a []T, cfg Config) error {
	return IntsRange(a, 0, len(a), cfg)
}

// IntsRange sorts a[low:high] in ascending order. The counting-sort fast
// path is available for integer element types.
func IntsRange[T Integer](a []T, low, high int, cfg Config) error {
	cfg = cfg.normalized()
	count := func(a []T, lo, hi int) bool {
		return countingSort(a, lo, hi, cfg.CountingRange)
	}
	return sortRange(a, low, high, func(x, y T) bool { return x < y }, count, cfg)
}

// Floats sorts a slice of floats by the FloatLess total order.
func Floats[T Float](a []T, cfg Config) error {
	return FloatsRange(a, 0, len(a), cfg)
}

// FloatsRange sorts a[low:high] by the FloatLess total order.
func FloatsRange[T Float](a []T, low, high int, cfg Config) error {
	return sortRange(a, low, high, FloatLess[T], nil, cfg.normalized())
}

// Slice sorts a slice by an arbitrary comparator. less must be a strict
// weak ordering; a panicking comparator aborts the sort with an error and
// leaves the slice in an unspecified permutation of its input.
func Slice[T any](a []T, less func(x, y T) bool, cfg Config) error {
	return SliceRange(a, 0, len(a), less, cfg)
}

// SliceRange sorts a[low:high] by an arbitrary comparator.
func SliceRange[T any](a []T, low, high int, less func(x, y T) bool, cfg Config) error {
	return sortRange(a, low, high, less, nil, cfg.normalized())
}

func sortRange[T any](a []T, low, high int, less func(x, y T) bool, count func([]T, int, int) bool, cfg Config) error {
	if err := checkRange(low, high, len(a)); err != nil {
		return err
	}
	if high-low < 2 {
		return nil
	}
	s := &sorter[T]{a: a, less: less, countFn: count, cfg: cfg}

	// An already sorted range is a no-op. The scan is linear and pays for
	// itself on the append-then-resort pattern this engine is tuned for.
	alreadySorted := false
	if err := capturePanic(func() { alreadySorted = s.sorted(low, high) }); err != nil {
		return err
	}
	if alreadySorted {
		return nil
	}

	size := high - low
	if cfg.Threads > 1 && size > cfg.ParallelThreshold {
		if depth := mergeDepth(cfg.Threads, size, cfg.ParallelThreshold); depth > 0 {
			return s.parallelSort(low, size, depth)
		}
		return s.parallelQuick(low, high)
	}
	return capturePanic(func() { s.sortRange(nil, 0, low, high) })
}

// capturePanic converts a comparator panic on the calling goroutine into the
// same error the parallel engine reports for panics on workers.
func capturePanic(fn func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &task.PanicError{Value: p, Stack: debug.Stack()}
		}
	}()
	fn()
	return nil
}

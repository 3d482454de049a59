package sort

import "fmt"

// Config carries the thread count and the tuning thresholds of the engine.
// A Config is passed explicitly into every top-level call; there is no
// module-level tuning state, so the same binary can be benchmarked across
// threshold settings. The zero value of any field selects its default.
//
// The defaults are empirically tuned, not correctness invariants. In
// particular the insertion and counting windows and the run-detection
// heuristics only move work between algorithms that all produce the same
// result.
type Config struct {
	// Threads is the size of the worker pool for parallel sorting.
	// Values below 2 select the sequential engine.
	Threads int

	// ParallelThreshold is the minimum range size worth forking a task
	// for, both at the top level and for partition segments.
	ParallelThreshold int

	// MinParallelMerge is the minimum segment size for which a merge is
	// split recursively instead of performed linearly.
	MinParallelMerge int

	// InsertionThreshold is the maximum size sorted by plain insertion
	// sort. MixedInsertionThreshold is the corresponding window for the
	// pin-and-pair variant used on interior ranges, which have a sentinel
	// element to their left.
	InsertionThreshold      int
	MixedInsertionThreshold int

	// CountingMinSize and CountingRange gate the exact counting sort for
	// integer element types: it engages when the range holds at least
	// CountingMinSize elements whose observed max-min spread is below
	// CountingRange.
	CountingMinSize int
	CountingRange   int

	// Run detection tunables. MinTryMergeSize is the minimum interior
	// range size for which the run scan is attempted again after the
	// first partition step; MinFirstRunSize, MinFirstRunsFactor and
	// MaxRunCapacity are the abort heuristics that stop the scan when
	// the input looks effectively random.
	MinTryMergeSize    int
	MinFirstRunSize    int
	MinFirstRunsFactor int
	MaxRunCapacity     int

	// Delta is added to the recursion budget on every partition step;
	// once the budget exceeds MaxRecursionDepth the engine abandons
	// quicksort for the current range and falls back to heap sort,
	// bounding worst-case comparisons at O(n log n).
	Delta             int
	MaxRecursionDepth int
}

// DefaultConfig returns the tuned defaults. Threads is left at zero, so the
// default configuration sorts sequentially.
func DefaultConfig() Config {
	return Config{
		ParallelThreshold:       4096,
		MinParallelMerge:        4096,
		InsertionThreshold:      44,
		MixedInsertionThreshold: 65,
		CountingMinSize:         64,
		CountingRange:           1 << 16,
		MinTryMergeSize:         4096,
		MinFirstRunSize:         16,
		MinFirstRunsFactor:      7,
		MaxRunCapacity:          5120,
		Delta:                   6,
		MaxRecursionDepth:       384,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.ParallelThreshold == 0 {
		c.ParallelThreshold = d.ParallelThreshold
	}
	if c.MinParallelMerge == 0 {
		c.MinParallelMerge = d.MinParallelMerge
	}
	if c.InsertionThreshold == 0 {
		c.InsertionThreshold = d.InsertionThreshold
	}
	if c.MixedInsertionThreshold == 0 {
		c.MixedInsertionThreshold = d.MixedInsertionThreshold
	}
	if c.CountingMinSize == 0 {
		c.CountingMinSize = d.CountingMinSize
	}
	if c.CountingRange == 0 {
		c.CountingRange = d.CountingRange
	}
	if c.MinTryMergeSize == 0 {
		c.MinTryMergeSize = d.MinTryMergeSize
	}
	if c.MinFirstRunSize == 0 {
		c.MinFirstRunSize = d.MinFirstRunSize
	}
	if c.MinFirstRunsFactor == 0 {
		c.MinFirstRunsFactor = d.MinFirstRunsFactor
	}
	if c.MaxRunCapacity == 0 {
		c.MaxRunCapacity = d.MaxRunCapacity
	}
	if c.Delta == 0 {
		c.Delta = d.Delta
	}
	if c.MaxRecursionDepth == 0 {
		c.MaxRecursionDepth = d.MaxRecursionDepth
	}
	return c
}

// RangeError reports a sort range that does not fit its slice. The slice is
// not touched when a RangeError is returned.
type RangeError struct {
	Low, High, Length int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("sort: range [%d:%d) out of bounds for length %d", e.Low, e.High, e.Length)
}

func checkRange(low, high, length int) error {
	if low < 0 || low > high || high > length {
		return &RangeError{Low: low, High: high, Length: length}
	}
	return nil
}

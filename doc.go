// Package dualpivot provides an in-place comparison-sorting engine for
// primitive numeric slices, with a sequential adaptive sorter and a parallel
// fork-join sorter built on a fixed-size worker pool.
//
// The sequential sorter is a dual-pivot quicksort that adapts to the shape of
// its input: tiny ranges go to insertion sort, narrow-range integer inputs go
// to an exact counting sort, nearly sorted inputs are detected and finished
// with a natural merge of their existing runs, duplicate-heavy inputs fall
// back to a single-pivot three-way partition, and a recursion budget bounds
// the worst case with heap sort. The parallel sorter decomposes large ranges
// into tasks whose completion propagates through atomic pending counters, so
// no worker thread ever blocks waiting for a join.
//
// Dualpivot provides the following subpackages:
//
// dualpivot/sort provides the sorting engine itself, its configuration, and
// the floating-point total order (NaN above everything, -0.0 before +0.0).
//
// dualpivot/task provides the fork-join plumbing: a fixed-size worker pool
// and a counted-completer completion tracker with non-blocking propagation.
//
// dualpivot/bench provides input-pattern generators, a timing runner over
// named algorithm variants, CSV result records, and statistical summaries.
//
// dualpivot/cmd/dpqbench is the command-line benchmark and stress driver.
//
// The algorithm design follows Yaroslavskiy's dual-pivot quicksort and the
// fork-join completion discipline described in
// http://supertech.csail.mit.edu/papers/steal.pdf.
package dualpivot

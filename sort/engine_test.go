package sort

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntSorter(a []int64) *sorter[int64] {
	return &sorter[int64]{a: a, less: intLess, cfg: DefaultConfig().normalized()}
}

func TestInsertionSorters(t *testing.T) {
	rnd := rand.New(rand.NewPCG(21, 22))
	for _, n := range []int{0, 1, 2, 7, 16, 33, 44, 64, 65} {
		in := make([]int64, n)
		for i := range in {
			in[i] = rnd.Int64N(64)
		}
		want := refSorted(in, intLess)

		got := slices.Clone(in)
		newIntSorter(got).insertionSort(0, n)
		require.Equal(t, want, got, "insertionSort n=%d", n)

		got = slices.Clone(in)
		newIntSorter(got).mixedInsertionSort(0, n)
		require.Equal(t, want, got, "mixedInsertionSort n=%d", n)
	}
}

func TestInsertionSortSubrange(t *testing.T) {
	a := []int64{9, 4, 3, 2, 1, 9}
	newIntSorter(a).insertionSort(1, 5)
	assert.Equal(t, []int64{9, 1, 2, 3, 4, 9}, a)
}

func TestHeapSort(t *testing.T) {
	rnd := rand.New(rand.NewPCG(23, 24))
	for _, n := range []int{2, 3, 10, 100, 10_000} {
		in := make([]int64, n)
		for i := range in {
			in[i] = rnd.Int64N(int64(n))
		}
		got := slices.Clone(in)
		newIntSorter(got).heapSort(0, n)
		require.Equal(t, refSorted(in, intLess), got, "heapSort n=%d", n)
	}
}

func TestPartitionDualPivot(t *testing.T) {
	rnd := rand.New(rand.NewPCG(25, 26))
	a := make([]int64, 1000)
	for i := range a {
		a[i] = rnd.Int64N(500)
	}
	// Pick interior pivot positions with strictly increasing values, as
	// the dispatcher guarantees.
	s := newIntSorter(a)
	p1, p2 := 1, 1
	for i := 1; i < len(a)-1; i++ {
		if a[i] < a[p1] {
			p1 = i
		}
		if a[i] > a[p2] {
			p2 = i
		}
	}
	require.Less(t, a[p1], a[p2])

	lower, upper := s.partitionDualPivot(0, len(a), p1, p2)
	pv1, pv2 := a[lower], a[upper]
	require.Less(t, pv1, pv2)
	for i := 0; i < lower; i++ {
		assert.Less(t, a[i], pv1, "left segment at %d", i)
	}
	for i := lower + 1; i < upper; i++ {
		assert.GreaterOrEqual(t, a[i], pv1, "middle segment at %d", i)
		assert.LessOrEqual(t, a[i], pv2, "middle segment at %d", i)
	}
	for i := upper + 1; i < len(a); i++ {
		assert.Greater(t, a[i], pv2, "right segment at %d", i)
	}
}

func TestPartitionSinglePivot(t *testing.T) {
	rnd := rand.New(rand.NewPCG(27, 28))
	a := make([]int64, 1000)
	for i := range a {
		a[i] = rnd.Int64N(10)
	}
	s := newIntSorter(a)
	pivot := a[500]
	lower, upper := s.partitionSinglePivot(0, len(a), 500)
	for i := 0; i < lower; i++ {
		assert.Less(t, a[i], pivot, "left segment at %d", i)
	}
	for i := lower; i <= upper; i++ {
		assert.Equal(t, pivot, a[i], "equal segment at %d", i)
	}
	for i := upper + 1; i < len(a); i++ {
		assert.Greater(t, a[i], pivot, "right segment at %d", i)
	}
}

func TestTryMergeRunsPiecewiseSorted(t *testing.T) {
	// Three ascending runs and one descending run, each long enough to
	// pass the first-run heuristic.
	var a []int64
	for i := 0; i < 300; i++ {
		a = append(a, int64(i))
	}
	for i := 0; i < 300; i++ {
		a = append(a, int64(i*2))
	}
	for i := 300; i > 0; i-- {
		a = append(a, int64(i))
	}
	for i := 0; i < 300; i++ {
		a = append(a, int64(i+50))
	}
	s := newIntSorter(a)
	want := refSorted(a, intLess)
	require.True(t, s.tryMergeRuns(0, len(a)))
	assert.Equal(t, want, a)
}

func TestTryMergeRunsMonotonicInputs(t *testing.T) {
	asc := make([]int64, 500)
	desc := make([]int64, 500)
	for i := range asc {
		asc[i] = int64(i)
		desc[i] = int64(len(desc) - i)
	}
	require.True(t, newIntSorter(asc).tryMergeRuns(0, len(asc)))
	assert.True(t, slices.IsSorted(asc))

	// A single descending run is reversed in place.
	require.True(t, newIntSorter(desc).tryMergeRuns(0, len(desc)))
	assert.True(t, slices.IsSorted(desc))
}

func TestTryMergeRunsRejectsRandom(t *testing.T) {
	rnd := rand.New(rand.NewPCG(29, 30))
	a := make([]int64, 10_000)
	for i := range a {
		a[i] = rnd.Int64N(1 << 30)
	}
	assert.False(t, newIntSorter(a).tryMergeRuns(0, len(a)))
}

func TestCountingSortNarrow(t *testing.T) {
	rnd := rand.New(rand.NewPCG(31, 32))
	a := make([]int64, 5000)
	for i := range a {
		a[i] = rnd.Int64N(200) - 100
	}
	want := refSorted(a, intLess)
	require.True(t, countingSort(a, 0, len(a), 1<<16))
	assert.Equal(t, want, a)
}

func TestCountingSortRejectsWideRange(t *testing.T) {
	a := []int64{1 << 40, 0, -(1 << 40), 3, 2}
	before := slices.Clone(a)
	require.False(t, countingSort(a, 0, len(a), 1<<16))
	assert.Equal(t, before, a, "a rejected range must leave the slice untouched")
}

func TestCountingSortUnsigned(t *testing.T) {
	rnd := rand.New(rand.NewPCG(33, 34))
	a := make([]uint32, 3000)
	for i := range a {
		a[i] = uint32(rnd.IntN(300))
	}
	want := slices.Clone(a)
	slices.Sort(want)
	require.True(t, countingSort(a, 0, len(a), 1<<16))
	assert.Equal(t, want, a)
}

func TestExtractPivotRuns(t *testing.T) {
	// Pivots 1 and 3 at the segment ends, middle full of duplicates.
	a := []int64{1, 2, 1, 3, 2, 1, 3, 2, 3}
	s := newIntSorter(a)
	mlo, mhi := s.extractPivotRuns(0, len(a)-1)
	for i := 1; i < mlo; i++ {
		assert.EqualValues(t, 1, a[i], "pivot-1 run at %d", i)
	}
	for i := mlo; i < mhi; i++ {
		assert.EqualValues(t, 2, a[i], "strict middle at %d", i)
	}
	for i := mhi; i < len(a)-1; i++ {
		assert.EqualValues(t, 3, a[i], "pivot-2 run at %d", i)
	}
}

func TestMergeParts(t *testing.T) {
	a1 := []int64{1, 3, 5, 7}
	a2 := []int64{2, 3, 6}
	dst := make([]int64, 7)
	mergeParts(intLess, dst, 0, a1, 0, len(a1), a2, 0, len(a2))
	assert.Equal(t, []int64{1, 2, 3, 3, 5, 6, 7}, dst)
}

func TestLowerBound(t *testing.T) {
	a := []int64{1, 2, 2, 4, 9}
	assert.Equal(t, 1, lowerBound(intLess, a, 0, len(a), 2))
	assert.Equal(t, 3, lowerBound(intLess, a, 0, len(a), 3))
	assert.Equal(t, 0, lowerBound(intLess, a, 0, len(a), 0))
	assert.Equal(t, 5, lowerBound(intLess, a, 0, len(a), 10))
}

func TestMergeDepth(t *testing.T) {
	assert.Equal(t, 0, mergeDepth(1, 1<<20, 4096))
	assert.Equal(t, 0, mergeDepth(8, 4096, 4096))
	assert.Equal(t, 1, mergeDepth(2, 1<<20, 4096))
	assert.Equal(t, 3, mergeDepth(8, 1<<20, 4096))
	// Size-limited: leaves never drop below the threshold.
	d := mergeDepth(64, 1<<14, 4096)
	assert.Equal(t, 2, d)
}

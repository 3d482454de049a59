package sort

import "math"

// Integer is the constraint for element types eligible for the counting-sort
// fast path.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Float is the constraint for the floating-point entry points.
type Float interface {
	~float32 | ~float64
}

// FloatLess is the total order used for floating-point sorting: every NaN is
// greater than every non-NaN value (including +Inf), and -0.0 is strictly
// less than +0.0. Unlike the IEEE < operator it is a strict weak ordering,
// so the whole engine, including partitioning and merging, can use it as an
// ordinary comparator with no special-casing of NaN payloads or zero signs.
func FloatLess[T Float](x, y T) bool {
	xNaN := x != x
	yNaN := y != y
	switch {
	case xNaN:
		return false
	case yNaN:
		return true
	case x != y:
		return x < y
	case x == 0:
		// x == y == 0 numerically; order by sign bit.
		return math.Signbit(float64(x)) && !math.Signbit(float64(y))
	default:
		return false
	}
}

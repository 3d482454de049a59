// Package bench generates benchmark inputs, times sorting algorithm
// variants over them, and summarizes the measurements.
package bench

import (
	"fmt"
	"math/rand/v2"

	dpsort "dualpivot/sort"
)

// Number constrains the element types the generators and the runner handle.
type Number interface {
	dpsort.Integer | dpsort.Float
}

// Pattern names an input shape. The shapes are chosen to hit the engine's
// adaptive paths: run detection, counting sort, the duplicate escape valve,
// and the already-sorted fast path.
type Pattern string

const (
	PatternRandom        Pattern = "random"
	PatternSorted        Pattern = "sorted"
	PatternNearlySorted  Pattern = "nearly-sorted"
	PatternReverseSorted Pattern = "reverse-sorted"
	PatternDuplicates    Pattern = "many-duplicates"
	PatternOrganPipe     Pattern = "organ-pipe"
	PatternSawtooth      Pattern = "sawtooth"
	PatternAllEqual      Pattern = "all-equal"
)

// Patterns returns all known patterns, in a stable order.
func Patterns() []Pattern {
	return []Pattern{
		PatternRandom, PatternSorted, PatternNearlySorted,
		PatternReverseSorted, PatternDuplicates, PatternOrganPipe,
		PatternSawtooth, PatternAllEqual,
	}
}

// Fill writes pattern p into a. dupPercent only affects PatternDuplicates:
// it is the approximate share of duplicated elements, defaulting to 90 when
// zero. Generation is deterministic for a given rnd state.
func Fill[T Number](a []T, p Pattern, dupPercent int, rnd *rand.Rand) error {
	n := len(a)
	switch p {
	case PatternRandom:
		for i := range a {
			a[i] = T(rnd.Int64N(1 << 31))
		}
	case PatternSorted:
		for i := range a {
			a[i] = T(i)
		}
	case PatternNearlySorted:
		for i := range a {
			a[i] = T(i)
		}
		// Perturb about one percent of adjacent pairs.
		for k := n/100 + 1; k > 0 && n > 1; k-- {
			i := rnd.IntN(n - 1)
			a[i], a[i+1] = a[i+1], a[i]
		}
	case PatternReverseSorted:
		for i := range a {
			a[i] = T(n - i)
		}
	case PatternDuplicates:
		if dupPercent <= 0 || dupPercent > 100 {
			dupPercent = 90
		}
		distinct := int64(n) * int64(100-dupPercent) / 100
		if distinct < 1 {
			distinct = 1
		}
		for i := range a {
			a[i] = T(rnd.Int64N(distinct))
		}
	case PatternOrganPipe:
		for i := range a {
			if i <= n/2 {
				a[i] = T(i)
			} else {
				a[i] = T(n - i)
			}
		}
	case PatternSawtooth:
		period := n / 8
		if period < 2 {
			period = 2
		}
		for i := range a {
			a[i] = T(i % period)
		}
	case PatternAllEqual:
		for i := range a {
			a[i] = T(42)
		}
	default:
		return fmt.Errorf("bench: unknown pattern %q", p)
	}
	return nil
}

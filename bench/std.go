package bench

import "slices"

// stdSort and stdStable adapt the standard library sorts to the runner's
// comparator form, as reference points for the engine's variants.
func stdSort[T any](a []T, less func(x, y T) bool) {
	slices.SortFunc(a, cmpFunc(less))
}

func stdStable[T any](a []T, less func(x, y T) bool) {
	slices.SortStableFunc(a, cmpFunc(less))
}

func cmpFunc[T any](less func(x, y T) bool) func(x, y T) int {
	return func(x, y T) int {
		switch {
		case less(x, y):
			return -1
		case less(y, x):
			return 1
		default:
			return 0
		}
	}
}

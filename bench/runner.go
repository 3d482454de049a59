package bench

import (
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"go.uber.org/zap"

	dpsort "dualpivot/sort"
)

// Algorithm names a sorting variant the runner can time.
type Algorithm string

const (
	AlgoDualPivot         Algorithm = "dual-pivot"
	AlgoDualPivotParallel Algorithm = "dual-pivot-parallel"
	AlgoStdlib            Algorithm = "stdlib"
	AlgoStdlibStable      Algorithm = "stdlib-stable"
)

// Algorithms returns all known algorithm variants.
func Algorithms() []Algorithm {
	return []Algorithm{AlgoDualPivot, AlgoDualPivotParallel, AlgoStdlib, AlgoStdlibStable}
}

// Case describes one benchmark configuration: a variant, an element type,
// an input shape, and its size.
type Case struct {
	Algorithm  Algorithm
	Type       string // "int32", "int64" or "float64"
	Pattern    Pattern
	Size       int
	Iterations int
	Threads    int // parallel variant only; 0 means GOMAXPROCS
	DupPercent int
	Seed       uint64
}

// Run generates the case's input once, then times Iterations sorts of fresh
// copies, verifying each result. Every iteration yields one Result.
func Run(logger *zap.Logger, c Case) ([]Result, error) {
	if c.Size <= 0 {
		return nil, fmt.Errorf("bench: invalid size %d", c.Size)
	}
	if c.Iterations <= 0 {
		c.Iterations = 1
	}
	switch c.Type {
	case "int32":
		return runTyped(logger, c, dpsort.Ints[int32], func(x, y int32) bool { return x < y })
	case "int64":
		return runTyped(logger, c, dpsort.Ints[int64], func(x, y int64) bool { return x < y })
	case "float64":
		return runTyped(logger, c, dpsort.Floats[float64], dpsort.FloatLess[float64])
	default:
		return nil, fmt.Errorf("bench: unknown element type %q", c.Type)
	}
}

func runTyped[T Number](logger *zap.Logger, c Case, engine func([]T, dpsort.Config) error, less func(x, y T) bool) ([]Result, error) {
	sortFn, err := variant(c, engine, less)
	if err != nil {
		return nil, err
	}

	rnd := rand.New(rand.NewPCG(c.Seed, 0x9e3779b97f4a7c15))
	base := make([]T, c.Size)
	if err := Fill(base, c.Pattern, c.DupPercent, rnd); err != nil {
		return nil, err
	}

	data := make([]T, c.Size)
	results := make([]Result, 0, c.Iterations)
	for it := 0; it < c.Iterations; it++ {
		copy(data, base)
		start := time.Now()
		if err := sortFn(data); err != nil {
			return nil, fmt.Errorf("bench: %s on %s/%s/%d: %w", c.Algorithm, c.Type, c.Pattern, c.Size, err)
		}
		elapsed := time.Since(start)
		for i := 1; i < len(data); i++ {
			if less(data[i], data[i-1]) {
				return nil, fmt.Errorf("bench: %s on %s/%s/%d: output not sorted at %d", c.Algorithm, c.Type, c.Pattern, c.Size, i)
			}
		}
		logger.Debug("iteration done",
			zap.String("algorithm", string(c.Algorithm)),
			zap.String("pattern", string(c.Pattern)),
			zap.Int("size", c.Size),
			zap.Int("iteration", it),
			zap.Duration("elapsed", elapsed))
		results = append(results, Result{
			Algorithm: c.Algorithm,
			Type:      c.Type,
			Pattern:   c.Pattern,
			Size:      c.Size,
			Iteration: it,
			Elapsed:   elapsed,
		})
	}
	return results, nil
}

func variant[T Number](c Case, engine func([]T, dpsort.Config) error, less func(x, y T) bool) (func([]T) error, error) {
	switch c.Algorithm {
	case AlgoDualPivot:
		cfg := dpsort.DefaultConfig()
		return func(a []T) error { return engine(a, cfg) }, nil
	case AlgoDualPivotParallel:
		cfg := dpsort.DefaultConfig()
		cfg.Threads = c.Threads
		if cfg.Threads <= 0 {
			cfg.Threads = runtime.GOMAXPROCS(0)
		}
		return func(a []T) error { return engine(a, cfg) }, nil
	case AlgoStdlib:
		return func(a []T) error { stdSort(a, less); return nil }, nil
	case AlgoStdlibStable:
		return func(a []T) error { stdStable(a, less); return nil }, nil
	default:
		return nil, fmt.Errorf("bench: unknown algorithm %q", c.Algorithm)
	}
}

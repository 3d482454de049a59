package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dualpivot/bench"
	dpsort "dualpivot/sort"
)

type stressOptions struct {
	rounds  int
	maxSize int
	threads int
	workers int
	seed    uint64
}

func newStressCmd() *cobra.Command {
	opts := stressOptions{
		rounds:  1000,
		maxSize: 1 << 18,
		workers: runtime.GOMAXPROCS(0),
		seed:    1,
	}
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Cross-check the engine against the standard library on random cases",
		Long: `Stress runs randomized rounds, each sorting a fresh input with the
sequential engine, the parallel engine, and the standard library under the
same ordering, and fails on the first mismatch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(cmd.Context(), opts)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.rounds, "rounds", opts.rounds, "number of randomized rounds")
	f.IntVar(&opts.maxSize, "max-size", opts.maxSize, "maximum input size per round")
	f.IntVar(&opts.threads, "threads", 0, "worker count for the parallel engine (0 = GOMAXPROCS)")
	f.IntVar(&opts.workers, "workers", opts.workers, "concurrent rounds")
	f.Uint64Var(&opts.seed, "seed", opts.seed, "base seed; round r uses seed+r")
	return cmd
}

func runStress(ctx context.Context, opts stressOptions) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	threads := opts.threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers)
	for r := 0; r < opts.rounds; r++ {
		round := r
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return stressRound(logger, opts.seed+uint64(round), round, opts.maxSize, threads)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stress passed", zap.Int("rounds", opts.rounds))
	return nil
}

func stressRound(logger *zap.Logger, seed uint64, round, maxSize, threads int) error {
	rnd := rand.New(rand.NewPCG(seed, 0x6a09e667f3bcc909))
	patterns := bench.Patterns()
	pattern := patterns[rnd.IntN(len(patterns))]
	size := 1 + rnd.IntN(maxSize)

	var err error
	switch round % 3 {
	case 0:
		err = stressTyped(rnd, pattern, size, threads, dpsort.Ints[int64], func(x, y int64) bool { return x < y })
	case 1:
		err = stressTyped(rnd, pattern, size, threads, dpsort.Ints[int32], func(x, y int32) bool { return x < y })
	default:
		err = stressTyped(rnd, pattern, size, threads, dpsort.Floats[float64], dpsort.FloatLess[float64])
	}
	if err != nil {
		return fmt.Errorf("round %d (pattern %s, size %d): %w", round, pattern, size, err)
	}
	logger.Debug("round passed",
		zap.Int("round", round),
		zap.String("pattern", string(pattern)),
		zap.Int("size", size))
	return nil
}

func stressTyped[T bench.Number](rnd *rand.Rand, pattern bench.Pattern, size, threads int, engine func([]T, dpsort.Config) error, less func(x, y T) bool) error {
	base := make([]T, size)
	if err := bench.Fill(base, pattern, 0, rnd); err != nil {
		return err
	}

	want := slices.Clone(base)
	slices.SortFunc(want, func(x, y T) int {
		switch {
		case less(x, y):
			return -1
		case less(y, x):
			return 1
		default:
			return 0
		}
	})

	seq := slices.Clone(base)
	if err := engine(seq, dpsort.DefaultConfig()); err != nil {
		return fmt.Errorf("sequential: %w", err)
	}
	if i := firstDiff(seq, want); i >= 0 {
		return fmt.Errorf("sequential: mismatch at %d: got %v, want %v", i, seq[i], want[i])
	}

	cfg := dpsort.DefaultConfig()
	cfg.Threads = threads
	par := slices.Clone(base)
	if err := engine(par, cfg); err != nil {
		return fmt.Errorf("parallel: %w", err)
	}
	if i := firstDiff(par, want); i >= 0 {
		return fmt.Errorf("parallel: mismatch at %d: got %v, want %v", i, par[i], want[i])
	}
	return nil
}

func firstDiff[T comparable](got, want []T) int {
	for i := range got {
		if got[i] != want[i] {
			return i
		}
	}
	return -1
}

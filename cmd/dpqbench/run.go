package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dualpivot/bench"
)

type runOptions struct {
	algorithms []string
	types      []string
	patterns   []string
	sizes      []int
	iterations int
	threads    int
	dupPercent int
	seed       uint64
	out        string
}

func newRunCmd() *cobra.Command {
	opts := runOptions{
		algorithms: []string{string(bench.AlgoDualPivot), string(bench.AlgoDualPivotParallel), string(bench.AlgoStdlib)},
		types:      []string{"int64"},
		patterns:   []string{string(bench.PatternRandom)},
		sizes:      []int{1 << 20},
		iterations: 5,
		seed:       1,
	}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Time algorithm variants over generated inputs and emit CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmarks(opts)
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&opts.algorithms, "algo", opts.algorithms, "algorithm variants to time")
	f.StringSliceVar(&opts.types, "type", opts.types, "element types (int32, int64, float64)")
	f.StringSliceVar(&opts.patterns, "pattern", opts.patterns, "input patterns")
	f.IntSliceVar(&opts.sizes, "size", opts.sizes, "input sizes")
	f.IntVar(&opts.iterations, "iterations", opts.iterations, "timed repetitions per case")
	f.IntVar(&opts.threads, "threads", 0, "worker count for the parallel variant (0 = GOMAXPROCS)")
	f.IntVar(&opts.dupPercent, "dup", 0, "duplicate share for the many-duplicates pattern")
	f.Uint64Var(&opts.seed, "seed", opts.seed, "input generation seed")
	f.StringVar(&opts.out, "out", "", "CSV output path (default stdout)")
	return cmd
}

func runBenchmarks(opts runOptions) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	var all []bench.Result
	for _, typ := range opts.types {
		for _, pattern := range opts.patterns {
			for _, size := range opts.sizes {
				for _, algo := range opts.algorithms {
					c := bench.Case{
						Algorithm:  bench.Algorithm(algo),
						Type:       typ,
						Pattern:    bench.Pattern(pattern),
						Size:       size,
						Iterations: opts.iterations,
						Threads:    opts.threads,
						DupPercent: opts.dupPercent,
						Seed:       opts.seed,
					}
					results, err := bench.Run(logger, c)
					if err != nil {
						return err
					}
					s := bench.Summarize(results)
					logger.Info("case done",
						zap.String("algorithm", algo),
						zap.String("type", typ),
						zap.String("pattern", pattern),
						zap.Int("size", size),
						zap.Float64("mean_s", s.Mean),
						zap.Float64("median_s", s.Median),
						zap.Float64("stddev_s", s.StdDev))
					all = append(all, results...)
				}
			}
		}
	}

	w := os.Stdout
	if opts.out != "" {
		file, err := os.Create(opts.out)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}
	if err := bench.WriteCSV(w, all); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

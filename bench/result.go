package bench

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"time"

	"gonum.org/v1/gonum/stat"

	dpsort "dualpivot/sort"
)

// Result is one timed sort.
type Result struct {
	Algorithm Algorithm
	Type      string
	Pattern   Pattern
	Size      int
	Iteration int
	Elapsed   time.Duration
}

// WriteCSV writes results with a header row. Elapsed times are emitted in
// nanoseconds so downstream tooling needs no duration parsing.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"algorithm", "type", "pattern", "size", "iteration", "ns"}); err != nil {
		return err
	}
	for _, r := range results {
		rec := []string{
			string(r.Algorithm),
			r.Type,
			string(r.Pattern),
			strconv.Itoa(r.Size),
			strconv.Itoa(r.Iteration),
			strconv.FormatInt(r.Elapsed.Nanoseconds(), 10),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Summary are aggregate statistics over the elapsed times of a result set,
// in seconds.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
}

// Summarize computes aggregate statistics over results. The quantile
// machinery wants its sample sorted, which the engine itself provides.
func Summarize(results []Result) Summary {
	if len(results) == 0 {
		return Summary{}
	}
	times := make([]float64, len(results))
	for i, r := range results {
		times[i] = r.Elapsed.Seconds()
	}
	if err := dpsort.Floats(times, dpsort.DefaultConfig()); err != nil {
		// Times are finite and the comparator total; unreachable.
		panic(err)
	}
	return Summary{
		N:      len(times),
		Mean:   stat.Mean(times, nil),
		StdDev: math.Sqrt(stat.Variance(times, nil)),
		Min:    times[0],
		Max:    times[len(times)-1],
		Median: stat.Quantile(0.5, stat.Empirical, times, nil),
	}
}

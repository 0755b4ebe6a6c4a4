package diag

import (
	"context"
	"math"
	"sync"
	"time"

	entropy "github.com/louisbranch/entropy.space"
	"github.com/louisbranch/entropy.space/internal/diag/striped"
)

// rangeCheck draws from every bounded surface and counts values landing
// outside [origin, bound).
type rangeCheck struct{}

func (rangeCheck) Name() string { return "range" }

func (rangeCheck) Run(ctx context.Context, params Params) CheckResult {
	start := time.Now()
	rng := entropy.Current()

	int64Windows := []struct{ origin, bound int64 }{
		{0, 1},
		{0, 6},
		{-3, 4},
		{math.MaxInt64 - 16, math.MaxInt64},
		{math.MinInt64, math.MaxInt64},
	}
	int32Windows := []struct{ origin, bound int32 }{
		{0, 7},
		{-100, 100},
		{math.MinInt32, math.MaxInt32},
	}
	float64Windows := []struct{ origin, bound float64 }{
		{0, 1},
		{-2.5, 2.5},
		{1e9, 1e9 + 1},
	}

	windows := int64(len(int64Windows) + len(int32Windows) + len(float64Windows))
	perWindow := params.Trials / windows
	if perWindow < 1 {
		perWindow = 1
	}

	var violations int64
	for _, w := range int64Windows {
		for i := int64(0); i < perWindow; i++ {
			if v := rng.Int64Range(w.origin, w.bound); v < w.origin || v >= w.bound {
				violations++
			}
		}
	}
	for _, w := range int32Windows {
		for i := int64(0); i < perWindow; i++ {
			if v := rng.Int32Range(w.origin, w.bound); v < w.origin || v >= w.bound {
				violations++
			}
		}
	}
	for _, w := range float64Windows {
		for i := int64(0); i < perWindow; i++ {
			if v := rng.Float64Range(w.origin, w.bound); v < w.origin || v >= w.bound {
				violations++
			}
		}
	}

	return CheckResult{
		Name:      "range",
		Trials:    perWindow * windows,
		Statistic: float64(violations),
		Threshold: 0,
		Passed:    violations == 0,
		Elapsed:   time.Since(start),
	}
}

// bitBalanceCheck draws from a power-of-two window and applies a chi-square
// test across all cells. The threshold sits roughly six standard deviations
// above the chi-square mean for 63 degrees of freedom.
type bitBalanceCheck struct{}

func (bitBalanceCheck) Name() string { return "bit-balance" }

func (bitBalanceCheck) Run(ctx context.Context, params Params) CheckResult {
	const (
		cells     = 64
		threshold = 135.0
	)
	start := time.Now()
	trials := params.Trials
	if trials < 100*cells {
		trials = 100 * cells
	}

	rng := entropy.Current()
	var counts [cells]int64
	for i := int64(0); i < trials; i++ {
		counts[rng.Int64N(cells)]++
	}

	expected := float64(trials) / cells
	statistic := 0.0
	for _, count := range counts {
		diff := float64(count) - expected
		statistic += diff * diff / expected
	}

	return CheckResult{
		Name:      "bit-balance",
		Trials:    trials,
		Statistic: statistic,
		Threshold: threshold,
		Passed:    statistic <= threshold,
		Elapsed:   time.Since(start),
	}
}

// doubleBoundaryCheck drives Float64Range across windows where naive
// scaling rounds onto the bound and counts any draw that escapes
// [origin, bound).
type doubleBoundaryCheck struct{}

func (doubleBoundaryCheck) Name() string { return "double-boundary" }

func (doubleBoundaryCheck) Run(ctx context.Context, params Params) CheckResult {
	start := time.Now()
	rng := entropy.Current()

	windows := []struct{ origin, bound float64 }{
		{0, 1},
		{3, 4},
		{0, math.SmallestNonzeroFloat64},
		{1, math.Nextafter(1, 2)},
		{1e300, math.Nextafter(1e300, math.Inf(1))},
		{-8e307, 8e307},
	}

	perWindow := params.Trials / int64(len(windows))
	if perWindow < 1 {
		perWindow = 1
	}

	var violations int64
	for _, w := range windows {
		for i := int64(0); i < perWindow; i++ {
			if v := rng.Float64Range(w.origin, w.bound); v < w.origin || v >= w.bound {
				violations++
			}
		}
	}

	return CheckResult{
		Name:      "double-boundary",
		Trials:    perWindow * int64(len(windows)),
		Statistic: float64(violations),
		Threshold: 0,
		Passed:    violations == 0,
		Elapsed:   time.Since(start),
	}
}

// gaussianCheck estimates the mean and variance of Gaussian draws. The
// threshold is far outside the sampling error at the minimum trial count.
type gaussianCheck struct{}

func (gaussianCheck) Name() string { return "gaussian" }

func (gaussianCheck) Run(ctx context.Context, params Params) CheckResult {
	const threshold = 0.05
	start := time.Now()
	trials := params.Trials
	if trials < 20000 {
		trials = 20000
	}

	rng := entropy.Current()
	var sum, sumSquares float64
	for i := int64(0); i < trials; i++ {
		v := rng.Gaussian()
		sum += v
		sumSquares += v * v
	}

	mean := sum / float64(trials)
	variance := sumSquares/float64(trials) - mean*mean
	statistic := math.Abs(mean)
	if dev := math.Abs(variance - 1); dev > statistic {
		statistic = dev
	}

	return CheckResult{
		Name:      "gaussian",
		Trials:    trials,
		Statistic: statistic,
		Threshold: threshold,
		Passed:    statistic <= threshold,
		Elapsed:   time.Since(start),
	}
}

// splitCheck decomposes a sequence into small pieces and verifies the
// pieces partition the requested count exactly.
type splitCheck struct{}

func (splitCheck) Name() string { return "split" }

func (splitCheck) Run(ctx context.Context, params Params) CheckResult {
	const maxPiece = 8
	start := time.Now()
	count := params.Trials

	seq, err := entropy.Int64sIn(count, -50, 50)
	if err != nil {
		return CheckResult{Name: "split", Trials: count, Statistic: 1, Passed: false, Elapsed: time.Since(start)}
	}

	pieces := []*entropy.Int64Sequence{seq}
	for i := 0; i < len(pieces); i++ {
		for pieces[i].Remaining() > maxPiece {
			half := pieces[i].Split()
			if half == nil {
				break
			}
			pieces = append(pieces, half)
		}
	}

	var sumRemaining int64
	for _, piece := range pieces {
		sumRemaining += piece.Remaining()
	}

	var drawn, outOfRange, leftover int64
	for _, piece := range pieces {
		piece.Drain(func(v int64) {
			drawn++
			if v < -50 || v >= 50 {
				outOfRange++
			}
		})
		leftover += piece.Remaining()
		if _, ok := piece.Next(); ok {
			leftover++
		}
	}

	faults := absDelta(sumRemaining, count) + absDelta(drawn, count) + outOfRange + leftover
	return CheckResult{
		Name:      "split",
		Trials:    count,
		Statistic: float64(faults),
		Threshold: 0,
		Passed:    faults == 0,
		Elapsed:   time.Since(start),
	}
}

// throughputCheck splits a sequence across goroutines, drains the pieces
// concurrently, and verifies the striped counter saw every draw.
type throughputCheck struct{}

func (throughputCheck) Name() string { return "throughput" }

func (throughputCheck) Run(ctx context.Context, params Params) CheckResult {
	start := time.Now()
	trials := params.Trials

	seq, err := entropy.Int64s(trials)
	if err != nil {
		return CheckResult{Name: "throughput", Trials: trials, Statistic: 1, Passed: false, Elapsed: time.Since(start)}
	}

	pieces := []*entropy.Int64Sequence{seq}
	for len(pieces) < params.Parallelism {
		largest := 0
		for i := range pieces {
			if pieces[i].Remaining() > pieces[largest].Remaining() {
				largest = i
			}
		}
		half := pieces[largest].Split()
		if half == nil {
			break
		}
		pieces = append(pieces, half)
	}

	counter := striped.New(params.Parallelism)
	var wg sync.WaitGroup
	for _, piece := range pieces {
		wg.Add(1)
		go func(piece *entropy.Int64Sequence) {
			defer wg.Done()
			defer entropy.Dispose()
			piece.Drain(func(int64) { counter.Add(1) })
		}(piece)
	}
	wg.Wait()

	counted := counter.Sum()
	return CheckResult{
		Name:      "throughput",
		Trials:    trials,
		Statistic: float64(absDelta(counted, trials)),
		Threshold: 0,
		Passed:    counted == trials,
		Elapsed:   time.Since(start),
	}
}

func absDelta(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}

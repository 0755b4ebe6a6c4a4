// Package diag runs statistical diagnostics against the random engine and
// reports per-check outcomes.
package diag

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/louisbranch/entropy.space/internal/diag/storage"
)

const tracerName = "entropy.space/diag"

// DefaultTrials is the per-check trial count used when Params.Trials is not
// positive.
const DefaultTrials = 200000

// Params configures one diagnostics run.
type Params struct {
	// Trials is the number of draws each check performs. Checks with a
	// minimum sample requirement clamp upward.
	Trials int64
	// Parallelism is the goroutine count used by concurrent checks.
	// Non-positive means GOMAXPROCS.
	Parallelism int
}

func (p Params) normalize() Params {
	if p.Trials <= 0 {
		p.Trials = DefaultTrials
	}
	if p.Parallelism <= 0 {
		p.Parallelism = runtime.GOMAXPROCS(0)
	}
	return p
}

// CheckResult is the outcome of one diagnostic check. A check passes when
// its Statistic stays within its Threshold.
type CheckResult struct {
	Name      string
	Trials    int64
	Statistic float64
	Threshold float64
	Passed    bool
	Elapsed   time.Duration
}

// Check is one runnable diagnostic.
type Check interface {
	// Name returns the stable check identifier.
	Name() string
	// Run executes the check to completion and reports its outcome.
	// Cancellation is honored between checks by Suite.Run, not inside one.
	Run(ctx context.Context, params Params) CheckResult
}

// Checks returns the full diagnostic set in execution order.
func Checks() []Check {
	return []Check{
		rangeCheck{},
		bitBalanceCheck{},
		doubleBoundaryCheck{},
		gaussianCheck{},
		splitCheck{},
		throughputCheck{},
	}
}

// Report is the outcome of a diagnostics run.
type Report struct {
	StartedAt time.Time
	Results   []CheckResult
	Passed    bool
}

// Suite executes diagnostic checks in order and optionally persists the
// outcome.
type Suite struct {
	// Checks to run; empty means the full set from Checks().
	Checks []Check
	// Store receives the finished report when non-nil.
	Store storage.RunStore
}

// Run executes every configured check. A failed check marks the report
// failed but is not an error; errors indicate the run could not complete or
// could not be persisted.
func (s *Suite) Run(ctx context.Context, params Params) (Report, error) {
	params = params.normalize()
	checks := s.Checks
	if len(checks) == 0 {
		checks = Checks()
	}

	report := Report{StartedAt: time.Now().UTC(), Passed: true}
	tracer := otel.Tracer(tracerName)
	for _, check := range checks {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		checkCtx, span := tracer.Start(ctx, "diag."+check.Name())
		result := check.Run(checkCtx, params)
		span.SetAttributes(
			attribute.Int64("diag.trials", result.Trials),
			attribute.Float64("diag.statistic", result.Statistic),
			attribute.Bool("diag.passed", result.Passed),
		)
		span.End()
		report.Results = append(report.Results, result)
		if !result.Passed {
			report.Passed = false
		}
	}

	if s.Store != nil {
		if err := s.Store.PutRun(ctx, runRecord(report)); err != nil {
			return report, fmt.Errorf("persist diagnostics run: %w", err)
		}
	}
	return report, nil
}

// runRecord converts a report into its storage form.
func runRecord(report Report) storage.Run {
	run := storage.Run{StartedAt: report.StartedAt, Passed: report.Passed}
	for _, result := range report.Results {
		run.Checks = append(run.Checks, storage.CheckRow{
			Name:      result.Name,
			Trials:    result.Trials,
			Statistic: result.Statistic,
			Threshold: result.Threshold,
			Passed:    result.Passed,
			Elapsed:   result.Elapsed,
		})
	}
	return run
}

package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates no diagnostics run exists with the requested id.
var ErrNotFound = errors.New("run not found")

// Run is one durable diagnostics run record.
type Run struct {
	ID        int64
	StartedAt time.Time
	Passed    bool
	Checks    []CheckRow
}

// CheckRow is one check outcome inside a diagnostics run.
type CheckRow struct {
	Name      string
	Trials    int64
	Statistic float64
	Threshold float64
	Passed    bool
	Elapsed   time.Duration
}

// RunStore persists diagnostics run records.
type RunStore interface {
	PutRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id int64) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

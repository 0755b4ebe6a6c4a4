package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/entropy.space/internal/diag/storage"
	"github.com/louisbranch/entropy.space/internal/diag/storage/sqlite/migrations"
	sqlitemigrate "github.com/louisbranch/entropy.space/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed diagnostics run persistence.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a diagnostics SQLite store and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutRun persists one diagnostics run with its check outcomes.
func (s *Store) PutRun(ctx context.Context, run storage.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if len(run.Checks) == 0 {
		return fmt.Errorf("at least one check outcome is required")
	}
	for _, row := range run.Checks {
		if strings.TrimSpace(row.Name) == "" {
			return fmt.Errorf("check name is required")
		}
		if row.Trials <= 0 {
			return fmt.Errorf("check trials must be greater than zero")
		}
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put run: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
INSERT INTO diag_runs (started_at, passed) VALUES (?, ?)
`, run.StartedAt.UTC().UnixMilli(), run.Passed)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, row := range run.Checks {
		_, err := tx.ExecContext(ctx, `
INSERT INTO diag_checks (
	run_id,
	name,
	trials,
	statistic,
	threshold,
	passed,
	elapsed_ms
) VALUES (?, ?, ?, ?, ?, ?, ?)
`,
			runID,
			strings.TrimSpace(row.Name),
			row.Trials,
			row.Statistic,
			row.Threshold,
			row.Passed,
			row.Elapsed.Milliseconds(),
		)
		if err != nil {
			return fmt.Errorf("insert check %s: %w", row.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put run: %w", err)
	}
	return nil
}

// GetRun loads one diagnostics run by id, including its check outcomes.
func (s *Store) GetRun(ctx context.Context, id int64) (storage.Run, error) {
	if err := ctx.Err(); err != nil {
		return storage.Run{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Run{}, fmt.Errorf("storage is not configured")
	}

	var run storage.Run
	var startedAt int64
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT id, started_at, passed FROM diag_runs WHERE id = ?
`, id).Scan(&run.ID, &startedAt, &run.Passed)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Run{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Run{}, fmt.Errorf("get run: %w", err)
	}
	run.StartedAt = time.UnixMilli(startedAt).UTC()

	run.Checks, err = s.loadChecks(ctx, run.ID)
	if err != nil {
		return storage.Run{}, err
	}
	return run, nil
}

// ListRuns lists newest-first diagnostics runs with their check outcomes.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]storage.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, started_at, passed
FROM diag_runs
ORDER BY started_at DESC, id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]storage.Run, 0, limit)
	for rows.Next() {
		var run storage.Run
		var startedAt int64
		if err := rows.Scan(&run.ID, &startedAt, &run.Passed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = time.UnixMilli(startedAt).UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	for i := range runs {
		runs[i].Checks, err = s.loadChecks(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// loadChecks loads the check outcomes of one run in execution order.
func (s *Store) loadChecks(ctx context.Context, runID int64) ([]storage.CheckRow, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT name, trials, statistic, threshold, passed, elapsed_ms
FROM diag_checks
WHERE run_id = ?
ORDER BY id
`, runID)
	if err != nil {
		return nil, fmt.Errorf("load checks: %w", err)
	}
	defer rows.Close()

	var checks []storage.CheckRow
	for rows.Next() {
		var row storage.CheckRow
		var elapsedMS int64
		if err := rows.Scan(&row.Name, &row.Trials, &row.Statistic, &row.Threshold, &row.Passed, &elapsedMS); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		row.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		checks = append(checks, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checks: %w", err)
	}
	return checks, nil
}

var _ storage.RunStore = (*Store)(nil)

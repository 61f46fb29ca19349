package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"bindery/internal/config"
)

// Status values for pack results within a run.
const (
	StatusBuilt   = "built"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Run summarizes one invocation of the compiler across all packs.
type Run struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	TotalEntries int
	PacksBuilt   int
	PacksSkipped int
	PacksFailed  int
}

// PackResult is the outcome of one pack inside a run.
type PackResult struct {
	RunID   string
	Pack    string
	Label   string
	Status  string
	Entries int
	Error   string
}

// Store manages build history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database and applies
// migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun persists a run and its per-pack results in one transaction.
func (s *Store) RecordRun(ctx context.Context, run Run, packs []PackResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO build_runs (
            id, started_at, finished_at, total_entries,
            packs_built, packs_skipped, packs_failed
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.TotalEntries,
		run.PacksBuilt,
		run.PacksSkipped,
		run.PacksFailed,
	); err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	for _, pack := range packs {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO build_pack_results (run_id, pack, label, status, entries, error)
             VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID,
			pack.Pack,
			pack.Label,
			pack.Status,
			pack.Entries,
			pack.Error,
		); err != nil {
			return fmt.Errorf("insert pack result %s/%s: %w", run.ID, pack.Pack, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history tx: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, started_at, finished_at, total_entries,
                packs_built, packs_skipped, packs_failed
         FROM build_runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(
			&run.ID, &started, &finished, &run.TotalEntries,
			&run.PacksBuilt, &run.PacksSkipped, &run.PacksFailed,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at %q: %w", started, err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at %q: %w", finished, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunPacks returns the per-pack results of one run in pack-name order.
func (s *Store) RunPacks(ctx context.Context, runID string) ([]PackResult, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, pack, label, status, entries, error
         FROM build_pack_results WHERE run_id = ? ORDER BY pack`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query pack results: %w", err)
	}
	defer rows.Close()

	var results []PackResult
	for rows.Next() {
		var result PackResult
		if err := rows.Scan(
			&result.RunID, &result.Pack, &result.Label,
			&result.Status, &result.Entries, &result.Error,
		); err != nil {
			return nil, fmt.Errorf("scan pack result: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

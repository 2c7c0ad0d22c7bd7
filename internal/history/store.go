// Package history keeps a SQLite ledger of past runs so `romuless history`
// can show what a live sort or remerge actually did.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Run is one recorded invocation.
type Run struct {
	ID        string
	Mode      string
	Root      string
	Keep      string
	Live      bool
	Kept      int
	Moved     int
	Restored  int
	Skipped   int
	StartedAt time.Time
	Elapsed   time.Duration
}

// MoveRecord is one executed relocation within a run.
type MoveRecord struct {
	SourceRel string
	DestRel   string
}

// Open initializes or connects to the history database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
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

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
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

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    mode        TEXT NOT NULL,
    root        TEXT NOT NULL,
    keep        TEXT NOT NULL,
    live        INTEGER NOT NULL,
    kept        INTEGER NOT NULL,
    moved       INTEGER NOT NULL,
    restored    INTEGER NOT NULL,
    skipped     INTEGER NOT NULL,
    started_at  TEXT NOT NULL,
    elapsed_ms  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS moves (
    run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    source_rel TEXT NOT NULL,
    dest_rel   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_moves_run ON moves(run_id);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init history schema: %w", err)
	}
	return nil
}

// RecordRun persists one run and its executed moves in a single transaction
// and returns the assigned run ID.
func (s *Store) RecordRun(ctx context.Context, run Run, moves []MoveRecord) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin history transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, mode, root, keep, live, kept, moved, restored, skipped, started_at, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Mode, run.Root, run.Keep, boolToInt(run.Live),
		run.Kept, run.Moved, run.Restored, run.Skipped,
		run.StartedAt.UTC().Format(time.RFC3339), run.Elapsed.Milliseconds(),
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, move := range moves {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO moves (run_id, source_rel, dest_rel) VALUES (?, ?, ?)`,
			run.ID, move.SourceRel, move.DestRel,
		); err != nil {
			return "", fmt.Errorf("insert move record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit history transaction: %w", err)
	}
	return run.ID, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, root, keep, live, kept, moved, restored, skipped, started_at, elapsed_ms
		 FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run       Run
			live      int
			startedAt string
			elapsedMS int64
		)
		if err := rows.Scan(&run.ID, &run.Mode, &run.Root, &run.Keep, &live,
			&run.Kept, &run.Moved, &run.Restored, &run.Skipped, &startedAt, &elapsedMS); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Live = live != 0
		if ts, parseErr := time.Parse(time.RFC3339, startedAt); parseErr == nil {
			run.StartedAt = ts
		}
		run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Moves returns the executed relocations of one run.
func (s *Store) Moves(ctx context.Context, runID string) ([]MoveRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source_rel, dest_rel FROM moves WHERE run_id = ? ORDER BY source_rel`, runID)
	if err != nil {
		return nil, fmt.Errorf("query moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var move MoveRecord
		if err := rows.Scan(&move.SourceRel, &move.DestRel); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		moves = append(moves, move)
	}
	return moves, rows.Err()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

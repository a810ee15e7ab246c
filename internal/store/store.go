// Package store records aggregator runs in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/funvibe/fixed/internal/calc"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id       TEXT PRIMARY KEY,
	source   TEXT NOT NULL,
	total    REAL NOT NULL,
	started  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS results (
	run_id   TEXT NOT NULL REFERENCES runs(id),
	position INTEGER NOT NULL,
	name     TEXT NOT NULL,
	value    REAL NOT NULL,
	PRIMARY KEY (run_id, position)
);
`

// Run is one recorded evaluation.
type Run struct {
	ID      uuid.UUID
	Source  string
	Total   float64
	Started time.Time
	Results []calc.Result
}

// Store wraps a SQLite database holding run history.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dsn and applies the schema.
// Use ":memory:" for a throwaway store.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dsn, err)
	}
	// a single connection keeps ":memory:" databases alive across calls
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema to %s: %w", dsn, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores run and its results in one transaction. A zero ID is
// replaced by a fresh UUID, and a zero Started by the current time; the
// stored run is returned.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.Started.IsZero() {
		run.Started = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, total, started) VALUES (?, ?, ?, ?)`,
		run.ID.String(), run.Source, run.Total, run.Started.UnixNano()); err != nil {
		return Run{}, fmt.Errorf("inserting run %s: %w", run.ID, err)
	}
	for i, r := range run.Results {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO results (run_id, position, name, value) VALUES (?, ?, ?, ?)`,
			run.ID.String(), i, r.Name, r.Value); err != nil {
			return Run{}, fmt.Errorf("inserting result %d of run %s: %w", i, run.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit: %w", err)
	}
	return run, nil
}

// Recent returns up to n runs, newest first, with their results.
func (s *Store) Recent(ctx context.Context, n int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, total, started FROM runs ORDER BY started DESC, rowid DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			id      string
			run     Run
			started int64
		)
		if err := rows.Scan(&id, &run.Source, &run.Total, &started); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if run.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("run id %q: %w", id, err)
		}
		run.Started = time.Unix(0, started)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		if runs[i].Results, err = s.results(ctx, runs[i].ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (s *Store) results(ctx context.Context, id uuid.UUID) ([]calc.Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, value FROM results WHERE run_id = ? ORDER BY position`, id.String())
	if err != nil {
		return nil, fmt.Errorf("querying results of run %s: %w", id, err)
	}
	defer rows.Close()

	var out []calc.Result
	for rows.Next() {
		var r calc.Result
		if err := rows.Scan(&r.Name, &r.Value); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

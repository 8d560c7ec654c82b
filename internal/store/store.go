// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"cubetui/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for solve history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS solves (
			id INTEGER PRIMARY KEY,
			recorded_at TEXT NOT NULL,
			elapsed_seconds REAL NOT NULL,
			scramble TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_solves_recorded_at ON solves(recorded_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadSolves returns all stored solves, oldest first. Trailing averages are
// not persisted; the history recomputes them on load.
func (s *Store) LoadSolves(ctx context.Context) ([]model.Solve, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT recorded_at, elapsed_seconds, scramble FROM solves ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var solves []model.Solve
	for rows.Next() {
		var solve model.Solve
		var recordedAt string
		if err := rows.Scan(&recordedAt, &solve.Elapsed, &solve.Scramble); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, err
		}
		solve.RecordedAt = parsed
		solves = append(solves, solve)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return solves, nil
}

// ReplaceSolves rewrites the stored history wholesale in one transaction.
func (s *Store) ReplaceSolves(ctx context.Context, solves []model.Solve) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM solves`); err != nil {
		return err
	}
	if len(solves) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO solves (recorded_at, elapsed_seconds, scramble) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, solve := range solves {
			if _, err = stmt.ExecContext(ctx,
				solve.RecordedAt.Format(time.RFC3339Nano), solve.Elapsed, solve.Scramble); err != nil {
				return err
			}
		}
	}
	err = tx.Commit()
	return err
}

// Package sqlite is the durable store.Store implementation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/glyphlab/metaclean/pkg/metaclean/internalerr"
	"github.com/glyphlab/metaclean/pkg/metaclean/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes the
// schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	source TEXT,
	started_at TEXT NOT NULL,
	rows INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS records (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	company TEXT,
	description TEXT,
	category TEXT,
	category_main TEXT,
	tags TEXT,
	logo_path TEXT,
	PRIMARY KEY(run_id, seq),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS provenance (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	canonical TEXT NOT NULL,
	count INTEGER NOT NULL,
	originals TEXT,
	PRIMARY KEY(run_id, seq),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS unmatched (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	category TEXT NOT NULL,
	PRIMARY KEY(run_id, seq),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_records_category ON records(run_id, category);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// CreateRun registers a run.
func (s *sqliteStore) CreateRun(ctx context.Context, r store.Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, source, started_at, rows) VALUES (?, ?, ?, ?)`,
		r.ID, r.Source, r.StartedAt.UTC().Format(time.RFC3339Nano), r.Rows)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// GetRun returns a run by ID.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	var r store.Run
	var startedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, started_at, rows FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &r.Source, &startedAt, &r.Rows)
	if err == sql.ErrNoRows {
		return store.Run{}, internalerr.ErrNotFound
	}
	if err != nil {
		return store.Run{}, err
	}
	r.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
	return r, nil
}

// ListRuns returns runs newest-first.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, started_at, rows FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Run
	for rows.Next() {
		var r store.Run
		var startedAt string
		if err := rows.Scan(&r.ID, &r.Source, &startedAt, &r.Rows); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

// InsertRecords appends cleaned records to a run in one transaction.
func (s *sqliteStore) InsertRecords(ctx context.Context, runID string, recs []store.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), -1) + 1 FROM records WHERE run_id = ?`, runID).
		Scan(&next); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records
		(run_id, seq, company, description, category, category_main, tags, logo_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, rec := range recs {
		if _, err := stmt.ExecContext(ctx, runID, next+i,
			rec.Company, rec.Description, rec.Category, rec.CategoryMain,
			rec.Tags, rec.LogoPath); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetRecords returns a run's records in insertion order.
func (s *sqliteStore) GetRecords(ctx context.Context, runID string, limit int) ([]store.Record, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT company, description, category,
		category_main, tags, logo_path FROM records WHERE run_id = ?
		ORDER BY seq LIMIT ?`, runID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Record
	for rows.Next() {
		var rec store.Record
		if err := rows.Scan(&rec.Company, &rec.Description, &rec.Category,
			&rec.CategoryMain, &rec.Tags, &rec.LogoPath); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// InsertProvenance appends provenance rows; originals serialize as JSON.
func (s *sqliteStore) InsertProvenance(ctx context.Context, runID string, rows []store.Provenance) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), -1) + 1 FROM provenance WHERE run_id = ?`, runID).
		Scan(&next); err != nil {
		return err
	}

	for i, row := range rows {
		originals, err := json.Marshal(row.Originals)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO provenance
			(run_id, seq, canonical, count, originals) VALUES (?, ?, ?, ?, ?)`,
			runID, next+i, row.Canonical, row.Count, string(originals)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetProvenance returns a run's provenance rows in insertion order.
func (s *sqliteStore) GetProvenance(ctx context.Context, runID string) ([]store.Provenance, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT canonical, count, originals
		FROM provenance WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Provenance
	for rows.Next() {
		var row store.Provenance
		var originals string
		if err := rows.Scan(&row.Canonical, &row.Count, &originals); err != nil {
			return nil, err
		}
		if originals != "" {
			if err := json.Unmarshal([]byte(originals), &row.Originals); err != nil {
				return nil, fmt.Errorf("decode originals for %s: %w", row.Canonical, err)
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// InsertUnmatched appends unmatched labels in order.
func (s *sqliteStore) InsertUnmatched(ctx context.Context, runID string, labels []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), -1) + 1 FROM unmatched WHERE run_id = ?`, runID).
		Scan(&next); err != nil {
		return err
	}

	for i, label := range labels {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO unmatched (run_id, seq, category) VALUES (?, ?, ?)`,
			runID, next+i, label); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetUnmatched returns a run's unmatched labels in insertion order.
func (s *sqliteStore) GetUnmatched(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category FROM unmatched WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		out = append(out, label)
	}
	return out, rows.Err()
}

// Package store persists cleanup runs so their outputs stay queryable after
// the batch finishes: the cleaned records, the consolidation provenance, and
// the unmatched category list, keyed by a run ID.
package store

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Store is the interface for persisting cleanup run results.
type Store interface {
	Close() error

	// Runs
	CreateRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// Cleaned records
	InsertRecords(ctx context.Context, runID string, recs []Record) error
	GetRecords(ctx context.Context, runID string, limit int) ([]Record, error)

	// Consolidation provenance
	InsertProvenance(ctx context.Context, runID string, rows []Provenance) error
	GetProvenance(ctx context.Context, runID string) ([]Provenance, error)

	// Unmatched categories, in first-seen order
	InsertUnmatched(ctx context.Context, runID string, labels []string) error
	GetUnmatched(ctx context.Context, runID string) ([]string, error)
}

// Run describes one cleanup batch.
type Run struct {
	ID        string // ULID
	Source    string // input file the batch read
	StartedAt time.Time
	Rows      int
}

// Record is one cleaned metadata record.
type Record struct {
	Company      string
	Description  string
	Category     string
	CategoryMain string
	Tags         string // comma-separated
	LogoPath     string
}

// Provenance is one canonical bucket's consolidation outcome.
type Provenance struct {
	Canonical string
	Count     int
	Originals []string
}

var entropy = ulid.Monotonic(rand.Reader, 0)

// NewRunID returns a fresh, time-ordered run identifier.
func NewRunID() string {
	return ulid.MustNew(ulid.Now(), entropy).String()
}

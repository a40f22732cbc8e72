// Package memstore is an in-memory store.Store implementation for tests and
// short-lived pipelines.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/glyphlab/metaclean/pkg/metaclean/internalerr"
	"github.com/glyphlab/metaclean/pkg/metaclean/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu         sync.RWMutex
	runs       map[string]store.Run
	records    map[string][]store.Record
	provenance map[string][]store.Provenance
	unmatched  map[string][]string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		runs:       make(map[string]store.Run),
		records:    make(map[string][]store.Record),
		provenance: make(map[string][]store.Provenance),
		unmatched:  make(map[string][]string),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// CreateRun registers a run.
func (s *Store) CreateRun(ctx context.Context, r store.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = r
	return nil
}

// GetRun returns a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.runs[id]; ok {
		return r, nil
	}
	return store.Run{}, internalerr.ErrNotFound
}

// ListRuns returns runs newest-first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID > out[j].ID // ULIDs sort by time
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// InsertRecords appends cleaned records to a run.
func (s *Store) InsertRecords(ctx context.Context, runID string, recs []store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[runID] = append(s.records[runID], recs...)
	return nil
}

// GetRecords returns a run's records in insertion order.
func (s *Store) GetRecords(ctx context.Context, runID string, limit int) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.records[runID]
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	out := make([]store.Record, len(recs))
	copy(out, recs)
	return out, nil
}

// InsertProvenance appends provenance rows to a run.
func (s *Store) InsertProvenance(ctx context.Context, runID string, rows []store.Provenance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		row.Originals = append([]string(nil), row.Originals...)
		s.provenance[runID] = append(s.provenance[runID], row)
	}
	return nil
}

// GetProvenance returns a run's provenance rows in insertion order.
func (s *Store) GetProvenance(ctx context.Context, runID string) ([]store.Provenance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.provenance[runID]
	out := make([]store.Provenance, len(rows))
	for i, row := range rows {
		row.Originals = append([]string(nil), row.Originals...)
		out[i] = row
	}
	return out, nil
}

// InsertUnmatched appends unmatched labels to a run.
func (s *Store) InsertUnmatched(ctx context.Context, runID string, labels []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unmatched[runID] = append(s.unmatched[runID], labels...)
	return nil
}

// GetUnmatched returns a run's unmatched labels in insertion order.
func (s *Store) GetUnmatched(ctx context.Context, runID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.unmatched[runID]...), nil
}

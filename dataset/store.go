package dataset

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/secdash/kpi-backend/model"
)

// Store caches the record table in memory. Reload replaces the whole slice
// atomically, so in-flight readers keep their snapshot while new readers see
// the fresh one. A failed reload keeps the last good table.
type Store struct {
	source    Source
	ttl       time.Duration
	reference time.Time
	log       *zap.Logger

	mu       sync.Mutex // serializes reloads only
	table    atomic.Value
	loadedAt atomic.Value
}

// snapshot is the unit swapped into the atomic value.
type snapshot struct {
	records []model.VulnerabilityRecord
}

// NewStore creates a store over source. reference is the fixed "current date"
// used for open-issue age computation.
func NewStore(source Source, ttl time.Duration, reference time.Time, log *zap.Logger) *Store {
	return &Store{source: source, ttl: ttl, reference: reference, log: log}
}

// Refresh loads the table from the source and swaps it in. On failure the
// previous table, if any, stays in place.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.source.Load(ctx)
	if err != nil {
		return err
	}
	for i := range records {
		records[i].DeriveFlags(s.reference)
	}

	s.table.Store(snapshot{records: records})
	s.loadedAt.Store(time.Now())
	s.log.Info("dataset loaded", zap.Int("records", len(records)))
	return nil
}

// Records returns the cached table, reloading it first when the TTL has
// lapsed. A failed reload is logged and the stale table served; a partially
// loaded table is never observable.
func (s *Store) Records(ctx context.Context) []model.VulnerabilityRecord {
	if s.expired() {
		if err := s.Refresh(ctx); err != nil {
			s.log.Warn("dataset reload failed, serving last good table", zap.Error(err))
		}
	}
	snap, ok := s.table.Load().(snapshot)
	if !ok {
		return nil
	}
	return snap.records
}

// Len reports the current record count without triggering a reload.
func (s *Store) Len() int {
	snap, ok := s.table.Load().(snapshot)
	if !ok {
		return 0
	}
	return len(snap.records)
}

// LoadedAt reports when the current table was loaded; zero if never.
func (s *Store) LoadedAt() time.Time {
	t, ok := s.loadedAt.Load().(time.Time)
	if !ok {
		return time.Time{}
	}
	return t
}

// Reference returns the fixed reference date the store derives ages against.
func (s *Store) Reference() time.Time { return s.reference }

func (s *Store) expired() bool {
	t, ok := s.loadedAt.Load().(time.Time)
	if !ok {
		return true
	}
	return s.ttl > 0 && time.Since(t) > s.ttl
}

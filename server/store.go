package server

import (
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/trainboard/board"
)

// Store holds the most recent snapshot. The refresh loop writes, handlers read.
type Store struct {
	mu          sync.RWMutex
	snapshot    *board.Snapshot
	lastRefresh time.Time
	lastErr     error
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// Publish replaces the current snapshot and clears any refresh error.
func (s *Store) Publish(snap board.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = &snap
	s.lastRefresh = snap.GeneratedAt
	s.lastErr = nil
}

// Fail records a failed refresh. The previous snapshot stays available.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

// Snapshot returns the current snapshot, or false before the first publish.
func (s *Store) Snapshot() (board.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return board.Snapshot{}, false
	}
	return *s.snapshot, true
}

func (s *Store) status() (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh, s.lastErr
}

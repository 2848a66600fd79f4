package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/marquee/internal/schedule"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Listings            schedule.Listings
	HasData             bool
	FetchedAt           time.Time // when Listings was collected
	LastAttempt         time.Time
	Fetching            bool
	LastError           error
	ConsecutiveFailures int
	// Version increases each time Listings is replaced.
	Version uint64
}

// Age returns how old the cached listings are.
func (s Snapshot) Age(now time.Time) time.Duration {
	if !s.HasData {
		return 0
	}
	return now.Sub(s.FetchedAt)
}

// Store is the time-bounded cache shared by the poller and the UI.
type Store struct {
	mu          sync.RWMutex
	snapshot    Snapshot
	invalidated bool
}

// Update records the outcome of a collection pass. When err is non-nil the
// previous listings are kept but the error is recorded for visibility.
func (s *Store) Update(listings schedule.Listings, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.snapshot.LastAttempt = now
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Listings = listings.Clone()
	s.snapshot.HasData = true
	s.snapshot.FetchedAt = listings.FetchedAt
	if s.snapshot.FetchedAt.IsZero() {
		s.snapshot.FetchedAt = now
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	s.snapshot.Version++
	s.invalidated = false
}

// SetFetching flags a collection pass in progress.
func (s *Store) SetFetching(fetching bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Fetching = fetching
}

// Invalidate makes the next Stale call report true regardless of age.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidated = true
}

// Stale reports whether the cached listings are missing, invalidated, or
// older than ttl. A non-positive ttl disables caching.
func (s *Store) Stale(now time.Time, ttl time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.snapshot.HasData || s.invalidated || ttl <= 0 {
		return true
	}
	return now.Sub(s.snapshot.FetchedAt) >= ttl
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Listings = s.snapshot.Listings.Clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

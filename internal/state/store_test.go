package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/marquee/internal/schedule"
)

func listings(at time.Time, titles ...string) schedule.Listings {
	th := schedule.Theater{Name: "A"}
	for _, title := range titles {
		th.Movies = append(th.Movies, schedule.Movie{Title: title})
	}
	return schedule.Listings{Theaters: []schedule.Theater{th}, FetchedAt: at}
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Update(listings(at, "One", "Two"), nil)

	snap := s.Snapshot()
	if !snap.HasData || snap.Version != 1 {
		t.Fatalf("snapshot HasData=%v Version=%d, want true/1", snap.HasData, snap.Version)
	}
	if !snap.FetchedAt.Equal(at) {
		t.Fatalf("FetchedAt = %v, want %v", snap.FetchedAt, at)
	}
	if got := snap.Listings.MovieCount(); got != 2 {
		t.Fatalf("MovieCount = %d, want 2", got)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Listings.Theaters[0].Movies[0].Title = "changed"
	snap2 := s.Snapshot()
	if snap2.Listings.Theaters[0].Movies[0].Title != "One" {
		t.Fatalf("Snapshot should clone listings; got %q", snap2.Listings.Theaters[0].Movies[0].Title)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(listings(time.Now(), "One"), nil)
	prev := s.Snapshot()

	origErr := errors.New("boom")
	s.Update(schedule.Listings{}, origErr)

	snap := s.Snapshot()
	if !snap.HasData || snap.Version != prev.Version {
		t.Fatalf("data changed on error: HasData=%v Version=%d", snap.HasData, snap.Version)
	}
	if snap.Listings.MovieCount() != 1 {
		t.Fatalf("listings changed on error: %#v", snap.Listings)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError should wrap the original error")
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	s.Update(schedule.Listings{}, errors.New("fail 1"))
	s.Update(schedule.Listings{}, errors.New("fail 2"))
	if got := s.Snapshot().ConsecutiveFailures; got != 2 {
		t.Fatalf("ConsecutiveFailures = %d, want 2", got)
	}

	s.Update(listings(time.Now()), nil)
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.LastError != nil {
		t.Fatalf("success should reset failures: %d %v", snap.ConsecutiveFailures, snap.LastError)
	}
}

func TestStore_Stale(t *testing.T) {
	var s Store
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if !s.Stale(now, time.Hour) {
		t.Fatalf("empty store should be stale")
	}

	s.Update(listings(now), nil)
	tests := []struct {
		name string
		now  time.Time
		ttl  time.Duration
		want bool
	}{
		{"fresh", now.Add(30 * time.Minute), time.Hour, false},
		{"expired at ttl", now.Add(time.Hour), time.Hour, true},
		{"expired", now.Add(2 * time.Hour), time.Hour, true},
		{"ttl disabled", now, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Stale(tt.now, tt.ttl); got != tt.want {
				t.Fatalf("Stale = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStore_InvalidateUntilNextUpdate(t *testing.T) {
	var s Store
	now := time.Now()
	s.Update(listings(now), nil)

	s.Invalidate()
	if !s.Stale(now, time.Hour) {
		t.Fatalf("invalidated store should be stale")
	}

	s.Update(listings(now), nil)
	if s.Stale(now, time.Hour) {
		t.Fatalf("update should clear invalidation")
	}
}

func TestStore_FetchingFlagAndAge(t *testing.T) {
	var s Store
	s.SetFetching(true)
	if !s.Snapshot().Fetching {
		t.Fatalf("Fetching = false, want true")
	}
	s.SetFetching(false)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Update(listings(at), nil)
	if got := s.Snapshot().Age(at.Add(5 * time.Minute)); got != 5*time.Minute {
		t.Fatalf("Age = %v, want 5m", got)
	}
	if got := (Snapshot{}).Age(at); got != 0 {
		t.Fatalf("Age without data = %v, want 0", got)
	}
}

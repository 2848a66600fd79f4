package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/schedule"
	"github.com/five82/marquee/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := time.Minute

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, time.Minute},
		{"negative failures", -1, time.Minute},
		{"one failure", 1, 2 * time.Minute},
		{"two failures", 2, 4 * time.Minute},
		{"three failures", 3, 8 * time.Minute},
		{"four failures capped", 4, 15 * time.Minute}, // Would be 16m, capped to 15m
		{"many failures capped", 10, 15 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := time.Minute
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
	if got := calculateBackoff(3, time.Hour); got != time.Hour {
		t.Errorf("calculateBackoff with base above cap = %v, want base", got)
	}
}

// fakeFetcher returns canned movies or errors per URL and records call order.
type fakeFetcher struct {
	mu     sync.Mutex
	movies map[string][]schedule.Movie
	errs   map[string]error
	calls  []string
}

func (f *fakeFetcher) FetchTheater(_ context.Context, url string) ([]schedule.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if err := f.errs[url]; err != nil {
		return nil, err
	}
	return f.movies[url], nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Theaters = []config.Theater{
		{Name: "A", Area: "North", URL: "a"},
		{Name: "B", Area: "North", URL: "b"},
		{Name: "C", Area: "South", URL: "c"},
	}
	cfg.RequestDelay = 0
	return cfg
}

func TestPoller_RefreshStoresPartialResults(t *testing.T) {
	fetcher := &fakeFetcher{
		movies: map[string][]schedule.Movie{
			"a": {{Title: "One"}},
			"c": {{Title: "Two"}},
		},
		errs: map[string]error{"b": errors.New("boom")},
	}
	store := &state.Store{}
	p := NewPoller(store, fetcher, testConfig(), nil)

	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	snap := store.Snapshot()
	if !snap.HasData || snap.Fetching {
		t.Fatalf("snapshot HasData=%v Fetching=%v", snap.HasData, snap.Fetching)
	}
	if diff := cmp.Diff([]string{"One", "Two"}, snap.Listings.Titles()); diff != "" {
		t.Fatalf("Titles mismatch (-want +got):\n%s", diff)
	}
	if failed := snap.Listings.Failed(); len(failed) != 1 || failed[0].Name != "B" {
		t.Fatalf("Failed = %#v, want only B", failed)
	}
}

func TestPoller_RefreshAllFailedKeepsPreviousData(t *testing.T) {
	fetcher := &fakeFetcher{movies: map[string][]schedule.Movie{"a": {{Title: "One"}}}}
	store := &state.Store{}
	p := NewPoller(store, fetcher, testConfig(), nil)

	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("first Refresh returned error: %v", err)
	}

	fetcher.errs = map[string]error{"a": errors.New("x"), "b": errors.New("x"), "c": errors.New("x")}
	err := p.Refresh(context.Background())
	if !errors.Is(err, ErrAllTheatersFailed) {
		t.Fatalf("Refresh error = %v, want ErrAllTheatersFailed", err)
	}

	snap := store.Snapshot()
	if snap.Listings.MovieCount() != 1 || snap.ConsecutiveFailures != 1 {
		t.Fatalf("snapshot after failure: movies=%d failures=%d", snap.Listings.MovieCount(), snap.ConsecutiveFailures)
	}
}

func TestPoller_StartFetchesOnceWhileFresh(t *testing.T) {
	fetcher := &fakeFetcher{}
	cfg := testConfig()
	cfg.PollInterval = 5 * time.Millisecond
	cfg.CacheTTL = time.Hour

	store := &state.Store{}
	p := NewPoller(store, fetcher, cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	waitFor(t, func() bool { return store.Snapshot().HasData })
	time.Sleep(30 * time.Millisecond)
	if got := fetcher.callCount(); got != 3 {
		t.Fatalf("fetch calls = %d, want 3 (one pass while cache is fresh)", got)
	}

	p.Kick()
	waitFor(t, func() bool { return store.Snapshot().Version >= 2 })
	if got := fetcher.callCount(); got != 6 {
		t.Fatalf("fetch calls after Kick = %d, want 6", got)
	}
}

func TestPoller_KickNeverBlocks(t *testing.T) {
	p := NewPoller(&state.Store{}, &fakeFetcher{}, testConfig(), nil)
	for i := 0; i < 10; i++ {
		p.Kick()
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/schedule"
	"github.com/five82/marquee/internal/state"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Theaters = []config.Theater{
		{Name: "Cinema City", Area: "Tachikawa", URL: "http://a"},
		{Name: "Kino Cinema", Area: "Tachikawa", URL: "http://b"},
		{Name: "Odeon", Area: "Kichijoji", URL: "http://c"},
	}
	return cfg
}

func movie(title string, times ...string) schedule.Movie {
	days := []schedule.Day{{Date: "3/1(土)", Times: times}}
	return schedule.Movie{Title: title, Days: days, Text: schedule.FormatDays(days)}
}

func testListings() schedule.Listings {
	return schedule.Listings{
		FetchedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Theaters: []schedule.Theater{
			{Name: "Cinema City", Area: "Tachikawa", Movies: []schedule.Movie{
				movie("Godzilla", "10:00", "12:30"),
				movie("Arrival", "15:00"),
			}},
			{Name: "Kino Cinema", Area: "Tachikawa", Err: errors.New("status 503")},
			{Name: "Odeon", Area: "Kichijoji", Movies: []schedule.Movie{
				movie("Godzilla", "11:00"),
			}},
		},
	}
}

func newTestModel(t *testing.T, listings schedule.Listings) Model {
	t.Helper()
	store := &state.Store{}
	store.Update(listings, nil)

	m := New(Options{
		Store:     store,
		Config:    testConfig(),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 30})
	return update(t, m, snapshotMsg(store.Snapshot()))
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m = update(t, m, msg)
	}
	return m
}

func TestTheaterTabDefaultsToFirstTitle(t *testing.T) {
	m := newTestModel(t, testListings())

	if got := m.selectedArea(); got != "Tachikawa" {
		t.Fatalf("selectedArea = %q, want Tachikawa", got)
	}
	target := m.currentSchedule()
	if target.movie == nil || target.movie.Title != "Godzilla" {
		t.Fatalf("schedule target = %+v, want Godzilla", target)
	}
	if target.theater != "Cinema City" {
		t.Fatalf("schedule theater = %q, want Cinema City", target.theater)
	}
}

func TestTheaterTabChangingTheaterResetsTitle(t *testing.T) {
	m := newTestModel(t, testListings())

	// Focus Titles, pick Arrival.
	m = press(t, m, "l", "l", "j")
	if got := m.selectedMovie(); got != "Arrival" {
		t.Fatalf("selectedMovie = %q, want Arrival", got)
	}

	// Back to Theater, move to the failed theater.
	m = press(t, m, "h", "j")
	if m.movieCursor != 0 {
		t.Fatalf("movieCursor = %d, want reset to 0", m.movieCursor)
	}
	target := m.currentSchedule()
	if target.warning != warnTheaterFailed || target.detail != "status 503" {
		t.Fatalf("schedule target = %+v, want failure warning with status 503", target)
	}

	items := m.paneItems(paneTheater)
	if len(items) != 2 || !items[1].failed || items[0].failed {
		t.Fatalf("theater items = %+v, want second marked failed", items)
	}
}

func TestTheaterTabAreaSelectsTheaters(t *testing.T) {
	m := newTestModel(t, testListings())
	m = press(t, m, "j")

	var names []string
	for _, item := range m.paneItems(paneTheater) {
		names = append(names, item.label)
	}
	if diff := cmp.Diff([]string{"Odeon"}, names); diff != "" {
		t.Fatalf("theaters mismatch (-want +got):\n%s", diff)
	}
	if got := m.currentSchedule().movie; got == nil || got.Days[0].Times[0] != "11:00" {
		t.Fatalf("schedule movie = %+v, want Odeon Godzilla", got)
	}
}

func TestTheaterWithoutTitlesShowsLoadFailure(t *testing.T) {
	listings := testListings()
	listings.Theaters[0].Movies = nil
	m := newTestModel(t, listings)

	target := m.currentSchedule()
	if target.warning != warnTheaterFailed {
		t.Fatalf("warning = %q, want %q", target.warning, warnTheaterFailed)
	}
	if target.detail != "" {
		t.Fatalf("detail = %q, want empty for a theater without an error", target.detail)
	}
	// The theater itself loaded, so its row is not flagged.
	if items := m.paneItems(paneTheater); items[0].failed {
		t.Fatalf("theater items = %+v, want first not marked failed", items)
	}
}

func TestTitleTabListsSortedUnion(t *testing.T) {
	m := newTestModel(t, testListings())
	m = press(t, m, "2")

	if m.tab != TabTitle {
		t.Fatalf("tab = %v, want TabTitle", m.tab)
	}
	if diff := cmp.Diff([]string{"Arrival", "Godzilla"}, m.filteredTitles()); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}

	m = press(t, m, "j", "tab")
	if diff := cmp.Diff([]string{"Cinema City", "Odeon"}, m.showings()); diff != "" {
		t.Fatalf("showings mismatch (-want +got):\n%s", diff)
	}

	m = press(t, m, "j")
	target := m.currentSchedule()
	if target.theater != "Odeon" || target.movie == nil || target.movie.Title != "Godzilla" {
		t.Fatalf("schedule target = %+v, want Odeon/Godzilla", target)
	}
}

func TestTitleTabWithoutTitlesWarns(t *testing.T) {
	m := newTestModel(t, schedule.Listings{})
	m = press(t, m, "]")

	if got := m.currentSchedule().warning; got != warnNoTitles {
		t.Fatalf("warning = %q, want %q", got, warnNoTitles)
	}
}

func TestTitleFilter(t *testing.T) {
	m := newTestModel(t, testListings())
	m = press(t, m, "2", "/", "g", "o", "d")

	if !m.filtering {
		t.Fatalf("expected filter to be active")
	}
	if diff := cmp.Diff([]string{"Godzilla"}, m.filteredTitles()); diff != "" {
		t.Fatalf("filtered titles mismatch (-want +got):\n%s", diff)
	}

	m = press(t, m, "enter")
	if m.filtering {
		t.Fatalf("enter should stop editing the filter")
	}
	if m.filter.Value() != "god" {
		t.Fatalf("filter value = %q, want god", m.filter.Value())
	}

	m = press(t, m, "esc")
	if len(m.filteredTitles()) != 2 {
		t.Fatalf("esc should clear the filter, got %v", m.filteredTitles())
	}
}

func TestRefreshKeepsSelectionByName(t *testing.T) {
	m := newTestModel(t, testListings())
	m = press(t, m, "2", "j")
	if got := m.selectedTitle(); got != "Godzilla" {
		t.Fatalf("selectedTitle = %q, want Godzilla", got)
	}

	next := testListings()
	next.Theaters[2].Movies = append(next.Theaters[2].Movies, movie("Bambi", "09:00"))
	store := &state.Store{}
	store.Update(next, nil)
	snap := store.Snapshot()
	snap.Version = m.lastVersion + 1
	m = update(t, m, snapshotMsg(snap))

	if got := m.selectedTitle(); got != "Godzilla" {
		t.Fatalf("selectedTitle after refresh = %q, want Godzilla", got)
	}
	if m.titleCursor != 2 {
		t.Fatalf("titleCursor = %d, want 2", m.titleCursor)
	}
}

func TestRefreshKeyCallsRefresh(t *testing.T) {
	called := 0
	m := New(Options{Config: testConfig(), Refresh: func() { called++ }})
	m = press(t, m, "r")
	if called != 1 {
		t.Fatalf("refresh called %d times, want 1", called)
	}
}

func TestCycleThemeSavesPrefs(t *testing.T) {
	m := newTestModel(t, testListings())
	m = press(t, m, "T")

	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	p, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", p.Theme)
	}
}

func TestQuitRemembersTab(t *testing.T) {
	m := newTestModel(t, testListings())
	m = press(t, m, "2", "q")

	p, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Tab != prefs.TabTitle {
		t.Fatalf("saved tab = %q, want %q", p.Tab, prefs.TabTitle)
	}

	next := New(Options{Config: testConfig(), TabName: p.Tab, ThemeName: p.Theme, PrefsPath: m.prefsPath})
	if next.tab != TabTitle {
		t.Fatalf("tab = %v, want TabTitle", next.tab)
	}
}

func TestQuitWithoutChangesSkipsSave(t *testing.T) {
	m := newTestModel(t, testListings())
	m = press(t, m, "q")

	if _, err := os.Stat(m.prefsPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Stat(prefs) error = %v, want not exist", err)
	}
}

func TestViewRendersSchedule(t *testing.T) {
	m := newTestModel(t, testListings())
	view := m.View()

	for _, want := range []string{"marquee", "By theater", "Cinema City", "Godzilla", "10:00", "3/1(土)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPaneWidthsFillTerminal(t *testing.T) {
	m := newTestModel(t, testListings())
	for _, tab := range []Tab{TabTheater, TabTitle} {
		m.setTab(tab)
		for width := 40; width <= 160; width++ {
			m.width = width
			widths := m.paneWidths()
			if len(widths) != len(m.visiblePanes()) {
				t.Fatalf("tab %v width %d: %d widths for %d panes", tab, width, len(widths), len(m.visiblePanes()))
			}
			sum := 0
			for _, w := range widths {
				sum += w
			}
			if sum != width {
				t.Fatalf("tab %v width %d: pane widths %v sum to %d", tab, width, widths, sum)
			}
		}
	}
}

func TestViewFitsNarrowTerminal(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{name: "theater tab", want: "10:00"},
		{name: "title tab", keys: []string{"2"}, want: "15:00"},
	}

	for _, width := range []int{60, 40} {
		for _, tt := range tests {
			m := newTestModel(t, testListings())
			m = update(t, m, tea.WindowSizeMsg{Width: width, Height: 24})
			m = press(t, m, tt.keys...)

			view := m.View()
			for i, line := range strings.Split(view, "\n") {
				if w := ansi.StringWidth(line); w > width {
					t.Errorf("%s at %d columns: line %d is %d wide", tt.name, width, i, w)
				}
			}
			if !strings.Contains(view, tt.want) {
				t.Errorf("%s at %d columns: view missing %q", tt.name, width, tt.want)
			}
		}
	}
}

func TestCompactLayoutFollowsFocus(t *testing.T) {
	m := newTestModel(t, testListings())
	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 24})

	if diff := cmp.Diff([]pane{paneArea, paneSchedule}, m.visiblePanes()); diff != "" {
		t.Fatalf("visible panes mismatch (-want +got):\n%s", diff)
	}
	m = press(t, m, "l")
	if diff := cmp.Diff([]pane{paneTheater, paneSchedule}, m.visiblePanes()); diff != "" {
		t.Fatalf("visible panes mismatch (-want +got):\n%s", diff)
	}
	// Focusing the schedule keeps the last list beside it.
	m = press(t, m, "l", "l")
	if m.focusedPane() != paneSchedule {
		t.Fatalf("focused pane = %v, want schedule", m.focusedPane())
	}
	if diff := cmp.Diff([]pane{paneTitle, paneSchedule}, m.visiblePanes()); diff != "" {
		t.Fatalf("visible panes mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(m.View(), "Titles") {
		t.Fatalf("expected Titles pane beside the schedule")
	}
}

func TestViewShowsLoadingAndError(t *testing.T) {
	m := New(Options{Config: testConfig()})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})
	if !strings.Contains(m.View(), "Collecting the latest schedules") {
		t.Fatalf("expected loading message")
	}

	m = update(t, m, snapshotMsg(state.Snapshot{LastError: errors.New("all theaters failed")}))
	view := m.View()
	if !strings.Contains(view, "all theaters failed") || !strings.Contains(view, "press r to retry") {
		t.Fatalf("expected error with retry hint, got:\n%s", view)
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, testListings())
	m = press(t, m, "?")
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("expected help overlay")
	}
	m = press(t, m, "x")
	if m.showHelp {
		t.Fatalf("any key should close help")
	}
}

package ui

import (
	"strings"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/schedule"
)

// Warnings shown in the schedule pane.
const (
	warnTheaterFailed = "Could not load this theater's schedule. Try again later."
	warnNoTitles      = "No titles available. Theater data may be empty."
	warnNotShowing    = "No theater is currently showing this title."
)

// listItem is one row of a browse list.
type listItem struct {
	label  string
	failed bool
}

// areas returns the configured areas in first-appearance order.
func (m Model) areas() []string {
	return m.config.Areas()
}

func (m Model) selectedArea() string {
	return pick(m.areas(), m.areaCursor)
}

// theatersInArea returns the configured theaters of the selected area.
func (m Model) theatersInArea() []config.Theater {
	area := m.selectedArea()
	if area == "" {
		return nil
	}
	return m.config.TheatersIn(area)
}

func (m Model) selectedTheater() (config.Theater, bool) {
	theaters := m.theatersInArea()
	if m.theaterCursor < 0 || m.theaterCursor >= len(theaters) {
		return config.Theater{}, false
	}
	return theaters[m.theaterCursor], true
}

// theaterData returns the collected listing for the selected theater.
func (m Model) theaterData() (schedule.Theater, bool) {
	th, ok := m.selectedTheater()
	if !ok {
		return schedule.Theater{}, false
	}
	return m.snapshot.Listings.Theater(th.Name)
}

// theaterTitles returns the titles of the selected theater in page order.
func (m Model) theaterTitles() []string {
	data, ok := m.theaterData()
	if !ok || !data.OK() {
		return nil
	}
	return data.Titles()
}

func (m Model) selectedMovie() string {
	return pick(m.theaterTitles(), m.movieCursor)
}

// filteredTitles returns every known title matching the filter, sorted.
func (m Model) filteredTitles() []string {
	all := m.snapshot.Listings.Titles()
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		return all
	}
	out := make([]string, 0, len(all))
	for _, title := range all {
		if strings.Contains(strings.ToLower(title), query) {
			out = append(out, title)
		}
	}
	return out
}

func (m Model) selectedTitle() string {
	return pick(m.filteredTitles(), m.titleCursor)
}

// showings returns the names of theaters currently showing the selected
// title, in configuration order.
func (m Model) showings() []string {
	title := m.selectedTitle()
	if title == "" {
		return nil
	}
	return m.snapshot.Listings.TheatersShowing(title)
}

// paneItems returns the rows of a list pane in the active tab.
func (m Model) paneItems(p pane) []listItem {
	switch {
	case p == paneArea:
		return labels(m.areas())

	case p == paneTheater && m.tab == TabTheater:
		theaters := m.theatersInArea()
		items := make([]listItem, 0, len(theaters))
		for _, th := range theaters {
			data, ok := m.snapshot.Listings.Theater(th.Name)
			items = append(items, listItem{label: th.Name, failed: ok && data.Err != nil})
		}
		return items

	case p == paneTheater:
		return labels(m.showings())

	case p == paneTitle && m.tab == TabTheater:
		return labels(m.theaterTitles())

	case p == paneTitle:
		return labels(m.filteredTitles())
	}
	return nil
}

// cursor returns the cursor of a list pane in the active tab.
func (m Model) cursor(p pane) int {
	switch {
	case p == paneArea:
		return m.areaCursor
	case p == paneTheater && m.tab == TabTheater:
		return m.theaterCursor
	case p == paneTheater:
		return m.showingCursor
	case p == paneTitle && m.tab == TabTheater:
		return m.movieCursor
	case p == paneTitle:
		return m.titleCursor
	}
	return 0
}

// setCursor moves a list cursor and resets every list that depends on it.
func (m *Model) setCursor(p pane, idx int) {
	if m.cursor(p) == idx {
		return
	}
	switch {
	case p == paneArea:
		m.areaCursor = idx
		m.theaterCursor = 0
		m.movieCursor = 0
	case p == paneTheater && m.tab == TabTheater:
		m.theaterCursor = idx
		m.movieCursor = 0
	case p == paneTheater:
		m.showingCursor = idx
	case p == paneTitle && m.tab == TabTheater:
		m.movieCursor = idx
	case p == paneTitle:
		m.titleCursor = idx
		m.showingCursor = 0
	}
	m.updateScheduleViewport()
}

// selection holds the selected names of both tabs.
type selection struct {
	area, theater, movie string
	title, showing       string
}

func (m Model) selectedNames() selection {
	sel := selection{
		area:  m.selectedArea(),
		movie: m.selectedMovie(),
		title: m.selectedTitle(),
	}
	if th, ok := m.selectedTheater(); ok {
		sel.theater = th.Name
	}
	sel.showing = pick(m.showings(), m.showingCursor)
	return sel
}

// restoreSelection points every cursor back at the previously selected name.
// A name that disappeared resets its cursor and the cursors below it.
func (m *Model) restoreSelection(sel selection) {
	m.areaCursor = indexOr(m.areas(), sel.area, 0)

	theaterNames := make([]string, 0)
	for _, th := range m.theatersInArea() {
		theaterNames = append(theaterNames, th.Name)
	}
	m.theaterCursor = indexOr(theaterNames, sel.theater, 0)

	m.movieCursor = indexOr(m.theaterTitles(), sel.movie, 0)

	m.titleCursor = indexOr(m.filteredTitles(), sel.title, 0)
	if m.selectedTitle() != sel.title {
		m.showingCursor = 0
		return
	}
	m.showingCursor = indexOr(m.showings(), sel.showing, 0)
}

// scheduleTarget describes what the schedule pane shows.
type scheduleTarget struct {
	theater string
	movie   *schedule.Movie
	warning string
	detail  string // error behind the warning, if any
}

// key identifies the target so the viewport only resets when it changes.
func (s scheduleTarget) key() string {
	if s.movie != nil {
		return s.theater + "\x00" + s.movie.Title
	}
	return s.theater + "\x00" + s.warning
}

// currentSchedule resolves the schedule pane for the active tab.
func (m Model) currentSchedule() scheduleTarget {
	if m.tab == TabTitle {
		return m.titleTabSchedule()
	}
	return m.theaterTabSchedule()
}

func (m Model) theaterTabSchedule() scheduleTarget {
	th, ok := m.selectedTheater()
	if !ok {
		return scheduleTarget{}
	}
	target := scheduleTarget{theater: th.Name}
	data, ok := m.snapshot.Listings.Theater(th.Name)
	switch {
	case !ok:
		target.warning = warnTheaterFailed
	case data.Err != nil:
		target.warning = warnTheaterFailed
		target.detail = data.Err.Error()
	case len(data.Movies) == 0:
		// A page without titles is treated like a failed load.
		target.warning = warnTheaterFailed
	default:
		if movie, ok := data.Movie(m.selectedMovie()); ok {
			target.movie = &movie
		}
	}
	return target
}

func (m Model) titleTabSchedule() scheduleTarget {
	title := m.selectedTitle()
	if title == "" {
		if len(m.snapshot.Listings.Titles()) == 0 {
			return scheduleTarget{warning: warnNoTitles}
		}
		return scheduleTarget{}
	}
	showings := m.showings()
	if len(showings) == 0 {
		return scheduleTarget{warning: warnNotShowing}
	}
	name := showings[clamp(m.showingCursor, 0, len(showings)-1)]
	target := scheduleTarget{theater: name}
	if movie, ok := m.snapshot.Listings.Lookup(name, title); ok {
		target.movie = &movie
	}
	return target
}

func labels(values []string) []listItem {
	items := make([]listItem, len(values))
	for i, v := range values {
		items[i] = listItem{label: v}
	}
	return items
}

func pick(values []string, idx int) string {
	if idx < 0 || idx >= len(values) {
		return ""
	}
	return values[idx]
}

func indexOr(values []string, want string, fallback int) int {
	if want == "" {
		return fallback
	}
	for i, v := range values {
		if v == want {
			return i
		}
	}
	return fallback
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

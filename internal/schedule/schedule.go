package schedule

import (
	"slices"
	"sort"
	"strings"
	"time"
)

// Day is one dated column of a theater's schedule table.
type Day struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}

// Movie is one title's schedule at a single theater.
type Movie struct {
	Title string `json:"title"`
	Days  []Day  `json:"days,omitempty"`
	// Text is the normalized schedule block shown to users.
	Text string `json:"text"`
}

// Theater holds the movies collected from one theater page.
type Theater struct {
	Name      string
	Area      string
	URL       string
	Movies    []Movie
	Err       error
	FetchedAt time.Time
}

// OK reports whether the theater was fetched and produced at least one movie.
func (t Theater) OK() bool {
	return t.Err == nil && len(t.Movies) > 0
}

// Movie returns the movie with the given title.
func (t Theater) Movie(title string) (Movie, bool) {
	for _, m := range t.Movies {
		if m.Title == title {
			return m, true
		}
	}
	return Movie{}, false
}

// Titles returns the theater's titles in page order.
func (t Theater) Titles() []string {
	titles := make([]string, 0, len(t.Movies))
	for _, m := range t.Movies {
		titles = append(titles, m.Title)
	}
	return titles
}

// Listings is the result of one collection pass, theaters in config order.
type Listings struct {
	Theaters  []Theater
	FetchedAt time.Time
}

// Theater returns the theater with the given name.
func (l Listings) Theater(name string) (Theater, bool) {
	for _, t := range l.Theaters {
		if t.Name == name {
			return t, true
		}
	}
	return Theater{}, false
}

// Titles returns every title showing anywhere, sorted by code point.
func (l Listings) Titles() []string {
	seen := make(map[string]struct{})
	var titles []string
	for _, t := range l.Theaters {
		for _, m := range t.Movies {
			if _, ok := seen[m.Title]; ok {
				continue
			}
			seen[m.Title] = struct{}{}
			titles = append(titles, m.Title)
		}
	}
	sort.Strings(titles)
	return titles
}

// TheatersShowing returns the names of theaters listing title, in config order.
func (l Listings) TheatersShowing(title string) []string {
	var names []string
	for _, t := range l.Theaters {
		if _, ok := t.Movie(title); ok {
			names = append(names, t.Name)
		}
	}
	return names
}

// Lookup returns one theater's schedule for a title.
func (l Listings) Lookup(theater, title string) (Movie, bool) {
	t, ok := l.Theater(theater)
	if !ok {
		return Movie{}, false
	}
	return t.Movie(title)
}

// Failed returns the theaters whose fetch returned an error.
func (l Listings) Failed() []Theater {
	var failed []Theater
	for _, t := range l.Theaters {
		if t.Err != nil {
			failed = append(failed, t)
		}
	}
	return failed
}

// MovieCount returns the number of (theater, title) pairs.
func (l Listings) MovieCount() int {
	n := 0
	for _, t := range l.Theaters {
		n += len(t.Movies)
	}
	return n
}

// Filter keeps the theaters for which keep returns true.
func (l Listings) Filter(keep func(Theater) bool) Listings {
	out := Listings{FetchedAt: l.FetchedAt}
	for _, t := range l.Theaters {
		if keep(t) {
			out.Theaters = append(out.Theaters, t)
		}
	}
	return out
}

// Clone returns a deep copy.
func (l Listings) Clone() Listings {
	out := Listings{FetchedAt: l.FetchedAt}
	if l.Theaters == nil {
		return out
	}
	out.Theaters = make([]Theater, len(l.Theaters))
	for i, t := range l.Theaters {
		t.Movies = cloneMovies(t.Movies)
		out.Theaters[i] = t
	}
	return out
}

func cloneMovies(movies []Movie) []Movie {
	if movies == nil {
		return nil
	}
	out := make([]Movie, len(movies))
	for i, m := range movies {
		if m.Days != nil {
			days := make([]Day, len(m.Days))
			for j, d := range m.Days {
				days[j] = Day{Date: d.Date, Times: slices.Clone(d.Times)}
			}
			m.Days = days
		}
		out[i] = m
	}
	return out
}

// Builder accumulates movies in page order. Adding a title that is already
// present replaces its schedule but keeps its original position.
type Builder struct {
	movies []Movie
	index  map[string]int
}

// Add inserts or replaces a movie.
func (b *Builder) Add(m Movie) {
	if b.index == nil {
		b.index = make(map[string]int)
	}
	if i, ok := b.index[m.Title]; ok {
		b.movies[i] = m
		return
	}
	b.index[m.Title] = len(b.movies)
	b.movies = append(b.movies, m)
}

// Movies returns the accumulated movies.
func (b *Builder) Movies() []Movie {
	return b.movies
}

// Len returns the number of distinct titles added.
func (b *Builder) Len() int {
	return len(b.movies)
}

// FallbackText flattens raw table text into a single line block.
func FallbackText(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), "\n", "  ")
}

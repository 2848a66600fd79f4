package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/five82/marquee/internal/schedule"
)

// JSONWriter outputs listings as indented JSON for scripting.
type JSONWriter struct {
	output io.Writer
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{output: output}
}

type jsonListings struct {
	FetchedAt time.Time     `json:"fetched_at"`
	Theaters  []jsonTheater `json:"theaters"`
}

type jsonTheater struct {
	Name      string           `json:"name"`
	Area      string           `json:"area"`
	URL       string           `json:"url"`
	FetchedAt *time.Time       `json:"fetched_at,omitempty"`
	Error     string           `json:"error,omitempty"`
	Movies    []schedule.Movie `json:"movies"`
}

// Write encodes listings.
func (w *JSONWriter) Write(listings schedule.Listings) error {
	out := jsonListings{
		FetchedAt: listings.FetchedAt,
		Theaters:  make([]jsonTheater, 0, len(listings.Theaters)),
	}
	for _, th := range listings.Theaters {
		jt := jsonTheater{
			Name:   th.Name,
			Area:   th.Area,
			URL:    th.URL,
			Movies: th.Movies,
		}
		if jt.Movies == nil {
			jt.Movies = []schedule.Movie{}
		}
		if !th.FetchedAt.IsZero() {
			at := th.FetchedAt
			jt.FetchedAt = &at
		}
		if th.Err != nil {
			jt.Error = th.Err.Error()
		}
		out.Theaters = append(out.Theaters, jt)
	}

	enc := json.NewEncoder(w.output)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

package eiga

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/five82/marquee/internal/schedule"
)

// Rules tune which page sections count as movie schedules.
type Rules struct {
	// Ignored reports headings that are not movie titles. Empty headings are
	// always skipped.
	Ignored func(heading string) bool
	// SkipMarkers identify theater information tables (address, phone).
	SkipMarkers []string
}

func (r Rules) ignored(title string) bool {
	if title == "" {
		return true
	}
	return r.Ignored != nil && r.Ignored(title)
}

func (r Rules) skipTable(text string) bool {
	for _, marker := range r.SkipMarkers {
		if marker != "" && strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// Parse extracts per-title schedules from a theater page.
//
// Every h2 heading is a candidate title; its schedule is the first table that
// follows it in document order. Header cells are dates and data cells are the
// matching showtimes.
func Parse(r io.Reader, rules Rules) ([]schedule.Movie, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var movies schedule.Builder
	doc.Find("h2").Each(func(_ int, heading *goquery.Selection) {
		title := strings.TrimSpace(heading.Text())
		if rules.ignored(title) {
			return
		}

		node := nextTable(heading.Nodes[0])
		if node == nil {
			return
		}
		table := doc.FindNodes(node)
		text := table.Text()
		if rules.skipTable(text) {
			return
		}

		movies.Add(parseTable(title, table, text))
	})

	return movies.Movies(), nil
}

func parseTable(title string, table *goquery.Selection, text string) schedule.Movie {
	dates := table.Find("th")
	times := table.Find("td")

	movie := schedule.Movie{Title: title}
	if dates.Length() == 0 || times.Length() < dates.Length() {
		movie.Text = schedule.FallbackText(text)
		return movie
	}

	movie.Days = make([]schedule.Day, 0, dates.Length())
	dates.Each(func(i int, th *goquery.Selection) {
		movie.Days = append(movie.Days, schedule.Day{
			Date:  strings.TrimSpace(th.Text()),
			Times: strippedStrings(times.Nodes[i]),
		})
	})
	movie.Text = schedule.FormatDays(movie.Days)
	return movie
}

// nextTable returns the first table element after n in document order,
// descending into n's own children first.
func nextTable(n *html.Node) *html.Node {
	for cur := following(n); cur != nil; cur = following(cur) {
		if cur.Type == html.ElementNode && cur.DataAtom == atom.Table {
			return cur
		}
	}
	return nil
}

func following(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

// strippedStrings returns the trimmed, non-empty text nodes under n.
func strippedStrings(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				out = append(out, s)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

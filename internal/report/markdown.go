package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/five82/marquee/internal/schedule"
)

// MarkdownWriter outputs listings as a Markdown document, one section per
// theater with each title's schedule block underneath.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write renders listings.
func (w *MarkdownWriter) Write(listings schedule.Listings) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("Showtimes")
	if !listings.FetchedAt.IsZero() {
		md.PlainText("")
		md.PlainTextf("Collected %s", listings.FetchedAt.Format("2006-01-02 15:04 MST"))
	}
	md.PlainText("")

	w.writeSummary(md, listings)

	for _, th := range listings.Theaters {
		md.H2(th.Name)
		md.PlainText("")
		switch {
		case th.Err != nil:
			md.PlainText(markdown.Bold("Failed to load:") + " " + th.Err.Error())
			md.PlainText("")
		case len(th.Movies) == 0:
			md.PlainText("No schedules found.")
			md.PlainText("")
		}
		for _, m := range th.Movies {
			md.H3("🍿 " + m.Title)
			md.PlainText("")
			md.PlainText(m.Text)
			md.PlainText("")
		}
	}

	return md.Build()
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, listings schedule.Listings) {
	rows := make([][]string, 0, len(listings.Theaters))
	for _, th := range listings.Theaters {
		status := "ok"
		if th.Err != nil {
			status = "failed"
		}
		rows = append(rows, []string{th.Name, th.Area, strconv.Itoa(len(th.Movies)), status})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Theater", "Area", "Titles", "Status"},
		Rows:   rows,
	})
	md.PlainText("")
}

package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/five82/marquee/internal/schedule"
)

// TextWriter prints one rounded table per theater.
type TextWriter struct {
	output io.Writer
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{output: output}
}

// Write renders listings as terminal tables.
func (w *TextWriter) Write(listings schedule.Listings) error {
	for i, th := range listings.Theaters {
		if i > 0 {
			if _, err := fmt.Fprintln(w.output); err != nil {
				return err
			}
		}
		if th.Err != nil {
			if _, err := fmt.Fprintf(w.output, "%s (%s): failed: %v\n", th.Name, th.Area, th.Err); err != nil {
				return err
			}
			continue
		}
		if len(th.Movies) == 0 {
			if _, err := fmt.Fprintf(w.output, "%s (%s): no schedules found\n", th.Name, th.Area); err != nil {
				return err
			}
			continue
		}
		w.writeTheater(th)
	}
	return nil
}

func (w *TextWriter) writeTheater(th schedule.Theater) {
	t := table.NewWriter()
	t.SetOutputMirror(w.output)
	t.SetTitle("%s (%s)", th.Name, th.Area)
	t.AppendHeader(table.Row{"Title", "Date", "Times"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true, WidthMax: 40},
		{Number: 3, WidthMax: 60},
	})

	for i, m := range th.Movies {
		if i > 0 {
			t.AppendSeparator()
		}
		if len(m.Days) == 0 {
			t.AppendRow(table.Row{m.Title, "", m.Text})
			continue
		}
		for _, d := range m.Days {
			t.AppendRow(table.Row{m.Title, d.Date, timesCell(d)})
		}
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

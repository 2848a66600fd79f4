package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/five82/marquee/internal/schedule"
)

// Format names an output format for the dump command.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formats lists the accepted format names.
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatMarkdown)}
}

// ParseFormat validates a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown format %q (want one of %s)", s, strings.Join(Formats(), ", "))
}

// Writer renders collected listings.
type Writer interface {
	Write(listings schedule.Listings) error
}

// NewWriter returns the Writer for format, writing to output.
func NewWriter(format Format, output io.Writer) (Writer, error) {
	switch format {
	case FormatText:
		return NewTextWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// timesCell joins a day's times for single-line output.
func timesCell(d schedule.Day) string {
	if len(d.Times) == 0 {
		return schedule.NoShowings
	}
	return strings.Join(d.Times, "  ")
}

// Package report renders collected schedules for non-interactive use.
//
// Three formats are supported:
//
//   - text: one go-pretty table per theater, titles merged across their dates
//   - json: indented JSON with every theater, its error and its movies
//   - markdown: a summary table followed by one section per theater
//
// Failed theaters are always included so a dump shows which pages could not
// be read.
package report

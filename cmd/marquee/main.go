// Package main provides the entry point for the marquee CLI.
//
// marquee collects movie showtimes from eiga.com theater pages and lets you
// browse them by theater or by title in the terminal.
//
// Usage:
//
//	marquee
//	marquee dump --format markdown --area 立川
//
// See --help for all available options.
package main

func main() {
	Execute()
}

package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/marquee/internal/state"
)

// renderHeader renders the status line: logo, counts, freshness and notices.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("marquee", styles.Logo)}

	snap := m.snapshot
	if snap.HasData {
		listings := snap.Listings
		parts = append(parts,
			bg.Render(plural(len(listings.Theaters), "theater"), styles.Text)+bg.Sep(" · ")+
				bg.Render(plural(len(listings.Titles()), "title"), styles.Text))

		if failed := len(listings.Failed()); failed > 0 {
			parts = append(parts, bg.Render(plural(failed, "theater")+" failed", styles.DangerText))
		}
		now := time.Now()
		if ts := formatTimestamp(snap.FetchedAt, now); ts != "" {
			stampStyle := styles.MutedText
			if cacheFresh(snap, m.config.CacheTTL, now) {
				stampStyle = styles.SuccessText
			}
			parts = append(parts, bg.Render("updated", styles.FaintText)+bg.Spaces(1)+bg.Render(ts, stampStyle))
		}
	}

	switch {
	case snap.Fetching && snap.HasData:
		parts = append(parts, bg.Render("Refreshing...", styles.WarningText.Bold(true)))
	case snap.LastError != nil && snap.HasData:
		parts = append(parts, bg.Render("Last refresh failed", styles.DangerText))
	}

	if m.notice != "" {
		parts = append(parts, bg.Render(m.notice, styles.InfoText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Padding(0, 1).
		Width(m.width).
		MaxHeight(1).
		Render(strings.Join(parts, sep))
}

// cacheFresh reports whether the snapshot is still inside the cache TTL.
func cacheFresh(snap state.Snapshot, ttl time.Duration, now time.Time) bool {
	return snap.HasData && ttl > 0 && snap.Age(now) < ttl
}

// renderTabBar renders the two tab labels, the active one highlighted.
func (m Model) renderTabBar() string {
	bg := NewBgStyle(m.theme.Surface)

	tabs := []struct {
		key   string
		label string
		tab   Tab
	}{
		{"1", "By theater", TabTheater},
		{"2", "By title", TabTitle},
	}

	segments := make([]string, 0, len(tabs))
	for _, t := range tabs {
		text := " " + t.key + " " + t.label + " "
		if t.tab == m.tab {
			segments = append(segments, lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.FocusBg)).
				Foreground(lipgloss.Color(m.theme.Accent)).
				Bold(true).
				Render(text))
			continue
		}
		segments = append(segments, bg.Render(text, lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted))))
	}

	return bg.FillLine(bg.Spaces(1)+strings.Join(segments, bg.Spaces(1)), m.width)
}

// renderCommandBar renders the key hints for the focused pane.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.filtering:
		commands = []cmd{
			{"enter", "Apply"},
			{"esc", "Clear"},
		}
	case m.focusedPane() == paneSchedule:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"ctrl+d/u", "Half page"},
			{"h", "Back"},
			{"r", "Refresh"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"tab", "Next pane"},
			{"[/]", "Switch tab"},
		}
		if m.tab == TabTitle {
			commands = append(commands, cmd{"/", "Filter"})
		}
		commands = append(commands, cmd{"r", "Refresh"}, cmd{"?", "More"})
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if m.tab == TabTitle && !m.filtering && m.filter.Value() != "" {
		segments = append(segments, bg.Render("/"+truncate(m.filter.Value(), 18), styles.AccentText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxHeight(1).Render(strings.Join(segments, sep))
}

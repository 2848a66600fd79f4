package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/marquee/internal/schedule"
)

// renderPanes renders the visible panes of the active tab side by side.
func (m Model) renderPanes() string {
	panes := m.visiblePanes()
	widths := m.paneWidths()
	height := m.contentHeight()
	focused := m.focusedPane()

	rendered := make([]string, len(panes))
	for i, p := range panes {
		rendered[i] = m.renderPane(p, widths[i], height, p == focused)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderPane(p pane, width, height int, focused bool) string {
	switch {
	case p == paneSchedule:
		return m.renderSchedulePane(width, height, focused)
	case p == paneTitle && m.tab == TabTitle:
		return m.renderTitlePane(width, height, focused)
	}
	return m.renderListPane(m.paneTitle(p), p, width, height, focused)
}

func (m Model) paneTitle(p pane) string {
	switch p {
	case paneArea:
		return "Area"
	case paneTheater:
		if m.tab == TabTitle {
			return "Theaters"
		}
		return "Theater"
	}
	return "Titles"
}

func (m Model) renderListPane(title string, p pane, width, height int, focused bool) string {
	content := m.renderList(m.paneItems(p), m.cursor(p), width-2, height-2, focused)
	return m.renderTitledBox(title, content, width, height, focused)
}

// renderTitlePane renders the title list with the filter line on top when a
// filter is being edited or applied.
func (m Model) renderTitlePane(width, height int, focused bool) string {
	items := m.paneItems(paneTitle)
	title := "Titles"
	if n := len(m.snapshot.Listings.Titles()); n > 0 {
		if len(items) != n {
			title = fmt.Sprintf("Titles %d/%d", len(items), n)
		} else {
			title = fmt.Sprintf("Titles %d", n)
		}
	}

	if !m.filtering && m.filter.Value() == "" {
		content := m.renderList(items, m.titleCursor, width-2, height-2, focused)
		return m.renderTitledBox(title, content, width, height, focused)
	}

	filter := m.filter
	filter.Width = max(width-5, 1)
	list := m.renderList(items, m.titleCursor, width-2, height-3, focused && !m.filtering)
	if len(items) == 0 {
		list = m.theme.Styles().MutedText.Render(" no matches")
	}
	return m.renderTitledBox(title, filter.View()+"\n"+list, width, height, focused)
}

// renderList renders rows, scrolled so the cursor stays visible.
func (m Model) renderList(items []listItem, cursor, width, height int, focused bool) string {
	if len(items) == 0 || height <= 0 {
		return ""
	}
	styles := m.theme.Styles()

	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := min(start+height, len(items))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		item := items[i]
		marker := " "
		if item.failed {
			marker = "!"
		}
		label := truncate(item.label, max(width-3, 1))
		row := " " + marker + " " + label

		switch {
		case i == cursor && focused:
			row = lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.SelectionBg)).
				Foreground(lipgloss.Color(m.theme.SelectionText)).
				Bold(true).
				Render(padRight(row, width))
		case i == cursor:
			row = styles.AccentText.Bold(true).Render(" ›") + " " + styles.AccentText.Render(label)
		case item.failed:
			row = " " + styles.DangerText.Render(marker) + " " + styles.MutedText.Render(label)
		default:
			row = styles.Text.Render(row)
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSchedulePane(width, height int, focused bool) string {
	title := "Schedule"
	if target := m.currentSchedule(); target.theater != "" {
		title = target.theater
	}
	body := lipgloss.NewStyle().Padding(0, 1).Render(m.schedule.View())
	return m.renderTitledBox(title, body, width, height, focused)
}

// updateScheduleViewport re-renders the schedule pane content and scrolls
// back to the top when the selection changed.
func (m *Model) updateScheduleViewport() {
	target := m.currentSchedule()
	m.schedule.SetContent(m.renderSchedule(target, m.schedule.Width))
	if k := target.key(); k != m.scheduleKey {
		m.scheduleKey = k
		m.schedule.GotoTop()
	}
}

// renderSchedule renders one title's showtimes, or the pane's warning.
func (m Model) renderSchedule(target scheduleTarget, width int) string {
	styles := m.theme.Styles()
	wrap := lipgloss.NewStyle().Width(max(width, 1))

	if target.warning != "" {
		out := wrap.Inherit(styles.WarningText).Render("⚠ " + target.warning)
		if target.detail != "" {
			out += "\n\n" + wrap.Inherit(styles.MutedText).Render(target.detail)
		}
		return out
	}
	if target.movie == nil {
		return styles.MutedText.Render("Select a title to see its showtimes.")
	}

	movie := target.movie
	var b strings.Builder
	b.WriteString(wrap.Inherit(styles.Text).Bold(true).Render(movie.Title))
	b.WriteString("\n")
	if target.theater != "" {
		b.WriteString(styles.MutedText.Render(truncate(target.theater, width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(movie.Days) == 0 {
		b.WriteString(wrap.Inherit(styles.Text).Render(movie.Text))
		return b.String()
	}

	for i, day := range movie.Days {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.Date.Render("📅 " + day.Date))
		b.WriteString("\n")
		if len(day.Times) == 0 {
			b.WriteString("  ")
			b.WriteString(styles.MutedText.Render(schedule.NoShowings))
			b.WriteString("\n")
			continue
		}
		for _, t := range day.Times {
			b.WriteString("  ")
			b.WriteString(styles.Showtime.Render("⏰ " + t))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderLoading renders the first-collection state.
func (m Model) renderLoading() string {
	styles := m.theme.Styles()
	var content string
	if m.snapshot.LastError != nil && !m.snapshot.Fetching {
		content = lipgloss.JoinVertical(lipgloss.Center,
			styles.DangerText.Render("Could not collect schedules"),
			styles.MutedText.Render(truncate(m.snapshot.LastError.Error(), max(m.width-4, 10))),
			"",
			styles.FaintText.Render("press r to retry"),
		)
	} else {
		msg := truncate("Collecting the latest schedules from all theaters...", max(m.width-4, 10))
		content = m.spinner.View() + " " + styles.Text.Render(msg)
	}
	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, content)
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 1)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := ansi.StringWidth(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = ansi.Truncate(contentLines[i], innerWidth, "")
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}

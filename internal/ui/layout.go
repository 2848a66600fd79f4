package ui

import "time"

// DefaultUIInterval is how often the UI re-reads the store.
const DefaultUIInterval = time.Second

// chromeHeight is the header, tab bar and command bar.
const chromeHeight = 3

// Minimum pane widths before the schedule pane takes the rest.
const (
	minListWidth     = 12
	minScheduleWidth = 24
)

// LayoutCompactWidth is the terminal width below which only the focused list
// and the schedule pane are drawn.
const LayoutCompactWidth = 80

// contentHeight returns the height available to the panes.
func (m Model) contentHeight() int {
	return max(m.height-chromeHeight, 3)
}

// listHeight returns the number of rows visible in a list pane.
func (m Model) listHeight() int {
	return max(m.contentHeight()-2, 1)
}

func (m Model) compact() bool {
	return m.width < LayoutCompactWidth
}

// visiblePanes returns the panes drawn for the active tab, schedule last.
// In compact mode that is the focused list, or the list before the schedule
// when the schedule has focus.
func (m Model) visiblePanes() []pane {
	panes := tabPanes[m.tab]
	if !m.compact() {
		return panes
	}
	idx := m.focus[m.tab]
	if panes[idx] == paneSchedule {
		idx--
	}
	return []pane{panes[idx], paneSchedule}
}

// paneWidths splits the terminal width across visiblePanes. The widths always
// sum to the terminal width.
func (m Model) paneWidths() []int {
	if m.compact() {
		list := max(m.width*2/5, 1)
		return []int{list, max(m.width-list, 1)}
	}

	var shares []int
	if m.tab == TabTitle {
		shares = []int{34, 24}
	} else {
		shares = []int{14, 22, 28}
	}

	widths := make([]int, 0, len(shares)+1)
	used := 0
	for _, share := range shares {
		w := max(m.width*share/100, minListWidth)
		widths = append(widths, w)
		used += w
	}
	widths = append(widths, max(m.width-used, minScheduleWidth))
	return widths
}

// resizeSchedule fits the schedule viewport inside its pane border.
func (m *Model) resizeSchedule() {
	widths := m.paneWidths()
	m.schedule.Width = max(widths[len(widths)-1]-4, 1)
	m.schedule.Height = max(m.contentHeight()-2, 1)
}

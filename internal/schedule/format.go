package schedule

import "strings"

// NoShowings marks a date with no screenings.
const NoShowings = "上映なし"

// FormatDays renders days as the normalized text block:
//
//	📅 <date>
//	- **⏰ <time>**
//
// with a blank line between dates and "- 上映なし" for dates without times.
func FormatDays(days []Day) string {
	var b strings.Builder
	for _, d := range days {
		b.WriteString("📅 ")
		b.WriteString(d.Date)
		b.WriteString("\n")
		if len(d.Times) == 0 {
			b.WriteString("- " + NoShowings + "\n\n")
			continue
		}
		for i, t := range d.Times {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("- **⏰ ")
			b.WriteString(t)
			b.WriteString("**")
		}
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}

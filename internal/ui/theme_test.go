package ui

import (
	"fmt"
	"strings"
	"testing"
)

func TestGetThemeFallsBackToNightfox(t *testing.T) {
	if got := GetTheme("Kanagawa").Name; got != "Kanagawa" {
		t.Fatalf("GetTheme(Kanagawa).Name = %q", got)
	}
	if got := GetTheme("nope").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(nope).Name = %q, want Nightfox", got)
	}
}

func TestNextThemeCycles(t *testing.T) {
	names := ThemeNames()
	name := names[0]
	for i := 0; i < len(names); i++ {
		next := NextTheme(name)
		if want := names[(i+1)%len(names)]; next != want {
			t.Fatalf("NextTheme(%q) = %q, want %q", name, next, want)
		}
		name = next
	}
	if got := NextTheme("unknown"); got != names[0] {
		t.Fatalf("NextTheme(unknown) = %q, want %q", got, names[0])
	}
}

func TestThemesDefineEveryColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		colors := map[string]string{
			"Background":  th.Background,
			"Surface":     th.Surface,
			"SurfaceAlt":  th.SurfaceAlt,
			"FocusBg":     th.FocusBg,
			"SelectionBg": th.SelectionBg,
			"Border":      th.Border,
			"BorderFocus": th.BorderFocus,
			"Text":        th.Text,
			"Muted":       th.Muted,
			"Accent":      th.Accent,
			"Warning":     th.Warning,
			"Danger":      th.Danger,
		}
		for field, value := range colors {
			if !strings.HasPrefix(value, "#") || len(value) != 7 {
				t.Errorf("%s.%s = %q, want #rrggbb", name, field, value)
			}
		}
	}
}

func TestSuccessTextUsesThemeColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		fg := th.Styles().SuccessText.GetForeground()
		if got := fmt.Sprint(fg); got != th.Success {
			t.Fatalf("%s: SuccessText foreground = %q, want %q", name, got, th.Success)
		}
	}
}

// Package ui provides the terminal user interface for marquee.
//
// The UI is a Bubble Tea program with two tabs over the same collected data:
//
//   - By theater: Area → Theater → Titles → Schedule
//   - By title: Titles (filterable) → Theaters showing it → Schedule
//
// # Data flow
//
// The poller in package app writes listings into a state.Store. The model
// re-reads a snapshot every DefaultUIInterval and swaps it in when the
// version changes. Selections are kept by name across refreshes, so a
// background refresh never moves the cursor to a different title.
//
// A theater whose page could not be read stays selectable and is marked
// with "!". Its schedule pane shows a warning instead of showtimes.
//
// # Key bindings
//
//   - 1/2 or [/]: Switch tab
//   - tab/l, shift+tab/h: Move between panes
//   - j/k, g/G, ctrl+d/u: Move within a pane
//   - /: Filter titles (By title tab)
//   - r: Refresh now
//   - T: Cycle theme (saved to prefs)
//   - ?: Help
//   - q or ctrl+c: Quit
//
// # Usage
//
//	err := ui.Run(ui.Options{
//		Context: ctx,
//		Store:   store,
//		Config:  cfg,
//		Refresh: poller.Kick,
//	})
package ui

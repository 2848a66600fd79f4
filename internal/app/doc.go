// Package app provides the orchestration layer for marquee.
//
// # Overview
//
// This package wires together configuration, collection, the schedule cache
// and the UI. It serves as the composition root where all dependencies are
// initialized and connected.
//
// # Components
//
//   - app.go: Run, the TUI entry point, and NewClient
//   - collect.go: Collect, one sequential pass over the configured theaters
//   - poller.go: background goroutine that refreshes the cache when stale
//   - logging.go: slog setup for the log file and for terminal output
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      Read theater list and timing
//	       ├─────> openLogFile()      JSON log under XDG state home
//	       ├─────> NewClient()        eiga page client
//	       ├─────> state.Store{}      Shared schedule cache
//	       ├─────> Poller.Start()     Launch background collection
//	       └─────> ui.Run()           Start TUI (blocks)
//
//	Background Poller Loop:
//	┌─────────────────────────────────────────┐
//	│ Poller goroutine                        │
//	│  ├─> store.Stale(now, CacheTTL)?        │
//	│  ├─> Collect()   one theater at a time  │
//	│  └─> store.Update()                     │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Polling Behavior
//
// The poller wakes every PollInterval (default one minute) but only collects
// when the cache is stale, so with the default one-hour TTL the theater pages
// are fetched about once an hour. Pressing r in the UI calls Poller.Kick,
// which invalidates the cache and wakes the loop.
//
// Within a pass theaters are fetched sequentially with RequestDelay between
// requests. A failing theater does not abort the pass; it is recorded on its
// schedule.Theater and logged. Only a pass where every theater failed counts
// as a failed refresh, which keeps the previous data and backs off.
//
// # Logging
//
// While the TUI owns the terminal, logs go to a JSON file
// ($XDG_STATE_HOME/marquee/marquee.log by default). The dump command logs to
// stderr instead.
package app

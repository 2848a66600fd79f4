// Package state provides the thread-safe schedule cache shared by the poller
// and the UI.
//
// # Overview
//
// Store holds the latest schedule.Listings together with bookkeeping the UI
// needs to explain what it is showing: when the data was collected, whether a
// collection pass is running, and the last error.
//
//	Producer (Poller):             Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ Stale(now,ttl)?│            │                 │
//	│ Collect()      │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	└────────────────┘  (mutex)   └─────────────────┘
//
// # Update Semantics
//
//	store.Update(listings, nil)
//	→ Listings replaced, FetchedAt = listings.FetchedAt, Version++
//	→ LastError cleared, ConsecutiveFailures = 0
//
//	store.Update(schedule.Listings{}, err)
//	→ Listings unchanged
//	→ LastError = err, ConsecutiveFailures++
//
// A pass where some theaters fail is still a success at this level; the
// failures live on the individual schedule.Theater values.
//
// # Expiry
//
// The cache is bounded by time only. Stale reports true when no data has
// been stored, when Invalidate was called since the last Update, or when the
// data is at least ttl old. Nothing is evicted: stale data stays visible until
// a newer pass replaces it.
//
// # Copying
//
// Update and Snapshot deep-copy the listings so the UI can hold a snapshot
// while the poller writes the next one. The zero Store is ready to use.
package state

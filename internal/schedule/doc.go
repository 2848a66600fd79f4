// Package schedule defines the in-memory showtime model shared by the
// collector, the cache, the reports and the UI.
//
// Listings keeps theaters in config order and each theater keeps its movies
// in page order. Queries that span theaters (Titles, TheatersShowing) derive
// their ordering from those two orders, so no separate index is stored.
package schedule

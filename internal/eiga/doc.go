// Package eiga fetches theater pages and extracts showtime schedules.
//
// # Overview
//
// A theater page lists each movie as an h2 heading followed by a table whose
// header cells are dates and whose data cells hold the showtimes for the
// matching date:
//
//	<h2>Movie title</h2>
//	<table>
//	  <tr><th>3/1(土)</th><th>3/2(日)</th></tr>
//	  <tr><td><span>10:00</span><span>12:30</span></td><td></td></tr>
//	</table>
//
// Parse turns that into schedule.Movie values. Headings that name the theater
// or a site section are filtered with Rules.Ignored, and tables that describe
// the theater itself (address, phone) are dropped with Rules.SkipMarkers.
//
// # Pairing
//
// The i-th header cell is paired with the i-th data cell. Pairing only happens
// when the table has at least one header cell and at least as many data cells
// as header cells; surplus data cells are ignored. Any other table keeps its
// flattened text so nothing the page shows is lost.
//
// # Encoding
//
// Pages are decoded to UTF-8 from the Content-Type header, a BOM, or a
// <meta charset> declaration, whichever is found first.
//
// # Errors
//
// FetchTheater returns an error for transport failures and for any status
// code of 400 or above. There are no retries; the caller decides what to do
// with a failed theater.
package eiga

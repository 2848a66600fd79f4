// Package config handles loading and parsing marquee configuration files.
//
// # Overview
//
// The configuration lists the theater pages to collect, the headings that are
// never movie titles, and the HTTP and cache timing. Every field is optional:
// with no file at all, marquee collects the six built-in eiga.com theaters.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided (--config), use it
//  2. Otherwise, use $XDG_CONFIG_HOME/marquee/config.toml
//  3. If the file doesn't exist, fall back to built-in defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	user_agent = "Mozilla/5.0 ..."
//	request_timeout = "30s"
//	request_delay = "1s"
//	cache_ttl = "1h"
//	poll_interval = "1m"
//	ignore_headings = ["映画.com注目特集", "国内映画ランキング"]
//	skip_table_markers = ["住所", "電話番号"]
//
//	[[theaters]]
//	name = "シネマシティ"
//	area = "立川"
//	url = "https://eiga.com/theater/13/130802/3101/"
//
// Durations use Go duration syntax. A theater without an area is placed in an
// area named after itself. Listing theaters replaces the built-in set
// entirely; listing ignore_headings or skip_table_markers replaces that list.
//
// # Error Handling
//
// Load returns errors for unreadable files and TOML syntax errors. Values that
// parse but cannot be used (bad durations, theaters without a name or URL,
// duplicate theater names) wrap ErrInvalid.
package config

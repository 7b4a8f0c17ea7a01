// Package cache provides the key-value store that holds fetched talk detail
// pages.
//
// Keys are sanitised URL slugs and values are the raw response bodies exactly
// as fetched. Entries are written once: a key that is already present is never
// overwritten, so once a page is cached it is the authoritative copy for every
// later run. Three backends are available: a directory with one .html file per
// key (the default, html_cache/), a single SQLite database file, and an
// in-memory map for tests.
package cache

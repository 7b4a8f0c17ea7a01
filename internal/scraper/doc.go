// Package scraper provides HTTP fetching for conference program and talk
// detail pages.
//
// The scraper issues plain GET requests with a bounded timeout and the tool's
// User-Agent. It never retries: a failed request is reported once and the
// caller decides how to degrade.
package scraper

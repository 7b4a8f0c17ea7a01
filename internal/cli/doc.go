// Package cli implements the command-line interface for confgrab.
//
// The cli package provides the Cobra-based CLI: parse (the default command)
// turns a saved program page into a JSON file of talk records, details
// re-runs abstract extraction on a single cached page, and fetch downloads
// the program page. It coordinates the config, cache, scraper, details,
// program and filter packages; output formatting and sorting live here too.
package cli

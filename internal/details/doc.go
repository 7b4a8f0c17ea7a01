// Package details resolves a talk's detail page into its plain-text abstract.
//
// A Resolver turns a URL into display text and never fails: missing links,
// fetch errors and pages without an abstract all come back as fixed
// placeholder strings. Pages are read from a cache.Store when present and
// otherwise fetched once and stored verbatim, which makes resolution
// idempotent across runs.
package details

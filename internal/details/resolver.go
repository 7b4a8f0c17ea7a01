package details

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/pfrederiksen/confgrab/internal/cache"
	"github.com/pfrederiksen/confgrab/internal/logger"
)

// Fetcher retrieves the raw body of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// Resolver turns talk detail URLs into abstract text.
type Resolver struct {
	store   cache.Store
	fetcher Fetcher
	base    *url.URL
	log     *logger.Logger
	metrics *logger.Metrics
}

// Option configures a Resolver
type Option func(*Resolver)

// WithBaseURL resolves relative links against base before fetching.
func WithBaseURL(base *url.URL) Option {
	return func(r *Resolver) {
		r.base = base
	}
}

// WithLogger sets the logger for cache and fetch progress.
func WithLogger(l *logger.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMetrics records cache hits, fetches and fetch timings.
func WithMetrics(m *logger.Metrics) Option {
	return func(r *Resolver) {
		if m != nil {
			r.metrics = m
		}
	}
}

// New creates a Resolver that reads through store and falls back to fetcher.
func New(store cache.Store, fetcher Fetcher, opts ...Option) *Resolver {
	r := &Resolver{
		store:   store,
		fetcher: fetcher,
		log:     logger.Nop(),
		metrics: logger.NewMetrics(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logger.Fields{"component": "details"})
	return r
}

// Metrics returns the metrics the resolver records into.
func (r *Resolver) Metrics() *logger.Metrics {
	return r.metrics
}

// Resolve returns the abstract for the talk page at rawURL, or a placeholder
// string describing why there is none.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) string {
	target, ok := r.absolute(rawURL)
	if !ok {
		return NoLink
	}

	key := CacheKey(target)
	page, ok := r.load(key, target)
	if !ok {
		body, err := r.fetch(ctx, target)
		if err != nil {
			r.metrics.IncrCounter("details.fetch_failed")
			r.log.Warn("fetching details failed", logger.Fields{"url": target})
			return fmt.Sprintf(fetchFailedFmt, err)
		}

		if err := r.store.Put(key, body); err != nil {
			r.log.Error("caching details failed", logger.Fields{"url": target, "key": key}, err)
		}
		page = body
	}

	if len(page) == 0 {
		return EmptyContent
	}
	return Extract(page)
}

// absolute applies the base URL and reports whether the result is an
// http(s) link.
func (r *Resolver) absolute(rawURL string) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	if !u.IsAbs() && r.base != nil {
		u = r.base.ResolveReference(u)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return u.String(), true
}

func (r *Resolver) load(key, target string) ([]byte, bool) {
	page, ok, err := r.store.Get(key)
	if err != nil {
		r.log.Warn("reading details cache failed", logger.Fields{"key": key, "error": err.Error()})
		return nil, false
	}
	if ok {
		r.metrics.IncrCounter("details.cache_hit")
		r.log.Debug("loading from cache", logger.Fields{"url": target, "key": key})
	}
	return page, ok
}

func (r *Resolver) fetch(ctx context.Context, target string) ([]byte, error) {
	r.log.Info("fetching details", logger.Fields{"url": target})

	start := time.Now()
	body, err := r.fetcher.Fetch(ctx, target)
	r.metrics.RecordTiming("details.fetch", time.Since(start))
	if err != nil {
		return nil, err
	}

	r.metrics.IncrCounter("details.fetched")
	return body, nil
}

// CacheKey derives the cache key for a detail URL: the last non-empty path
// segment (the talk's slug), followed by the underscore-mapped query when
// there is one. A URL with no usable segment maps to itself with every
// non-alphanumeric character replaced by an underscore.
func CacheKey(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		trimmed := strings.Trim(u.Path, "/")
		if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
		if cache.ValidateKey(trimmed) == nil {
			if u.RawQuery != "" {
				return trimmed + "_" + underscored(u.RawQuery)
			}
			return trimmed
		}
	}

	return underscored(rawURL)
}

// underscored replaces every character that is not an ASCII letter or digit
// with an underscore.
func underscored(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '_'
	}, s)
}

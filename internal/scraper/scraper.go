package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	ProgramURL = "https://conference.eresearch.edu.au/program/"
	UserAgent  = "confgrab/1.0 (conference program extractor)"
	Timeout    = 15 * time.Second
)

// Scraper fetches pages over HTTP(S)
type Scraper struct {
	client *resty.Client
	url    string
}

// Option configures a Scraper
type Option func(*Scraper)

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.client.SetTimeout(d)
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.client.SetHeader("User-Agent", ua)
		}
	}
}

// WithProgramURL sets the page FetchProgram downloads.
func WithProgramURL(u string) Option {
	return func(s *Scraper) {
		if u != "" {
			s.url = u
		}
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	client := resty.New()
	client.SetTimeout(Timeout)
	client.SetHeader("User-Agent", UserAgent)
	client.SetRetryCount(0)

	s := &Scraper{
		client: client,
		url:    ProgramURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProgramURL returns the page FetchProgram downloads.
func (s *Scraper) ProgramURL() string {
	return s.url
}

// Fetch returns the raw body of url. Any non-2xx response is an error.
func (s *Scraper) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New("empty URL")
	}

	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode(), Status: resp.Status()}
	}

	return resp.Body(), nil
}

// FetchProgram downloads the conference program page.
func (s *Scraper) FetchProgram(ctx context.Context) ([]byte, error) {
	body, err := s.Fetch(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetching program: %w", err)
	}
	return body, nil
}

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.StatusCode, e.URL)
}

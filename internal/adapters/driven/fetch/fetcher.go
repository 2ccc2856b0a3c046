// Package fetch provides the HTTP page fetcher used by the crawler.
//
// Fetching requests only the HTML document itself, so images, media,
// fonts and stylesheets are never downloaded. That bounds per-page
// latency the same way a resource-blocking browser session would, at the
// cost of not executing page scripts.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/sitesage/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.PageFetcher = (*Fetcher)(nil)

// Default configuration values.
const (
	// DefaultTimeout bounds a single page navigation.
	DefaultTimeout = 15 * time.Second

	// DefaultRequestsPerSecond is the politeness limit against one site.
	DefaultRequestsPerSecond = 2

	// defaultUserAgent identifies the crawler to origin servers.
	defaultUserAgent = "sitesage/1.0 (+https://github.com/custodia-labs/sitesage)"

	// maxBodySize caps how much of a response is read (8 MiB).
	maxBodySize = 8 << 20
)

// Fetcher fetches pages serially over one HTTP client, rate-limited for
// politeness. One Fetcher corresponds to one browsing session; crawls of
// different sites should use independent instances.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures the fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-navigation timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithRequestsPerSecond sets the politeness limit.
func WithRequestsPerSecond(n float64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// New creates a page fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchPage returns the HTML document at url. Redirects are followed;
// non-2xx statuses are errors so the crawler skips the page.
func (f *Fetcher) FetchPage(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}

	return string(body), nil
}

package driven

import "context"

// PageFetcher retrieves the rendered HTML of a single page. The crawler
// drives it serially in frontier order; one fetcher instance corresponds
// to one browsing session.
//
// Implementations apply their own per-navigation timeout. A fetch failure
// (timeout, network error, HTTP error status) is returned as an error and
// causes the crawler to skip the page, not abort the crawl.
type PageFetcher interface {
	// FetchPage returns the HTML document at url.
	FetchPage(ctx context.Context, url string) (string, error)
}

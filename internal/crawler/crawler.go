// Package crawler performs bounded breadth-first traversal of a website,
// producing raw (url, html) pairs for the ingestion pipeline.
package crawler

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/sitesage/internal/core/domain"
	"github.com/custodia-labs/sitesage/internal/core/ports/driven"
	"github.com/custodia-labs/sitesage/internal/logger"
)

// Default traversal bounds.
const (
	DefaultMaxDepth = 3
	DefaultMaxPages = 40
)

// Page is one crawled result: the normalized URL and the HTML fetched
// from it.
type Page struct {
	URL  string
	HTML string
}

// Crawler walks a single site breadth-first through a PageFetcher.
// Each Crawl call uses a fresh frontier and visited set; a crawler is
// not restartable mid-traversal. Concurrent crawls of different sites
// should use independent Crawler instances.
type Crawler struct {
	fetcher driven.PageFetcher
}

// New creates a crawler over the given page fetcher.
func New(fetcher driven.PageFetcher) *Crawler {
	return &Crawler{fetcher: fetcher}
}

type frontierEntry struct {
	url   string
	depth int
}

// Crawl traverses the site rooted at startURL and returns fetched pages
// in frontier (BFS) order. At most maxPages pages are collected, and no
// link found deeper than maxDepth is followed: pages at maxDepth are
// still collected, their children are never enqueued. Fetch failures
// skip the page and its subtree.
func (c *Crawler) Crawl(ctx context.Context, startURL string, maxDepth, maxPages int) ([]Page, error) {
	parsed, err := url.Parse(startURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("%w: start URL %q", domain.ErrInvalidInput, startURL)
	}
	if maxDepth < 0 || maxPages <= 0 {
		return nil, fmt.Errorf("%w: maxDepth %d, maxPages %d", domain.ErrInvalidInput, maxDepth, maxPages)
	}

	baseDomain := SiteID(startURL)
	visited := make(map[string]bool)
	queue := []frontierEntry{{url: normalizeURL(startURL), depth: 0}}

	var results []Page

	for len(queue) > 0 && len(results) < maxPages {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		current := queue[0]
		queue = queue[1:]

		if visited[current.url] {
			continue
		}
		visited[current.url] = true

		html, err := c.fetcher.FetchPage(ctx, current.url)
		if err != nil {
			// Skip the page and its subtree; the crawl continues.
			logger.Debug("Skipping %s: %v", current.url, err)
			continue
		}

		results = append(results, Page{URL: current.url, HTML: html})

		if current.depth >= maxDepth {
			continue
		}

		for _, href := range extractLinks(html) {
			absolute := resolveLink(current.url, href)
			if absolute == "" || !isValidLink(absolute, baseDomain) {
				continue
			}
			absolute = normalizeURL(absolute)
			if !visited[absolute] {
				queue = append(queue, frontierEntry{url: absolute, depth: current.depth + 1})
			}
		}
	}

	logger.Info("Crawled %d pages from %s", len(results), startURL)
	return results, nil
}

// extractLinks returns the href attribute of every anchor in the page.
func extractLinks(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok && href != "" {
			links = append(links, href)
		}
	})
	return links
}

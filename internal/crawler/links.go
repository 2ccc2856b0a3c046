package crawler

import (
	"net/url"
	"strings"
)

// blockedExtensions are non-HTML assets never worth fetching as pages.
var blockedExtensions = []string{
	".pdf", ".jpg", ".jpeg", ".png", ".gif", ".svg",
	".mp4", ".webm", ".avi", ".zip", ".rar", ".7z", ".css", ".js",
}

// bannedPathParts mark auth/admin/utility pages, which are low-signal
// and often trap crawlers in session flows.
var bannedPathParts = []string{
	"login", "signin", "logout", "register", "signup",
	"account", "admin", "securepages", "session",
}

// SiteID derives the logical site identifier from a URL: the host,
// lowercased, with a leading "www." stripped.
func SiteID(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Host)
	return strings.TrimPrefix(host, "www.")
}

// normalizeURL strips a trailing slash so visited-set membership treats
// "example.com/a" and "example.com/a/" as the same page.
func normalizeURL(rawURL string) string {
	return strings.TrimSuffix(rawURL, "/")
}

// isValidLink reports whether a discovered link should be enqueued.
// The link must stay on the same registrable domain (relative links
// qualify), carry no query string or fragment, not point at a blocked
// asset extension, and not contain a banned path substring.
func isValidLink(link, baseDomain string) bool {
	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}

	if parsed.RawQuery != "" || parsed.Fragment != "" {
		return false
	}

	host := strings.ToLower(parsed.Host)
	if host != "" && !strings.HasSuffix(host, baseDomain) {
		return false
	}

	pathLower := strings.ToLower(parsed.Path)
	for _, ext := range blockedExtensions {
		if strings.HasSuffix(pathLower, ext) {
			return false
		}
	}

	for _, part := range bannedPathParts {
		if strings.Contains(pathLower, part) {
			return false
		}
	}

	return true
}

// resolveLink resolves href against the page it appeared on and returns
// the absolute URL, or "" when either side is unparseable.
func resolveLink(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	// Treat the page URL as a directory so bare relative links resolve
	// under it rather than replacing its last segment.
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

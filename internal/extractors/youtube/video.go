// Package youtube converts video transcripts into chunk-ready text with
// timestamp provenance.
package youtube

import (
	"fmt"
	"regexp"

	"github.com/custodia-labs/sitesage/internal/core/domain"
)

// videoIDPatterns cover the common URL forms: watch, short share links
// and embeds.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
}

// ExtractVideoID pulls the video identifier out of a YouTube URL.
func ExtractVideoID(url string) (string, error) {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(url); len(m) > 1 {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("%w: could not extract video ID from URL %q", domain.ErrInvalidInput, url)
}

// FormatTimestamp converts a start offset in seconds to mm:ss form.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

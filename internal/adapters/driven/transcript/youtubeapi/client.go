// Package youtubeapi fetches published video captions through the
// timedtext endpoint.
package youtubeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/sitesage/internal/core/domain"
	"github.com/custodia-labs/sitesage/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.TranscriptService = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL  = "https://www.youtube.com/api/timedtext"
	DefaultLanguage = "en"
	DefaultTimeout  = 30 * time.Second
)

// Client retrieves caption tracks in the json3 format.
type Client struct {
	client   *http.Client
	baseURL  string
	language string
}

// Option configures the client.
type Option func(*Client)

// WithLanguage sets the caption language code.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.language = lang
		}
	}
}

// WithBaseURL overrides the timedtext endpoint. Useful for testing.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// New creates a transcript client.
func New(opts ...Option) *Client {
	c := &Client{
		client:   &http.Client{Timeout: DefaultTimeout},
		baseURL:  DefaultBaseURL,
		language: DefaultLanguage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// timedTextResponse is the json3 caption track format.
type timedTextResponse struct {
	Events []struct {
		StartMs    int64 `json:"tStartMs"`
		DurationMs int64 `json:"dDurationMs"`
		Segs       []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// FetchTranscript returns the caption segments for a video, ordered by
// start time. An empty caption track means the video has no published
// transcript and is reported as domain.ErrNoTranscript so ingestion can
// fall back to speech-to-text.
func (c *Client) FetchTranscript(ctx context.Context, videoID string) ([]domain.TranscriptSegment, error) {
	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", c.language)
	params.Set("fmt", "json3")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: video %s", domain.ErrTranscriptsDisabled, videoID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch transcript: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	// The endpoint returns an empty body for videos without captions.
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, fmt.Errorf("%w: video %s", domain.ErrNoTranscript, videoID)
	}

	var track timedTextResponse
	if err := json.Unmarshal(body, &track); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}

	var segments []domain.TranscriptSegment
	for _, event := range track.Events {
		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}
		trimmed := strings.TrimSpace(text.String())
		if trimmed == "" {
			continue
		}
		segments = append(segments, domain.TranscriptSegment{
			Text:     trimmed,
			Start:    float64(event.StartMs) / 1000,
			Duration: float64(event.DurationMs) / 1000,
		})
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: video %s", domain.ErrNoTranscript, videoID)
	}

	return segments, nil
}

// Package driving provides interfaces for application entry points (primary/inbound ports).
package driving

import "context"

// WebsiteResult summarises a website ingestion.
type WebsiteResult struct {
	// SiteID is the derived identifier for the crawled site.
	SiteID string `json:"site_id"`

	// ChunksIndexed is the total number of chunks stored.
	ChunksIndexed int `json:"chunks_indexed"`

	// PagesCrawled counts every fetched page, including pages whose
	// cleaned text was too short to ingest.
	PagesCrawled int `json:"pages_crawled"`

	// Cached reports that the site was already ingested and no crawl ran.
	Cached bool `json:"cached"`
}

// VideoResult is either a synchronous ingestion summary or, when no
// transcript was available and audio transcription was dispatched as a
// background job, an accepted-async response carrying only the job ID.
type VideoResult struct {
	// Accepted reports the async path: the work continues in the
	// background and only JobID is meaningful.
	Accepted bool `json:"accepted,omitempty"`

	// JobID identifies the background transcription job (async path).
	JobID string `json:"job_id,omitempty"`

	// SiteID is the final site identifier (sync path).
	SiteID string `json:"site_id,omitempty"`

	// VideoID is the extracted video identifier (sync path).
	VideoID string `json:"video_id,omitempty"`

	// ChunksIndexed is the number of chunks stored (sync path).
	ChunksIndexed int `json:"chunks_indexed,omitempty"`

	// SegmentsProcessed is the number of transcript segments (sync path).
	SegmentsProcessed int `json:"segments_processed,omitempty"`
}

// PDFResult summarises a PDF ingestion.
type PDFResult struct {
	// SiteID is the supplied or derived identifier for the document.
	SiteID string `json:"site_id"`

	// SourceURL labels where the PDF came from (URL or filename).
	SourceURL string `json:"source_url"`

	// ChunksIndexed is the total number of chunks stored.
	ChunksIndexed int `json:"chunks_indexed"`

	// PagesProcessed is the number of pages that yielded text.
	PagesProcessed int `json:"pages_processed"`
}

// IngestService normalises heterogeneous sources into stored chunk
// records with provenance metadata.
type IngestService interface {
	// IngestWebsite crawls a site and indexes its pages. If the derived
	// site_id already has stored chunks, the cached summary is returned
	// without re-crawling.
	IngestWebsite(ctx context.Context, url string) (*WebsiteResult, error)

	// RecrawlWebsite drops any stored chunks for the site and crawls it
	// again.
	RecrawlWebsite(ctx context.Context, url string) (*WebsiteResult, error)

	// IngestVideo indexes a video transcript. When no transcript is
	// available it dispatches audio transcription as a background job
	// and returns an accepted-async result immediately. An empty siteID
	// derives one from the video.
	IngestVideo(ctx context.Context, videoURL, siteID string) (*VideoResult, error)

	// IngestPDF indexes a PDF document given as raw bytes. sourceURL
	// labels the origin (URL or filename); an empty siteID derives one
	// from it.
	IngestPDF(ctx context.Context, data []byte, sourceURL, siteID string) (*PDFResult, error)
}

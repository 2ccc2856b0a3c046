// Package domain defines the core types for content ingestion and retrieval.
package domain

// SourceType is the origin category of a chunk. It determines which
// provenance field (timestamp or page number) applies.
type SourceType string

const (
	// SourceWebsite marks chunks produced by the web crawler.
	SourceWebsite SourceType = "website"

	// SourceYouTube marks chunks produced from video transcripts.
	SourceYouTube SourceType = "youtube"

	// SourcePDF marks chunks produced from PDF documents.
	SourcePDF SourceType = "pdf"
)

// Valid reports whether t is a known source type.
func (t SourceType) Valid() bool {
	switch t {
	case SourceWebsite, SourceYouTube, SourcePDF:
		return true
	}
	return false
}

// Provenance is a tagged variant over the three source types. Only the
// field matching the type is ever set, so a chunk can never carry both a
// transcript timestamp and a PDF page number.
type Provenance struct {
	sourceType SourceType
	timestamp  string
	page       int
}

// WebsiteProvenance returns provenance for a crawled web page.
func WebsiteProvenance() Provenance {
	return Provenance{sourceType: SourceWebsite}
}

// VideoProvenance returns provenance for a transcript chunk.
// The timestamp is in mm:ss form.
func VideoProvenance(timestamp string) Provenance {
	return Provenance{sourceType: SourceYouTube, timestamp: timestamp}
}

// PDFProvenance returns provenance for a PDF chunk.
// Page numbers are 1-based.
func PDFProvenance(page int) Provenance {
	return Provenance{sourceType: SourcePDF, page: page}
}

// Type returns the source type of the provenance.
func (p Provenance) Type() SourceType {
	if p.sourceType == "" {
		return SourceWebsite
	}
	return p.sourceType
}

// Timestamp returns the transcript timestamp and whether one applies.
func (p Provenance) Timestamp() (string, bool) {
	return p.timestamp, p.sourceType == SourceYouTube && p.timestamp != ""
}

// Page returns the PDF page number and whether one applies.
func (p Provenance) Page() (int, bool) {
	return p.page, p.sourceType == SourcePDF && p.page > 0
}

// Chunk is the unit of storage and retrieval: a bounded span of cleaned
// text paired with its embedding and provenance metadata.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Content is the post-clean text. Never empty for a stored chunk.
	Content string

	// Embedding is the unit-normalised vector representation.
	Embedding []float32

	// SourceURL is the page, video or document the chunk came from.
	SourceURL string

	// SiteID groups chunks from one ingested source collection.
	SiteID string

	// Provenance carries the source type and its type-specific metadata.
	Provenance Provenance
}

// RetrievedChunk is a chunk returned by similarity search, annotated with
// the provider's similarity score.
type RetrievedChunk struct {
	Chunk

	// Similarity is the cosine similarity reported by the search provider.
	Similarity float64
}

// SourceRef is a deduplicated citation assembled from retrieved chunks.
type SourceRef struct {
	URL        string     `json:"url"`
	Type       SourceType `json:"type"`
	Timestamp  string     `json:"timestamp,omitempty"`
	PageNumber int        `json:"page_number,omitempty"`
}

// TranscriptSegment is one caption segment of a video transcript, as
// returned by the transcript provider or the speech-to-text fallback.
type TranscriptSegment struct {
	// Text is the spoken text of the segment.
	Text string

	// Start is the segment start offset in seconds.
	Start float64

	// Duration is the segment length in seconds.
	Duration float64
}

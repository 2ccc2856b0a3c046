package driving

import (
	"context"

	"github.com/custodia-labs/sitesage/internal/core/domain"
)

// QueryOptions control retrieval.
type QueryOptions struct {
	// SiteID restricts retrieval to one ingested collection. Required.
	SiteID string

	// TopK is the number of chunks to return (default 5).
	TopK int

	// SourceTypes optionally restricts results to the given types.
	SourceTypes []domain.SourceType
}

// QueryResult is a ranked, filtered set of chunks plus the deduplicated
// source list assembled from them.
type QueryResult struct {
	// Chunks are in the similarity order reported by the search
	// provider; no re-ranking is applied.
	Chunks []domain.RetrievedChunk

	// Sources is deduplicated on (url, type, timestamp, page_number).
	Sources []domain.SourceRef
}

// QueryService retrieves the most relevant stored chunks for a question.
type QueryService interface {
	Query(ctx context.Context, question string, opts QueryOptions) (*QueryResult, error)
}

package driven

import (
	"context"

	"github.com/custodia-labs/sitesage/internal/core/domain"
)

// ChunkStore persists chunk records and provides the ranked similarity
// search this system consumes. The ranking algorithm itself belongs to
// the store implementation; services only rely on results arriving in
// descending similarity order.
type ChunkStore interface {
	// SaveChunks persists a batch of chunks in a single write.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// SiteStatus reports whether a site_id already has stored chunks,
	// and how many. Used to make website ingestion idempotent.
	SiteStatus(ctx context.Context, siteID string) (*domain.SiteStatus, error)

	// SearchSimilar returns up to limit chunks for the site ranked by
	// similarity to the query vector, most similar first.
	SearchSimilar(ctx context.Context, query []float32, siteID string, limit int) ([]domain.RetrievedChunk, error)

	// DeleteSite removes all chunks stored under a site_id. Deleting an
	// unknown site is not an error.
	DeleteSite(ctx context.Context, siteID string) error

	// Close releases resources.
	Close() error
}

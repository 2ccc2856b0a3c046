package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/sitesage/internal/core/domain"
	"github.com/custodia-labs/sitesage/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory chunk store with the same ranking contract
// as the SQLite store.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks []domain.Chunk
}

// NewChunkStore creates an empty in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{}
}

// SaveChunks appends a batch of chunks.
func (s *ChunkStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunks...)
	return nil
}

// SiteStatus reports whether chunks exist for a site and how many.
func (s *ChunkStore) SiteStatus(_ context.Context, siteID string) (*domain.SiteStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, chunk := range s.chunks {
		if chunk.SiteID == siteID {
			count++
		}
	}

	return &domain.SiteStatus{
		SiteID:     siteID,
		Exists:     count > 0,
		ChunkCount: count,
	}, nil
}

// SearchSimilar returns the top limit chunks for the site by dot-product
// similarity, most similar first.
func (s *ChunkStore) SearchSimilar(_ context.Context, query []float32, siteID string, limit int) ([]domain.RetrievedChunk, error) {
	if limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []domain.RetrievedChunk
	for _, chunk := range s.chunks {
		if chunk.SiteID != siteID {
			continue
		}
		matches = append(matches, domain.RetrievedChunk{
			Chunk:      chunk,
			Similarity: dotProduct(query, chunk.Embedding),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// DeleteSite removes all chunks for a site.
func (s *ChunkStore) DeleteSite(_ context.Context, siteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.chunks[:0]
	for _, chunk := range s.chunks {
		if chunk.SiteID != siteID {
			kept = append(kept, chunk)
		}
	}
	s.chunks = kept
	return nil
}

// Close releases resources.
func (s *ChunkStore) Close() error {
	return nil
}

// dotProduct computes the similarity of two unit vectors.
func dotProduct(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

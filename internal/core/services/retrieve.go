package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/sitesage/internal/core/domain"
	"github.com/custodia-labs/sitesage/internal/core/ports/driven"
	"github.com/custodia-labs/sitesage/internal/core/ports/driving"
)

var _ driving.QueryService = (*Retriever)(nil)

// DefaultTopK is the number of chunks returned when the caller does not
// ask for a specific count.
const DefaultTopK = 5

// minChunkContentLength filters out near-empty chunks at query time.
const minChunkContentLength = 50

// bannedURLTerms excludes chunks whose source URL points at auth or
// account pages that slipped through the crawl filter.
var bannedURLTerms = []string{
	"login", "signin", "logout", "register", "signup",
	"account", "admin", "securepages", "session",
}

// Retriever answers similarity queries over the chunk store.
type Retriever struct {
	store    driven.ChunkStore
	embedder driven.EmbeddingService
}

// NewRetriever creates a Retriever.
func NewRetriever(store driven.ChunkStore, embedder driven.EmbeddingService) *Retriever {
	return &Retriever{store: store, embedder: embedder}
}

// Query embeds the question and returns the most similar chunks for the
// site, filtered by source type and quality heuristics.
func (r *Retriever) Query(ctx context.Context, question string, opts driving.QueryOptions) (*driving.QueryResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}
	if opts.SiteID == "" {
		return nil, fmt.Errorf("%w: site ID is required", domain.ErrInvalidInput)
	}
	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	if r.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	queryVec, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	// Over-fetch when a type filter is set so post-filtering still has
	// enough candidates to fill topK.
	fetchCount := topK
	if len(opts.SourceTypes) > 0 {
		fetchCount = topK * 3
	}

	candidates, err := r.store.SearchSimilar(ctx, queryVec, opts.SiteID, fetchCount)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}

	chunks := filterChunks(candidates, opts.SourceTypes)
	if len(chunks) > topK {
		chunks = chunks[:topK]
	}

	return &driving.QueryResult{
		Chunks:  chunks,
		Sources: collectSources(chunks),
	}, nil
}

// filterChunks applies the type filter and quality heuristics, keeping
// the similarity ordering of the input.
func filterChunks(candidates []domain.RetrievedChunk, types []domain.SourceType) []domain.RetrievedChunk {
	kept := make([]domain.RetrievedChunk, 0, len(candidates))
	for _, c := range candidates {
		if len(types) > 0 && !typeAllowed(c.Provenance.Type(), types) {
			continue
		}
		if urlBanned(c.SourceURL) {
			continue
		}
		if len(strings.TrimSpace(c.Content)) <= minChunkContentLength {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

func typeAllowed(t domain.SourceType, types []domain.SourceType) bool {
	for _, allowed := range types {
		if t == allowed {
			return true
		}
	}
	return false
}

func urlBanned(url string) bool {
	lowered := strings.ToLower(url)
	for _, term := range bannedURLTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// collectSources deduplicates chunk provenance into citation records,
// first occurrence wins.
func collectSources(chunks []domain.RetrievedChunk) []domain.SourceRef {
	type key struct {
		url       string
		srcType   domain.SourceType
		timestamp string
		page      int
	}
	seen := make(map[key]bool)
	sources := make([]domain.SourceRef, 0, len(chunks))
	for _, c := range chunks {
		ref := domain.SourceRef{
			URL:  c.SourceURL,
			Type: c.Provenance.Type(),
		}
		k := key{url: ref.URL, srcType: ref.Type}
		if ts, ok := c.Provenance.Timestamp(); ok {
			ref.Timestamp = ts
			k.timestamp = ts
		}
		if page, ok := c.Provenance.Page(); ok {
			ref.PageNumber = page
			k.page = page
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		sources = append(sources, ref)
	}
	return sources
}

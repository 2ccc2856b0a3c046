package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesage/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestStore_SaveAndSearchRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	chunks := []domain.Chunk{
		{
			ID:         "web-1",
			Content:    "website content",
			Embedding:  []float32{1, 0, 0},
			SourceURL:  "https://example.com/docs",
			SiteID:     "example.com",
			Provenance: domain.WebsiteProvenance(),
		},
		{
			ID:         "vid-1",
			Content:    "video content",
			Embedding:  []float32{0, 1, 0},
			SourceURL:  "https://www.youtube.com/watch?v=abc",
			SiteID:     "example.com",
			Provenance: domain.VideoProvenance("01:05"),
		},
		{
			ID:         "pdf-1",
			Content:    "pdf content",
			Embedding:  []float32{0, 0, 1},
			SourceURL:  "https://example.com/report.pdf",
			SiteID:     "example.com",
			Provenance: domain.PDFProvenance(3),
		},
	}
	require.NoError(t, store.SaveChunks(ctx, chunks))

	results, err := store.SearchSimilar(ctx, []float32{0, 1, 0}, "example.com", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	top := results[0]
	assert.Equal(t, "vid-1", top.ID)
	assert.Equal(t, domain.SourceYouTube, top.Provenance.Type())
	ts, ok := top.Provenance.Timestamp()
	require.True(t, ok)
	assert.Equal(t, "01:05", ts)
	assert.InDelta(t, 1.0, top.Similarity, 1e-6)
	assert.Equal(t, []float32{0, 1, 0}, top.Embedding)

	for _, r := range results {
		if r.ID == "pdf-1" {
			page, ok := r.Provenance.Page()
			require.True(t, ok)
			assert.Equal(t, 3, page)
		}
		if r.ID == "web-1" {
			assert.Equal(t, domain.SourceWebsite, r.Provenance.Type())
			_, hasTS := r.Provenance.Timestamp()
			assert.False(t, hasTS)
			_, hasPage := r.Provenance.Page()
			assert.False(t, hasPage)
		}
	}
}

func TestStore_SearchSimilarHonoursLimitAndOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "a", Content: "a", Embedding: []float32{0.9, 0}, SiteID: "s", SourceURL: "https://s/a", Provenance: domain.WebsiteProvenance()},
		{ID: "b", Content: "b", Embedding: []float32{0.5, 0}, SiteID: "s", SourceURL: "https://s/b", Provenance: domain.WebsiteProvenance()},
		{ID: "c", Content: "c", Embedding: []float32{0.1, 0}, SiteID: "s", SourceURL: "https://s/c", Provenance: domain.WebsiteProvenance()},
	}))

	results, err := store.SearchSimilar(ctx, []float32{1, 0}, "s", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].ID)
	assert.Equal(t, "b", results[1].ID)
}

func TestStore_SiteStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	status, err := store.SiteStatus(ctx, "example.com")
	require.NoError(t, err)
	assert.False(t, status.Exists)

	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "a", Content: "a", Embedding: []float32{1}, SiteID: "example.com", SourceURL: "https://example.com/a", Provenance: domain.WebsiteProvenance()},
	}))

	status, err = store.SiteStatus(ctx, "example.com")
	require.NoError(t, err)
	assert.True(t, status.Exists)
	assert.Equal(t, 1, status.ChunkCount)
}

func TestStore_DeleteSite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "a", Content: "a", Embedding: []float32{1}, SiteID: "one", SourceURL: "https://one/a", Provenance: domain.WebsiteProvenance()},
		{ID: "b", Content: "b", Embedding: []float32{1}, SiteID: "two", SourceURL: "https://two/b", Provenance: domain.WebsiteProvenance()},
	}))

	require.NoError(t, store.DeleteSite(ctx, "one"))
	require.NoError(t, store.DeleteSite(ctx, "never-existed"))

	status, err := store.SiteStatus(ctx, "one")
	require.NoError(t, err)
	assert.False(t, status.Exists)

	status, err = store.SiteStatus(ctx, "two")
	require.NoError(t, err)
	assert.True(t, status.Exists)
}

func TestStore_SaveChunksEmptyBatch(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.SaveChunks(context.Background(), nil))
}

func TestFloat32BytesRoundTrip(t *testing.T) {
	vec := []float32{0.1, -2.5, 3.14, 0}
	assert.Equal(t, vec, bytesToFloat32Slice(float32SliceToBytes(vec)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}

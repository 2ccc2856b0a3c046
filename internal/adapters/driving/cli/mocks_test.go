package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesage/internal/core/domain"
	"github.com/custodia-labs/sitesage/internal/core/ports/driving"
)

// writeTempPDF drops placeholder document bytes into a temp file. The
// mock ingest service never parses them.
func writeTempPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 placeholder"), 0o644))
	return path
}

// setupTestServices swaps the package services for mocks and returns a
// restore function.
func setupTestServices() func() {
	oldIngest, oldQuery, oldJobs := ingestService, queryService, jobService

	ingestService = &mockIngestService{}
	queryService = &mockQueryService{}
	jobService = &mockJobService{}

	return func() {
		ingestService = oldIngest
		queryService = oldQuery
		jobService = oldJobs
	}
}

type mockIngestService struct {
	lastURL    string
	lastSiteID string
	lastData   []byte
	recrawled  bool
	err        error
}

func (m *mockIngestService) IngestWebsite(_ context.Context, url string) (*driving.WebsiteResult, error) {
	m.lastURL = url
	if m.err != nil {
		return nil, m.err
	}
	return &driving.WebsiteResult{SiteID: "example.com", ChunksIndexed: 12, PagesCrawled: 4}, nil
}

func (m *mockIngestService) RecrawlWebsite(ctx context.Context, url string) (*driving.WebsiteResult, error) {
	m.recrawled = true
	return m.IngestWebsite(ctx, url)
}

func (m *mockIngestService) IngestVideo(_ context.Context, videoURL, siteID string) (*driving.VideoResult, error) {
	m.lastURL = videoURL
	m.lastSiteID = siteID
	if m.err != nil {
		return nil, m.err
	}
	return &driving.VideoResult{SiteID: "youtube-abc", VideoID: "abc", ChunksIndexed: 5, SegmentsProcessed: 40}, nil
}

func (m *mockIngestService) IngestPDF(_ context.Context, data []byte, sourceURL, siteID string) (*driving.PDFResult, error) {
	m.lastURL = sourceURL
	m.lastSiteID = siteID
	m.lastData = data
	if m.err != nil {
		return nil, m.err
	}
	return &driving.PDFResult{SiteID: "pdf-report", SourceURL: sourceURL, ChunksIndexed: 7, PagesProcessed: 3}, nil
}

type mockQueryService struct {
	lastQuestion string
	lastOpts     driving.QueryOptions
	err          error
}

func (m *mockQueryService) Query(_ context.Context, question string, opts driving.QueryOptions) (*driving.QueryResult, error) {
	m.lastQuestion = question
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	chunk := domain.RetrievedChunk{
		Chunk: domain.Chunk{
			ID:         "chunk-1",
			Content:    strings.Repeat("relevant answer text ", 5),
			SourceURL:  "https://example.com/docs",
			SiteID:     opts.SiteID,
			Provenance: domain.WebsiteProvenance(),
		},
		Similarity: 0.87,
	}
	return &driving.QueryResult{
		Chunks:  []domain.RetrievedChunk{chunk},
		Sources: []domain.SourceRef{{URL: chunk.SourceURL, Type: domain.SourceWebsite}},
	}, nil
}

type mockJobService struct {
	jobs map[string]*domain.Job
}

func (m *mockJobService) GetJob(_ context.Context, id string) (*domain.Job, error) {
	if job, ok := m.jobs[id]; ok {
		return job, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockJobService) ListJobs(context.Context) ([]domain.Job, error) {
	jobs := make([]domain.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		jobs = append(jobs, *job)
	}
	return jobs, nil
}

func sampleJob(id string) *domain.Job {
	return &domain.Job{
		ID:        id,
		Kind:      "transcription",
		Status:    domain.JobTranscribing,
		Progress:  30,
		Meta:      map[string]string{"video_url": "https://youtu.be/abc"},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

var errMockFailure = errors.New("mock failure")

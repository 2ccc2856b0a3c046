package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		ingestSiteID, ingestJSON = "", false
		querySiteID, queryTopK, queryTypes, queryJSON = "", 0, nil, false
		jobsJSON = false
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestIngestWebsiteCmd_RequiresURL(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand(t, "ingest", "website")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestIngestWebsiteCmd_ReportsResult(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand(t, "ingest", "website", "https://example.com")

	require.NoError(t, err)
	assert.Contains(t, out, "12 chunks")
	assert.Contains(t, out, "4 pages")
	assert.Contains(t, out, "example.com")

	mock := ingestService.(*mockIngestService)
	assert.Equal(t, "https://example.com", mock.lastURL)
}

func TestIngestWebsiteCmd_FailurePropagates(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	ingestService.(*mockIngestService).err = errMockFailure

	_, err := executeCommand(t, "ingest", "website", "https://example.com")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "website ingestion failed")
}

func TestIngestVideoCmd_PassesSiteFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand(t, "ingest", "video", "https://youtu.be/abc", "--site", "my-site")

	require.NoError(t, err)
	assert.Contains(t, out, "5 chunks")

	mock := ingestService.(*mockIngestService)
	assert.Equal(t, "https://youtu.be/abc", mock.lastURL)
	assert.Equal(t, "my-site", mock.lastSiteID)
}

func TestIngestPDFCmd_ReadsLocalFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeTempPDF(t)
	out, err := executeCommand(t, "ingest", "pdf", path)

	require.NoError(t, err)
	assert.Contains(t, out, "7 chunks")
	assert.Contains(t, out, "3 pages")

	mock := ingestService.(*mockIngestService)
	assert.Equal(t, path, mock.lastURL)
}

func TestIngestPDFCmd_DownloadsFromURL(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("%PDF-1.4 placeholder"))
	}))
	defer srv.Close()

	out, err := executeCommand(t, "ingest", "pdf", srv.URL+"/report.pdf")

	require.NoError(t, err)
	assert.Contains(t, out, "7 chunks")

	mock := ingestService.(*mockIngestService)
	assert.Equal(t, srv.URL+"/report.pdf", mock.lastURL)
	assert.Equal(t, []byte("%PDF-1.4 placeholder"), mock.lastData)
}

func TestIngestPDFCmd_DownloadErrorStatus(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := executeCommand(t, "ingest", "pdf", srv.URL+"/missing.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestIngestPDFCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand(t, "ingest", "pdf", "/does/not/exist.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read pdf")
}

func TestRecrawlCmd_ForcesRecrawl(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand(t, "recrawl", "https://example.com")

	require.NoError(t, err)
	assert.Contains(t, out, "Re-indexed")
	assert.True(t, ingestService.(*mockIngestService).recrawled)
}

package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPage_ReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "sitesage")
		assert.Contains(t, r.Header.Get("Accept"), "text/html")
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer server.Close()

	f := New(WithRequestsPerSecond(1000))
	html, err := f.FetchPage(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "<html><body>hello</body></html>", html)
}

func TestFetchPage_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := New(WithRequestsPerSecond(1000))
	_, err := f.FetchPage(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetchPage_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("moved content"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := New(WithRequestsPerSecond(1000))
	html, err := f.FetchPage(context.Background(), server.URL+"/old")

	require.NoError(t, err)
	assert.Equal(t, "moved content", html)
}

func TestFetchPage_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := New(WithRequestsPerSecond(20))

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := f.FetchPage(context.Background(), server.URL)
		require.NoError(t, err)
	}
	// Burst of 1 at 20 req/s: the second and third fetch each wait 50ms.
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestFetchPage_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := New()
	_, err := f.FetchPage(ctx, "https://example.com")
	assert.Error(t, err)
}

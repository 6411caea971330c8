package download

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadLiveSuccess(t *testing.T) {
	mock := NewMockFetcher()
	mock.AddResponse("https://example.com/a.zip", 200, "zip bytes")

	d := New(mock, false)
	dest := filepath.Join(t.TempDir(), "a.zip")
	require.True(t, d.Download("https://example.com/a.zip", dest))

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "zip bytes", string(content))
	// No temp file left behind
	_, err = os.Stat(dest + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadRealFetcherAgainstLocalServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/assets/a.zip" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("served bytes"))
	}))
	defer srv.Close()

	d := New(NewRealFetcherWithClient(srv.Client()), false)

	dest := filepath.Join(t.TempDir(), "a.zip")
	require.True(t, d.Download(srv.URL+"/assets/a.zip", dest))
	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "served bytes", string(content))

	assert.False(t, d.Download(srv.URL+"/assets/missing.zip", filepath.Join(t.TempDir(), "missing.zip")))
}

func TestDownloadCreatesParentDirectory(t *testing.T) {
	mock := NewMockFetcher()
	mock.AddResponse("https://example.com/a.zip", 200, "x")

	d := New(mock, false)
	dest := filepath.Join(t.TempDir(), "nested", "deeper", "a.zip")
	require.True(t, d.Download("https://example.com/a.zip", dest))

	_, err := os.Stat(dest)
	assert.NoError(t, err)
}

func TestDownloadNotFound(t *testing.T) {
	mock := NewMockFetcher()
	mock.AddResponse("https://example.com/gone.zip", 404, "Not Found")

	d := New(mock, false)
	dest := filepath.Join(t.TempDir(), "gone.zip")
	assert.False(t, d.Download("https://example.com/gone.zip", dest))

	_, err := os.Stat(dest)
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadServerError(t *testing.T) {
	mock := NewMockFetcher()
	mock.AddResponse("https://example.com/a.zip", 503, "unavailable")

	d := New(mock, false)
	assert.False(t, d.Download("https://example.com/a.zip", filepath.Join(t.TempDir(), "a.zip")))
}

func TestDownloadTransportError(t *testing.T) {
	mock := NewMockFetcher()
	mock.AddError("https://example.com/a.zip", errors.New("connection refused"))

	d := New(mock, false)
	assert.False(t, d.Download("https://example.com/a.zip", filepath.Join(t.TempDir(), "a.zip")))
}

func TestDownloadMockMode(t *testing.T) {
	mock := NewMockFetcher()
	d := New(mock, true)

	dest := filepath.Join(t.TempDir(), "placeholder.zip")
	require.True(t, d.Download("https://example.com/a.zip", dest))

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Mock content for https://example.com/a.zip")
	assert.Contains(t, string(content), "mock file created for testing purposes")

	// Mock mode must not hit the network
	assert.Empty(t, mock.Requests())
}

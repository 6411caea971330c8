// Package download fetches asset content to local files. All failure paths
// are logged and reported as a boolean result; nothing propagates.
package download

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fulmenhq/assetsync/pkg/exitcode"
	"github.com/fulmenhq/assetsync/pkg/logger"
	"github.com/fulmenhq/assetsync/pkg/safeio"
)

// Downloader writes asset content to disk, either from a live HTTP fetch or
// as mock placeholder files for testing.
type Downloader struct {
	fetcher Fetcher
	mock    bool
}

// New creates a Downloader. When mock is true no network calls are made.
func New(fetcher Fetcher, mock bool) *Downloader {
	return &Downloader{fetcher: fetcher, mock: mock}
}

// Download fetches url and writes it to outputPath, creating the parent
// directory first. Returns whether the file was produced.
func (d *Downloader) Download(url, outputPath string) bool {
	if err := safeio.EnsureDir(filepath.Dir(outputPath)); err != nil {
		logger.Error("Failed to create output directory", logger.String("path", outputPath), logger.Err(err))
		return false
	}

	if d.mock {
		return d.writeMock(url, outputPath)
	}
	return d.fetch(url, outputPath)
}

func (d *Downloader) writeMock(url, outputPath string) bool {
	content := fmt.Sprintf("Mock content for %s\n"+
		"This is a mock file created for testing purposes.\n"+
		"In a real scenario, this would be the downloaded content from %s.\n", url, url)
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil { // #nosec G306 -- asset files are world-readable
		logger.Error("Failed to write mock file", logger.String("path", outputPath), logger.Err(err))
		return false
	}
	logger.Info("Mock downloaded", logger.String("path", outputPath))
	return true
}

func (d *Downloader) fetch(url, outputPath string) bool {
	logger.Info("Downloading from", logger.String("url", url))

	resp, err := d.fetcher.Get(url)
	if err != nil {
		logger.Error("Failed to download",
			logger.String("url", url),
			logger.Int("code", exitcode.NetworkError),
			logger.Err(err))
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		logger.Error("URL not found", logger.String("url", url), logger.Int("code", exitcode.NetworkError))
		logger.Info("If you're testing with example URLs, use the --mock flag to create mock files.")
		return false
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error("Failed to download",
			logger.String("url", url),
			logger.Int("status", resp.StatusCode),
			logger.String("reason", resp.Status),
			logger.Int("code", exitcode.NetworkError))
		return false
	}

	tmpPath := outputPath + ".tmp"
	out, err := os.Create(tmpPath) // #nosec G304 -- destination derives from the sanitized filename
	if err != nil {
		logger.Error("Failed to create file", logger.String("path", outputPath), logger.Err(err))
		return false
	}

	// Stream the body so large assets never sit in memory
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(tmpPath)
		logger.Error("Failed to download",
			logger.String("url", url),
			logger.Int("code", exitcode.NetworkError),
			logger.Err(err))
		return false
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmpPath)
		logger.Error("Failed to write file", logger.String("path", outputPath), logger.Err(err))
		return false
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		_ = os.Remove(tmpPath)
		logger.Error("Failed to move file", logger.String("path", outputPath), logger.Err(err))
		return false
	}

	logger.Info("Downloaded", logger.String("path", outputPath))
	return true
}

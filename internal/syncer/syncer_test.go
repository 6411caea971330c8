package syncer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fulmenhq/assetsync/internal/download"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePublisher records publish requests and answers with a fixed result.
type fakePublisher struct {
	called  bool
	repo    string
	files   []string
	branch  string
	message string
	result  bool
}

func (f *fakePublisher) Publish(repoPath string, files []string, branch, message string) bool {
	f.called = true
	f.repo = repoPath
	f.files = files
	f.branch = branch
	f.message = message
	return f.result
}

func newSyncer(fetcher download.Fetcher, mock bool, pub *fakePublisher) *Syncer {
	return New(download.New(fetcher, mock), pub)
}

func TestRunMockModeDownloadsAllAssets(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "out")
	fetcher := download.NewMockFetcher()
	pub := &fakePublisher{result: true}
	s := newSyncer(fetcher, true, pub)

	ok := s.Run(Options{
		JSONString: `{"assets": [
			{"url": "https://x/a.zip"},
			{"url": "https://x/b.zip"},
			{"url": "https://x/c.zip"}
		]}`,
		OutputDir: outputDir,
		GitRepo:   "",
	})
	require.True(t, ok)

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	content, err := os.ReadFile(filepath.Join(outputDir, "b.zip"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Mock content for https://x/b.zip")

	// Mock mode makes zero network calls and no publish was requested
	assert.Empty(t, fetcher.Requests())
	assert.False(t, pub.called)
}

func TestRunSkipsRecordsWithoutURL(t *testing.T) {
	outputDir := t.TempDir()
	fetcher := download.NewMockFetcher()
	fetcher.AddResponse("https://x/good.zip", 200, "bytes")
	pub := &fakePublisher{result: true}
	s := newSyncer(fetcher, false, pub)

	ok := s.Run(Options{
		JSONString: `[{"name": "orphan"}, {"url": "https://x/good.zip"}]`,
		OutputDir:  outputDir,
	})
	assert.True(t, ok)

	_, err := os.Stat(filepath.Join(outputDir, "good.zip"))
	assert.NoError(t, err)
}

func TestRunContinuesPast404(t *testing.T) {
	outputDir := t.TempDir()
	fetcher := download.NewMockFetcher()
	fetcher.AddResponse("https://x/gone.zip", 404, "Not Found")
	fetcher.AddResponse("https://x/here.zip", 200, "bytes")
	pub := &fakePublisher{result: true}
	s := newSyncer(fetcher, false, pub)

	ok := s.Run(Options{
		JSONString: `[{"url": "https://x/gone.zip"}, {"url": "https://x/here.zip"}]`,
		OutputDir:  outputDir,
		GitRepo:    "/repo",
		GitBranch:  "main",
	})
	require.True(t, ok)

	// Only the successful download reaches the publisher
	require.True(t, pub.called)
	assert.Equal(t, []string{filepath.Join(outputDir, "here.zip")}, pub.files)
}

func TestRunFailsWithoutInput(t *testing.T) {
	s := newSyncer(download.NewMockFetcher(), true, &fakePublisher{result: true})
	assert.False(t, s.Run(Options{OutputDir: t.TempDir()}))
}

func TestRunFailsWithoutAssetArray(t *testing.T) {
	s := newSyncer(download.NewMockFetcher(), true, &fakePublisher{result: true})
	ok := s.Run(Options{
		JSONString: `{"count": 3}`,
		OutputDir:  t.TempDir(),
	})
	assert.False(t, ok)
}

func TestRunFailsWhenNothingDownloaded(t *testing.T) {
	fetcher := download.NewMockFetcher() // every URL 404s
	pub := &fakePublisher{result: true}
	s := newSyncer(fetcher, false, pub)

	ok := s.Run(Options{
		JSONString: `[{"url": "https://x/gone.zip"}]`,
		OutputDir:  t.TempDir(),
		GitRepo:    "/repo",
	})
	assert.False(t, ok)
	assert.False(t, pub.called)
}

func TestRunPublishFailureIsFatal(t *testing.T) {
	pub := &fakePublisher{result: false}
	s := newSyncer(download.NewMockFetcher(), true, pub)

	ok := s.Run(Options{
		JSONString: `[{"url": "https://x/a.zip"}]`,
		OutputDir:  t.TempDir(),
		GitRepo:    "/repo",
		GitBranch:  "main",
	})
	assert.False(t, ok)
	assert.True(t, pub.called)
}

func TestRunDefaultCommitMessage(t *testing.T) {
	pub := &fakePublisher{result: true}
	s := newSyncer(download.NewMockFetcher(), true, pub)

	ok := s.Run(Options{
		JSONString: `[{"url": "https://x/a.zip"}, {"url": "https://x/b.zip"}]`,
		OutputDir:  t.TempDir(),
		GitRepo:    "/repo",
		GitBranch:  "main",
	})
	require.True(t, ok)
	assert.Contains(t, pub.message, "Added 2 assets on ")
}

func TestRunExplicitCommitMessage(t *testing.T) {
	pub := &fakePublisher{result: true}
	s := newSyncer(download.NewMockFetcher(), true, pub)

	ok := s.Run(Options{
		JSONString:    `[{"url": "https://x/a.zip"}]`,
		OutputDir:     t.TempDir(),
		GitRepo:       "/repo",
		GitBranch:     "release",
		CommitMessage: "nightly refresh",
	})
	require.True(t, ok)
	assert.Equal(t, "nightly refresh", pub.message)
	assert.Equal(t, "release", pub.branch)
}

func TestRunIncludeExcludeFilters(t *testing.T) {
	outputDir := t.TempDir()
	pub := &fakePublisher{result: true}
	s := newSyncer(download.NewMockFetcher(), true, pub)

	ok := s.Run(Options{
		JSONString: `[
			{"url": "https://x/keep.zip"},
			{"url": "https://x/drop.tar"},
			{"url": "https://x/skip-me.zip"}
		]`,
		OutputDir: outputDir,
		Include:   []string{"*.zip"},
		Exclude:   []string{"skip-*"},
	})
	require.True(t, ok)

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep.zip", entries[0].Name())
}

func TestRunValidatePreflightIsWarnOnly(t *testing.T) {
	outputDir := t.TempDir()
	pub := &fakePublisher{result: true}
	s := newSyncer(download.NewMockFetcher(), true, pub)

	// Record without URL fails the schema but the batch still runs
	ok := s.Run(Options{
		JSONString: `[{"name": "orphan"}, {"url": "https://x/a.zip"}]`,
		OutputDir:  outputDir,
		Validate:   true,
	})
	assert.True(t, ok)
}

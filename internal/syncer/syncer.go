// Package syncer drives the batch: load the manifest, resolve and download
// each asset, then publish the results into a git working tree.
package syncer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fulmenhq/assetsync/internal/download"
	"github.com/fulmenhq/assetsync/internal/manifest"
	"github.com/fulmenhq/assetsync/internal/schema"
	"github.com/fulmenhq/assetsync/pkg/exitcode"
	"github.com/fulmenhq/assetsync/pkg/logger"
	"github.com/fulmenhq/assetsync/pkg/safeio"
)

// Publisher is the publish step seam; satisfied by *gitrepo.Publisher.
type Publisher interface {
	Publish(repoPath string, files []string, branch, message string) bool
}

// Options configures one batch run.
type Options struct {
	JSONFile      string
	JSONString    string
	OutputDir     string
	GitRepo       string // empty disables publishing
	GitBranch     string
	CommitMessage string
	Mock          bool
	Include       []string
	Exclude       []string
	Validate      bool
}

// Syncer executes the batch sequentially: one asset at a time, no retries.
type Syncer struct {
	downloader *download.Downloader
	publisher  Publisher
}

// New creates a Syncer.
func New(downloader *download.Downloader, publisher Publisher) *Syncer {
	return &Syncer{downloader: downloader, publisher: publisher}
}

// Run executes the batch and reports overall success. Per-asset failures are
// isolated; input and publish failures are batch-fatal.
func (s *Syncer) Run(opts Options) bool {
	data := manifest.Load(opts.JSONFile, opts.JSONString)
	if data == nil {
		logger.Error("No valid JSON data to process", logger.Int("code", exitcode.InputError))
		return false
	}

	if opts.Validate {
		s.preflightValidate(data)
	}

	downloaded, ok := s.processAssets(data, opts)
	if !ok {
		return false
	}

	if opts.GitRepo != "" && len(downloaded) > 0 {
		message := opts.CommitMessage
		if message == "" {
			message = fmt.Sprintf("Added %d assets on %s", len(downloaded), time.Now().Format("2006-01-02 15:04:05"))
		}
		return s.publisher.Publish(opts.GitRepo, downloaded, opts.GitBranch, message)
	}

	return len(downloaded) > 0
}

// preflightValidate checks the manifest against the embedded schema. The
// heuristic extraction still runs either way, so findings are warn-only.
func (s *Syncer) preflightValidate(data interface{}) {
	result, err := schema.Validate(data, schema.ManifestSchema)
	if err != nil {
		logger.Warn("Manifest schema validation unavailable", logger.Err(err))
		return
	}
	if !result.Valid {
		for _, verr := range result.Errors {
			logger.Warn("Manifest schema violation",
				logger.String("path", verr.Path),
				logger.String("message", verr.Message))
		}
	}
}

// processAssets resolves and downloads every asset in the manifest. The
// returned list holds the local paths of successful downloads, in order; it
// only grows, even when later assets fail.
func (s *Syncer) processAssets(data interface{}, opts Options) (files []string, ok bool) {
	// A fault in the heuristics must fail the batch, not crash the process.
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Error processing assets", logger.String("panic", fmt.Sprintf("%v", r)))
			files, ok = nil, false
		}
	}()

	if err := safeio.EnsureDir(opts.OutputDir); err != nil {
		logger.Error("Failed to create output directory",
			logger.String("dir", opts.OutputDir),
			logger.Int("code", exitcode.FileSystemError),
			logger.Err(err))
		return nil, false
	}

	records, err := manifest.SelectAssets(data)
	if err != nil {
		logger.Error("Could not find asset array in JSON data", logger.Int("code", exitcode.InputError))
		return nil, false
	}

	var skipped, failed int
	for _, record := range records {
		asset, resolved := manifest.ResolveAsset(record)
		if !resolved {
			skipped++
			continue
		}

		if !s.wantFilename(asset.Filename, opts) {
			logger.Debug("Asset filtered out", logger.String("filename", asset.Filename))
			skipped++
			continue
		}

		outputPath := filepath.Join(opts.OutputDir, asset.Filename)
		if s.downloader.Download(asset.URL, outputPath) {
			files = append(files, outputPath)
		} else {
			failed++
		}
	}

	logger.Info("Asset download summary",
		logger.Int("downloaded", len(files)),
		logger.Int("skipped", skipped),
		logger.Int("failed", failed))

	return files, true
}

// wantFilename applies the include/exclude globs against the sanitized
// filename. An empty include list admits everything.
func (s *Syncer) wantFilename(filename string, opts Options) bool {
	if len(opts.Include) > 0 {
		included := false
		for _, pattern := range opts.Include {
			if match, err := doublestar.Match(pattern, filename); err == nil && match {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}
	for _, pattern := range opts.Exclude {
		if match, err := doublestar.Match(pattern, filename); err == nil && match {
			return false
		}
	}
	return true
}

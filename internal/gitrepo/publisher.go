package gitrepo

import (
	"os"
	"path/filepath"

	"github.com/fulmenhq/assetsync/pkg/exitcode"
	"github.com/fulmenhq/assetsync/pkg/logger"
)

// managedRunnerEnv marks execution inside an automation runner that has the
// repository checked out and configured already.
const managedRunnerEnv = "GITHUB_ACTIONS"

const originRemote = "origin"

// Publisher stages, commits and pushes files into a working tree.
type Publisher struct {
	opener  Opener
	managed bool
}

// NewPublisher creates the production publisher. Managed-runner mode is
// selected by the environment.
func NewPublisher() *Publisher {
	return &Publisher{
		opener:  GitOpener{},
		managed: os.Getenv(managedRunnerEnv) == "true",
	}
}

// NewPublisherWith wires an explicit opener and mode. Used by tests.
func NewPublisherWith(opener Opener, managed bool) *Publisher {
	return &Publisher{opener: opener, managed: managed}
}

// Publish ensures files are committed (and pushed where possible) on branch
// in the repository at repoPath. Failures are logged and reported as false;
// a clean working tree or a missing origin remote is still success.
func (p *Publisher) Publish(repoPath string, files []string, branch, message string) bool {
	if p.managed {
		return p.publishManaged(repoPath, files, branch, message)
	}
	return p.publishStandalone(repoPath, files, branch, message)
}

// publishManaged assumes the runner already checked out and configured the
// repository: stage, commit when dirty, push to the configured remote.
func (p *Publisher) publishManaged(repoPath string, files []string, branch, message string) bool {
	logger.Info("Running in managed runner environment")

	repo, err := p.opener.Open(repoPath)
	if err != nil {
		return publishFailed(err)
	}

	if !p.stageAll(repo, repoPath, files) {
		return false
	}

	changed, err := repo.HasChanges()
	if err != nil {
		return publishFailed(err)
	}
	if !changed {
		logger.Info("No changes to commit")
		return true
	}

	if err := repo.Commit(message); err != nil {
		return publishFailed(err)
	}
	logger.Info("Committed changes", logger.String("message", message))

	// The runner configures the remote and checks out the branch ahead of time.
	if err := repo.Push(originRemote, branch); err != nil {
		return publishFailed(err)
	}
	logger.Info("Pushed changes to remote repository")
	return true
}

func (p *Publisher) publishStandalone(repoPath string, files []string, branch, message string) bool {
	var repo Repo
	var err error
	if p.opener.IsRepo(repoPath) {
		repo, err = p.opener.Open(repoPath)
	} else {
		repo, err = p.opener.Init(repoPath)
		if err == nil {
			logger.Info("Initialized new Git repository", logger.String("path", repoPath))
		}
	}
	if err != nil {
		return publishFailed(err)
	}

	exists, err := repo.BranchExists(branch)
	if err != nil {
		return publishFailed(err)
	}
	if err := repo.SwitchBranch(branch, !exists); err != nil {
		return publishFailed(err)
	}
	if exists {
		logger.Info("Checked out existing branch", logger.String("branch", branch))
	} else {
		logger.Info("Created and checked out new branch", logger.String("branch", branch))
	}

	if !p.stageAll(repo, repoPath, files) {
		return false
	}

	changed, err := repo.HasChanges()
	if err != nil {
		return publishFailed(err)
	}
	if !changed {
		logger.Info("No changes to commit")
		return true
	}

	if err := repo.Commit(message); err != nil {
		return publishFailed(err)
	}
	logger.Info("Committed changes", logger.String("message", message))

	hasOrigin, err := repo.HasRemote(originRemote)
	if err != nil {
		return publishFailed(err)
	}
	if !hasOrigin {
		logger.Warn("No remote repository configured, skipping push")
		return true
	}

	if err := repo.Push(originRemote, branch); err != nil {
		return publishFailed(err)
	}
	logger.Info("Pushed changes to remote repository")
	return true
}

// stageAll stages each file by its path relative to the repository root.
func (p *Publisher) stageAll(repo Repo, repoPath string, files []string) bool {
	absRepo, err := filepath.Abs(repoPath)
	if err != nil {
		return publishFailed(err)
	}
	for _, file := range files {
		absFile, err := filepath.Abs(file)
		if err != nil {
			return publishFailed(err)
		}
		rel, err := filepath.Rel(absRepo, absFile)
		if err != nil {
			return publishFailed(err)
		}
		if err := repo.Stage(rel); err != nil {
			return publishFailed(err, logger.String("file", rel))
		}
	}
	return true
}

// publishFailed logs a fatal publish error with its exit code class and
// reports failure.
func publishFailed(err error, fields ...logger.Field) bool {
	fields = append(fields, logger.Int("code", exitcode.PublishError), logger.Err(err))
	logger.Error("Git operation failed", fields...)
	return false
}

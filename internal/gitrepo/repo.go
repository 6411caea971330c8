// Package gitrepo publishes downloaded files into a git working tree. The
// version-control surface is a narrow capability interface so tests can
// substitute a fake; the production implementation uses go-git, so no
// external git binary is required and the process working directory is
// never touched.
package gitrepo

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo is the set of version-control operations the publisher needs.
type Repo interface {
	Stage(relPath string) error
	HasChanges() (bool, error)
	Commit(message string) error
	BranchExists(name string) (bool, error)
	SwitchBranch(name string, create bool) error
	HasRemote(name string) (bool, error)
	Push(remote, branch string) error
}

// Opener resolves repository locations to Repo handles.
type Opener interface {
	IsRepo(path string) bool
	Open(path string) (Repo, error)
	Init(path string) (Repo, error)
}

// GitOpener is the production Opener backed by go-git.
type GitOpener struct{}

func (GitOpener) IsRepo(path string) bool {
	_, err := os.Stat(filepath.Join(path, git.GitDirName))
	return err == nil
}

func (GitOpener) Open(path string) (Repo, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, err
	}
	return newGitRepo(repo)
}

func (GitOpener) Init(path string) (Repo, error) {
	repo, err := git.PlainInit(path, false)
	if err != nil {
		return nil, err
	}
	return newGitRepo(repo)
}

// gitRepo implements Repo over a go-git repository.
type gitRepo struct {
	repo *git.Repository
	wt   *git.Worktree
}

// NewRepo wraps an already-constructed go-git repository. Used by tests that
// build repositories in memory.
func NewRepo(repo *git.Repository) (Repo, error) {
	return newGitRepo(repo)
}

func newGitRepo(repo *git.Repository) (*gitRepo, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	return &gitRepo{repo: repo, wt: wt}, nil
}

func (r *gitRepo) Stage(relPath string) error {
	_, err := r.wt.Add(filepath.ToSlash(relPath))
	return err
}

func (r *gitRepo) HasChanges() (bool, error) {
	status, err := r.wt.Status()
	if err != nil {
		return false, err
	}
	return !status.IsClean(), nil
}

func (r *gitRepo) Commit(message string) error {
	_, err := r.wt.Commit(message, &git.CommitOptions{
		Author: r.signature(),
	})
	return err
}

// signature builds the commit author from repository config, falling back
// to a fixed identity so commits work in bare automation environments.
func (r *gitRepo) signature() *object.Signature {
	name, email := "assetsync", "assetsync@localhost"
	if cfg, err := r.repo.ConfigScoped(gitconfig.SystemScope); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}
}

func (r *gitRepo) BranchExists(name string) (bool, error) {
	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	return false, err
}

func (r *gitRepo) SwitchBranch(name string, create bool) error {
	branchRef := plumbing.NewBranchReferenceName(name)

	if create {
		// On an unborn repository there is no commit to branch from yet;
		// repointing HEAD is what checkout -b does there.
		if _, err := r.repo.Head(); err != nil {
			return r.repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, branchRef))
		}
		return r.wt.Checkout(&git.CheckoutOptions{Branch: branchRef, Create: true})
	}

	// Checkout rejects unstaged modifications to tracked files, which every
	// repeat run with updated asset content produces. Already being on the
	// branch needs no checkout at all; otherwise keep local changes so they
	// can be staged and committed.
	if head, err := r.repo.Head(); err == nil && head.Name() == branchRef {
		return nil
	}
	return r.wt.Checkout(&git.CheckoutOptions{Branch: branchRef, Keep: true})
}

func (r *gitRepo) HasRemote(name string) (bool, error) {
	_, err := r.repo.Remote(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, git.ErrRemoteNotFound) {
		return false, nil
	}
	return false, err
}

func (r *gitRepo) Push(remote, branch string) error {
	refSpec := gitconfig.RefSpec(plumbing.NewBranchReferenceName(branch) + ":" + plumbing.NewBranchReferenceName(branch))
	err := r.repo.Push(&git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []gitconfig.RefSpec{refSpec},
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return err
}

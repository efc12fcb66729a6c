package publisher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/Jhoney47/GameCodeBase/internal/config"
)

// GitRemote commits the artifact in a local clone and pushes it upstream
type GitRemote struct {
	repoDir      string
	remote       string
	branch       string
	auth         transport.AuthMethod
	authorName   string
	authorEmail  string
	commitPrefix string
}

// NewGitRemote creates a git remote from configuration. The artifact must
// live inside cfg.RepoDir.
func NewGitRemote(cfg config.GitConfig) *GitRemote {
	r := &GitRemote{
		repoDir:      cfg.RepoDir,
		remote:       cfg.Remote,
		branch:       cfg.Branch,
		authorName:   cfg.AuthorName,
		authorEmail:  cfg.AuthorEmail,
		commitPrefix: cfg.CommitPrefix,
	}
	if cfg.Token != "" {
		username := cfg.Username
		if username == "" {
			username = "x-access-token"
		}
		r.auth = &githttp.BasicAuth{Username: username, Password: cfg.Token}
	}
	return r
}

func (r *GitRemote) Name() string { return "git" }

// Push stages and commits the artifact, then pushes. A clean worktree skips
// the commit; an up to date remote is a success.
func (r *GitRemote) Push(ctx context.Context, a Artifact) (bool, error) {
	repo, err := git.PlainOpen(r.repoDir)
	if err != nil {
		return false, fmt.Errorf("failed to open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to get worktree: %w", err)
	}

	rel, err := r.relPath(wt.Filesystem.Root(), a.Path)
	if err != nil {
		return false, err
	}
	if _, err := wt.Add(rel); err != nil {
		return false, fmt.Errorf("failed to stage %s: %w", rel, err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("failed to read status: %w", err)
	}

	committed := false
	if st, ok := status[rel]; ok && st.Staging != git.Unmodified && st.Staging != git.Untracked {
		_, err := wt.Commit(fmt.Sprintf("%s - %s", r.commitPrefix, a.LastUpdated), &git.CommitOptions{
			Author: &object.Signature{
				Name:  r.authorName,
				Email: r.authorEmail,
				When:  time.Now(),
			},
		})
		if err != nil {
			return false, fmt.Errorf("failed to commit: %w", err)
		}
		committed = true
	}

	opts := &git.PushOptions{RemoteName: r.remote, Auth: r.auth}
	if r.branch != "" {
		opts.RefSpecs = []gitconfig.RefSpec{
			gitconfig.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", r.branch, r.branch)),
		}
	}
	err = repo.PushContext(ctx, opts)
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return committed, fmt.Errorf("failed to push to %s: %w", r.remote, err)
	}

	return committed, nil
}

func (r *GitRemote) relPath(root, path string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve repository root: %w", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve artifact path: %w", err)
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("artifact %s is outside repository %s", path, root)
	}
	return filepath.ToSlash(rel), nil
}

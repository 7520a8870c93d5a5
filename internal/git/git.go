// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package git commits regenerated index documents and undoes the last
// regeneration commit when the vault lives in a git repository.
package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	generatedTrailer = "Generated-By: go-reindex"
	dirtyCommitMsg   = "go-reindex: save manual edits to index files before regeneration"
)

// ErrNotReindexCommit is returned when undo targets a commit not made by
// go-reindex.
var ErrNotReindexCommit = errors.New("not a go-reindex commit")

// ErrDirtyWorkTree is returned when index files have uncommitted edits and
// DirtyCommit is false.
var ErrDirtyWorkTree = errors.New("index files have uncommitted changes")

// ErrNoGit is returned when the vault is not inside a git repository.
var ErrNoGit = errors.New("not a git repository")

// Config configures git integration behavior.
type Config struct {
	VaultDir    string // Vault root; may be a subdirectory of the repository
	AutoCommit  bool   // Commit regenerated files after a run
	DirtyCommit bool   // Commit manual edits to index files before a run
}

// Repo wraps a go-git repository for the operations we need.
type Repo struct {
	repo   *gogit.Repository
	cfg    Config
	prefix string // Vault root relative to the worktree root, slash form
}

// Open finds the repository containing the vault directory.
// Returns ErrNoGit if there is none.
func Open(cfg Config) (*Repo, error) {
	abs, err := filepath.Abs(cfg.VaultDir)
	if err != nil {
		return nil, fmt.Errorf("resolving vault dir: %w", err)
	}
	r, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}
	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}

	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		return nil, fmt.Errorf("resolving worktree root: %w", err)
	}
	vault, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolving vault dir: %w", err)
	}
	prefix, err := filepath.Rel(root, vault)
	if err != nil {
		return nil, fmt.Errorf("locating vault in worktree: %w", err)
	}
	prefix = filepath.ToSlash(prefix)
	if prefix == "." {
		prefix = ""
	}
	return &Repo{repo: r, cfg: cfg, prefix: prefix}, nil
}

// repoPath maps a vault-relative path to a worktree-relative one.
func (r *Repo) repoPath(vaultPath string) string {
	if r.prefix == "" {
		return vaultPath
	}
	return r.prefix + "/" + strings.TrimPrefix(vaultPath, "/")
}

// DirtyFiles returns the given vault paths that have staged or unstaged
// changes.
func (r *Repo) DirtyFiles(paths []string) ([]string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}

	var dirty []string
	for _, p := range paths {
		fs, ok := status[r.repoPath(p)]
		if !ok {
			continue
		}
		if fs.Staging != gogit.Unmodified || fs.Worktree != gogit.Unmodified {
			dirty = append(dirty, p)
		}
	}
	return dirty, nil
}

// IsReindexCommit checks whether HEAD was made by go-reindex by looking for
// the generated trailer.
func (r *Repo) IsReindexCommit() (bool, error) {
	commit, err := r.head()
	if err != nil {
		return false, err
	}
	return strings.Contains(commit.Message, generatedTrailer), nil
}

func (r *Repo) head() (*object.Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting commit: %w", err)
	}
	return commit, nil
}

// commitCount returns the total number of commits reachable from HEAD.
func (r *Repo) commitCount() (int, error) {
	iter, err := r.repo.Log(&gogit.LogOptions{})
	if err != nil {
		return 0, err
	}
	count := 0
	err = iter.ForEach(func(*object.Commit) error {
		count++
		return nil
	})
	return count, err
}

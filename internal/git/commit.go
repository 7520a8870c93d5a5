// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"fmt"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	authorName  = "go-reindex"
	authorEmail = "noreply@go-reindex"
)

func signature() *object.Signature {
	return &object.Signature{Name: authorName, Email: authorEmail, When: time.Now()}
}

// HandleDirty commits manual edits to the given index files so that the
// regeneration commit holds only generated changes. With DirtyCommit off it
// returns ErrDirtyWorkTree instead.
func (r *Repo) HandleDirty(paths []string) error {
	dirty, err := r.DirtyFiles(paths)
	if err != nil {
		return err
	}
	if len(dirty) == 0 {
		return nil
	}
	if !r.cfg.DirtyCommit {
		return fmt.Errorf("%w: %v", ErrDirtyWorkTree, dirty)
	}
	return r.commit(dirty, dirtyCommitMsg)
}

// Commit stages the regenerated files and commits them with a generated
// message carrying the go-reindex trailer. It is a no-op when AutoCommit is
// off or nothing changed.
func (r *Repo) Commit(files []string) error {
	if !r.cfg.AutoCommit || len(files) == 0 {
		return nil
	}
	return r.commit(files, GenerateMessage(files))
}

func (r *Repo) commit(files []string, msg string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	for _, f := range files {
		if _, err := wt.Add(r.repoPath(f)); err != nil {
			return fmt.Errorf("staging %s: %w", f, err)
		}
	}
	if _, err := wt.Commit(msg, &gogit.CommitOptions{Author: signature()}); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// Undo reverts the last commit if go-reindex made it. It resets softly to
// the parent, so the regenerated text stays in the working tree.
func (r *Repo) Undo() error {
	ok, err := r.IsReindexCommit()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotReindexCommit
	}

	commit, err := r.head()
	if err != nil {
		return err
	}
	if commit.NumParents() == 0 {
		return fmt.Errorf("cannot undo: HEAD is the initial commit")
	}
	parent, err := commit.Parent(0)
	if err != nil {
		return fmt.Errorf("getting parent commit: %w", err)
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	if err := wt.Reset(&gogit.ResetOptions{Commit: parent.Hash, Mode: gogit.SoftReset}); err != nil {
		return fmt.Errorf("resetting to parent: %w", err)
	}
	return nil
}

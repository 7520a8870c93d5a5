// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package vault implements the document store over a directory of markdown
// files. Paths crossing the package boundary are vault-relative and use
// forward slashes.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/petar-djukic/go-reindex/pkg/types"
)

// ErrOutsideVault is returned for paths that resolve outside the vault root.
var ErrOutsideVault = errors.New("path is outside the vault")

// Vault is a filesystem-backed document store.
type Vault struct {
	root string
	log  *zap.Logger
}

// Verify interface compliance at compile time.
var _ types.DocumentStore = (*Vault)(nil)

// Open returns a Vault rooted at dir. The directory must exist.
func Open(dir string, log *zap.Logger) (*Vault, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving vault root %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("opening vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening vault: %s is not a directory", abs)
	}
	return &Vault{root: abs, log: log}, nil
}

// Root returns the absolute vault root.
func (v *Vault) Root() string { return v.root }

// Rel converts an absolute or vault-relative path into the vault-relative
// slash form used by the rest of the engine.
func (v *Vault) Rel(path string) (string, error) {
	abs, err := v.abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(v.root, abs)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, ErrOutsideVault)
	}
	return filepath.ToSlash(rel), nil
}

// abs resolves path against the root and rejects anything that escapes it.
func (v *Vault) abs(path string) (string, error) {
	p := filepath.FromSlash(path)
	if !filepath.IsAbs(p) {
		p = filepath.Join(v.root, p)
	}
	p = filepath.Clean(p)
	rel, err := filepath.Rel(v.root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", path, ErrOutsideVault)
	}
	return p, nil
}

// Documents returns every markdown document in the vault in lexical path
// order. Hidden directories such as .git and .obsidian are skipped.
func (v *Vault) Documents(ctx context.Context) ([]string, error) {
	var docs []string
	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != v.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsDocument(p) {
			return nil
		}
		rel, err := filepath.Rel(v.root, p)
		if err != nil {
			return err
		}
		docs = append(docs, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking vault: %w", err)
	}
	return docs, nil
}

// IsDocument reports whether path names a markdown document.
func IsDocument(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}

// ListGeneratedIndexFiles returns the documents whose frontmatter sets
// generatedIndex. Documents that cannot be read are skipped with a warning.
func (v *Vault) ListGeneratedIndexFiles(ctx context.Context) ([]string, error) {
	docs, err := v.Documents(ctx)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, d := range docs {
		fm, err := v.Frontmatter(d)
		if err != nil {
			v.log.Warn("skipping unreadable document", zap.String("file", d), zap.Error(err))
			continue
		}
		if fm.GeneratedIndex {
			out = append(out, d)
		}
	}
	return out, nil
}

// ReadFile returns the full text of a document.
func (v *Vault) ReadFile(path string) (string, error) {
	abs, err := v.abs(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile replaces a document atomically, preserving its permissions.
func (v *Vault) WriteFile(path, text string) error {
	abs, err := v.abs(path)
	if err != nil {
		return err
	}
	if err := atomicWrite(abs, []byte(text)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Frontmatter parses a document's YAML header. A missing or malformed
// header yields an empty Frontmatter; malformed ones are logged.
func (v *Vault) Frontmatter(path string) (*types.Frontmatter, error) {
	text, err := v.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fm, err := ParseFrontmatter(text)
	if err != nil {
		v.log.Warn("ignoring malformed frontmatter", zap.String("file", path), zap.Error(err))
		return &types.Frontmatter{}, nil
	}
	return fm, nil
}

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package watch re-runs regeneration when vault documents change. Bursts of
// filesystem events are debounced into a single run, and runs never overlap.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period after the last change before a run.
const DefaultDebounce = 500 * time.Millisecond

// RunFunc performs one regeneration and returns the vault-relative paths it
// wrote. Events on those paths right after the run are ignored.
type RunFunc func(ctx context.Context) (written []string, err error)

// Watcher watches a vault directory tree for markdown changes.
type Watcher struct {
	root     string
	debounce time.Duration
	run      RunFunc
	log      *zap.Logger

	fsw     *fsnotify.Watcher
	pending time.Time            // Time of the last relevant event; zero when idle
	ignore  map[string]time.Time // Absolute paths written by the last run, with expiry
	runs    atomic.Int32
}

// New creates a Watcher for root. A zero debounce uses DefaultDebounce.
func New(root string, debounce time.Duration, run RunFunc, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving watch root: %w", err)
	}
	return &Watcher{
		root:     abs,
		debounce: debounce,
		run:      run,
		log:      log,
		ignore:   make(map[string]time.Time),
	}, nil
}

// Runs returns how many regeneration runs the watcher has triggered.
func (w *Watcher) Runs() int {
	return int(w.runs.Load())
}

// Run blocks, triggering regenerations until ctx is cancelled. Run errors
// are logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	w.fsw = fsw
	defer fsw.Close()

	if err := w.addTree(w.root); err != nil {
		return err
	}
	w.log.Info("watching vault", zap.String("root", w.root), zap.Duration("debounce", w.debounce))

	ticker := time.NewTicker(max(w.debounce/4, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))

		case now := <-ticker.C:
			if w.pending.IsZero() || now.Sub(w.pending) < w.debounce {
				continue
			}
			w.pending = time.Time{}
			w.trigger(ctx)
		}
	}
}

// addTree watches dir and every non-hidden directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != w.root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		return nil
	})
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	if event.Op&fsnotify.Create != 0 && w.isNewDir(event.Name) {
		if err := w.addTree(event.Name); err != nil {
			w.log.Warn("watching new directory failed", zap.String("dir", event.Name), zap.Error(err))
		}
		w.pending = time.Now()
		return
	}
	if !strings.EqualFold(filepath.Ext(event.Name), ".md") || w.hidden(event.Name) {
		return
	}
	if until, ok := w.ignore[event.Name]; ok {
		if time.Now().Before(until) {
			return
		}
		delete(w.ignore, event.Name)
	}
	w.log.Debug("vault change", zap.String("file", event.Name), zap.String("op", event.Op.String()))
	w.pending = time.Now()
}

func (w *Watcher) isNewDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir() && !w.hidden(path)
}

// hidden reports whether path lies under a dot directory of the vault.
func (w *Watcher) hidden(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(seg, ".") && seg != "." && seg != ".." {
			return true
		}
	}
	return false
}

func (w *Watcher) trigger(ctx context.Context) {
	w.runs.Add(1)
	written, err := w.run(ctx)
	if err != nil {
		w.log.Error("regeneration failed", zap.Error(err))
		return
	}
	until := time.Now().Add(w.debounce)
	for _, p := range written {
		w.ignore[filepath.Join(w.root, filepath.FromSlash(p))] = until
	}
}

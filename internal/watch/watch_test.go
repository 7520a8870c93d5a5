// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const (
	testDebounce = 50 * time.Millisecond
	settle       = 400 * time.Millisecond
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// startWatcher runs w in the background and returns a stop function that
// cancels it and waits for Run to return.
func startWatcher(t *testing.T, w *Watcher) func() {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fsnotify keeps background goroutines on windows")
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	// Give the watcher time to register the tree.
	time.Sleep(testDebounce)
	return func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("watcher did not stop")
		}
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWatcher_DebouncesBurstIntoOneRun(t *testing.T) {
	root := t.TempDir()
	runs := make(chan struct{}, 10)
	w, err := New(root, testDebounce, func(context.Context) ([]string, error) {
		runs <- struct{}{}
		return nil, nil
	}, nil)
	require.NoError(t, err)
	stop := startWatcher(t, w)

	for i := 0; i < 5; i++ {
		write(t, filepath.Join(root, "townA.md"), "edit")
	}

	waitRun(t, runs)
	time.Sleep(settle)
	stop()

	assert.Equal(t, 1, w.Runs())
}

func TestWatcher_IgnoresNonMarkdownAndHiddenDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".obsidian"), 0o755))
	w, err := New(root, testDebounce, func(context.Context) ([]string, error) {
		return nil, nil
	}, nil)
	require.NoError(t, err)
	stop := startWatcher(t, w)

	write(t, filepath.Join(root, "image.png"), "x")
	write(t, filepath.Join(root, ".obsidian", "workspace.md"), "x")
	time.Sleep(settle)
	stop()

	assert.Equal(t, 0, w.Runs())
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	root := t.TempDir()
	runs := make(chan struct{}, 10)
	w, err := New(root, testDebounce, func(context.Context) ([]string, error) {
		runs <- struct{}{}
		return nil, nil
	}, nil)
	require.NoError(t, err)
	stop := startWatcher(t, w)
	defer stop()

	require.NoError(t, os.Mkdir(filepath.Join(root, "townB"), 0o755))
	waitRun(t, runs)

	write(t, filepath.Join(root, "townB", "index.md"), "new")
	waitRun(t, runs)
}

func TestWatcher_IgnoresItsOwnWrites(t *testing.T) {
	root := t.TempDir()
	index := filepath.Join(root, "townA", "index.md")
	write(t, index, "old")

	runs := make(chan struct{}, 10)
	w, err := New(root, testDebounce, func(context.Context) ([]string, error) {
		if err := os.WriteFile(index, []byte("regenerated"), 0o644); err != nil {
			return nil, err
		}
		runs <- struct{}{}
		return []string{"townA/index.md"}, nil
	}, nil)
	require.NoError(t, err)
	stop := startWatcher(t, w)

	write(t, filepath.Join(root, "townA", "npc.md"), "edit")
	waitRun(t, runs)
	time.Sleep(settle)
	stop()

	assert.Equal(t, 1, w.Runs())
}

func TestWatcher_RunErrorsKeepWatching(t *testing.T) {
	root := t.TempDir()
	runs := make(chan struct{}, 10)
	w, err := New(root, testDebounce, func(context.Context) ([]string, error) {
		runs <- struct{}{}
		return nil, errors.New("boom")
	}, nil)
	require.NoError(t, err)
	stop := startWatcher(t, w)
	defer stop()

	write(t, filepath.Join(root, "a.md"), "1")
	waitRun(t, runs)
	write(t, filepath.Join(root, "b.md"), "2")
	waitRun(t, runs)
}

func TestNew_Defaults(t *testing.T) {
	w, err := New(".", 0, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounce)
	assert.True(t, filepath.IsAbs(w.root))
}

// waitRun blocks until a run happened, failing the test after a timeout.
func waitRun(t *testing.T, runs <-chan struct{}) {
	t.Helper()
	select {
	case <-runs:
	case <-time.After(2 * time.Second):
		t.Fatal("no run triggered")
	}
}

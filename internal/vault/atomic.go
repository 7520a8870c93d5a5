// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package vault

import (
	"fmt"
	"os"
	"path/filepath"
)

// atomicWrite writes data to a temp file in the target's directory and
// renames it over the target, so readers never see a half-written document.
func atomicWrite(path string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	f, err := os.CreateTemp(filepath.Dir(path), ".go-reindex-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmp := f.Name()
	cleanup := func(err error) error {
		os.Remove(tmp)
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return cleanup(fmt.Errorf("writing temp file: %w", err))
	}
	if err := f.Close(); err != nil {
		return cleanup(fmt.Errorf("closing temp file: %w", err))
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return cleanup(fmt.Errorf("setting permissions: %w", err))
	}
	if err := os.Rename(tmp, path); err != nil {
		return cleanup(fmt.Errorf("renaming temp file: %w", err))
	}
	return nil
}

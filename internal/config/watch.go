// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is how long the watcher waits for writes to settle.
const WatchDebounce = 200 * time.Millisecond

// Watch reloads the config file at path whenever it changes and passes the
// result to fn. A file that fails to load is reported as the error argument
// and the previous configuration stays in effect on the caller's side.
//
// The containing directory is watched rather than the file, so editors that
// save by renaming a temp file are picked up too. Watch returns once the
// watcher is running; it stops when ctx is done.
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer watcher.Close()

		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					pending = time.After(WatchDebounce)
				}

			case <-pending:
				pending = nil
				fn(LoadFromPath(abs))

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fn(nil, err)
			}
		}
	}()

	return nil
}

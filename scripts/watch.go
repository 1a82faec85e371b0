// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package scripts

import (
	"context"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/dbflux/dbflux/dberr"
)

// Watch recursively watches the directory's root for filesystem changes
// and calls onChange after each one, with the tree already refreshed.
// Returns a stop function; the watch goroutine exits once ctx is done or
// stop is called.
func (d *Directory) Watch(ctx context.Context, onChange func()) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, dberr.Newf(dberr.IoError, "scripts: create watcher: %v", err)
	}

	if err := addRecursive(watcher, d.root); err != nil {
		watcher.Close()
		return nil, dberr.Newf(dberr.IoError, "scripts: watch %s: %v", d.root, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				// A newly created directory needs its own watch, or its
				// contents would scan but never fire further events.
				if event.Op&fsnotify.Create == fsnotify.Create {
					if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
						_ = watcher.Add(event.Name)
					}
				}
				d.Refresh()
				onChange()
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return cancel, nil
}

func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	if err := watcher.Add(dir); err != nil {
		return err
	}
	for _, e := range scanDirectory(dir) {
		if e.IsFolder {
			if err := addRecursive(watcher, e.Path); err != nil {
				return err
			}
		}
	}
	return nil
}

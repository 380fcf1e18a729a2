// CLASSIFICATION: COMMUNITY
// Filename: watch.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package watch follows changes to the served tree and keeps a live count of
// the files below the root.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

const recountDelay = 100 * time.Millisecond

// Watcher observes a directory tree. It never modifies it.
type Watcher struct {
	root    string
	log     logrus.FieldLogger
	fsw     *fsnotify.Watcher
	files   atomic.Int64
	changes atomic.Int64
}

// New starts watching every directory below root.
func New(root string, log logrus.FieldLogger) (*Watcher, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "watch", Path: root, Err: errors.New("not a directory")}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{root: root, log: log.WithField("root", root), fsw: fsw}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	w.recount()
	return w, nil
}

// Files returns the number of non-directory entries below the root.
func (w *Watcher) Files() int64 {
	return w.files.Load()
}

// Changes returns the number of filesystem events seen so far.
func (w *Watcher) Changes() int64 {
	return w.changes.Load()
}

// Close releases the underlying watcher. It is safe to call more than once
// and makes a pending or later Run return.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run processes events until ctx is done, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.log.WithField("op", ev.Op.String()).Debugf("Root changed: %s", ev.Name)
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						w.log.WithError(err).Warnf("Failed to watch %s", ev.Name)
					}
				}
			}
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				if pending == nil {
					pending = time.After(recountDelay)
				}
			}
			w.changes.Add(1)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("Watcher error")
		case <-pending:
			pending = nil
			w.recount()
		}
	}
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
}

func (w *Watcher) recount() {
	n := CountFiles(w.root)
	w.files.Store(n)
	w.log.Debugf("Root holds %d files", n)
}

// CountFiles returns the number of non-directory entries below root.
// Unreadable subtrees are skipped.
func CountFiles(root string) int64 {
	var n int64
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return nil
	})
	return n
}

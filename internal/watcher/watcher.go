// Package watcher observes a project tree and drives selective updates.
// Raw fsnotify events are coalesced by the debouncer so a burst of editor
// saves becomes one re-index.
package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher emits debounced file events for a root directory.
type Watcher struct {
	root      string
	fsw       *fsnotify.Watcher
	debouncer *Debouncer
	logger    *slog.Logger
}

// New creates a watcher over root with the given debounce window. All
// non-hidden subdirectories are registered recursively.
func New(root string, window time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:      root,
		fsw:       fsw,
		debouncer: NewDebouncer(window),
		logger:    slog.Default(),
	}

	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Events is the channel of coalesced batches, paths relative to the root.
func (w *Watcher) Events() <-chan []FileEvent {
	return w.debouncer.Events()
}

// Run pumps fsnotify events into the debouncer until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Close()
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", slog.String("error", err.Error()))
		}
	}
}

// handle translates one fsnotify event.
func (w *Watcher) handle(ev fsnotify.Event) {
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)
	if isHiddenPath(rel) {
		return
	}

	// New directories must be registered to keep the recursive watch alive.
	if ev.Op.Has(fsnotify.Create) {
		if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
			_ = w.addRecursive(ev.Name)
			return
		}
	}

	switch {
	case ev.Op.Has(fsnotify.Create):
		w.debouncer.Add(FileEvent{Path: rel, Operation: OpCreate})
	case ev.Op.Has(fsnotify.Write):
		w.debouncer.Add(FileEvent{Path: rel, Operation: OpModify})
	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		w.debouncer.Add(FileEvent{Path: rel, Operation: OpDelete})
	}
}

// addRecursive registers dir and every non-hidden subdirectory.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if p != dir && (skipDirs[name] || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}
		if addErr := w.fsw.Add(p); addErr != nil {
			w.logger.Warn("watch add failed", slog.String("path", p), slog.String("error", addErr.Error()))
		}
		return nil
	})
}

// skipDirs mirrors the scanner's skip list.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"__pycache__":  true,
}

// isHiddenPath reports whether any path segment is hidden.
func isHiddenPath(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// Close stops the watcher and the debouncer.
func (w *Watcher) Close() {
	_ = w.fsw.Close()
	w.debouncer.Stop()
}

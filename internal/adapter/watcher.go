package adapter

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

// WatchIgnore lists what a Watcher never reports.
type WatchIgnore struct {
	// DirNames are directory base names skipped anywhere under the root.
	DirNames []string
	// Paths are files or directories skipped by location, together with
	// everything below them. Relative paths resolve against the working
	// directory.
	Paths []m.Path
}

// Watcher reports filesystem changes under a project.
type Watcher interface {
	// Watch blocks until ctx is done, calling onChange once per burst of
	// events after debounce has elapsed without further events. onChange is
	// never called concurrently with itself.
	Watch(ctx context.Context, root m.Path, debounce time.Duration, onChange func(), ignore WatchIgnore) error
}

// FSNotifyWatcher is the fsnotify-backed Watcher.
type FSNotifyWatcher struct{}

// NewFSNotifyWatcher constructs an FSNotifyWatcher.
func NewFSNotifyWatcher() *FSNotifyWatcher {
	return &FSNotifyWatcher{}
}

// Watch subscribes to every directory under root that is not ignored.
func (w *FSNotifyWatcher) Watch(ctx context.Context, root m.Path, debounce time.Duration, onChange func(), ignore WatchIgnore) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch init: %w", err)
	}

	defer func() {
		_ = watcher.Close()
	}()

	rootPath := absPath(string(root))
	skip := newIgnoreSet(ignore)

	if err := addRecursive(watcher, rootPath, skip); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if skip.event(rootPath, ev.Name) {
				continue
			}

			if ev.Has(fsnotify.Create) {
				// New directories need their own subscription.
				_ = addRecursive(watcher, ev.Name, skip)
			}

			slog.Debug("Change detected", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.Warn("Watch error", "error", err)

		case <-timer.C:
			onChange()
		}
	}
}

func addRecursive(watcher *fsnotify.Watcher, root string, skip ignoreSet) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}

			return nil
		}

		if !d.IsDir() {
			return nil
		}

		if path != root && (skip.dirName(d.Name()) || skip.path(path)) {
			return filepath.SkipDir
		}

		return watcher.Add(path)
	})
}

type ignoreSet struct {
	names map[string]struct{}
	paths []string
}

func newIgnoreSet(ignore WatchIgnore) ignoreSet {
	set := ignoreSet{names: make(map[string]struct{}, len(ignore.DirNames))}

	for _, name := range ignore.DirNames {
		set.names[name] = struct{}{}
	}

	for _, path := range ignore.Paths {
		if strings.TrimSpace(string(path)) == "" {
			continue
		}

		set.paths = append(set.paths, absPath(string(path)))
	}

	return set
}

func (s ignoreSet) dirName(name string) bool {
	_, ok := s.names[name]
	return ok
}

// path reports whether path is an ignored location or lies below one.
func (s ignoreSet) path(path string) bool {
	abs := absPath(path)

	for _, ignored := range s.paths {
		if abs == ignored || strings.HasPrefix(abs, ignored+string(filepath.Separator)) {
			return true
		}
	}

	return false
}

// event reports whether a change at name under root is ignored: either the
// location itself is ignored or one of its directories is skipped by name.
func (s ignoreSet) event(root, name string) bool {
	if s.path(name) {
		return true
	}

	if s.dirName(filepath.Base(name)) {
		return true
	}

	rel, err := filepath.Rel(root, absPath(name))
	if err != nil {
		return false
	}

	for dir := filepath.Dir(rel); dir != "." && dir != string(filepath.Separator); dir = filepath.Dir(dir) {
		if s.dirName(filepath.Base(dir)) {
			return true
		}
	}

	return false
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}

	return abs
}

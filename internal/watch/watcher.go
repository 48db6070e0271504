// Package watch re-runs an export whenever the wiki on disk changes.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/wikiexport/internal/corpus"
	"git.home.luguber.info/inful/wikiexport/internal/foundation/errors"
	"git.home.luguber.info/inful/wikiexport/internal/logfields"
	"git.home.luguber.info/inful/wikiexport/internal/wiki"
)

// Func is called once per burst of changes. Calls never overlap.
type Func func(ctx context.Context) error

// Watcher monitors every non-dotted directory of a wiki tree plus its
// attachments directory.
type Watcher struct {
	root     string
	debounce time.Duration
	onChange Func
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
	ready    chan struct{}
}

// New creates a watcher for the tree at root. Nothing is watched until Run.
func New(root string, debounce time.Duration, onChange Func, logger *slog.Logger) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.ValidationError("change callback is required").Build()
	}
	if debounce <= 0 {
		return nil, errors.ValidationError("debounce must be > 0").Build()
	}
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve watch root").Fatal().Build()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Fatal().Build()
	}
	return &Watcher{
		root:     abs,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		watcher:  fw,
		ready:    make(chan struct{}),
	}, nil
}

// Ready is closed once the initial directory tree is being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is cancelled. Errors from the callback are logged and
// do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.addTree(w.root); err != nil {
		return err
	}
	w.logger.Info("Watching wiki for changes", logfields.Path(w.root))
	close(w.ready)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.handle(event) {
				continue
			}
			timer.Reset(w.debounce)
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		case <-fire:
			fire = nil
			w.logger.Info("Change detected, exporting")
			if err := w.onChange(ctx); err != nil {
				w.logger.Error("Export after change failed", logfields.Error(err))
			}
		}
	}
}

// handle reports whether event should trigger the callback. New directories
// are added to the watch set.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if event.Op&fsnotify.Create == fsnotify.Create && isDir(event.Name) {
		if !watchable(filepath.Base(event.Name)) {
			return false
		}
		if err := w.addTree(event.Name); err != nil {
			w.logger.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
		}
		return true
	}
	if event.Op == fsnotify.Chmod {
		return false
	}
	relevant := relevant(event.Name)
	if relevant {
		w.logger.Debug("Wiki change", logfields.File(event.Name), logfields.Event(event.Op.String()))
	}
	return relevant
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && !watchable(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch directory").
				WithContext("path", path).
				Fatal().
				Build()
		}
		return nil
	})
}

func watchable(dirName string) bool {
	return dirName == wiki.AttachmentsDir || !strings.HasPrefix(dirName, ".")
}

// relevant reports whether a change to path can alter the export: pages,
// order manifests and attachments.
func relevant(path string) bool {
	base := filepath.Base(path)
	if base == corpus.ManifestName || strings.EqualFold(filepath.Ext(base), ".md") {
		return true
	}
	return filepath.Base(filepath.Dir(path)) == wiki.AttachmentsDir
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

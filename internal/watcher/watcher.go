// Package watcher turns live save-directory activity into automatic
// snapshots. It watches the directory tree with fsnotify and fires a
// callback once the directory has been quiet for a debounce interval, so a
// burst of writes from the game saving produces a single snapshot instead
// of one per file.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tavisk/voysave/internal/errors"
)

// DefaultDebounce is how long the directory must stay quiet before the
// callback fires.
const DefaultDebounce = 5 * time.Second

// Watcher observes a save directory and invokes a callback after each
// settled burst of changes.
type Watcher struct {
	dir      string
	debounce time.Duration
	onSettle func()
	logger   *slog.Logger

	fs *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the quiet interval.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// New creates a Watcher on dir that calls onSettle after each burst of
// filesystem activity. The directory and its existing subdirectories are
// watched; subdirectories created later are added as they appear.
func New(dir string, onSettle func(), opts ...Option) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating filesystem watcher")
	}

	w := &Watcher{
		dir:      dir,
		debounce: DefaultDebounce,
		onSettle: onSettle,
		logger:   slog.Default(),
		fs:       fs,
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addTree(dir); err != nil {
		fs.Close()
		return nil, err
	}

	return w, nil
}

// addTree registers dir and every subdirectory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "walking %s", path)
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fs.Add(path); err != nil {
			return errors.Wrapf(err, "watching %s", path)
		}
		return nil
	})
}

// Run blocks, delivering debounced settle callbacks until ctx is cancelled
// or the underlying watcher fails. The callback runs on Run's goroutine, so
// a slow callback naturally pauses event handling rather than piling up.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	w.logger.Info("watching save directory", "dir", w.dir, "debounce", w.debounce)

	// The timer is armed on the first event of a burst and pushed back on
	// every subsequent one.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return errors.New("watcher event channel closed")
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			// New subdirectories need their own watch entry.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.fs.Add(event.Name); err != nil {
						w.logger.Warn("could not watch new directory", "dir", event.Name, "error", err)
					}
				}
			}

			w.logger.Debug("save activity", "op", event.Op.String(), "path", event.Name)
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case err, ok := <-w.fs.Errors:
			if !ok {
				return errors.New("watcher error channel closed")
			}
			w.logger.Error("watcher error", "error", err)

		case <-timer.C:
			pending = false
			w.logger.Info("save activity settled")
			w.onSettle()
		}
	}
}

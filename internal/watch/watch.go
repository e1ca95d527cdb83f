// Package watch recompiles descriptors when they change on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period used when Config.Debounce is zero.
const DefaultDebounce = 150 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Root is watched recursively. Hidden directories are skipped.
	Root string
	// Match selects the files that trigger a rebuild. nil matches all.
	Match func(path string) bool
	// Debounce is how long to wait for more changes before reporting.
	Debounce time.Duration
	Logger   zerolog.Logger
}

// Watcher batches file changes under a directory tree.
type Watcher struct {
	fsw      *fsnotify.Watcher
	match    func(string) bool
	debounce time.Duration
	log      zerolog.Logger
}

// New creates a Watcher and registers every directory under cfg.Root.
// Changes made after New returns are observed.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		match:    cfg.Match,
		debounce: cfg.Debounce,
		log:      cfg.Logger.With().Str("component", "watch").Logger(),
	}

	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}

	if w.match == nil {
		w.match = func(string) bool { return true }
	}

	if err := w.addTree(cfg.Root); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// Close releases the underlying watcher. Run returns once it is closed.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run delivers changed paths to fn until ctx is done. Paths are sorted and
// each batch is delivered after Debounce without further changes. fn runs
// on the Run goroutine.
func (w *Watcher) Run(ctx context.Context, fn func(paths []string)) error {
	pending := map[string]bool{}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			if !w.handle(event) {
				continue
			}

			pending[event.Name] = true

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}

			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}

			w.log.Error().Err(err).Msg("file watcher error")

		case <-fire:
			fire = nil

			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}

			sort.Strings(paths)
			clear(pending)

			w.log.Debug().Strs("paths", paths).Msg("changes settled")
			fn(paths)
		}
	}
}

// handle reports whether event should be delivered. New directories are
// added to the watch list.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		if err := w.addTree(event.Name); err != nil {
			w.log.Debug().Err(err).Str("path", event.Name).Msg("not a directory")
		}
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}

	return w.match(event.Name)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		if err := w.fsw.Add(path); err != nil {
			w.log.Warn().Err(err).Str("path", path).Msg("failed to watch directory")
			return nil
		}

		w.log.Debug().Str("path", path).Msg("watching directory")

		return nil
	})
}

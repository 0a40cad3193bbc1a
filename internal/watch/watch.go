// Package watch re-runs generation when the Go sources of watched packages
// change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a file must stay quiet before regeneration.
const DefaultDebounce = 300 * time.Millisecond

// Handler is invoked once per settled batch of changes.
type Handler func(ctx context.Context, changed []string) error

// Config holds configuration for a Watcher.
type Config struct {
	// Dirs are the package directories to watch.
	Dirs []string
	// Debounce is the quiet period before the handler runs.
	Debounce time.Duration
	// Ignore lists file base names whose changes are ignored, e.g. the generated output.
	Ignore []string
	// Logger receives watch events. Nil disables logging.
	Logger *zap.Logger
}

// Watcher watches package directories for source changes.
type Watcher struct {
	config  Config
	logger  *zap.Logger
	watcher *fsnotify.Watcher
	pending map[string]time.Time
}

// New creates a Watcher and registers its directories.
func New(cfg Config) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	for _, dir := range cfg.Dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}

		logger.Debug("watching directory", zap.String("dir", dir))
	}

	return &Watcher{
		config:  cfg,
		logger:  logger,
		watcher: fw,
		pending: make(map[string]time.Time),
	}, nil
}

// Run blocks until ctx is cancelled, calling h after each settled batch of
// changes. Handler errors are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context, h Handler) error {
	defer w.watcher.Close()

	tick := time.NewTicker(w.config.Debounce / 3)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if w.relevant(event) {
				w.logger.Debug("source changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
				w.pending[event.Name] = time.Now()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}

			w.logger.Warn("watch error", zap.Error(err))

		case now := <-tick.C:
			changed := w.settled(now)
			if len(changed) == 0 {
				continue
			}

			if err := h(ctx, changed); err != nil {
				w.logger.Error("regeneration failed", zap.Error(err))
			}
		}
	}
}

// settled removes and returns the pending files that have been quiet for the debounce period.
func (w *Watcher) settled(now time.Time) []string {
	var out []string

	for name, at := range w.pending {
		if now.Sub(at) >= w.config.Debounce {
			out = append(out, name)
			delete(w.pending, name)
		}
	}

	slices.Sort(out)

	return out
}

// relevant reports whether an event should trigger regeneration.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	base := filepath.Base(event.Name)
	if filepath.Ext(base) != ".go" || strings.HasSuffix(base, "_test.go") {
		return false
	}

	// Editor swap files and debug output.
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, ".unformatted.go") {
		return false
	}

	return !slices.Contains(w.config.Ignore, base)
}

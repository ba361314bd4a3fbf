package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"filesort/internal/logging"
)

// DefaultDebounce batches bursts of file events into one run.
const DefaultDebounce = 500 * time.Millisecond

// RunFunc performs one organize pass.
type RunFunc func(ctx context.Context) error

// Watcher re-runs a pass whenever new files show up in a directory.
type Watcher struct {
	dir      string
	debounce time.Duration
	run      RunFunc
	ignore   []string
	logger   *slog.Logger
}

// New returns a watcher over dir. Base names matching any ignore pattern
// (filepath.Match syntax) never trigger a run.
func New(dir string, debounce time.Duration, run RunFunc, logger *slog.Logger, ignore ...string) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		run:      run,
		ignore:   append([]string(nil), ignore...),
		logger:   logging.NewComponentLogger(logger, "watch"),
	}
}

// Run performs an initial pass and then one pass per debounced burst of
// events until ctx is cancelled. Passes never overlap. Pass errors are logged
// and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Info("watching source", logging.String("dir", w.dir), logging.Duration("debounce", w.debounce))

	w.pass(ctx)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.shouldTrigger(event) {
				continue
			}
			w.logger.Debug("file event", logging.String("name", event.Name), logging.String("op", event.Op.String()))
			if !pending {
				timer.Reset(w.debounce)
				pending = true
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.WarnWithContext(w.logger, "watch error", "watch_error", logging.Error(err))
		case <-timer.C:
			pending = false
			w.pass(ctx)
		}
	}
}

func (w *Watcher) pass(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := w.run(ctx); err != nil {
		logging.WarnWithContext(w.logger, "organize pass failed", "watch_pass_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "files stay in place until the next event"),
		)
	}
}

// shouldTrigger accepts files created or written in the watched directory.
// Removals and renames away are what a pass itself produces, so they are
// ignored, as are directories and ignored names.
func (w *Watcher) shouldTrigger(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return false
	}
	if w.ignored(filepath.Base(event.Name)) {
		return false
	}
	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		return false
	}
	return true
}

func (w *Watcher) ignored(name string) bool {
	for _, pattern := range w.ignore {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

package logtail

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/five82/dex/internal/debounce"
	"github.com/five82/dex/internal/logging"
)

// watchSettle coalesces bursts of writes into one notification.
const watchSettle = 100 * time.Millisecond

// Watch calls onChange whenever the file at path is created, written,
// truncated or removed, until ctx is cancelled. The parent directory is
// watched so the file may not exist yet. Bursts of events are coalesced.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func()) error {
	if logger == nil {
		logger = logging.Discard()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve log path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	notify := debounce.New(watchSettle, func(struct{}) { onChange() })
	defer notify.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				notify.Set(struct{}{})
			}
		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("log watcher error", slog.String("error", werr.Error()))
		}
	}
}

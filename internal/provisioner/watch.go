package provisioner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceDelay coalesces the burst of filesystem events editors emit on a
// single save.
const debounceDelay = 500 * time.Millisecond

// Watch applies the configuration file once, then re-applies it whenever it
// changes, until ctx is cancelled. Each run's outcome is passed to onApply.
func (s *Service) Watch(ctx context.Context, path string, onApply func(*Summary, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors that write-and-rename would otherwise
	// detach a watch on the file itself.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	onApply(s.ApplyFile(ctx, abs))

	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
			} else {
				debounce.Reset(debounceDelay)
			}
			fire = debounce.C
		case <-fire:
			fire = nil
			s.log.Info("configuration changed, re-applying", zap.String("path", abs))
			onApply(s.ApplyFile(ctx, abs))
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("watch error", zap.Error(watchErr))
		}
	}
}

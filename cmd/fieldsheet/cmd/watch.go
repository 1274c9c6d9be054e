package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const watchDebounce = 500 * time.Millisecond

// watchFile calls onChange after path is written or recreated, until ctx is
// cancelled. Bursts of events within debounce collapse into one call. The
// parent directory is watched so editors that replace the file are seen.
func watchFile(
	ctx context.Context,
	path string,
	debounce time.Duration,
	sugar *zap.SugaredLogger,
	onChange func() error,
) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("bad path %q: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", filepath.Dir(absPath), err)
	}

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if name, _ := filepath.Abs(event.Name); name != absPath {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			if err := onChange(); err != nil {
				sugar.Errorw("failed to apply file change", "file", path, "error", err)
				continue
			}
			sugar.Infow("applied file change", "file", path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			sugar.Warnw("watch error", "file", path, "error", err)
		}
	}
}

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events editors produce when saving.
const reloadDelay = 150 * time.Millisecond

// Watch reloads the config file at path whenever it changes and sends the
// result until ctx is cancelled. Files that fail to parse are reported through
// onError and skipped. The channel is closed when watching stops.
func Watch(ctx context.Context, path string, onError func(error)) (<-chan *UserConfig, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors often replace the file instead of writing it.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	if onError == nil {
		onError = func(error) {}
	}

	updates := make(chan *UserConfig)
	go func() {
		defer close(updates)
		defer watcher.Close()

		target := filepath.Clean(path)
		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				onError(err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != target {
					continue
				}
				if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) {
					continue
				}
				if pending == nil {
					pending = time.After(reloadDelay)
				}
			case <-pending:
				pending = nil
				cfg, err := ReadFrom(path)
				if err != nil {
					onError(err)
					continue
				}
				select {
				case updates <- cfg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return updates, nil
}

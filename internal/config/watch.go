package config

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"

	"follow/internal/utils"
)

// Watch emits the parsed config now and every time the file is written.
// Contents that fail to parse are logged and skipped.
func Watch(ctx context.Context, path string) (<-chan *File, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch file %s: %w", path, err)
	}

	out := make(chan *File)

	emit := func() bool {
		f, err := Load(path)
		if err != nil {
			utils.Warn("Ignoring config change: %v", err)
			return true
		}
		select {
		case out <- f:
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		defer close(out)
		defer watcher.Close()

		if _, err := os.Stat(path); err == nil && !emit() {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if !emit() {
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				utils.Warn("Config watcher error: %v", err)
			}
		}
	}()

	return out, nil
}

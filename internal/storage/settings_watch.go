package storage

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"focusloop/internal/ui/preferences"
)

// WatchSettings calls onChange with freshly loaded settings whenever the
// settings file at path is written, until ctx is cancelled. The parent
// directory is watched so editors that replace the file are picked up.
func WatchSettings(ctx context.Context, path string, onChange func(preferences.Settings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch settings: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch settings: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				settings, err := LoadSettings(path)
				if err != nil {
					log.Printf("reload settings: %v", err)
					continue
				}
				onChange(settings)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("watch settings: %v", err)
			}
		}
	}()
	return nil
}

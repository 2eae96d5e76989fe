package catalog

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the table at path whenever the file is written or replaced
// and hands the result to onReload. A table that fails to parse is reported
// through the error argument; the caller keeps its previous table. Watch
// blocks until ctx is done.
//
// The parent directory is watched rather than the file so editors that save
// through rename are still picked up.
func Watch(ctx context.Context, path string, onReload func(Table, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating catalog watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			log.Printf("catalog: %s changed (%s), reloading", target, ev.Op)
			t, err := Load(target)
			onReload(t, err)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("catalog: watcher error: %v", err)
		}
	}
}

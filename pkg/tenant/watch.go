package tenant

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch re-loads the blogs file whenever it changes on disk, until the
// context is canceled. The parent directory is watched rather than the
// file itself, so editors that replace the file atomically (rename and
// create) keep being observed. A reload failure keeps the last good
// snapshot and logs a warning.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	go s.watchLoop(ctx, watcher)
	return nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			// Only care about write and create events for the blogs file
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if err := s.Load(); err != nil {
				s.log.Warnf("Failed to reload blogs file: %v", err)
				continue
			}
			s.log.Infof("Reloaded blogs file: %d blogs", s.Len())

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.log.Warnf("Blogs file watcher error: %v", err)
		}
	}
}

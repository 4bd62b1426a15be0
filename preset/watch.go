package preset

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/benoitkugler/okgrad"
	"github.com/benoitkugler/okgrad/gradstate"
	"github.com/fsnotify/fsnotify"
)

// Watch calls fn with the content of the preset at path, once at start
// and then each time the file is written or replaced. A file which can't
// be loaded is reported through err, and watching goes on.
//
// The parent directory is watched, so that editors saving through a
// rename are supported. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, fn func(s gradstate.State, err error)) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	defer watcher.Close()
	if err = watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("preset: watching %s: %w", filepath.Dir(path), err)
	}

	fn(Load(path))
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			okgrad.Logger().Debug("preset changed", "path", path, "op", event.Op.String())
			fn(Load(path))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			okgrad.Logger().Warn("preset watcher error", "err", err)
		case <-ctx.Done():
			return nil
		}
	}
}

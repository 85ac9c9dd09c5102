package loader

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher invalidates a loader's memoized snapshot when an input file
// changes on disk. It watches the parent directories rather than the files
// themselves: editors and export scripts typically replace files via
// rename, which drops a watch placed on the old inode.
type Watcher struct {
	loader  *Loader
	watcher *fsnotify.Watcher
	targets map[string]bool
	log     *slog.Logger
}

// NewWatcher creates a watcher over the loader's input files.
func NewWatcher(l *Loader, log *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		loader:  l,
		watcher: fw,
		targets: map[string]bool{l.primaryPath: true},
		log:     log,
	}
	if l.annotationsPath != "" {
		w.targets[l.annotationsPath] = true
	}

	dirs := map[string]bool{}
	for path := range w.targets {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return w, nil
}

// Start processes events until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.targets[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.log.Info("input file changed, invalidating snapshot",
				"file", event.Name,
				"op", event.Op.String(),
			)
			w.loader.Invalidate()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", "error", err)
		}
	}
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

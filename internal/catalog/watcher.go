package catalog

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	applog "nutriplan/internal/log"
)

// Watcher reloads a directory of catalog files into a Source whenever one changes.
type Watcher struct {
	dir     string
	source  *Source
	watcher *fsnotify.Watcher
}

func NewWatcher(dir string, source *Source) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	return &Watcher{dir: dir, source: source, watcher: w}, nil
}

// Reload reads the directory and swaps the catalog. On failure the previous
// catalog stays in place.
func (w *Watcher) Reload(ctx context.Context) error {
	c, err := LoadDir(w.dir)
	if err != nil {
		applog.Error(ctx, "catalog reload failed, keeping previous catalog", "dir", w.dir, "error", err)
		return err
	}
	w.source.Set(c)
	applog.Info(ctx, "catalog reloaded", "dir", w.dir)
	return nil
}

// Run processes file events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(event.Name) != ".csv" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			applog.Debug(ctx, "catalog file changed", "file", event.Name, "op", event.Op.String())
			_ = w.Reload(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			applog.Error(ctx, "catalog watcher error", "error", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

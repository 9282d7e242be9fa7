package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/srt-combiner/internal/logger"
)

type implWatcher struct {
	opts    Options
	handler EventHandler
	logger  logger.Logger
	watcher *fsnotify.Watcher
	exts    map[string]bool
	ignore  map[string]bool
	dirs    map[string]bool
}

// Start blocks, running the handler once per settled burst of changes,
// until ctx is cancelled. Handler runs never overlap.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s", w.opts.Root)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(w.opts.Extensions, ", "))

	settle := time.NewTimer(w.opts.Debounce)
	settle.Stop()
	defer settle.Stop()
	pending := ""

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if w.isNewDir(event) {
				if err := w.addTree(event.Name); err != nil {
					w.logger.Warn(ctx, "Failed to watch new directory %s: %v", event.Name, err)
				}
				pending = event.Name
				settle.Reset(w.opts.Debounce)
				continue
			}

			if !w.isRelevant(event) {
				w.logger.Debug(ctx, "Ignoring event: %s", event)
				continue
			}

			w.logger.Debug(ctx, "Change detected: %s", event)
			pending = event.Name
			settle.Reset(w.opts.Debounce)

		case <-settle.C:
			if pending == "" {
				continue
			}
			path := pending
			pending = ""
			w.logger.Info(ctx, "Subtitles changed (%s), rebuilding...", filepath.Base(path))
			if err := w.handler(ctx, path); err != nil {
				w.logger.Error(ctx, "Rebuild failed: %v", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// isRelevant reports whether event touches a watched subtitle file, or
// removes a watched directory along with whatever subtitles it held.
func (w *implWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		name := filepath.Clean(event.Name)
		if w.dirs[name] {
			delete(w.dirs, name)
			return true
		}
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return w.isSubtitleFile(event.Name)
}

// isSubtitleFile checks if the file has a supported subtitle extension and
// is neither hidden nor ignored.
func (w *implWatcher) isSubtitleFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	if !w.exts[strings.ToLower(filepath.Ext(base))] {
		return false
	}
	if abs, err := filepath.Abs(path); err == nil && w.ignore[abs] {
		return false
	}
	return true
}

func (w *implWatcher) isNewDir(event fsnotify.Event) bool {
	if !w.opts.Recursive || !event.Has(fsnotify.Create) {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	info, err := os.Stat(event.Name)
	return err == nil && info.IsDir()
}

// addTree watches root, plus its non-hidden subdirectories when recursive.
func (w *implWatcher) addTree(root string) error {
	if !w.opts.Recursive {
		return w.watchDir(root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watchDir(path)
	})
}

func (w *implWatcher) watchDir(path string) error {
	if err := w.watcher.Add(path); err != nil {
		return err
	}
	w.dirs[filepath.Clean(path)] = true
	return nil
}

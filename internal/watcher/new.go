package watcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/srt-combiner/internal/logger"
)

// Options selects what is watched and which changes count.
type Options struct {
	Root       string
	Recursive  bool
	Extensions []string
	// Ignore lists files whose changes never trigger the handler, such as
	// the combined output when it lives inside Root.
	Ignore   []string
	Debounce time.Duration
}

// New creates a new Watcher instance watching opts.Root and, when
// recursive, every non-hidden subdirectory.
func New(opts Options, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}

	w := &implWatcher{
		opts:    opts,
		handler: handler,
		logger:  log,
		watcher: watcher,
		exts:    make(map[string]bool, len(opts.Extensions)),
		ignore:  make(map[string]bool, len(opts.Ignore)),
		dirs:    make(map[string]bool),
	}
	for _, ext := range opts.Extensions {
		w.exts[strings.ToLower(ext)] = true
	}
	for _, path := range opts.Ignore {
		if path == "" {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			w.ignore[abs] = true
		}
	}

	if err := w.addTree(opts.Root); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return w, nil
}

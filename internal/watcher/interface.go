package watcher

import "context"

// Watcher defines the interface for file system monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler runs after a burst of relevant changes settles. filePath is
// the last file that changed.
type EventHandler func(ctx context.Context, filePath string) error

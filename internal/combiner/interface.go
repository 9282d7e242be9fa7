package combiner

import "context"

// Combiner concatenates the subtitle files under a source directory into a
// single text file.
type Combiner interface {
	Combine(ctx context.Context) (*Result, error)
}

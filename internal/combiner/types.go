package combiner

import (
	"errors"
	"time"
)

var (
	ErrSourceNotFound = errors.New("source directory not found")
	ErrNoFiles        = errors.New("no subtitle files found")
)

// Status is the outcome for a single input file.
type Status string

const (
	StatusCombined    Status = "combined"
	StatusRawFallback Status = "raw-fallback"
	StatusFailed      Status = "failed"
)

// FileResult records what happened to one input file.
type FileResult struct {
	Name    string
	RelPath string
	Path    string
	Bytes   int64
	Cues    int
	Status  Status
	Err     error
}

// Result summarizes a combine run.
type Result struct {
	OutputPath string
	DocxPath   string
	Files      []FileResult
	Duration   time.Duration
}

// Combined counts files whose content reached the output.
func (r *Result) Combined() int {
	n := 0
	for _, f := range r.Files {
		if f.Status != StatusFailed {
			n++
		}
	}
	return n
}

// Failed counts files that could not be read.
func (r *Result) Failed() int {
	return len(r.Files) - r.Combined()
}

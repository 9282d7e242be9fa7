package combiner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type loadedFile struct {
	path string
	rel  string
	name string
	text string
	size int64
	err  error
}

// readFiles loads every path with at most maxConcurrent reads in flight.
// The returned slice keeps the order of paths. A failed read is recorded on
// its entry, not returned.
func (c *implCombiner) readFiles(ctx context.Context, paths []string) ([]loadedFile, error) {
	files := make([]loadedFile, len(paths))
	slots := make(chan struct{}, c.opts.MaxConcurrent)
	var wg sync.WaitGroup

	for i, path := range paths {
		rel, err := filepath.Rel(c.opts.SourceDir, path)
		if err != nil {
			rel = path
		}
		files[i] = loadedFile{path: path, rel: filepath.ToSlash(rel), name: filepath.Base(path)}

		select {
		case slots <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		}

		wg.Add(1)
		go func(f *loadedFile) {
			defer wg.Done()
			defer func() { <-slots }()

			f.text, f.size, f.err = readText(f.path)
		}(&files[i])
	}

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

// readText reads a whole file as UTF-8, honouring UTF-8 and UTF-16 byte
// order marks. The BOM itself is dropped.
func readText(path string) (string, int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	text, err := decodeText(data)
	if err != nil {
		return "", int64(len(data)), fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return text, int64(len(data)), nil
}

func decodeText(data []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

package combiner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/srt-combiner/internal/logger"
)

// Discover lists the subtitle files under opts.SourceDir in combine order.
// Hidden entries and the output file itself are never returned. Unreadable
// subdirectories are logged and skipped.
func Discover(ctx context.Context, opts Options, log logger.Logger) ([]string, error) {
	root := opts.SourceDir
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, root)
		}
		return nil, fmt.Errorf("stat source: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", root)
	}

	outputAbs := ""
	if opts.OutputPath != "" {
		outputAbs, _ = filepath.Abs(opts.OutputPath)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			log.Warn(ctx, "Skipping unreadable path %s: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if !opts.Recursive || isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if isHidden(d.Name()) || !hasExtension(d.Name(), opts.Extensions) {
			return nil
		}
		if outputAbs != "" {
			if abs, err := filepath.Abs(path); err == nil && abs == outputAbs {
				log.Debug(ctx, "Ignoring output file inside source: %s", path)
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sortPaths(root, files, opts.NaturalSort)
	return files, nil
}

// sortPaths orders files by their slash-separated path relative to root.
func sortPaths(root string, files []string, natural bool) {
	rel := make(map[string]string, len(files))
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		if err != nil {
			r = f
		}
		rel[f] = filepath.ToSlash(r)
	}

	sort.SliceStable(files, func(i, j int) bool {
		a, b := rel[files[i]], rel[files[j]]
		if natural {
			return naturalLess(a, b)
		}
		return a < b
	})
}

func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

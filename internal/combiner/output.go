package combiner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// writeAtomic streams the output through fill into a temp file next to
// dest, then renames it into place. dest is untouched if anything fails.
func (c *implCombiner) writeAtomic(ctx context.Context, dest string, fill func(w io.Writer) error) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".srtcombine-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			c.cleanupTempFile(ctx, tmpName)
		}
	}()

	var sink io.Writer = tmp
	var encoder io.WriteCloser
	if c.opts.WriteBOM {
		encoder = transform.NewWriter(tmp, unicode.UTF8BOM.NewEncoder())
		sink = encoder
	}
	buf := bufio.NewWriterSize(sink, 64*1024)

	if err := fill(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	if encoder != nil {
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("flush encoder: %w", err)
		}
	}
	if err := tmp.Sync(); err != nil {
		c.logger.Debug(ctx, "fsync %s: %v", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		c.logger.Debug(ctx, "chmod %s: %v", tmpName, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("move output into place: %w", err)
	}
	committed = true
	return nil
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (c *implCombiner) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		c.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		c.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}

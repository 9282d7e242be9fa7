package combiner

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/nguyentantai21042004/srt-combiner/internal/config"
	"github.com/nguyentantai21042004/srt-combiner/internal/subtitle"
)

var (
	reSrtTime  = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?[,.]\d{1,3}\s*--?>`)
	reSrtIndex = regexp.MustCompile(`^\d+$`)
)

// section is one input file rendered for the combined output.
type section struct {
	file   loadedFile
	body   string
	lines  []string
	cues   int
	status Status
}

// Combine orchestrates the discover, read, render and write steps.
func (c *implCombiner) Combine(ctx context.Context) (*Result, error) {
	startTime := time.Now()

	c.logger.Info(ctx, "========================================")
	c.logger.Info(ctx, "Combining subtitles from: %s", c.opts.SourceDir)
	c.logger.Info(ctx, "Output file: %s", c.opts.OutputPath)
	c.logger.Info(ctx, "========================================")

	// Step 1: Find input files
	paths, err := Discover(ctx, c.opts, c.logger)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		c.logger.Warn(ctx, "No subtitle files (%s) found in %s", strings.Join(c.opts.Extensions, ", "), c.opts.SourceDir)
		return nil, ErrNoFiles
	}
	c.logger.Info(ctx, "Found %d subtitle files. Starting the process...", len(paths))

	// Step 2: Read them, bounded by MaxConcurrent
	files, err := c.readFiles(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("read files: %w", err)
	}

	// Step 3: Render each file; read failures are warnings, not aborts
	result := &Result{OutputPath: c.opts.OutputPath}
	sections := make([]section, 0, len(files))
	for _, f := range files {
		fr := FileResult{Name: f.name, RelPath: f.rel, Path: f.path, Bytes: f.size}
		if f.err != nil {
			c.logger.Warn(ctx, "Could not read %s: %v", f.rel, f.err)
			fr.Status = StatusFailed
			fr.Err = f.err
			result.Files = append(result.Files, fr)
			continue
		}

		c.logger.Info(ctx, "Processing: %s", f.name)
		sec := c.render(ctx, f)
		fr.Cues = sec.cues
		fr.Status = sec.status
		result.Files = append(result.Files, fr)
		sections = append(sections, sec)
	}

	if len(sections) == 0 {
		return result, fmt.Errorf("all %d subtitle files failed to read", len(files))
	}

	// Step 4: Write the combined file
	err = c.writeAtomic(ctx, c.opts.OutputPath, func(w io.Writer) error {
		for _, sec := range sections {
			if err := writeSection(w, sec); err != nil {
				return fmt.Errorf("write %s: %w", sec.file.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("write output: %w", err)
	}

	// Step 5: Optional DOCX transcript
	if c.opts.DocxPath != "" {
		if err := writeTranscriptDocx(c.opts.DocxPath, titleFromOutput(c.opts.OutputPath), sections); err != nil {
			c.logger.Warn(ctx, "Failed to export DOCX transcript: %v", err)
		} else {
			result.DocxPath = c.opts.DocxPath
			c.logger.Info(ctx, "DOCX transcript: %s", c.opts.DocxPath)
		}
	}

	result.Duration = time.Since(startTime)
	c.logger.Info(ctx, "========================================")
	c.logger.Info(ctx, "Success! %d of %d files have been combined into:", result.Combined(), len(result.Files))
	c.logger.Info(ctx, "%s", c.opts.OutputPath)
	if failed := result.Failed(); failed > 0 {
		c.logger.Warn(ctx, "%d files could not be read", failed)
	}
	c.logger.Info(ctx, "Processing time: %s", result.Duration)
	c.logger.Info(ctx, "========================================")

	return result, nil
}

// render prepares the output body of one file. Transcript lines are computed
// whenever the body or the DOCX export needs them.
func (c *implCombiner) render(ctx context.Context, f loadedFile) section {
	sec := section{file: f, body: f.text, status: StatusCombined}

	needLines := c.opts.Mode == config.ModeTranscript || c.opts.DocxPath != ""
	if !needLines {
		return sec
	}

	format, ok := subtitle.FormatFromPath(f.name)
	if !ok {
		sec.lines = plainLines(f.text)
		return sec
	}

	cues, err := subtitle.ParseSource(f.name, f.text, format)
	if err != nil {
		c.logger.Warn(ctx, "Could not parse %s (%v), using raw text", f.rel, err)
		sec.lines = plainLines(f.text)
		if c.opts.Mode == config.ModeTranscript {
			sec.status = StatusRawFallback
		}
		return sec
	}

	sec.cues = len(cues)
	sec.lines = transcriptLines(cues, false, "")
	if c.opts.Mode == config.ModeTranscript {
		body := transcriptLines(cues, c.opts.Timestamps, c.opts.TimestampFormat)
		sec.body = strings.Join(body, "\n")
	}
	return sec
}

// transcriptLines flattens cues to one line each, dropping empty cues and
// consecutive repeats of the same text.
func transcriptLines(cues []subtitle.Cue, timestamps bool, format subtitle.Format) []string {
	lines := make([]string, 0, len(cues))
	prev := ""
	for _, cue := range cues {
		text := strings.Join(strings.Fields(cue.Text), " ")
		if text == "" || text == prev {
			continue
		}
		prev = text
		if timestamps {
			text = "[" + subtitle.FormatTimestamp(cue.Start, format) + "] " + text
		}
		lines = append(lines, text)
	}
	return lines
}

// plainLines keeps the dialogue-looking lines of text that did not parse:
// blank lines, sequence numbers and timing lines are dropped.
func plainLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || reSrtIndex.MatchString(trimmed) || reSrtTime.MatchString(trimmed) {
			continue
		}
		lines = append(lines, trimmed)
	}
	return lines
}

// writeSection emits the file marker, the body and a blank-line separator.
func writeSection(w io.Writer, sec section) error {
	if _, err := fmt.Fprintf(w, "--- START OF: %s ---\n\n", sec.file.name); err != nil {
		return err
	}
	if _, err := io.WriteString(w, sec.body); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n\n")
	return err
}

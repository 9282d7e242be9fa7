package combiner

import (
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/srt-combiner/internal/config"
	"github.com/nguyentantai21042004/srt-combiner/internal/logger"
	"github.com/nguyentantai21042004/srt-combiner/internal/subtitle"
)

// Options is the explicit configuration of one combine run.
type Options struct {
	SourceDir       string
	OutputPath      string
	Extensions      []string
	Recursive       bool
	Mode            string
	Timestamps      bool
	TimestampFormat subtitle.Format
	WriteBOM        bool
	NaturalSort     bool
	MaxConcurrent   int
	DocxPath        string
}

type implCombiner struct {
	opts   Options
	logger logger.Logger
}

// New creates a new Combiner instance
func New(opts Options, log logger.Logger) Combiner {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	if opts.Mode == "" {
		opts.Mode = config.ModeRaw
	}
	if opts.TimestampFormat == "" {
		opts.TimestampFormat = subtitle.FormatSRT
	}
	return &implCombiner{
		opts:   opts,
		logger: log,
	}
}

// OptionsFromConfig maps a validated Config onto combine Options.
func OptionsFromConfig(cfg *config.Config) Options {
	format, err := subtitle.ParseFormat(cfg.Combine.OutputFormat)
	if err != nil {
		format = subtitle.FormatSRT
	}

	output := cfg.Paths.Output
	if output == "" {
		output = DefaultOutputPath(cfg.Paths.Source, string(format))
	}

	opts := Options{
		SourceDir:       cfg.Paths.Source,
		OutputPath:      output,
		Extensions:      cfg.Combine.Extensions,
		Recursive:       cfg.Combine.Recursive(),
		Mode:            cfg.Combine.Mode,
		Timestamps:      cfg.Combine.Timestamps,
		TimestampFormat: format,
		WriteBOM:        cfg.Combine.BOM(),
		NaturalSort:     cfg.Combine.Natural(),
		MaxConcurrent:   cfg.Performance.MaxConcurrent,
	}
	if cfg.Export.Docx {
		opts.DocxPath = strings.TrimSuffix(output, filepath.Ext(output)) + ".docx"
	}
	return opts
}

// DefaultOutputPath places the combined file next to the source directory,
// named after it: /a/course -> /a/course.srt.
func DefaultOutputPath(sourceDir, ext string) string {
	abs, err := filepath.Abs(sourceDir)
	if err != nil {
		abs = filepath.Clean(sourceDir)
	}
	ext = strings.TrimPrefix(ext, ".")
	return filepath.Join(filepath.Dir(abs), filepath.Base(abs)+"."+ext)
}

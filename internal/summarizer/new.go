package summarizer

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/srt-combiner/internal/config"
	"github.com/nguyentantai21042004/srt-combiner/internal/logger"
)

// ErrNoAPIKeys is returned by New when no Gemini key is configured.
var ErrNoAPIKeys = errors.New("no Gemini API keys configured")

// Options configures the summarizer.
type Options struct {
	APIKeys       []string
	Model         string
	Language      string
	MaxInputChars int
	Docx          bool
}

// generateFunc sends one prompt with one API key.
type generateFunc func(ctx context.Context, apiKey, model, prompt string) (string, error)

type implSummarizer struct {
	opts       Options
	currentKey int
	logger     logger.Logger
	generate   generateFunc
}

// New creates a Summarizer that rotates through the supplied Gemini API keys.
func New(opts Options, log logger.Logger) (Summarizer, error) {
	if len(opts.APIKeys) == 0 {
		return nil, ErrNoAPIKeys
	}
	if opts.Model == "" {
		opts.Model = "gemini-2.5-flash"
	}
	if opts.Language == "" {
		opts.Language = "English"
	}
	return &implSummarizer{
		opts:     opts,
		logger:   log,
		generate: generateGemini,
	}, nil
}

// OptionsFromConfig maps the gemini and export sections onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		APIKeys:       cfg.Gemini.APIKeys,
		Model:         cfg.Gemini.Model,
		Language:      cfg.Gemini.Language,
		MaxInputChars: cfg.Gemini.MaxInputChars,
		Docx:          cfg.Export.Docx,
	}
}

package config

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/srt-combiner/internal/logger"
	"github.com/nguyentantai21042004/srt-combiner/internal/subtitle"
)

const (
	ModeRaw        = "raw"
	ModeTranscript = "transcript"
)

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Combine     CombineConfig     `yaml:"combine"`
	Watch       WatchConfig       `yaml:"watch"`
	Export      ExportConfig      `yaml:"export"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Gemini      GeminiConfig      `yaml:"gemini"`
}

type PathsConfig struct {
	Source string `yaml:"source"`
	Output string `yaml:"output"`
}

type CombineConfig struct {
	Extensions            []string `yaml:"extensions"`
	IncludeSubdirectories *bool    `yaml:"include_subdirectories"`
	OutputFormat          string   `yaml:"output_format"`
	Mode                  string   `yaml:"mode"`
	Timestamps            bool     `yaml:"timestamps"`
	WriteBOM              *bool    `yaml:"write_bom"`
	NaturalSort           *bool    `yaml:"natural_sort"`
}

type WatchConfig struct {
	Enabled    bool `yaml:"enabled"`
	DebounceMS int  `yaml:"debounce_ms"`
}

type ExportConfig struct {
	Docx bool `yaml:"docx"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type GeminiConfig struct {
	Enabled       bool     `yaml:"enabled"`
	Model         string   `yaml:"model"`
	APIKeys       []string `yaml:"api_keys"`
	Language      string   `yaml:"language"`
	MaxInputChars int      `yaml:"max_input_chars"`
}

// Recursive reports whether subdirectories are searched. Defaults to true.
func (c CombineConfig) Recursive() bool {
	return c.IncludeSubdirectories == nil || *c.IncludeSubdirectories
}

// BOM reports whether the output starts with a UTF-8 byte order mark.
// Defaults to true.
func (c CombineConfig) BOM() bool {
	return c.WriteBOM == nil || *c.WriteBOM
}

// Natural reports whether files are ordered by natural sort. Defaults to true.
func (c CombineConfig) Natural() bool {
	return c.NaturalSort == nil || *c.NaturalSort
}

// Default returns a configuration with every default applied and no source.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Validate checks required fields and fills in defaults.
func (c *Config) Validate() error {
	c.applyDefaults()

	if strings.TrimSpace(c.Paths.Source) == "" {
		return fmt.Errorf("paths.source is required")
	}
	if _, err := subtitle.ParseFormat(c.Combine.OutputFormat); err != nil {
		return fmt.Errorf("combine.output_format: %w", err)
	}
	switch c.Combine.Mode {
	case ModeRaw, ModeTranscript:
	default:
		return fmt.Errorf("combine.mode must be %q or %q, got %q", ModeRaw, ModeTranscript, c.Combine.Mode)
	}
	for _, ext := range c.Combine.Extensions {
		if ext == "." {
			return fmt.Errorf("combine.extensions contains an empty extension")
		}
	}
	if !logger.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	if c.Performance.MaxConcurrent < 0 {
		return fmt.Errorf("performance.max_concurrent must not be negative")
	}
	if c.Gemini.Enabled && len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.enabled requires gemini.api_keys or GEMINI_API_KEY")
	}

	return nil
}

func (c *Config) applyDefaults() {
	c.Paths.Source = strings.TrimSpace(c.Paths.Source)
	c.Paths.Output = strings.TrimSpace(c.Paths.Output)

	c.Combine.Extensions = normalizeExtensions(c.Combine.Extensions)
	if len(c.Combine.Extensions) == 0 {
		c.Combine.Extensions = []string{".srt", ".vtt"}
	}

	c.Combine.OutputFormat = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Combine.OutputFormat)), ".")
	if c.Combine.OutputFormat == "" {
		c.Combine.OutputFormat = "srt"
	}
	c.Combine.Mode = strings.ToLower(strings.TrimSpace(c.Combine.Mode))
	if c.Combine.Mode == "" {
		c.Combine.Mode = ModeRaw
	}

	if c.Watch.DebounceMS <= 0 {
		c.Watch.DebounceMS = 500
	}
	if c.Logging.Level == "" {
		c.Logging.Level = logger.LevelInfo
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 4
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.Language == "" {
		c.Gemini.Language = "English"
	}
	if c.Gemini.MaxInputChars <= 0 {
		c.Gemini.MaxInputChars = 800000
	}
}

// normalizeExtensions lowercases, adds the leading dot and drops duplicates.
func normalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	return out
}

package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/srt-combiner/internal/combiner"
	"github.com/nguyentantai21042004/srt-combiner/internal/config"
	"github.com/spf13/cobra"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommandCombines(t *testing.T) {
	t.Chdir(t.TempDir())
	src := filepath.Join(t.TempDir(), "course")
	writeFile(t, filepath.Join(src, "10. Outro.srt"), "1\n00:00:01,000 --> 00:00:02,000\nBye\n")
	writeFile(t, filepath.Join(src, "2. Intro.srt"), "1\n00:00:01,000 --> 00:00:02,000\nHello\n\n2\n00:00:02,000 --> 00:00:03,000\nthere\n")
	output := filepath.Join(t.TempDir(), "out.txt")

	stdout, err := executeCommand(t, src, "-o", output, "--no-bom", "--mode", "transcript")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	want := "--- START OF: 2. Intro.srt ---\n\nHello\nthere\n\n" +
		"--- START OF: 10. Outro.srt ---\n\nBye\n\n"
	if string(got) != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	for _, s := range []string{"2. Intro.srt", "10. Outro.srt", "combined", "2 of 2 files combined"} {
		if !strings.Contains(stdout, s) {
			t.Errorf("stdout missing %q:\n%s", s, stdout)
		}
	}
}

func TestRootCommandErrors(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"missing source", []string{filepath.Join(t.TempDir(), "missing")}, combiner.ErrSourceNotFound},
		{"empty source", []string{t.TempDir()}, combiner.ErrNoFiles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("Execute() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := executeCommand(t); err == nil {
		t.Error("Execute() without a source should fail validation")
	}
	if _, err := executeCommand(t, "-c", "missing.yaml", t.TempDir()); err == nil {
		t.Error("Execute() with a missing explicit config should fail")
	}
}

func TestResolveConfigFlagOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEYS", "")
	t.Setenv("GEMINI_API_KEY", "")
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "srtcombine.yaml")
	writeFile(t, cfgPath, `
paths:
  source: "from-file"
combine:
  mode: "transcript"
  timestamps: true
  extensions: [".vtt"]
logging:
  level: "debug"
`)

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "file values kept without flags",
			args: []string{"-c", cfgPath},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Paths.Source != "from-file" || cfg.Combine.Mode != config.ModeTranscript || !cfg.Combine.Timestamps {
					t.Errorf("config = %+v", cfg.Combine)
				}
				if cfg.Logging.Level != "debug" {
					t.Errorf("Level = %q, want debug", cfg.Logging.Level)
				}
				if !cfg.Combine.Recursive() || !cfg.Combine.BOM() {
					t.Error("unset flags must not override defaults")
				}
			},
		},
		{
			name: "flags override file",
			args: []string{"-c", cfgPath, "--mode", "raw", "--timestamps=false", "--recursive=false", "--no-bom",
				"--ext", "srt", "--ext", ".VTT", "--docx", "--log-level", "warn", "positional"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Paths.Source != "positional" {
					t.Errorf("Source = %q, want positional", cfg.Paths.Source)
				}
				if cfg.Combine.Mode != config.ModeRaw || cfg.Combine.Timestamps {
					t.Errorf("Combine = %+v, want raw without timestamps", cfg.Combine)
				}
				if cfg.Combine.Recursive() || cfg.Combine.BOM() {
					t.Error("--recursive=false and --no-bom should apply")
				}
				if strings.Join(cfg.Combine.Extensions, ",") != ".srt,.vtt" {
					t.Errorf("Extensions = %v, want [.srt .vtt]", cfg.Combine.Extensions)
				}
				if !cfg.Export.Docx || cfg.Logging.Level != "warn" {
					t.Errorf("Export = %+v, Level = %q", cfg.Export, cfg.Logging.Level)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &rootOptions{}
			cmd := &cobra.Command{}
			bindRootFlags(cmd, opts)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags() error = %v", err)
			}

			cfg, err := resolveConfig(cmd, opts, cmd.Flags().Args())
			if err != nil {
				t.Fatalf("resolveConfig() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestResolveConfigSummarizeNeedsKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEYS", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Chdir(t.TempDir())

	opts := &rootOptions{}
	cmd := &cobra.Command{}
	bindRootFlags(cmd, opts)
	if err := cmd.ParseFlags([]string{"--summarize", "src"}); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(cmd, opts, cmd.Flags().Args()); err == nil {
		t.Error("resolveConfig() should reject --summarize without API keys")
	}
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	vtt := filepath.Join(dir, "lesson.vtt")
	writeFile(t, vtt, "WEBVTT\n\n00:01.000 --> 00:02.500\nHello\n\nintro\n01:00:00.000 --> 01:00:01.000\nWorld\n")

	out, err := executeCommand(t, "parse", vtt, "--format", "srt")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	for _, s := range []string{"00:00:01,000", "00:00:02,500", "01:00:00,000", "Hello", "World", "2 cues"} {
		if !strings.Contains(out, s) {
			t.Errorf("parse output missing %q:\n%s", s, out)
		}
	}

	out, err = executeCommand(t, "parse", vtt)
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if !strings.Contains(out, "00:00:01.000") {
		t.Errorf("parse output should default to the input style:\n%s", out)
	}
}

func TestParseCommandErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.vtt")
	writeFile(t, bad, "WEBVTT\n\n99999999999999999999:00:00.000 --> 00:00:01.000\nx\n")
	txt := filepath.Join(dir, "notes.txt")
	writeFile(t, txt, "x")

	_, err := executeCommand(t, "parse", bad)
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("parse error = %v, want line 3 format error", err)
	}

	if _, err := executeCommand(t, "parse", txt); err == nil {
		t.Error("parse should reject unsupported extensions")
	}
	if _, err := executeCommand(t, "parse", bad, "--format", "ass"); err == nil {
		t.Error("parse should reject unknown --format")
	}
}

func TestRenderResultTable(t *testing.T) {
	result := &combiner.Result{
		OutputPath: "course.srt",
		Files: []combiner.FileResult{
			{RelPath: "a.srt", Bytes: 512, Cues: 3, Status: combiner.StatusCombined},
			{RelPath: "b.srt", Bytes: 2048, Status: combiner.StatusFailed, Err: errors.New("permission denied")},
		},
	}

	got := renderResultTable(result, false)
	for _, s := range []string{"a.srt", "512 B", "2.0 KiB", "failed: permission denied", "1 of 2 files combined into course.srt"} {
		if !strings.Contains(got, s) {
			t.Errorf("table missing %q:\n%s", s, got)
		}
	}
	if strings.Contains(got, "╭") {
		t.Error("plain style should not use rounded corners")
	}
	if !strings.Contains(renderResultTable(result, true), "╭") {
		t.Error("rounded style should use rounded corners")
	}
}

func TestShouldColorizeBuffer(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Error("buffers are never terminals")
	}
}

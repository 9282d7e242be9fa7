package combiner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/srt-combiner/internal/logger"
)

// writeTree creates files (relative path -> content) under a new temp dir.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestDiscover(t *testing.T) {
	root := writeTree(t, map[string]string{
		"10. Outro.srt":            "x",
		"2. Intro.SRT":             "x",
		"notes.txt":                "x",
		".hidden.srt":              "x",
		"Section 1/1. Basics.vtt":  "x",
		"Section 1/.cache/old.srt": "x",
		".git/ignored.srt":         "x",
		"combined.srt":             "x",
	})

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "recursive natural",
			opts: Options{
				SourceDir:   root,
				OutputPath:  filepath.Join(root, "combined.srt"),
				Extensions:  []string{".srt", ".vtt"},
				Recursive:   true,
				NaturalSort: true,
			},
			want: []string{"2. Intro.SRT", "10. Outro.srt", "Section 1/1. Basics.vtt"},
		},
		{
			name: "top level only",
			opts: Options{
				SourceDir:   root,
				OutputPath:  filepath.Join(root, "combined.srt"),
				Extensions:  []string{".srt", ".vtt"},
				NaturalSort: true,
			},
			want: []string{"2. Intro.SRT", "10. Outro.srt"},
		},
		{
			name: "lexical order",
			opts: Options{
				SourceDir:  root,
				OutputPath: filepath.Join(root, "combined.srt"),
				Extensions: []string{".srt"},
			},
			want: []string{"10. Outro.srt", "2. Intro.SRT"},
		},
		{
			name: "vtt only",
			opts: Options{
				SourceDir:  root,
				Extensions: []string{".vtt"},
				Recursive:  true,
			},
			want: []string{"Section 1/1. Basics.vtt"},
		},
		{
			name: "output outside source is not excluded",
			opts: Options{
				SourceDir:  root,
				OutputPath: filepath.Join(t.TempDir(), "combined.srt"),
				Extensions: []string{".srt"},
			},
			want: []string{"10. Outro.srt", "2. Intro.SRT", "combined.srt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Discover(context.Background(), tt.opts, logger.Discard())
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			rel := relPaths(t, root, got)
			if len(rel) != len(tt.want) {
				t.Fatalf("Discover() = %v, want %v", rel, tt.want)
			}
			for i := range tt.want {
				if rel[i] != tt.want[i] {
					t.Errorf("Discover()[%d] = %q, want %q", i, rel[i], tt.want[i])
				}
			}
		})
	}
}

func TestDiscoverMissingSource(t *testing.T) {
	opts := Options{SourceDir: filepath.Join(t.TempDir(), "nope"), Extensions: []string{".srt"}}

	_, err := Discover(context.Background(), opts, logger.Discard())
	if !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("Discover() error = %v, want ErrSourceNotFound", err)
	}
}

func TestDiscoverSourceIsFile(t *testing.T) {
	root := writeTree(t, map[string]string{"a.srt": "x"})
	opts := Options{SourceDir: filepath.Join(root, "a.srt"), Extensions: []string{".srt"}}

	if _, err := Discover(context.Background(), opts, logger.Discard()); err == nil {
		t.Error("Discover() should fail when the source is a file")
	}
}

func TestDefaultOutputPath(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Fibonacci Course")

	got := DefaultOutputPath(src, "srt")
	want := filepath.Join(dir, "Fibonacci Course.srt")
	if got != want {
		t.Errorf("DefaultOutputPath() = %q, want %q", got, want)
	}

	if got := DefaultOutputPath(src+string(filepath.Separator), ".vtt"); got != filepath.Join(dir, "Fibonacci Course.vtt") {
		t.Errorf("DefaultOutputPath() with trailing separator = %q", got)
	}
}

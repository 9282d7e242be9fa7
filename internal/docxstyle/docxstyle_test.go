package docxstyle

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestNewAndSave(t *testing.T) {
	doc, err := New("Fibonacci Course")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	Heading(doc, "1. Intro.srt", HeadingSize)
	Run(doc.AddParagraph(""), "Hello", false, BodySize).Italic(true)

	path := filepath.Join(t.TempDir(), "out.docx")
	if err := Save(doc, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("saved document is not a zip archive")
	}
}

func TestSaveMissingDir(t *testing.T) {
	doc, err := New("x")
	if err != nil {
		t.Fatal(err)
	}
	if err := Save(doc, filepath.Join(t.TempDir(), "missing", "out.docx")); err == nil {
		t.Error("Save() should fail when the directory does not exist")
	}
}

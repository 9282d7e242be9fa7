// Package docxstyle holds the look shared by every DOCX file srtcombine
// writes: one font, black text, bold headings.
package docxstyle

import (
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	FontName           = "Times New Roman"
	BodySize    uint64 = 13
	HeadingSize uint64 = 14
	TitleSize   uint64 = 16

	textColor = "000000"
)

// New creates a document that opens with a bold title line.
func New(title string) (*docx.RootDoc, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	Run(doc.AddParagraph(""), title, true, TitleSize)
	return doc, nil
}

// Run appends a styled run to p.
func Run(p *docx.Paragraph, text string, bold bool, size uint64) *docx.Run {
	run := p.AddText(text).Font(FontName).Size(size).Color(textColor)
	if bold {
		run.Bold(true)
	}
	return run
}

// Heading adds a bold paragraph at the given size.
func Heading(doc *docx.RootDoc, text string, size uint64) {
	Run(doc.AddParagraph(""), text, true, size)
}

// Save writes doc to path.
func Save(doc *docx.RootDoc, path string) error {
	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

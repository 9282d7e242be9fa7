package combiner

import (
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/srt-combiner/internal/docxstyle"
)

// writeTranscriptDocx renders each section's transcript lines under a
// heading carrying the file name.
func writeTranscriptDocx(outputPath, title string, sections []section) error {
	doc, err := docxstyle.New(title)
	if err != nil {
		return err
	}
	doc.AddParagraph("")

	for _, sec := range sections {
		docxstyle.Heading(doc, sec.file.name, docxstyle.HeadingSize)
		for _, line := range sec.lines {
			docxstyle.Run(doc.AddParagraph(""), line, false, docxstyle.BodySize)
		}
		doc.AddParagraph("")
	}

	return docxstyle.Save(doc, outputPath)
}

func titleFromOutput(outputPath string) string {
	return strings.TrimSuffix(filepath.Base(outputPath), filepath.Ext(outputPath))
}

package summarizer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gomutex/godocx/docx"
	"github.com/nguyentantai21042004/srt-combiner/internal/docxstyle"
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reSource  = regexp.MustCompile(`(?m)^--- START OF: (.+) ---\r?$`)
)

// summaryHeader describes where a summary came from.
type summaryHeader struct {
	Title   string
	Model   string
	Created time.Time
	Sources []string
}

func (h summaryHeader) byline() string {
	return fmt.Sprintf("Generated %s with %s from %d subtitle files",
		h.Created.Format("2006-01-02 15:04"), h.Model, len(h.Sources))
}

// markdown renders the summary file: header, model reply, source list.
func (h summaryHeader) markdown(reply string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n_%s_\n\n%s\n", h.Title, h.byline(), strings.TrimSpace(reply))
	if len(h.Sources) > 0 {
		b.WriteString("\n## Sources\n\n")
		for i, src := range h.Sources {
			fmt.Fprintf(&b, "%d. %s\n", i+1, src)
		}
	}
	return b.String()
}

// sourceFiles lists the file markers of a combined transcript in order.
func sourceFiles(transcript string) []string {
	var sources []string
	for _, m := range reSource.FindAllStringSubmatch(transcript, -1) {
		sources = append(sources, m[1])
	}
	return sources
}

// markdownToDocx writes the header block, then the reply rendered from its
// markdown headings, bullets and bold spans, then the source list.
func markdownToDocx(header summaryHeader, reply, outputPath string) error {
	doc, err := docxstyle.New(header.Title)
	if err != nil {
		return err
	}
	docxstyle.Run(doc.AddParagraph(""), header.byline(), false, docxstyle.BodySize).Italic(true)
	doc.AddParagraph("")

	for _, line := range strings.Split(reply, "\n") {
		addMarkdownLine(doc, strings.TrimSpace(line))
	}

	if len(header.Sources) > 0 {
		doc.AddParagraph("")
		docxstyle.Heading(doc, "Sources", docxstyle.HeadingSize)
		for i, src := range header.Sources {
			docxstyle.Run(doc.AddParagraph(""), fmt.Sprintf("%d. %s", i+1, src), false, docxstyle.BodySize)
		}
	}

	return docxstyle.Save(doc, outputPath)
}

func addMarkdownLine(doc *docx.RootDoc, line string) {
	if line == "" || line == "---" {
		return
	}
	if m := reHeading.FindStringSubmatch(line); m != nil {
		docxstyle.Heading(doc, stripInline(m[2]), headingSize(len(m[1])))
		return
	}
	if m := reBullet.FindStringSubmatch(line); m != nil {
		line = "\u2022 " + m[1]
	}
	addRichText(doc.AddParagraph(""), line)
}

func headingSize(level int) uint64 {
	switch {
	case level <= 1:
		return docxstyle.TitleSize
	case level == 2:
		return docxstyle.TitleSize - 1
	case level == 3:
		return docxstyle.HeadingSize
	default:
		return docxstyle.BodySize
	}
}

// addRichText emits **bold** spans as bold runs.
func addRichText(p *docx.Paragraph, text string) {
	last := 0
	for _, loc := range reBold.FindAllStringSubmatchIndex(text, -1) {
		if plain := stripInline(text[last:loc[0]]); plain != "" {
			docxstyle.Run(p, plain, false, docxstyle.BodySize)
		}
		docxstyle.Run(p, stripInline(text[loc[2]:loc[3]]), true, docxstyle.BodySize)
		last = loc[1]
	}
	if rest := stripInline(text[last:]); rest != "" {
		docxstyle.Run(p, rest, false, docxstyle.BodySize)
	}
}

func stripInline(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
}

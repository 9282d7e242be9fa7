package summarizer

import "context"

// Summarizer turns a combined transcript into an LLM-generated digest.
type Summarizer interface {
	Summarize(ctx context.Context, transcriptPath string) (*Summary, error)
}

// Summary lists the files written for one transcript.
type Summary struct {
	MarkdownPath string
	DocxPath     string
	Truncated    bool
}

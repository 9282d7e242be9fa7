package summarizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"google.golang.org/genai"
)

const summaryPrompt = `You are an expert at analysing training course content. Based on the combined subtitles below, write a DETAILED summary in %s.

Requirements:
- Start with a one-sentence overview of what the course covers
- List ALL main topics and steps in the order they appear
- Explain each step in detail, including important notes, tips and warnings
- Keep technical terms in their original form
- Use markdown: headings, bullet points, bold for key terms
- Finish with an "Important notes" section if anything needs emphasis

Subtitles:
---
%s
---`

// Summarize reads the transcript at transcriptPath, asks Gemini for a digest
// and writes it next to the transcript.
func (s *implSummarizer) Summarize(ctx context.Context, transcriptPath string) (*Summary, error) {
	content, err := os.ReadFile(transcriptPath)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	title := strings.TrimSuffix(filepath.Base(transcriptPath), filepath.Ext(transcriptPath))
	text := strings.TrimPrefix(string(content), "\ufeff")
	transcript, truncated := truncate(text, s.opts.MaxInputChars)
	if truncated {
		s.logger.Warn(ctx, "Transcript longer than %d characters, truncating before summarizing", s.opts.MaxInputChars)
	}

	s.logger.Info(ctx, "Summarizing %s with %s...", title, s.opts.Model)
	reply, err := s.callGemini(ctx, buildPrompt(s.opts.Language, transcript))
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", title, err)
	}

	summary := &Summary{
		MarkdownPath: summaryPath(transcriptPath, ".md"),
		Truncated:    truncated,
	}

	header := summaryHeader{
		Title:   title,
		Model:   s.opts.Model,
		Created: time.Now(),
		Sources: sourceFiles(text),
	}
	if err := os.WriteFile(summary.MarkdownPath, []byte(header.markdown(reply)), 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", summary.MarkdownPath, err)
	}
	s.logger.Info(ctx, "[DONE] Summary -> %s", summary.MarkdownPath)

	if s.opts.Docx {
		docxPath := summaryPath(transcriptPath, ".docx")
		if err := markdownToDocx(header, reply, docxPath); err != nil {
			s.logger.Warn(ctx, "Failed to export summary DOCX: %v", err)
		} else {
			summary.DocxPath = docxPath
			s.logger.Info(ctx, "[DONE] Summary DOCX -> %s", docxPath)
		}
	}

	return summary, nil
}

// callGemini sends the prompt and returns the reply text.
// Rotates API keys on 429 / quota errors.
func (s *implSummarizer) callGemini(ctx context.Context, prompt string) (string, error) {
	attempts := len(s.opts.APIKeys)
	var lastErr error

	for range attempts {
		text, err := s.generate(ctx, s.opts.APIKeys[s.currentKey], s.opts.Model, prompt)
		if err != nil {
			if isRateLimited(err) {
				s.logger.Warn(ctx, "Key %d rate limited, rotating...", s.currentKey+1)
				s.rotateKey()
				lastErr = err
				continue
			}
			return "", err
		}
		return text, nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (s *implSummarizer) rotateKey() {
	s.currentKey = (s.currentKey + 1) % len(s.opts.APIKeys)
}

// generateGemini performs one GenerateContent call with a fresh client.
func generateGemini(ctx context.Context, apiKey, model, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			text.WriteString(part.Text)
		}
		if text.Len() > 0 {
			return text.String(), nil
		}
	}

	return "", fmt.Errorf("empty response from Gemini")
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func buildPrompt(language, transcript string) string {
	return fmt.Sprintf(summaryPrompt, language, transcript)
}

// truncate cuts s to at most limit characters. A limit <= 0 disables it.
func truncate(s string, limit int) (string, bool) {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s, false
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i], true
		}
		n++
	}
	return s, false
}

// summaryPath maps "Course.srt" to "Course.summary<ext>".
func summaryPath(transcriptPath, ext string) string {
	base := strings.TrimSuffix(transcriptPath, filepath.Ext(transcriptPath))
	return base + ".summary" + ext
}

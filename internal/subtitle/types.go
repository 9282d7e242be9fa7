package subtitle

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Format identifies the subtitle dialect of an input text.
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

// ParseFormat accepts "srt" or "vtt" in any case, with or without a leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "srt":
		return FormatSRT, nil
	case "vtt":
		return FormatVTT, nil
	default:
		return "", fmt.Errorf("unsupported subtitle format %q", s)
	}
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, bool) {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return "", false
	}
	return f, true
}

// Cue is one subtitle entry.
type Cue struct {
	Start      time.Duration
	End        time.Duration
	Text       string
	SourceFile string
}

// Duration returns End - Start. It is negative for malformed cues.
func (c Cue) Duration() time.Duration {
	return c.End - c.Start
}

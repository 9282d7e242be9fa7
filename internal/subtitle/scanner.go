package subtitle

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var (
	reSRTRange = regexp.MustCompile(`^\s*(\d{1,2}:\d{2}:\d{2}[,.]\d{3})\s*--?>\s*(\d{1,2}:\d{2}:\d{2}[,.]\d{3})(?:\s.*)?$`)
	reVTTRange = regexp.MustCompile(`^\s*((?:\d+:)?\d{2}:\d{2}[,.]\d{3})\s*--?>\s*((?:\d+:)?\d{2}:\d{2}[,.]\d{3})(?:\s.*)?$`)
	reSequence = regexp.MustCompile(`^\d+$`)
)

// vttBlockKeywords open blocks that carry no cues.
var vttBlockKeywords = []string{"NOTE", "STYLE", "REGION"}

// Scanner walks subtitle text once, yielding cues in input order.
// Lines that are not part of a cue are skipped; only an unparseable
// timestamp stops the scan.
type Scanner struct {
	lines  []string
	pos    int
	format Format
	source string
	cue    Cue
	err    error
}

// NewScanner prepares a scan of text in the given format. source is copied
// into every cue's SourceFile.
func NewScanner(text string, format Format, source string) *Scanner {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	s := &Scanner{
		lines:  strings.Split(text, "\n"),
		format: format,
		source: source,
	}
	if format == FormatVTT {
		s.skipVTTHeader()
	}
	return s
}

// Scan advances to the next cue. It returns false at the end of input or
// after an error; check Err to tell them apart.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.pos < len(s.lines) {
		line := s.lines[s.pos]
		if isBlank(line) {
			s.pos++
			continue
		}

		switch s.format {
		case FormatVTT:
			if !s.isRange(line) {
				switch {
				case s.pos+1 < len(s.lines) && s.isRange(s.lines[s.pos+1]):
					// cue identifier
					s.pos++
				case s.isVTTBlock(line):
					s.skipBlock()
					continue
				default:
					s.pos++
					continue
				}
			}
		default:
			if reSequence.MatchString(strings.TrimSpace(line)) {
				s.pos++
				continue
			}
			if !s.isRange(line) {
				s.pos++
				continue
			}
		}

		return s.readCue()
	}
	return false
}

// Cue returns the cue produced by the last successful Scan.
func (s *Scanner) Cue() Cue {
	return s.cue
}

// Err returns the first error encountered, or nil at a clean end of input.
func (s *Scanner) Err() error {
	return s.err
}

// readCue parses the range line at pos and collects its text body.
func (s *Scanner) readCue() bool {
	lineNo := s.pos + 1
	m := s.rangePattern().FindStringSubmatch(s.lines[s.pos])
	start, err := ParseTimestamp(m[1])
	if err != nil {
		s.err = withLine(err, lineNo)
		return false
	}
	end, err := ParseTimestamp(m[2])
	if err != nil {
		s.err = withLine(err, lineNo)
		return false
	}
	s.pos++

	var body []string
	for s.pos < len(s.lines) && !isBlank(s.lines[s.pos]) {
		body = append(body, s.lines[s.pos])
		s.pos++
	}

	s.cue = Cue{
		Start:      start,
		End:        end,
		Text:       strings.TrimRightFunc(strings.Join(body, "\n"), unicode.IsSpace),
		SourceFile: s.source,
	}
	return true
}

func (s *Scanner) rangePattern() *regexp.Regexp {
	if s.format == FormatVTT {
		return reVTTRange
	}
	return reSRTRange
}

func (s *Scanner) isRange(line string) bool {
	return s.rangePattern().MatchString(line)
}

// skipVTTHeader drops the WEBVTT line and its metadata block.
func (s *Scanner) skipVTTHeader() {
	i := 0
	for i < len(s.lines) && isBlank(s.lines[i]) {
		i++
	}
	if i == len(s.lines) {
		return
	}
	if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(s.lines[i])), "WEBVTT") {
		return
	}
	s.pos = i
	s.skipBlock()
}

func (s *Scanner) isVTTBlock(line string) bool {
	line = strings.TrimSpace(line)
	for _, kw := range vttBlockKeywords {
		if line == kw || strings.HasPrefix(line, kw+" ") || strings.HasPrefix(line, kw+"\t") {
			return true
		}
	}
	return false
}

func (s *Scanner) skipBlock() {
	for s.pos < len(s.lines) && !isBlank(s.lines[s.pos]) {
		s.pos++
	}
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func withLine(err error, line int) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		fe.Line = line
	}
	return err
}

// Parse returns every cue in text. The returned slice is never shared with
// other calls.
func Parse(text string, format Format) ([]Cue, error) {
	return parse(NewScanner(text, format, ""))
}

// ParseSource is Parse with SourceFile set on every cue.
func ParseSource(source, text string, format Format) ([]Cue, error) {
	return parse(NewScanner(text, format, source))
}

func parse(s *Scanner) ([]Cue, error) {
	cues := []Cue{}
	for s.Scan() {
		cues = append(cues, s.Cue())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return cues, nil
}

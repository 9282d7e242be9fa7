// Package subtitle parses SRT and WebVTT text into timed cues and formats
// timestamps back to either convention.
//
// Parsing is lenient: sequence numbers, cue identifiers, header blocks and
// stray lines are skipped. Only a timestamp that matches the range pattern
// but cannot be converted aborts a parse, with a *FormatError.
//
// Everything here is a pure function of its input. Callers read files
// themselves and pass the text in.
package subtitle

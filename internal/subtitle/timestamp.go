package subtitle

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var componentUnits = [4]time.Duration{time.Hour, time.Minute, time.Second, time.Millisecond}

var errOutOfRange = errors.New("timestamp out of range")

var (
	reHMS = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})\.(\d{3})$`)
	reMS  = regexp.MustCompile(`^(\d{1,2}):(\d{2})\.(\d{3})$`)
)

// ParseTimestamp converts an SRT or VTT timestamp to a duration.
// Comma and period are both accepted as the decimal separator.
func ParseTimestamp(value string) (time.Duration, error) {
	s := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	if s == "" {
		return 0, &FormatError{Value: value}
	}

	if m := reHMS.FindStringSubmatch(s); m != nil {
		return composeTimestamp(value, m[1], m[2], m[3], m[4])
	}
	if m := reMS.FindStringSubmatch(s); m != nil {
		return composeTimestamp(value, "0", m[1], m[2], m[3])
	}

	parts := strings.Split(s, ":")
	var hours, minutes, rest string
	switch len(parts) {
	case 3:
		hours, minutes, rest = parts[0], parts[1], parts[2]
	case 2:
		hours, minutes, rest = "0", parts[0], parts[1]
	default:
		return 0, &FormatError{Value: value}
	}

	seconds, millis, _ := strings.Cut(rest, ".")
	switch {
	case len(millis) < 3:
		millis += strings.Repeat("0", 3-len(millis))
	case len(millis) > 3:
		millis = millis[:3]
	}
	return composeTimestamp(value, hours, minutes, seconds, millis)
}

// composeTimestamp sums the components, failing when the total would not
// fit in a time.Duration.
func composeTimestamp(value, hours, minutes, seconds, millis string) (time.Duration, error) {
	var total time.Duration
	for i, part := range []string{hours, minutes, seconds, millis} {
		n, err := parseDigits(part)
		if err != nil {
			return 0, &FormatError{Value: value, Err: err}
		}
		unit := componentUnits[i]
		if time.Duration(n) > (math.MaxInt64-total)/unit {
			return 0, &FormatError{Value: value, Err: errOutOfRange}
		}
		total += time.Duration(n) * unit
	}
	return total, nil
}

// parseDigits rejects signs and whitespace that strconv.Atoi would accept.
func parseDigits(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty component")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric component %q", s)
		}
	}
	return strconv.Atoi(s)
}

// FormatTimestamp renders d as HH:MM:SS,mmm for SRT or HH:MM:SS.mmm for VTT.
// Sub-millisecond precision is truncated; negative values clamp to zero.
func FormatTimestamp(d time.Duration, format Format) string {
	if d < 0 {
		d = 0
	}
	total := d.Milliseconds()
	ms := total % 1000
	total /= 1000
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	sep := "."
	if format == FormatSRT {
		sep = ","
	}
	return fmt.Sprintf("%02d:%02d:%02d%s%03d", h, m, s, sep, ms)
}

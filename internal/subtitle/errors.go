package subtitle

import (
	"errors"
	"fmt"
)

// ErrInvalidTimestamp is wrapped by every FormatError.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// FormatError reports a timestamp that could not be interpreted under any
// accepted shape. Line is 1-based, or 0 when the value was parsed on its own.
type FormatError struct {
	Value string
	Line  int
	Err   error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("invalid timestamp %q", e.Value)
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Err != nil && !errors.Is(e.Err, ErrInvalidTimestamp) {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidTimestamp}
	}
	return []error{ErrInvalidTimestamp, e.Err}
}

package munsell

import "fmt"

// FormatError reports a notation string that cannot be parsed, or a
// notation that cannot take part in an operation because of its shape.
type FormatError struct {
	Input  string // The offending text
	Reason string // What is wrong with it
}

func (e *FormatError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("invalid munsell notation %q: %s", e.Input, e.Reason)
}

func formatErr(input, reason string, args ...interface{}) *FormatError {
	return &FormatError{Input: input, Reason: fmt.Sprintf(reason, args...)}
}

package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrMalformed     = errors.New("malformed stream")
	ErrNegativeCount = errors.New("negative count or dimension")
)

// ParseError provides detailed information about decoding failures.
type ParseError struct {
	Section string // Part of the stream being read (e.g., "header", "filter 2")
	Token   string // Offending token, empty at end of stream
	Err     error  // Underlying cause
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s: token %q: %v", e.Section, e.Token, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Section, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error { return e.Err }

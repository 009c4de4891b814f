package tensor

import "errors"

// Common errors.
var (
	ErrFilterTooLarge = errors.New("filter exceeds padded input")
	ErrShapeMismatch  = errors.New("shape mismatch")
)

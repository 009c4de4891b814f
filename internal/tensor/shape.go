package tensor

import "fmt"

// Shape represents the dimensions of a grid or volume.
type Shape []int

// NumElements returns the total number of elements described by the shape.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ValidOutput returns the shape of a valid-mode correlation of a field with
// shape s against a kernel with shape k.
//
// Both shapes must be 2D. The boolean is false when the kernel exceeds the
// field along either axis.
func (s Shape) ValidOutput(k Shape) (Shape, bool) {
	if len(s) != 2 || len(k) != 2 {
		return nil, false
	}
	rows := s[0] - k[0] + 1
	cols := s[1] - k[1] + 1
	if rows <= 0 || cols <= 0 {
		return nil, false
	}
	return Shape{rows, cols}, true
}

package tensor

import "fmt"

// Channels is the fixed channel count of every filter and input volume.
const Channels = 3

// Volume is a stack of Channels equally shaped grids.
type Volume [Channels]Grid

// NewVolume creates a zero-filled volume with rows x cols per channel.
func NewVolume(rows, cols int) Volume {
	var v Volume
	for c := range v {
		v[c] = NewGrid(rows, cols)
	}
	return v
}

// Shape returns the per-channel shape {rows, cols}.
func (v Volume) Shape() Shape { return v[0].Shape() }

// Validate checks that every channel has the same shape.
func (v Volume) Validate() error {
	want := v[0].Shape()
	for c := 1; c < Channels; c++ {
		if got := v[c].Shape(); !got.Equal(want) {
			return fmt.Errorf("%w: channel %d is %v, channel 0 is %v", ErrShapeMismatch, c, got, want)
		}
	}
	return nil
}

// Pad zero-pads every channel by n cells on each side.
func (v Volume) Pad(n int) Volume {
	var p Volume
	for c := range v {
		p[c] = v[c].Pad(n)
	}
	return p
}

// Unpad strips n border cells from every channel.
func (v Volume) Unpad(n int) Volume {
	var u Volume
	for c := range v {
		u[c] = v[c].Unpad(n)
	}
	return u
}

// Equal reports whether all channels are equal.
func (v Volume) Equal(other Volume) bool {
	for c := range v {
		if !v[c].Equal(other[c]) {
			return false
		}
	}
	return true
}

// Fill returns a volume of the given per-channel shape with every cell set to value.
func Fill(rows, cols, value int) Volume {
	v := NewVolume(rows, cols)
	for c := range v {
		data := v[c].Data()
		for i := range data {
			data[i] = value
		}
	}
	return v
}

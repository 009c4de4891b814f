// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/convbench/internal/tensor"
)

// Type aliases for public API

// Shape represents the dimensions of a grid or volume.
type Shape = tensor.Shape

// Grid is a dense 2D integer field stored in row-major order.
type Grid = tensor.Grid

// Volume is a stack of Channels equally shaped grids.
type Volume = tensor.Volume

// Problem is N filters applied to one zero-padded input.
type Problem = tensor.Problem

// Constants.
const (
	Channels = tensor.Channels
	Padding  = tensor.Padding
)

// Errors returned while building a Problem.
var (
	ErrFilterTooLarge = tensor.ErrFilterTooLarge
	ErrShapeMismatch  = tensor.ErrShapeMismatch
)

// NewGrid creates a zero-filled grid.
func NewGrid(rows, cols int) Grid {
	return tensor.NewGrid(rows, cols)
}

// GridFromRows builds a grid from equally sized rows.
func GridFromRows(rows [][]int) (Grid, error) {
	return tensor.GridFromRows(rows)
}

// NewVolume creates a zero-filled volume.
func NewVolume(rows, cols int) Volume {
	return tensor.NewVolume(rows, cols)
}

// Fill creates a volume with every cell set to value.
func Fill(rows, cols, value int) Volume {
	return tensor.Fill(rows, cols, value)
}

// NewProblem validates filters against an unpadded input and pads the input.
func NewProblem(filterShape Shape, filters []Volume, input Volume) (*Problem, error) {
	return tensor.NewProblem(filterShape, filters, input)
}

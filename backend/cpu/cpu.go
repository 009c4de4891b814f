// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/convbench/internal/backend/cpu"
	"github.com/born-ml/convbench/tensor"
)

// Correlate computes the valid-mode cross-correlation of field f with kernel g.
//
// Panics if g exceeds f along either axis.
func Correlate(f, g tensor.Grid) tensor.Grid {
	return internalcpu.Correlate(f, g)
}

// Conv2D correlates each input channel with the matching filter channel and
// sums the three maps.
//
// Example:
//
//	out := cpu.Conv2D(tensor.Fill(4, 4, 1), tensor.Fill(3, 3, 1))
func Conv2D(input, filter tensor.Volume) tensor.Grid {
	return internalcpu.Conv2D(input, filter)
}

// ReLU returns a new grid with every negative cell clamped to zero.
func ReLU(g tensor.Grid) tensor.Grid {
	return internalcpu.ReLU(g)
}

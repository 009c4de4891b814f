// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go integer convolution kernel.
//
// # Overview
//
// This package implements:
//   - Valid-mode 2D cross-correlation (no padding, no kernel flip)
//   - Three-channel convolution with per-channel maps summed
//   - ReLU rectification
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/convbench/backend/cpu"
//	    "github.com/born-ml/convbench/tensor"
//	)
//
//	func main() {
//	    input := tensor.Fill(4, 4, 1)
//	    filter := tensor.Fill(3, 3, 1)
//	    out := cpu.ReLU(cpu.Conv2D(input, filter)) // 2x2 grid of 27s
//	}
package cpu

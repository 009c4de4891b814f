// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the integer grids and volumes convbench works on.
//
// # Overview
//
// Every filter and every input is a Volume of three channels. A Problem
// pairs N equally shaped filters with one input that is zero-padded by a
// single cell on every side when the problem is built.
//
// # Basic Usage
//
//	import "github.com/born-ml/convbench/tensor"
//
//	func main() {
//	    filters := []tensor.Volume{tensor.Fill(3, 3, 1)}
//	    p, err := tensor.NewProblem(tensor.Shape{3, 3}, filters, tensor.Fill(8, 8, 2))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(p.ResultShape()) // [8 8]
//	}
package tensor

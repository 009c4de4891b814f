// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu_test

import (
	"testing"

	"github.com/born-ml/convbench/backend/cpu"
	"github.com/born-ml/convbench/tensor"
)

func TestConv2DReLU(t *testing.T) {
	out := cpu.ReLU(cpu.Conv2D(tensor.Fill(4, 4, 1), tensor.Fill(3, 3, 1)))

	if !out.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("shape = %v, want [2 2]", out.Shape())
	}
	for _, v := range out.Data() {
		if v != 27 {
			t.Errorf("value = %d, want 27", v)
		}
	}
}

func TestReLUNegative(t *testing.T) {
	out := cpu.ReLU(cpu.Conv2D(tensor.Fill(2, 2, 1), tensor.Fill(1, 1, -1)))

	for _, v := range out.Data() {
		if v != 0 {
			t.Errorf("value = %d, want 0", v)
		}
	}
}

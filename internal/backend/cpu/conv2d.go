package cpu

import (
	"fmt"

	"github.com/born-ml/convbench/internal/tensor"
)

// Correlate computes the valid-mode cross-correlation of a single-channel
// field f with a single-channel kernel g.
//
//	r[sx][sy] = sum_{x<gr} sum_{y<gc} f[sx+x][sy+y] * g[x][y]
//
// Output shape: [fr-gr+1, fc-gc+1]. No padding is applied and the kernel is
// not flipped. The loop order is fixed so results are reproducible.
//
// Panics if g exceeds f along either axis.
func Correlate(f, g tensor.Grid) tensor.Grid {
	outShape, ok := f.Shape().ValidOutput(g.Shape())
	if !ok {
		panic(fmt.Sprintf("conv2d: kernel %v exceeds field %v", g.Shape(), f.Shape()))
	}

	out := tensor.NewGrid(outShape[0], outShape[1])
	correlateInto(out, f, g)
	return out
}

// correlateInto accumulates the correlation of f and g into out.
// out must already have the valid-mode output shape.
func correlateInto(out, f, g tensor.Grid) {
	fData := f.Data()
	gData := g.Data()
	oData := out.Data()
	FC := f.Cols()
	GR, GC := g.Rows(), g.Cols()
	OR, OC := out.Rows(), out.Cols()

	for sx := 0; sx < OR; sx++ {
		for sy := 0; sy < OC; sy++ {
			sum := 0
			for x := 0; x < GR; x++ {
				fRow := fData[(sx+x)*FC+sy:]
				gRow := gData[x*GC : (x+1)*GC]
				for y, w := range gRow {
					sum += fRow[y] * w
				}
			}
			oData[sx*OC+sy] += sum
		}
	}
}

// Conv2D applies one multi-channel filter to a multi-channel input.
//
// Each input channel is correlated with the matching filter channel and the
// per-channel maps are summed elementwise, producing one 2D map.
//
// Input shape: [Channels, H, W] (already padded by the caller)
// Filter shape: [Channels, K_h, K_w]
// Output shape: [H-K_h+1, W-K_w+1]
func Conv2D(input, filter tensor.Volume) tensor.Grid {
	inShape := input.Shape()
	kShape := filter.Shape()

	if err := input.Validate(); err != nil {
		panic(fmt.Sprintf("conv2d: input: %v", err))
	}
	if err := filter.Validate(); err != nil {
		panic(fmt.Sprintf("conv2d: filter: %v", err))
	}

	outShape, ok := inShape.ValidOutput(kShape)
	if !ok {
		panic(fmt.Sprintf("conv2d: filter %v exceeds input %v", kShape, inShape))
	}

	out := tensor.NewGrid(outShape[0], outShape[1])
	for c := 0; c < tensor.Channels; c++ {
		correlateInto(out, input[c], filter[c])
	}
	return out
}

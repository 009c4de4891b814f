package cpu

import "github.com/born-ml/convbench/internal/tensor"

// ReLU returns a new grid with out[i][j] = max(0, in[i][j]).
// The input grid is not modified.
func ReLU(g tensor.Grid) tensor.Grid {
	out := tensor.NewGrid(g.Rows(), g.Cols())
	src := g.Data()
	dst := out.Data()
	for i, v := range src {
		dst[i] = max(0, v)
	}
	return out
}

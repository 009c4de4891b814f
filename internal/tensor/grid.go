package tensor

import "fmt"

// Grid is a dense 2D integer field stored in row-major order.
//
// The zero value is an empty 0x0 grid.
type Grid struct {
	rows int
	cols int
	data []int
}

// NewGrid creates a zero-filled grid with the given dimensions.
func NewGrid(rows, cols int) Grid {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("tensor: negative grid dimensions %dx%d", rows, cols))
	}
	return Grid{rows: rows, cols: cols, data: make([]int, rows*cols)}
}

// GridFromRows builds a grid from a slice of equally sized rows.
//
// Example:
//
//	g, err := tensor.GridFromRows([][]int{{1, 2}, {3, 4}})
func GridFromRows(rows [][]int) (Grid, error) {
	if len(rows) == 0 {
		return Grid{}, nil
	}
	cols := len(rows[0])
	g := NewGrid(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return Grid{}, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrShapeMismatch, i, len(row), cols)
		}
		copy(g.data[i*cols:(i+1)*cols], row)
	}
	return g, nil
}

// MustGrid is like GridFromRows but panics on ragged input. Intended for
// literals in tests and examples.
func MustGrid(rows [][]int) Grid {
	g, err := GridFromRows(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// Rows returns the number of rows.
func (g Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g Grid) Cols() int { return g.cols }

// Shape returns the grid shape as {rows, cols}.
func (g Grid) Shape() Shape { return Shape{g.rows, g.cols} }

// At returns the value at (i, j).
func (g Grid) At(i, j int) int { return g.data[i*g.cols+j] }

// Set stores v at (i, j).
func (g Grid) Set(i, j, v int) { g.data[i*g.cols+j] = v }

// Row returns row i. The slice aliases the grid storage.
func (g Grid) Row(i int) []int { return g.data[i*g.cols : (i+1)*g.cols] }

// Data returns the underlying row-major storage.
func (g Grid) Data() []int { return g.data }

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	c := NewGrid(g.rows, g.cols)
	copy(c.data, g.data)
	return c
}

// Equal reports whether both grids have the same shape and values.
func (g Grid) Equal(other Grid) bool {
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := range g.data {
		if g.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// Pad returns a copy of g enlarged by n zero cells on every side.
func (g Grid) Pad(n int) Grid {
	p := NewGrid(g.rows+2*n, g.cols+2*n)
	for i := 0; i < g.rows; i++ {
		copy(p.Row(i + n)[n:n+g.cols], g.Row(i))
	}
	return p
}

// Unpad returns the interior of g with n border cells removed on every side.
func (g Grid) Unpad(n int) Grid {
	u := NewGrid(g.rows-2*n, g.cols-2*n)
	for i := 0; i < u.rows; i++ {
		copy(u.Row(i), g.Row(i + n)[n:n+u.cols])
	}
	return u
}

// String returns a compact representation of the grid for debugging.
func (g Grid) String() string {
	return fmt.Sprintf("Grid%v%v", g.Shape(), g.data)
}

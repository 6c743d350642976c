package grid

import "fmt"

// Grid is a row-major array of rows*cols elements.
// The element at (row, col) lives at index row*cols+col.
type Grid[T any] struct {
	rows int
	cols int
	data []T
}

// New creates a rows x cols grid with every cell set to fill.
// It panics if either dimension is negative.
func New[T any](rows, cols int, fill T) *Grid[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("grid: negative dimensions %dx%d", rows, cols))
	}
	data := make([]T, rows*cols)
	for i := range data {
		data[i] = fill
	}
	return &Grid[T]{rows: rows, cols: cols, data: data}
}

// Rows returns the number of rows.
func (g *Grid[T]) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid[T]) Cols() int {
	return g.cols
}

// Len returns the number of cells.
func (g *Grid[T]) Len() int {
	return len(g.data)
}

// index maps (row, col) to a linear offset, panicking when out of range.
func (g *Grid[T]) index(row, col int) int {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		panic(fmt.Sprintf("grid: cell (%d,%d) out of range %dx%d", row, col, g.rows, g.cols))
	}
	return row*g.cols + col
}

// At returns the value of the cell at (row, col).
func (g *Grid[T]) At(row, col int) T {
	return g.data[g.index(row, col)]
}

// Ptr returns a pointer to the cell at (row, col).
// The pointer stays valid for the lifetime of the grid.
func (g *Grid[T]) Ptr(row, col int) *T {
	return &g.data[g.index(row, col)]
}

// Set stores v in the cell at (row, col).
func (g *Grid[T]) Set(row, col int, v T) {
	g.data[g.index(row, col)] = v
}

// Row returns row i as a slice aliasing the grid storage.
// Writes through the slice modify the grid.
func (g *Grid[T]) Row(i int) []T {
	if i < 0 || i >= g.rows {
		panic(fmt.Sprintf("grid: row %d out of range [0,%d)", i, g.rows))
	}
	start := i * g.cols
	return g.data[start : start+g.cols : start+g.cols]
}

// Swap exchanges the values of cells (r1, c1) and (r2, c2).
func (g *Grid[T]) Swap(r1, c1, r2, c2 int) {
	i, j := g.index(r1, c1), g.index(r2, c2)
	g.data[i], g.data[j] = g.data[j], g.data[i]
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	data := make([]T, len(g.data))
	copy(data, g.data)
	return &Grid[T]{rows: g.rows, cols: g.cols, data: data}
}

// CopyFrom overwrites g with the contents of src.
// Both grids must have the same dimensions.
func (g *Grid[T]) CopyFrom(src *Grid[T]) {
	if g.rows != src.rows || g.cols != src.cols {
		panic(fmt.Sprintf("grid: copy from %dx%d into %dx%d", src.rows, src.cols, g.rows, g.cols))
	}
	copy(g.data, src.data)
}

// Equal reports whether a and b have the same dimensions and cell values.
func Equal[T comparable](a, b *Grid[T]) bool {
	if a == b {
		return true
	}
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

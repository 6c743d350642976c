// Package grid provides a dense, row-major two-dimensional array.
//
// A Grid is created with fixed dimensions and never resized. All cell
// accessors are bounds-checked: an out-of-range coordinate is a caller bug
// and panics instead of being clamped or wrapped, so coordinate-mapping
// mistakes surface immediately.
//
//	g := grid.New(3, 4, 0)
//	g.Set(1, 2, 7)
//	v := g.At(1, 2) // 7
package grid

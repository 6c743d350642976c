// Package fill implements scanline flood fill over any two-dimensional surface.
//
// The fill is iterative: seeds live on an explicit stack, so large uniform
// regions cannot overflow the goroutine stack, and each seed recolors a whole
// horizontal run before looking at the rows above and below.
package fill

import "fmt"

// Surface is a mutable two-dimensional array of comparable cells addressed
// by (row, col). *grid.Grid[T] satisfies Surface for comparable T.
type Surface[T comparable] interface {
	Rows() int
	Cols() int
	At(row, col int) T
	Set(row, col int, v T)
}

// seed is a pending scanline start.
type seed struct {
	row, col int
}

// Flood recolors the 4-connected region of cells equal to the value at
// (row, col) with v and returns the number of cells changed.
//
// If the seed already holds v, nothing is changed and Flood returns 0.
// Cells of the same value that are reachable only diagonally, or not at all,
// are left untouched. The seed must lie inside the surface; Flood panics
// otherwise.
//
// Each changed cell is written exactly once. For every horizontal run that is
// filled, at most one seed is pushed per contiguous matching span in the row
// above and in the row below.
func Flood[T comparable](s Surface[T], row, col int, v T) int {
	rows, cols := s.Rows(), s.Cols()
	if row < 0 || row >= rows || col < 0 || col >= cols {
		panic(fmt.Sprintf("fill: seed (%d,%d) out of range %dx%d", row, col, rows, cols))
	}

	old := s.At(row, col)
	if old == v {
		return 0
	}

	filled := 0
	stack := []seed{{row, col}}
	for len(stack) > 0 {
		sd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		r, x := sd.row, sd.col
		// A seed may have been covered by a run filled after it was pushed.
		if s.At(r, x) != old {
			continue
		}
		for x > 0 && s.At(r, x-1) == old {
			x--
		}

		spanAbove, spanBelow := false, false
		for ; x < cols && s.At(r, x) == old; x++ {
			s.Set(r, x, v)
			filled++

			if r > 0 {
				if s.At(r-1, x) == old {
					if !spanAbove {
						stack = append(stack, seed{r - 1, x})
						spanAbove = true
					}
				} else {
					spanAbove = false
				}
			}
			if r+1 < rows {
				if s.At(r+1, x) == old {
					if !spanBelow {
						stack = append(stack, seed{r + 1, x})
						spanBelow = true
					}
				} else {
					spanBelow = false
				}
			}
		}
	}
	return filled
}

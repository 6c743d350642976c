package grid

import (
	"strings"
	"testing"
)

// mustPanic runs fn and fails the test unless it panics with a message
// containing want.
func mustPanic(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", want)
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("panic value %T(%v), want string", r, r)
		}
		if !strings.Contains(msg, want) {
			t.Errorf("panic = %q, want it to contain %q", msg, want)
		}
	}()
	fn()
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		wantLen    int
	}{
		{"square", 4, 4, 16},
		{"wide", 2, 7, 14},
		{"tall", 9, 1, 9},
		{"empty rows", 0, 5, 0},
		{"empty cols", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.rows, tt.cols, 3)
			if g.Rows() != tt.rows || g.Cols() != tt.cols {
				t.Errorf("dims = %dx%d, want %dx%d", g.Rows(), g.Cols(), tt.rows, tt.cols)
			}
			if g.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", g.Len(), tt.wantLen)
			}
			for r := 0; r < g.Rows(); r++ {
				for c := 0; c < g.Cols(); c++ {
					if v := g.At(r, c); v != 3 {
						t.Fatalf("At(%d,%d) = %d, want 3", r, c, v)
					}
				}
			}
		})
	}
}

func TestNew_NegativePanics(t *testing.T) {
	mustPanic(t, "negative dimensions", func() { New(-1, 2, 0) })
	mustPanic(t, "negative dimensions", func() { New(2, -1, 0) })
}

func TestSetAndAt(t *testing.T) {
	g := New(3, 4, 0)
	g.Set(1, 2, 7)
	g.Set(2, 3, 9)

	if got := g.At(1, 2); got != 7 {
		t.Errorf("At(1,2) = %d, want 7", got)
	}
	if got := g.At(2, 3); got != 9 {
		t.Errorf("At(2,3) = %d, want 9", got)
	}
	// Neighbours stay untouched.
	if got := g.At(1, 3); got != 0 {
		t.Errorf("At(1,3) = %d, want 0", got)
	}
	if got := g.At(2, 0); got != 0 {
		t.Errorf("At(2,0) = %d, want 0", got)
	}
}

func TestPtr(t *testing.T) {
	g := New(2, 2, "a")
	p := g.Ptr(1, 0)
	*p = "b"
	if got := g.At(1, 0); got != "b" {
		t.Errorf("At(1,0) = %q, want %q", got, "b")
	}
}

func TestOutOfRangePanics(t *testing.T) {
	g := New(3, 4, 0)

	tests := []struct {
		name     string
		row, col int
	}{
		{"row too large", 3, 0},
		{"col too large", 0, 9},
		// Would alias (1,0) in the flat slice without an explicit check.
		{"col wraps into next row", 0, 4},
		{"negative row", -1, 0},
		{"negative col", 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustPanic(t, "out of range", func() { g.At(tt.row, tt.col) })
			mustPanic(t, "out of range", func() { g.Set(tt.row, tt.col, 1) })
			mustPanic(t, "out of range", func() { g.Ptr(tt.row, tt.col) })
		})
	}
}

func TestRow(t *testing.T) {
	g := New(3, 3, 0)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			g.Set(r, c, r*10+c)
		}
	}

	row := g.Row(1)
	if len(row) != 3 {
		t.Fatalf("len(Row(1)) = %d, want 3", len(row))
	}
	for c, v := range row {
		if v != 10+c {
			t.Errorf("Row(1)[%d] = %d, want %d", c, v, 10+c)
		}
	}

	// Writes through the row reach the grid.
	row[2] = 99
	if got := g.At(1, 2); got != 99 {
		t.Errorf("At(1,2) = %d after row write, want 99", got)
	}

	// Appending must not clobber the next row.
	_ = append(row, -1)
	if got := g.At(2, 0); got != 20 {
		t.Errorf("At(2,0) = %d after append, want 20", got)
	}

	mustPanic(t, "row 3 out of range", func() { g.Row(3) })
}

func TestSwap(t *testing.T) {
	g := New(2, 3, 0)
	g.Set(0, 0, 1)
	g.Set(1, 2, 2)

	g.Swap(0, 0, 1, 2)

	if g.At(0, 0) != 2 || g.At(1, 2) != 1 {
		t.Errorf("after Swap: (0,0)=%d (1,2)=%d, want 2 and 1", g.At(0, 0), g.At(1, 2))
	}

	// Swapping a cell with itself is a no-op.
	g.Swap(0, 1, 0, 1)
	if g.At(0, 1) != 0 {
		t.Errorf("self swap changed value to %d", g.At(0, 1))
	}

	mustPanic(t, "out of range", func() { g.Swap(0, 0, 2, 0) })
}

func TestCloneIsDeep(t *testing.T) {
	g := New(2, 2, 1)
	c := g.Clone()
	c.Set(0, 0, 5)

	if g.At(0, 0) != 1 {
		t.Errorf("original changed to %d after clone write", g.At(0, 0))
	}
	if c.At(0, 0) != 5 {
		t.Errorf("clone At(0,0) = %d, want 5", c.At(0, 0))
	}
}

func TestCopyFrom(t *testing.T) {
	src := New(2, 2, 4)
	src.Set(1, 1, 8)
	dst := New(2, 2, 0)
	dst.CopyFrom(src)

	if !Equal(src, dst) {
		t.Error("CopyFrom produced a different grid")
	}

	mustPanic(t, "copy from", func() { New(3, 2, 0).CopyFrom(src) })
}

func TestFill(t *testing.T) {
	g := New(3, 2, 0)
	g.Fill(6)
	for r := 0; r < 3; r++ {
		for c := 0; c < 2; c++ {
			if g.At(r, c) != 6 {
				t.Fatalf("At(%d,%d) = %d after Fill, want 6", r, c, g.At(r, c))
			}
		}
	}
}

func TestEqual(t *testing.T) {
	a := New(2, 3, 1)
	b := New(2, 3, 1)
	if !Equal(a, b) {
		t.Error("identical grids compare unequal")
	}

	b.Set(1, 2, 2)
	if Equal(a, b) {
		t.Error("grids differing in one cell compare equal")
	}

	// Same element count, different shape.
	if Equal(New(2, 3, 1), New(3, 2, 1)) {
		t.Error("2x3 and 3x2 grids compare equal")
	}

	if !Equal(a, a) {
		t.Error("grid not equal to itself")
	}
}

// Package tilepool recycles square tile grids through per-size sync.Pools.
//
// Tiles released by a canvas (no remaining references) are returned here and
// handed out again when another tile is detached for writing, which keeps
// copy-on-write editing from churning the garbage collector.
package tilepool

import (
	"sync"

	"github.com/gogpu/paint/grid"
)

// Pool hands out size x size grids of T.
//
// Thread safety: Pool is safe for concurrent use.
type Pool[T any] struct {
	// pools maps tile size to *sync.Pool.
	pools sync.Map
}

// New creates an empty pool.
func New[T any]() *Pool[T] {
	return &Pool[T]{}
}

// Get returns a size x size grid. Its contents are unspecified; callers
// overwrite it with CopyFrom or Fill before use.
// Returns nil if size is not positive.
func (p *Pool[T]) Get(size int) *grid.Grid[T] {
	if size <= 0 {
		return nil
	}
	return p.poolFor(size).Get().(*grid.Grid[T])
}

// Put returns g to the pool. Non-square or empty grids are dropped.
// The caller must not use g afterwards.
func (p *Pool[T]) Put(g *grid.Grid[T]) {
	if g == nil || g.Rows() != g.Cols() || g.Rows() == 0 {
		return
	}
	p.poolFor(g.Rows()).Put(g)
}

// poolFor gets or creates the sync.Pool for one tile size.
func (p *Pool[T]) poolFor(size int) *sync.Pool {
	if sp, ok := p.pools.Load(size); ok {
		return sp.(*sync.Pool)
	}

	sp := &sync.Pool{
		New: func() any {
			var zero T
			return grid.New(size, size, zero)
		},
	}
	// If another goroutine stored first, use theirs.
	actual, _ := p.pools.LoadOrStore(size, sp)
	return actual.(*sync.Pool)
}

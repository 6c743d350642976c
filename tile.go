package paint

import (
	"sync/atomic"

	"github.com/gogpu/paint/grid"
	"github.com/gogpu/paint/internal/tilepool"
)

// Tile is a square block of pixels, the unit of copy-on-write sharing
// inside a Document. Tiles on the right and bottom edges of a canvas may
// extend past it; that overhang is never addressed.
type Tile = grid.Grid[Pixel]

// tilePool recycles tiles whose last reference was released.
var tilePool = tilepool.New[Pixel]()

// pixelBytes is the in-memory size of one Pixel.
const pixelBytes = 3

// sharedTile is a reference-counted tile. Every document slot that points at
// it holds one reference. Pixels of a tile with more than one reference are
// never written; the writer detaches a private copy first.
type sharedTile struct {
	pix  *Tile
	refs atomic.Int32
}

// newSharedTile wraps pix with an initial reference count.
func newSharedTile(pix *Tile, refs int32) *sharedTile {
	t := &sharedTile{pix: pix}
	t.refs.Store(refs)
	return t
}

// retain adds a reference.
func (t *sharedTile) retain() {
	t.refs.Add(1)
}

// release drops a reference. The last release returns the pixels to the
// pool; any later access through a stale slot panics on the nil grid.
func (t *sharedTile) release() {
	if t.refs.Add(-1) == 0 {
		tilePool.Put(t.pix)
		t.pix = nil
	}
}

// exclusive reports whether the caller holds the only reference.
func (t *sharedTile) exclusive() bool {
	return t.refs.Load() == 1
}

// Package dirty tracks which tiles of a tiled canvas changed since the last
// time a consumer looked, using a bitmap with one bit per tile.
//
// The bitmap words are atomic so that a render goroutine may drain the region
// while the editing goroutine marks it. The canvas itself is not safe for
// concurrent mutation; only the bitmap is.
package dirty

import (
	"math/bits"
	"sync/atomic"
)

// Region is a per-tile dirty bitmap for a tilesX x tilesY grid of tiles.
// Bit index = ty*tilesX + tx, packed 64 tiles per word.
type Region struct {
	words  []atomic.Uint64
	tilesX int
	tilesY int
}

// New creates a region for the given tile grid with every tile clean.
// Non-positive dimensions give an empty region that ignores all marks.
func New(tilesX, tilesY int) *Region {
	if tilesX <= 0 || tilesY <= 0 {
		return &Region{}
	}
	total := tilesX * tilesY
	return &Region{
		words:  make([]atomic.Uint64, (total+63)/64),
		tilesX: tilesX,
		tilesY: tilesY,
	}
}

// Mark marks tile (tx, ty) dirty. Out-of-range tiles are ignored.
func (r *Region) Mark(tx, ty int) {
	if tx < 0 || tx >= r.tilesX || ty < 0 || ty >= r.tilesY {
		return
	}
	r.MarkIndex(ty*r.tilesX + tx)
}

// MarkIndex marks the tile with row-major index i dirty.
func (r *Region) MarkIndex(i int) {
	if i < 0 || i >= r.Total() {
		return
	}
	r.words[i/64].Or(1 << (i & 63))
}

// MarkAll marks every tile dirty.
func (r *Region) MarkAll() {
	total := r.Total()
	full := total / 64
	for i := 0; i < full; i++ {
		r.words[i].Store(^uint64(0))
	}
	if rem := total % 64; rem > 0 {
		r.words[full].Store((uint64(1) << rem) - 1)
	}
}

// Clear marks every tile clean.
func (r *Region) Clear() {
	for i := range r.words {
		r.words[i].Store(0)
	}
}

// IsDirty reports whether tile index i is dirty.
func (r *Region) IsDirty(i int) bool {
	if i < 0 || i >= r.Total() {
		return false
	}
	return r.words[i/64].Load()&(1<<(i&63)) != 0
}

// IsEmpty reports whether no tile is dirty.
func (r *Region) IsEmpty() bool {
	for i := range r.words {
		if r.words[i].Load() != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of dirty tiles.
func (r *Region) Count() int {
	n := 0
	for i := range r.words {
		n += bits.OnesCount64(r.words[i].Load())
	}
	return n
}

// Merge marks every tile that is dirty in other. Regions of different
// shapes cannot be lined up, so a mismatch marks everything.
func (r *Region) Merge(other *Region) {
	if other.tilesX != r.tilesX || other.tilesY != r.tilesY {
		r.MarkAll()
		return
	}
	for i := range r.words {
		if w := other.words[i].Load(); w != 0 {
			r.words[i].Or(w)
		}
	}
}

// Drain returns the dirty tile indices in ascending order and clears them.
// Each word is swapped with zero, so marks racing with Drain are either
// returned now or kept for the next call.
func (r *Region) Drain() []int {
	var out []int
	for wi := range r.words {
		word := r.words[wi].Swap(0)
		for word != 0 {
			b := bits.TrailingZeros64(word)
			out = append(out, wi*64+b)
			word &^= 1 << b
		}
	}
	return out
}

// ForEach calls fn for each dirty tile index without clearing it.
func (r *Region) ForEach(fn func(i int)) {
	for wi := range r.words {
		word := r.words[wi].Load()
		for word != 0 {
			b := bits.TrailingZeros64(word)
			fn(wi*64 + b)
			word &^= 1 << b
		}
	}
}

// TilesX returns the number of tile columns.
func (r *Region) TilesX() int {
	return r.tilesX
}

// TilesY returns the number of tile rows.
func (r *Region) TilesY() int {
	return r.tilesY
}

// Total returns the number of tiles covered.
func (r *Region) Total() int {
	return r.tilesX * r.tilesY
}

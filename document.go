package paint

import (
	"fmt"
	"image"
	"slices"

	"github.com/gogpu/paint/fill"
	"github.com/gogpu/paint/internal/dirty"
)

// Document is a tiled raster canvas with copy-on-write tiles.
//
// The canvas is split into TileSize x TileSize tiles stored row-major, so
// pixel (x, y) lives in tile (y/TileSize)*TilesX + x/TileSize at local
// column x%TileSize and row y%TileSize. Cloning a Document copies tile
// references only; a tile is copied the first time a shared tile is
// written, once per tile rather than once per pixel.
//
// A Document is not safe for concurrent mutation. All pixel coordinates must
// lie inside the canvas; out-of-range access panics.
type Document struct {
	width    int
	height   int
	tileSize int
	tilesX   int
	tilesY   int

	// tiles holds one reference per slot. Slots never hold nil while the
	// document is live.
	tiles []*sharedTile

	// dirty marks tiles changed since the last ClearDirty.
	dirty *dirty.Region

	// detaches counts copy-on-write tile copies made by this document.
	detaches int
}

// NewDocument creates a width x height canvas filled with background.
//
// Every tile slot points at the same shared tile, so a new document costs one
// tile of pixels regardless of its size. Negative dimensions or a
// non-positive tile size panic.
func NewDocument(width, height int, background Pixel, opts ...DocumentOption) *Document {
	o := defaultDocumentOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("paint: negative document size %dx%d", width, height))
	}
	if o.tileSize <= 0 {
		panic(fmt.Sprintf("paint: tile size %d must be positive", o.tileSize))
	}

	tilesX := (width + o.tileSize - 1) / o.tileSize
	tilesY := (height + o.tileSize - 1) / o.tileSize

	d := &Document{
		width:    width,
		height:   height,
		tileSize: o.tileSize,
		tilesX:   tilesX,
		tilesY:   tilesY,
		tiles:    make([]*sharedTile, tilesX*tilesY),
		dirty:    dirty.New(tilesX, tilesY),
	}
	d.fillSlots(background)
	return d
}

// fillSlots points every slot at one new tile of colour p.
func (d *Document) fillSlots(p Pixel) {
	if len(d.tiles) == 0 {
		return
	}
	pix := tilePool.Get(d.tileSize)
	pix.Fill(p)
	shared := newSharedTile(pix, int32(len(d.tiles))) //nolint:gosec // tile count fits in int32 for any realistic canvas
	for i := range d.tiles {
		d.tiles[i] = shared
	}
	d.dirty.MarkAll()
}

// Width returns the canvas width in pixels.
func (d *Document) Width() int {
	return d.width
}

// Height returns the canvas height in pixels.
func (d *Document) Height() int {
	return d.height
}

// TileSize returns the tile edge length in pixels.
func (d *Document) TileSize() int {
	return d.tileSize
}

// TilesX returns the number of tile columns.
func (d *Document) TilesX() int {
	return d.tilesX
}

// TilesY returns the number of tile rows.
func (d *Document) TilesY() int {
	return d.tilesY
}

// TileCount returns the number of tile slots.
func (d *Document) TileCount() int {
	return len(d.tiles)
}

// locate maps a canvas pixel to its tile slot and tile-local coordinates.
func (d *Document) locate(x, y int) (slot, row, col int) {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		panic(fmt.Sprintf("paint: pixel (%d,%d) out of bounds %dx%d", x, y, d.width, d.height))
	}
	ts := d.tileSize
	return (y/ts)*d.tilesX + x/ts, y % ts, x % ts
}

// At returns the pixel at (x, y).
func (d *Document) At(x, y int) Pixel {
	slot, row, col := d.locate(x, y)
	return d.tiles[slot].pix.At(row, col)
}

// Ptr returns a pointer to the pixel at (x, y) for in-place writes.
//
// If the tile holding the pixel is shared with another slot or document, it
// is first replaced by a private copy. The pointer must not be kept across a
// Clone of this document: writes through it would then reach the clone.
func (d *Document) Ptr(x, y int) *Pixel {
	slot, row, col := d.locate(x, y)
	pix := d.detach(slot)
	d.dirty.MarkIndex(slot)
	return pix.Ptr(row, col)
}

// Set stores p at (x, y). Writing the value already present is a no-op and
// does not detach the tile.
func (d *Document) Set(x, y int, p Pixel) {
	slot, row, col := d.locate(x, y)
	if d.tiles[slot].pix.At(row, col) == p {
		return
	}
	d.detach(slot).Set(row, col, p)
	d.dirty.MarkIndex(slot)
}

// detach makes slot exclusively owned and returns its pixels.
func (d *Document) detach(slot int) *Tile {
	t := d.tiles[slot]
	if t.exclusive() {
		return t.pix
	}

	pix := tilePool.Get(d.tileSize)
	pix.CopyFrom(t.pix)
	d.tiles[slot] = newSharedTile(pix, 1)
	t.release()
	d.detaches++

	Logger().Debug("tile detached", "tile", slot, "detaches", d.detaches)
	return pix
}

// Tile returns the pixels of tile (tx, ty) for read-only use such as
// texture upload. The tile may be shared and must not be modified.
func (d *Document) Tile(tx, ty int) *Tile {
	if tx < 0 || tx >= d.tilesX || ty < 0 || ty >= d.tilesY {
		panic(fmt.Sprintf("paint: tile (%d,%d) out of range %dx%d", tx, ty, d.tilesX, d.tilesY))
	}
	return d.tiles[ty*d.tilesX+tx].pix
}

// TileBounds returns the canvas-space rectangle covered by tile slot i,
// clipped to the canvas.
func (d *Document) TileBounds(i int) image.Rectangle {
	tx, ty := i%d.tilesX, i/d.tilesX
	x0, y0 := tx*d.tileSize, ty*d.tileSize
	return image.Rect(x0, y0, min(x0+d.tileSize, d.width), min(y0+d.tileSize, d.height))
}

// Clone returns a document with the same pixels that shares every tile with
// d. It costs one reference per tile; no pixels are copied.
// All tiles of the clone start dirty.
func (d *Document) Clone() *Document {
	c := &Document{
		width:    d.width,
		height:   d.height,
		tileSize: d.tileSize,
		tilesX:   d.tilesX,
		tilesY:   d.tilesY,
		tiles:    slices.Clone(d.tiles),
		dirty:    dirty.New(d.tilesX, d.tilesY),
	}
	for _, t := range c.tiles {
		t.retain()
	}
	c.dirty.MarkAll()
	return c
}

// Release drops d's tile references. Tiles no longer referenced by any
// document are recycled. d must not be used afterwards; calling Release
// twice is harmless.
func (d *Document) Release() {
	for _, t := range d.tiles {
		t.release()
	}
	d.tiles = nil
}

// Fill sets every pixel to p. The canvas collapses back to a single shared
// tile, releasing all detached tiles.
func (d *Document) Fill(p Pixel) {
	for _, t := range d.tiles {
		t.release()
	}
	d.fillSlots(p)
}

// FloodFill recolors the 4-connected region of pixels matching the colour at
// (x, y) with p and returns the number of pixels changed.
// Only tiles that the region touches are detached.
func (d *Document) FloodFill(x, y int, p Pixel) int {
	d.locate(x, y)
	n := fill.Flood[Pixel](documentSurface{d}, y, x, p)
	Logger().Debug("flood fill", "x", x, "y", y, "color", p.String(), "pixels", n)
	return n
}

// documentSurface adapts a Document to fill.Surface with rows as y.
type documentSurface struct {
	d *Document
}

func (s documentSurface) Rows() int                 { return s.d.height }
func (s documentSurface) Cols() int                 { return s.d.width }
func (s documentSurface) At(row, col int) Pixel     { return s.d.At(col, row) }
func (s documentSurface) Set(row, col int, p Pixel) { s.d.Set(col, row, p) }

// Equal reports whether d and o have the same size and the same pixel at
// every canvas coordinate. Tile sharing and tile overhang are ignored.
func (d *Document) Equal(o *Document) bool {
	if d == o {
		return true
	}
	if d.width != o.width || d.height != o.height {
		return false
	}

	if d.tileSize != o.tileSize {
		for y := 0; y < d.height; y++ {
			for x := 0; x < d.width; x++ {
				if d.At(x, y) != o.At(x, y) {
					return false
				}
			}
		}
		return true
	}

	for i, a := range d.tiles {
		b := o.tiles[i]
		if a == b || a.pix == b.pix {
			continue
		}
		r := d.TileBounds(i)
		w := r.Dx()
		for row := 0; row < r.Dy(); row++ {
			if !slices.Equal(a.pix.Row(row)[:w], b.pix.Row(row)[:w]) {
				return false
			}
		}
	}
	return true
}

// DirtyTiles returns the canvas rectangles of tiles changed since the last
// ClearDirty, in row-major tile order.
func (d *Document) DirtyTiles() []image.Rectangle {
	var out []image.Rectangle
	d.dirty.ForEach(func(i int) {
		out = append(out, d.TileBounds(i))
	})
	return out
}

// ClearDirty marks every tile clean.
func (d *Document) ClearDirty() {
	d.dirty.Clear()
}

// markChanged marks the tiles of d that may differ from prev, the document
// d replaces on screen, including tiles prev had not yet reported.
func (d *Document) markChanged(prev *Document) {
	if prev.tilesX != d.tilesX || prev.tilesY != d.tilesY || prev.tileSize != d.tileSize {
		d.dirty.MarkAll()
		return
	}
	for i, t := range d.tiles {
		if t != prev.tiles[i] {
			d.dirty.MarkIndex(i)
		}
	}
	d.dirty.Merge(prev.dirty)
}

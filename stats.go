package paint

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Stats describes how a Document's tiles are shared.
type Stats struct {
	Width    int
	Height   int
	TileSize int

	// Tiles is the number of tile slots.
	Tiles int

	// UniqueTiles is the number of distinct tile instances referenced.
	UniqueTiles int

	// SharedTiles is the number of slots whose tile has other references,
	// from this document or any other.
	SharedTiles int

	// Detaches is the number of copy-on-write tile copies made so far.
	Detaches int

	// PixelBytes is the pixel memory of the unique tiles.
	PixelBytes uint64
}

// String returns a one-line summary with human-readable sizes.
func (s Stats) String() string {
	return fmt.Sprintf("%dx%d tile=%d tiles=%d unique=%d shared=%d detaches=%d pixels=%s",
		s.Width, s.Height, s.TileSize, s.Tiles, s.UniqueTiles, s.SharedTiles, s.Detaches,
		humanize.IBytes(s.PixelBytes))
}

// Stats returns tile sharing statistics for d.
func (d *Document) Stats() Stats {
	seen := make(map[*sharedTile]struct{}, len(d.tiles))
	s := Stats{
		Width:    d.width,
		Height:   d.height,
		TileSize: d.tileSize,
		Tiles:    len(d.tiles),
		Detaches: d.detaches,
	}
	for _, t := range d.tiles {
		if !t.exclusive() {
			s.SharedTiles++
		}
		seen[t] = struct{}{}
	}
	s.UniqueTiles = len(seen)
	s.PixelBytes = tileBytes(d.tileSize) * uint64(s.UniqueTiles)
	return s
}

// tileBytes returns the pixel memory of one tile.
func tileBytes(tileSize int) uint64 {
	return uint64(tileSize) * uint64(tileSize) * pixelBytes //nolint:gosec // tile size is positive
}

package paint

import (
	"github.com/cespare/xxhash/v2"

	"github.com/gogpu/paint/grid"
)

// fingerprint hashes all pixels of a tile, overhang included.
func fingerprint(t *Tile, buf []byte) uint64 {
	h := xxhash.New()
	for r := 0; r < t.Rows(); r++ {
		buf = buf[:0]
		for _, p := range t.Row(r) {
			buf = append(buf, p.R, p.G, p.B)
		}
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

type tileKey struct {
	sum  uint64
	size int
}

// compactTiles points every slot whose tile has the same pixels as an
// earlier tile at that earlier instance, across all of docs. Candidates are
// matched by xxhash fingerprint and confirmed by comparing pixels.
// It returns the number of duplicate tile instances folded away.
func compactTiles(docs ...*Document) int {
	canon := make(map[tileKey][]*sharedTile)
	sums := make(map[*sharedTile]uint64)
	folded := make(map[*sharedTile]struct{})
	var buf []byte

	for _, d := range docs {
		for i, t := range d.tiles {
			sum, ok := sums[t]
			if !ok {
				if cap(buf) < d.tileSize*pixelBytes {
					buf = make([]byte, 0, d.tileSize*pixelBytes)
				}
				sum = fingerprint(t.pix, buf)
				sums[t] = sum
			}

			key := tileKey{sum, d.tileSize}
			var match *sharedTile
			for _, c := range canon[key] {
				if c == t || grid.Equal(c.pix, t.pix) {
					match = c
					break
				}
			}
			switch {
			case match == nil:
				canon[key] = append(canon[key], t)
			case match != t:
				folded[t] = struct{}{}
				match.retain()
				d.tiles[i] = match
				t.release()
			}
		}
	}
	return len(folded)
}

// Compact re-shares tiles of d that hold identical pixels, for example after
// an area was painted and then restored by hand. It returns the number of
// duplicate tile instances folded away.
func (d *Document) Compact() int {
	return compactTiles(d)
}

package paint

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// documentImage exposes a Document as a read-only image.Image.
type documentImage struct {
	d *Document
}

// Image returns a live image.Image view of d. Reads go through the tiles, so
// later edits to d are visible through the view.
func (d *Document) Image() image.Image {
	return documentImage{d}
}

// ColorModel implements image.Image.
func (m documentImage) ColorModel() color.Model {
	return PixelModel
}

// Bounds implements image.Image.
func (m documentImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.d.width, m.d.height)
}

// At implements image.Image. Points outside the canvas read as Black, as
// image.Image requires At to be total.
func (m documentImage) At(x, y int) color.Color {
	if x < 0 || x >= m.d.width || y < 0 || y >= m.d.height {
		return Black
	}
	return m.d.At(x, y)
}

// ToRGBA copies the canvas into a new opaque image.RGBA, one tile row span
// at a time.
func (d *Document) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, d.width, d.height))
	for i, t := range d.tiles {
		r := d.TileBounds(i)
		for row := 0; row < r.Dy(); row++ {
			src := t.pix.Row(row)[:r.Dx()]
			off := img.PixOffset(r.Min.X, r.Min.Y+row)
			dst := img.Pix[off : off+4*len(src)]
			for j, p := range src {
				dst[4*j+0] = p.R
				dst[4*j+1] = p.G
				dst[4*j+2] = p.B
				dst[4*j+3] = 0xff
			}
		}
	}
	return img
}

// Thumbnail returns the canvas scaled to w x h with bilinear filtering.
// w and h must be positive.
func (d *Document) Thumbnail(w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("paint: thumbnail size %dx%d must be positive", w, h))
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if d.width == 0 || d.height == 0 {
		return dst
	}
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), d.ToRGBA(), image.Rect(0, 0, d.width, d.height), xdraw.Src, nil)
	return dst
}

// FromImage creates a document holding the pixels of img, with the image's
// top-left corner at (0, 0). Alpha is discarded.
func FromImage(img image.Image, opts ...DocumentOption) *Document {
	b := img.Bounds()
	bg := Black
	if !b.Empty() {
		bg = FromColor(img.At(b.Min.X, b.Min.Y))
	}
	d := NewDocument(b.Dx(), b.Dy(), bg, opts...)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			d.Set(x, y, FromColor(img.At(b.Min.X+x, b.Min.Y+y)))
		}
	}
	return d
}

package paint

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Pixel is an opaque 24-bit colour value. Pixels compare with ==.
type Pixel struct {
	R, G, B uint8
}

// Common colours.
var (
	Black   = Pixel{0, 0, 0}
	White   = Pixel{255, 255, 255}
	Red     = Pixel{255, 0, 0}
	Green   = Pixel{0, 255, 0}
	Blue    = Pixel{0, 0, 255}
	Yellow  = Pixel{255, 255, 0}
	Cyan    = Pixel{0, 255, 255}
	Magenta = Pixel{255, 0, 255}
)

// ErrInvalidHex is returned by ParseHex for malformed colour strings.
var ErrInvalidHex = errors.New("paint: invalid hex colour")

// RGB creates a pixel from 8-bit channels.
func RGB(r, g, b uint8) Pixel {
	return Pixel{R: r, G: g, B: b}
}

// ParseHex parses "#rgb" or "#rrggbb" (the leading '#' is optional).
func ParseHex(s string) (Pixel, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(hex) {
	case 3:
		v, err := strconv.ParseUint(hex, 16, 16)
		if err != nil {
			return Pixel{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
		}
		r, g, b := uint8(v>>8&0xf), uint8(v>>4&0xf), uint8(v&0xf)
		return Pixel{r * 17, g * 17, b * 17}, nil
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Pixel{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
		}
		return Pixel{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
	default:
		return Pixel{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
}

// String returns the colour as "#rrggbb".
func (p Pixel) String() string {
	return fmt.Sprintf("#%02x%02x%02x", p.R, p.G, p.B)
}

// RGBA implements color.Color. Pixels are always fully opaque.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	r = uint32(p.R) * 0x101
	g = uint32(p.G) * 0x101
	b = uint32(p.B) * 0x101
	return r, g, b, 0xffff
}

// PixelModel converts any color.Color to a Pixel.
// Alpha is dropped without compositing against a background.
var PixelModel = color.ModelFunc(func(c color.Color) color.Color {
	return FromColor(c)
})

// FromColor converts c to a Pixel, discarding alpha.
func FromColor(c color.Color) Pixel {
	if p, ok := c.(Pixel); ok {
		return p
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{n.R, n.G, n.B}
}

// Package raster defines the in-memory pixel grid shared by every codec in
// this module. Readers produce an Image; writers consume one.
package raster

// Color is an 8-bit RGBA pixel. The zero value is fully transparent black.
type Color struct {
	R, G, B, A uint8
}

// NewColor builds an opaque Color from three channels. Alpha defaults to
// 255 (opaque).
func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// NewColorFromBytes builds a Color from a slice of up to four channel
// bytes in R, G, B, A order. Slices shorter than 4 bytes default the
// missing trailing channels: R, G, B default to 0, A defaults to 255.
func NewColorFromBytes(b []byte) Color {
	c := Color{A: 255}
	if len(b) > 0 {
		c.R = b[0]
	}
	if len(b) > 1 {
		c.G = b[1]
	}
	if len(b) > 2 {
		c.B = b[2]
	}
	if len(b) > 3 {
		c.A = b[3]
	}
	return c
}

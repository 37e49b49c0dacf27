package raster

import "github.com/pkg/errors"

// Image is a rectangular grid of Color values. Width and height are fixed
// at construction; Pixels is height-long, each row width-long.
//
// The decoder that builds an Image transfers ownership to its caller. An
// encoder only ever reads an Image and must not mutate it.
type Image struct {
	Width  int
	Height int
	Pixels [][]Color
}

// NewImage allocates a width x height Image with every pixel defaulted to
// the zero Color (transparent black).
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("raster: invalid dimensions %dx%d", width, height)
	}
	pixels := make([][]Color, height)
	for y := range pixels {
		pixels[y] = make([]Color, width)
	}
	return &Image{Width: width, Height: height, Pixels: pixels}, nil
}

// At returns the pixel at (x, y). Callers must keep x, y in bounds; At does
// not bounds-check, matching the hot-path use from the codecs.
func (img *Image) At(x, y int) Color {
	return img.Pixels[y][x]
}

// Set assigns the pixel at (x, y).
func (img *Image) Set(x, y int, c Color) {
	img.Pixels[y][x] = c
}

// Validate checks the shape invariant: len(Pixels) == Height and every row
// has length Width.
func (img *Image) Validate() error {
	if len(img.Pixels) != img.Height {
		return errors.Errorf("raster: row count %d does not match height %d", len(img.Pixels), img.Height)
	}
	for y, row := range img.Pixels {
		if len(row) != img.Width {
			return errors.Errorf("raster: row %d has length %d, want %d", y, len(row), img.Width)
		}
	}
	return nil
}

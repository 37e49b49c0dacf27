// Package ppm implements the plain ASCII portable-pixmap format (P3): a
// trivial text-based raster format, specified only at its read/write
// boundary (spec.md §6).
package ppm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/XC-Zero/rasterpng/raster"
)

// Read parses a P3 file at path into an Image.
func Read(path string) (*raster.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "ppm: open")
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a P3 stream: a "P3" magic line, a "width height" line, a
// max-value line (parsed but otherwise ignored), then width*height R G B
// triplets in row-major order, whitespace-separated.
func Decode(r io.Reader) (*raster.Image, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	next := func(field string) (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", errors.Wrapf(err, "ppm: reading %s", field)
			}
			return "", errors.Errorf("ppm: unexpected end of file reading %s", field)
		}
		return sc.Text(), nil
	}

	magic, err := next("magic")
	if err != nil {
		return nil, err
	}
	if magic != "P3" {
		return nil, errors.Errorf("ppm: bad magic %q, want P3", magic)
	}

	widthTok, err := next("width")
	if err != nil {
		return nil, err
	}
	width, err := strconv.Atoi(widthTok)
	if err != nil {
		return nil, errors.Wrap(err, "ppm: parse width")
	}
	heightTok, err := next("height")
	if err != nil {
		return nil, err
	}
	height, err := strconv.Atoi(heightTok)
	if err != nil {
		return nil, errors.Wrap(err, "ppm: parse height")
	}

	if _, err := next("max value"); err != nil {
		return nil, err
	}

	img, err := raster.NewImage(width, height)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	readChannel := func() (uint8, error) {
		tok, err := next("channel value")
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, errors.Wrap(err, "ppm: parse channel value")
		}
		return uint8(v), nil
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, err := readChannel()
			if err != nil {
				return nil, err
			}
			g, err := readChannel()
			if err != nil {
				return nil, err
			}
			bch, err := readChannel()
			if err != nil {
				return nil, err
			}
			img.Set(x, y, raster.NewColor(r, g, bch))
		}
	}
	return img, nil
}

// Write serializes img as a P3 file at path.
func Write(img *raster.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "ppm: create")
	}
	defer f.Close()
	return Encode(f, img)
}

// Encode writes img to w as "P3\n<width> <height>\n255\n" followed by the
// R G B decimal values of each row, rows separated by newlines.
func Encode(w io.Writer, img *raster.Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return errors.Wrap(err, "ppm: write header")
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			sep := " "
			if x == img.Width-1 {
				sep = "\n"
			}
			if _, err := fmt.Fprintf(bw, "%d %d %d%s", c.R, c.G, c.B, sep); err != nil {
				return errors.Wrap(err, "ppm: write pixel")
			}
		}
	}
	return bw.Flush()
}

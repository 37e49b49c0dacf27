// Package rasterpng is an image codec library decoding and encoding two
// raster formats — PPM (P3) and PNG — into and out of a uniform in-memory
// Image. See SPEC_FULL.md for the full component breakdown; the hard
// engineering lives in internal/pngcodec.
package rasterpng

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/XC-Zero/rasterpng/internal/ppm"
	"github.com/XC-Zero/rasterpng/internal/pngcodec"
	"github.com/XC-Zero/rasterpng/raster"
)

// Reader decodes a file at path into an Image.
type Reader interface {
	Read(path string) (*raster.Image, error)
}

// Writer serializes an Image to a file at path, and reports the canonical
// extension (without dot) it writes.
type Writer interface {
	Extension() string
	Write(img *raster.Image, path string) error
}

// PNGReader decodes PNG files. Metadata from ancillary chunks (see
// SPEC_FULL.md §9) is discarded by this Reader; use pngcodec.Decode
// directly to retrieve it.
type PNGReader struct{}

// Read implements Reader.
func (PNGReader) Read(path string) (*raster.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "rasterpng: open png")
	}
	defer f.Close()
	img, _, err := pngcodec.Decode(f)
	return img, err
}

// PNGWriter encodes PNG files under the given settings. The zero value
// writes an RGBA PNG (each pixel's alpha kept) with the exhaustive filter-selection
// heuristic (pngcodec.DefaultSettings).
type PNGWriter struct {
	Settings pngcodec.Settings
}

// Extension implements Writer.
func (PNGWriter) Extension() string { return "png" }

// Write implements Writer.
func (w PNGWriter) Write(img *raster.Image, path string) error {
	settings := w.Settings
	if settings.BitDepth == 0 {
		settings = pngcodec.DefaultSettings()
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "rasterpng: create png")
	}
	defer f.Close()
	return pngcodec.Encode(f, img, settings, nil)
}

// PPMReader decodes P3 files.
type PPMReader struct{}

// Read implements Reader.
func (PPMReader) Read(path string) (*raster.Image, error) {
	return ppm.Read(path)
}

// PPMWriter encodes P3 files.
type PPMWriter struct{}

// Extension implements Writer.
func (PPMWriter) Extension() string { return "ppm" }

// Write implements Writer.
func (PPMWriter) Write(img *raster.Image, path string) error {
	return ppm.Write(img, path)
}

// ReaderFor dispatches on path's extension to the matching Reader. No
// global registration table is needed for a two-format codec (spec.md §9
// design note).
func ReaderFor(path string) (Reader, error) {
	switch ext(path) {
	case "png":
		return PNGReader{}, nil
	case "ppm":
		return PPMReader{}, nil
	default:
		return nil, errors.Errorf("rasterpng: no reader for extension %q", ext(path))
	}
}

// WriterFor dispatches on path's extension to the matching Writer, using
// default settings for PNG.
func WriterFor(path string) (Writer, error) {
	switch ext(path) {
	case "png":
		return PNGWriter{Settings: pngcodec.DefaultSettings()}, nil
	case "ppm":
		return PPMWriter{}, nil
	default:
		return nil, errors.Errorf("rasterpng: no writer for extension %q", ext(path))
	}
}

func ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

package pngcodec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"

	"github.com/XC-Zero/rasterpng/raster"
)

// FilterHeuristic selects how the encoder picks a filter type per
// scanline. The spec's reference behavior is the exhaustive deflate
// trial; MinimumSumAbsoluteDifference is the libpng-style approximation
// permitted as a faster drop-in (spec.md §9).
type FilterHeuristic int

const (
	TryAllFiveDeflate FilterHeuristic = iota
	MinimumSumAbsoluteDifference
)

// Settings configures the write path. Only BitDepth 8, a non-Palette
// ColorType, and InterlaceMethod 0 are supported, per spec.md §4.4.
type Settings struct {
	BitDepth        uint8
	ColorType       ColorType
	InterlaceMethod uint8
	FilterHeuristic FilterHeuristic
}

// DefaultSettings returns Settings for an RGBA PNG (each pixel's alpha
// kept) using the exhaustive filter-selection heuristic.
func DefaultSettings() Settings {
	return Settings{BitDepth: 8, ColorType: RGBA, InterlaceMethod: 0, FilterHeuristic: TryAllFiveDeflate}
}

func (s Settings) validate() error {
	if s.BitDepth != 8 {
		return errors.Wrapf(ErrUnsupported, "bit depth %d", s.BitDepth)
	}
	switch s.ColorType {
	case Grayscale, RGB, GrayscaleAlpha, RGBA:
	default:
		return errors.Wrapf(ErrUnsupported, "color type %d on write path", s.ColorType)
	}
	if s.InterlaceMethod != 0 {
		return errors.Wrap(ErrUnsupported, "interlaced writing")
	}
	return nil
}

// Encode serializes img as a PNG into w under the given settings. md may
// be nil; any ancillary chunks it carries are re-emitted before the first
// IDAT.
func Encode(w io.Writer, img *raster.Image, settings Settings, md *Metadata) error {
	if err := settings.validate(); err != nil {
		return err
	}
	if err := img.Validate(); err != nil {
		return errors.WithStack(err)
	}

	bpp := settings.ColorType.channels()
	scanlines := packAndFilter(img, settings.ColorType, bpp, settings.FilterHeuristic)

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(scanlines); err != nil {
		return errors.Wrap(ErrZlibFailure, err.Error())
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(ErrZlibFailure, err.Error())
	}

	if err := writeSignature(w); err != nil {
		return err
	}
	ihdr := IHDR{
		Width:             uint32(img.Width),
		Height:            uint32(img.Height),
		BitDepth:          settings.BitDepth,
		ColorType:         settings.ColorType,
		CompressionMethod: 0,
		FilterMethod:      0,
		InterlaceMethod:   settings.InterlaceMethod,
	}
	if err := writeChunk(w, ChunkIHDR, serializeIHDR(ihdr)); err != nil {
		return err
	}
	if err := writeAncillary(w, md); err != nil {
		return err
	}
	if err := writeChunk(w, ChunkIDAT, compressed.Bytes()); err != nil {
		return err
	}
	if err := writeChunk(w, ChunkIEND, nil); err != nil {
		return err
	}
	return nil
}

// packRow emits the sample bytes for row y per color_type (spec.md §4.4
// step 1). GrayscaleAlpha takes (r, a) from the Color — the R channel is
// used as the luminance source, a known quirk carried forward rather than
// corrected (spec.md §9 open question 3).
func packRow(img *raster.Image, y int, ct ColorType, bpp int) []byte {
	row := make([]byte, img.Width*bpp)
	for x := 0; x < img.Width; x++ {
		c := img.At(x, y)
		off := x * bpp
		switch ct {
		case Grayscale:
			row[off] = c.R
		case RGB:
			row[off], row[off+1], row[off+2] = c.R, c.G, c.B
		case GrayscaleAlpha:
			row[off], row[off+1] = c.R, c.A
		case RGBA:
			row[off], row[off+1], row[off+2], row[off+3] = c.R, c.G, c.B, c.A
		}
	}
	return row
}

// packAndFilter packs every row and selects a filter per row, returning
// the concatenated (filterByte, filteredRow) buffer ready for
// compression.
func packAndFilter(img *raster.Image, ct ColorType, bpp int, heuristic FilterHeuristic) []byte {
	out := make([]byte, 0, img.Height*(1+img.Width*bpp))
	prev := make([]byte, img.Width*bpp)
	for y := 0; y < img.Height; y++ {
		row := packRow(img, y, ct, bpp)
		var ft byte
		var filtered []byte
		if heuristic == MinimumSumAbsoluteDifference {
			ft, filtered = selectFilterMSAD(row, prev, bpp)
		} else {
			ft, filtered = selectFilterDeflate(row, prev, bpp)
		}
		out = append(out, ft)
		out = append(out, filtered...)
		prev = row
	}
	return out
}

// selectFilterDeflate tries all five filter candidates and keeps the one
// whose (filterByte, filteredRow) compresses smallest under a fresh zlib
// stream with default settings. Ties favor the lowest filter-type number
// (spec.md §4.4 step 2).
func selectFilterDeflate(row, prev []byte, bpp int) (byte, []byte) {
	best := -1
	var bestFT byte
	var bestFiltered []byte
	for candidate := byte(0); candidate < nFilter; candidate++ {
		filtered := make([]byte, len(row))
		filterRowAs(candidate, filtered, row, prev, bpp)
		size := trialCompressedSize(candidate, filtered)
		if best < 0 || size < best {
			best = size
			bestFT = candidate
			bestFiltered = filtered
		}
	}
	return bestFT, bestFiltered
}

func trialCompressedSize(ft byte, filtered []byte) int {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, _ = zw.Write([]byte{ft})
	_, _ = zw.Write(filtered)
	_ = zw.Close()
	return buf.Len()
}

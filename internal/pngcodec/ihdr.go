package pngcodec

import "github.com/pkg/errors"

// ColorType is the PNG color-type byte. The on-wire codes are fixed by the
// PNG specification and must not be renumbered.
type ColorType uint8

const (
	Grayscale      ColorType = 0
	RGB            ColorType = 2
	Palette        ColorType = 3
	GrayscaleAlpha ColorType = 4
	RGBA           ColorType = 6
)

// channels returns the number of samples per pixel for c, or 0 for an
// unrecognized color type.
func (c ColorType) channels() int {
	switch c {
	case Grayscale:
		return 1
	case RGB:
		return 3
	case Palette:
		return 1
	case GrayscaleAlpha:
		return 2
	case RGBA:
		return 4
	default:
		return 0
	}
}

// HasAlpha reports whether c carries an explicit alpha sample.
func (c ColorType) HasAlpha() bool {
	return c == GrayscaleAlpha || c == RGBA
}

func (c ColorType) valid() bool {
	return c.channels() != 0
}

// IHDR is the parsed 13-byte image-header payload. It drives every
// downstream layout decision: bytes per pixel, scanline size, whether
// Adam7 reassembly is needed.
type IHDR struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         ColorType
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// BytesPerPixel returns ceil(bit_depth/8) * channels. Only bit_depth == 8
// is supported by this codec; for that case this is simply the channel
// count per spec.md §3.
func (h IHDR) BytesPerPixel() int {
	return ((int(h.BitDepth) + 7) / 8) * h.ColorType.channels()
}

// parseIHDR decodes the fixed 13-byte IHDR payload.
func parseIHDR(data []byte) (IHDR, error) {
	if len(data) != 13 {
		return IHDR{}, errors.Wrapf(ErrShortChunk, "IHDR payload length %d, want 13", len(data))
	}
	h := IHDR{
		Width:             b.Uint32(data[0:4]),
		Height:            b.Uint32(data[4:8]),
		BitDepth:          data[8],
		ColorType:         ColorType(data[9]),
		CompressionMethod: data[10],
		FilterMethod:      data[11],
		InterlaceMethod:   data[12],
	}
	if !h.ColorType.valid() {
		return IHDR{}, errors.Wrapf(ErrBadColorType, "color type code %d", data[9])
	}
	if h.BitDepth != 8 {
		return IHDR{}, errors.Wrapf(ErrUnsupported, "bit depth %d", h.BitDepth)
	}
	if h.CompressionMethod != 0 {
		return IHDR{}, errors.Wrapf(ErrUnsupported, "compression method %d", h.CompressionMethod)
	}
	if h.FilterMethod != 0 {
		return IHDR{}, errors.Wrapf(ErrUnsupported, "filter method %d", h.FilterMethod)
	}
	if h.InterlaceMethod != 0 && h.InterlaceMethod != 1 {
		return IHDR{}, errors.Wrapf(ErrUnsupported, "interlace method %d", h.InterlaceMethod)
	}
	if h.ColorType == Palette {
		// PLTE wiring is left for a future extension; see spec.md §9.
		return IHDR{}, errors.Wrap(ErrUnsupported, "palette color type")
	}
	return h, nil
}

// serializeIHDR packs an IHDR back into its 13-byte wire form.
func serializeIHDR(h IHDR) []byte {
	data := make([]byte, 13)
	b.PutUint32(data[0:4], h.Width)
	b.PutUint32(data[4:8], h.Height)
	data[8] = h.BitDepth
	data[9] = uint8(h.ColorType)
	data[10] = h.CompressionMethod
	data[11] = h.FilterMethod
	data[12] = h.InterlaceMethod
	return data
}

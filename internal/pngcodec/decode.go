package pngcodec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"

	"github.com/XC-Zero/rasterpng/raster"
)

// Decode parses a complete PNG file from r into an Image, plus whatever
// ancillary chunk metadata it carried. Decode reads the whole file into
// memory; there is no streaming/chunked decode (spec.md §1 Non-goals).
func Decode(r io.Reader) (*raster.Image, *Metadata, error) {
	if err := readSignature(r); err != nil {
		return nil, nil, err
	}
	chunks, err := readAllChunks(r)
	if err != nil {
		return nil, nil, err
	}

	var ihdr *IHDR
	var idat bytes.Buffer
	md := &Metadata{}

	for _, c := range chunks {
		switch c.Type {
		case ChunkIHDR:
			if ihdr != nil {
				return nil, nil, errors.New("pngcodec: duplicate IHDR")
			}
			parsed, err := parseIHDR(c.Data)
			if err != nil {
				return nil, nil, err
			}
			ihdr = &parsed
		case ChunkIDAT:
			idat.Write(c.Data)
		case ChunkIEND:
			// Terminator; nothing to do.
		default:
			if err := collectAncillary(md, c); err != nil {
				return nil, nil, err
			}
		}
	}

	if ihdr == nil {
		return nil, nil, errors.WithStack(ErrMissingIHDR)
	}
	if idat.Len() == 0 {
		return nil, nil, errors.New("pngcodec: no IDAT chunk present")
	}

	scanlines, err := inflate(idat.Bytes())
	if err != nil {
		return nil, nil, err
	}

	img, err := raster.NewImage(int(ihdr.Width), int(ihdr.Height))
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	bpp := ihdr.BytesPerPixel()
	if ihdr.InterlaceMethod == 1 {
		if err := placeAdam7(img, scanlines, bpp, ihdr.ColorType); err != nil {
			return nil, nil, err
		}
	} else {
		if err := placeNonInterlaced(img, scanlines, bpp, ihdr.ColorType); err != nil {
			return nil, nil, err
		}
	}

	return img, md, nil
}

// inflate decompresses the concatenated IDAT payload into the raw
// filtered-scanline stream.
func inflate(z []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(z))
	if err != nil {
		return nil, errors.Wrap(ErrZlibFailure, err.Error())
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrap(ErrZlibFailure, err.Error())
	}
	return out, nil
}

// samplesToColor maps bpp raw sample bytes to a Color per color_type, as
// specified in spec.md §4.3 step 5.
func samplesToColor(ct ColorType, samples []byte) raster.Color {
	switch ct {
	case RGB:
		return raster.Color{R: samples[0], G: samples[1], B: samples[2], A: 255}
	case RGBA:
		return raster.Color{R: samples[0], G: samples[1], B: samples[2], A: samples[3]}
	case Grayscale:
		v := samples[0]
		return raster.Color{R: v, G: v, B: v, A: 255}
	case GrayscaleAlpha:
		v := samples[0]
		return raster.Color{R: v, G: v, B: v, A: samples[1]}
	default:
		return raster.Color{}
	}
}

// placeNonInterlaced de-filters and places height scanlines of
// 1+width*bpp bytes each directly into rows of img.
func placeNonInterlaced(img *raster.Image, s []byte, bpp int, ct ColorType) error {
	width, height := img.Width, img.Height
	rowSize := 1 + width*bpp
	prev := make([]byte, width*bpp)

	offset := 0
	for y := 0; y < height; y++ {
		if offset+rowSize > len(s) {
			return errors.WithStack(ErrTruncatedPixelStream)
		}
		ft := s[offset]
		cur := make([]byte, width*bpp)
		copy(cur, s[offset+1:offset+rowSize])
		if err := unfilterRow(ft, cur, prev, bpp); err != nil {
			return err
		}
		for x := 0; x < width; x++ {
			img.Set(x, y, samplesToColor(ct, cur[x*bpp:x*bpp+bpp]))
		}
		prev = cur
		offset += rowSize
	}
	return nil
}

// placeAdam7 de-filters and places each of the seven Adam7 sub-images at
// its interlaced coordinates. The previous-scanline reference resets at
// every pass boundary — carrying it across passes is a bug this codec
// must avoid (spec.md §9 design note).
func placeAdam7(img *raster.Image, s []byte, bpp int, ct ColorType) error {
	width, height := img.Width, img.Height
	offset := 0
	for _, pass := range adam7Passes {
		pw, ph := pass.dims(width, height)
		if pw == 0 || ph == 0 {
			continue
		}
		rowSize := 1 + pw*bpp
		prev := make([]byte, pw*bpp)
		for py := 0; py < ph; py++ {
			if offset+rowSize > len(s) {
				return errors.WithStack(ErrTruncatedPixelStream)
			}
			ft := s[offset]
			cur := make([]byte, pw*bpp)
			copy(cur, s[offset+1:offset+rowSize])
			if err := unfilterRow(ft, cur, prev, bpp); err != nil {
				return err
			}
			outY := pass.yStart + py*pass.yStep
			for px := 0; px < pw; px++ {
				outX := pass.xStart + px*pass.xStep
				if outX >= width || outY >= height {
					continue
				}
				img.Set(outX, outY, samplesToColor(ct, cur[px*bpp:px*bpp+bpp]))
			}
			prev = cur
			offset += rowSize
		}
	}
	return nil
}

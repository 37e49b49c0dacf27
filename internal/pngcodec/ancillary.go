package pngcodec

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

// TextChunk is a decoded tEXt chunk: an uncompressed Latin-1 key/value
// pair.
type TextChunk struct {
	Keyword string
	Text    string
}

// CompressedTextChunk is a decoded zTXt chunk: a Latin-1 key/value pair
// whose value was zlib-compressed on the wire.
type CompressedTextChunk struct {
	Keyword string
	Text    string
}

// TimeChunk is a decoded tIME chunk.
type TimeChunk struct {
	Year   uint16
	Month  uint8
	Day    uint8
	Hour   uint8
	Minute uint8
	Second uint8
}

// AsTime converts t to a UTC time.Time.
func (t TimeChunk) AsTime() time.Time {
	return time.Date(int(t.Year), time.Month(t.Month), int(t.Day), int(t.Hour), int(t.Minute), int(t.Second), 0, time.UTC)
}

// PhysicalDimensions is a decoded pHYs chunk.
type PhysicalDimensions struct {
	X             uint32
	Y             uint32
	UnitSpecifier uint8
}

// RawChunk preserves an ancillary chunk this codec does not interpret,
// so it can be re-emitted byte-for-byte on encode.
type RawChunk struct {
	Type ChunkType
	Data []byte
}

// Metadata carries everything decoded from a PNG's ancillary chunks. The
// zero value means "no metadata" and is always a valid encode input.
type Metadata struct {
	Text       []TextChunk
	ZText      []CompressedTextChunk
	Time       *TimeChunk
	Dimensions *PhysicalDimensions
	Raw        []RawChunk
}

const nullSep = "\x00"

func parseText(data []byte) (TextChunk, error) {
	parts := strings.SplitN(string(data), nullSep, 2)
	if len(parts) != 2 {
		return TextChunk{}, errors.New("pngcodec: malformed tEXt chunk")
	}
	return TextChunk{Keyword: parts[0], Text: parts[1]}, nil
}

func parseZText(data []byte) (CompressedTextChunk, error) {
	idx := bytes.IndexByte(data, 0)
	if idx < 0 || idx+1 >= len(data) {
		return CompressedTextChunk{}, errors.New("pngcodec: malformed zTXt chunk")
	}
	keyword := string(data[:idx])
	compressionMethod := data[idx+1]
	if compressionMethod != 0 {
		return CompressedTextChunk{}, errors.Wrapf(ErrUnsupported, "zTXt compression method %d", compressionMethod)
	}
	zr, err := zlib.NewReader(bytes.NewReader(data[idx+2:]))
	if err != nil {
		return CompressedTextChunk{}, errors.Wrap(ErrZlibFailure, err.Error())
	}
	defer zr.Close()
	text, err := io.ReadAll(zr)
	if err != nil {
		return CompressedTextChunk{}, errors.Wrap(ErrZlibFailure, err.Error())
	}
	return CompressedTextChunk{Keyword: keyword, Text: string(text)}, nil
}

func parseTime(data []byte) (TimeChunk, error) {
	if len(data) != 7 {
		return TimeChunk{}, errors.Wrapf(ErrShortChunk, "tIME payload length %d, want 7", len(data))
	}
	return TimeChunk{
		Year:   b.Uint16(data[0:2]),
		Month:  data[2],
		Day:    data[3],
		Hour:   data[4],
		Minute: data[5],
		Second: data[6],
	}, nil
}

func serializeTime(t TimeChunk) []byte {
	data := make([]byte, 7)
	b.PutUint16(data[0:2], t.Year)
	data[2] = t.Month
	data[3] = t.Day
	data[4] = t.Hour
	data[5] = t.Minute
	data[6] = t.Second
	return data
}

func parsePhys(data []byte) (PhysicalDimensions, error) {
	if len(data) != 9 {
		return PhysicalDimensions{}, errors.Wrapf(ErrShortChunk, "pHYs payload length %d, want 9", len(data))
	}
	return PhysicalDimensions{
		X:             b.Uint32(data[0:4]),
		Y:             b.Uint32(data[4:8]),
		UnitSpecifier: data[8],
	}, nil
}

func serializePhys(p PhysicalDimensions) []byte {
	data := make([]byte, 9)
	b.PutUint32(data[0:4], p.X)
	b.PutUint32(data[4:8], p.Y)
	data[8] = p.UnitSpecifier
	return data
}

// collectAncillary classifies a non-IHDR/IDAT/IEND chunk into md,
// recognizing tEXt/zTXt/tIME/pHYs and preserving everything else (PLTE
// included) opaquely in md.Raw.
func collectAncillary(md *Metadata, c *Chunk) error {
	switch c.Type {
	case ChunkTEXT:
		t, err := parseText(c.Data)
		if err != nil {
			return err
		}
		md.Text = append(md.Text, t)
	case ChunkZTXT:
		t, err := parseZText(c.Data)
		if err != nil {
			return err
		}
		md.ZText = append(md.ZText, t)
	case ChunkTIME:
		t, err := parseTime(c.Data)
		if err != nil {
			return err
		}
		md.Time = &t
	case ChunkPHYS:
		p, err := parsePhys(c.Data)
		if err != nil {
			return err
		}
		md.Dimensions = &p
	default:
		data := make([]byte, len(c.Data))
		copy(data, c.Data)
		md.Raw = append(md.Raw, RawChunk{Type: c.Type, Data: data})
	}
	return nil
}

// writeAncillary emits every chunk recorded in md, in the order tEXt,
// zTXt, tIME, pHYs, then opaque Raw chunks — all of which must precede
// the first IDAT.
func writeAncillary(w io.Writer, md *Metadata) error {
	if md == nil {
		return nil
	}
	for _, t := range md.Text {
		data := append([]byte(t.Keyword), 0)
		data = append(data, []byte(t.Text)...)
		if err := writeChunk(w, ChunkTEXT, data); err != nil {
			return err
		}
	}
	for _, t := range md.ZText {
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write([]byte(t.Text)); err != nil {
			return errors.Wrap(ErrZlibFailure, err.Error())
		}
		if err := zw.Close(); err != nil {
			return errors.Wrap(ErrZlibFailure, err.Error())
		}
		data := append([]byte(t.Keyword), 0, 0)
		data = append(data, buf.Bytes()...)
		if err := writeChunk(w, ChunkZTXT, data); err != nil {
			return err
		}
	}
	if md.Time != nil {
		if err := writeChunk(w, ChunkTIME, serializeTime(*md.Time)); err != nil {
			return err
		}
	}
	if md.Dimensions != nil {
		if err := writeChunk(w, ChunkPHYS, serializePhys(*md.Dimensions)); err != nil {
			return err
		}
	}
	for _, raw := range md.Raw {
		if err := writeChunk(w, raw.Type, raw.Data); err != nil {
			return err
		}
	}
	return nil
}

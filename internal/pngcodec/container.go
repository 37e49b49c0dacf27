// Package pngcodec implements the PNG container, the IHDR payload, the
// Adam7 interlacing layout, the five scanline filters, and the decode/
// encode pipelines built on top of them.
package pngcodec

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"github.com/snksoft/crc"
)

var b binary.ByteOrder = binary.BigEndian

// Signature is the eight-byte prefix every PNG file begins with.
var Signature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// ChunkType is the four-ASCII-byte chunk tag. The closed set of tags this
// codec assigns meaning to are exported as constants below; any other tag
// round-trips as an opaque value (the "Other(fourcc)" case from the data
// model).
type ChunkType string

const (
	ChunkIHDR ChunkType = "IHDR"
	ChunkPLTE ChunkType = "PLTE"
	ChunkIDAT ChunkType = "IDAT"
	ChunkIEND ChunkType = "IEND"

	// Ancillary chunks this codec parses into typed Metadata (see
	// SUPPLEMENTED FEATURES in SPEC_FULL.md) without acting on their
	// semantics.
	ChunkTEXT ChunkType = "tEXt"
	ChunkZTXT ChunkType = "zTXt"
	ChunkTIME ChunkType = "tIME"
	ChunkPHYS ChunkType = "pHYs"
)

// Chunk is the on-wire record: length, type, payload and CRC.
type Chunk struct {
	Length uint32
	Type   ChunkType
	Data   []byte
	CRC    uint32
}

// VerifyChecksum is set by callers that want CRC-32/ISO-HDLC enforced on
// read. The reference behavior (spec.md §4.1, §9 open question 1) reads
// the CRC but does not verify it by default.
var VerifyChecksum = false

// crcOf computes CRC-32/ISO-HDLC over type||data, matching the write
// contract in spec.md §4.1.
func crcOf(typ ChunkType, data []byte) uint32 {
	buf := make([]byte, 0, 4+len(data))
	buf = append(buf, []byte(typ)...)
	buf = append(buf, data...)
	return uint32(crc.CalculateCRC(crc.CRC32, buf))
}

// readSignature consumes the eight-byte PNG magic and fails with
// ErrBadSignature on any mismatch or short read.
func readSignature(r io.Reader) error {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return errors.Wrap(ErrBadSignature, err.Error())
	}
	if !bytes.Equal(sig[:], Signature) {
		return errors.WithStack(ErrBadSignature)
	}
	return nil
}

// writeSignature emits the eight-byte PNG magic.
func writeSignature(w io.Writer) error {
	_, err := w.Write(Signature)
	return errors.Wrap(err, "pngcodec: write signature")
}

// readChunk reads one length-prefixed, CRC-suffixed chunk. It fails with
// ErrShortChunk if the stream ends before length+4 type+4 crc bytes are
// available.
func readChunk(r io.Reader) (*Chunk, error) {
	var head [8]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, errors.Wrap(ErrShortChunk, err.Error())
	}
	length := b.Uint32(head[0:4])
	typ := ChunkType(head[4:8])

	data := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, errors.Wrap(ErrShortChunk, err.Error())
		}
	}

	var crcBuf [4]byte
	if _, err := io.ReadFull(r, crcBuf[:]); err != nil {
		return nil, errors.Wrap(ErrShortChunk, err.Error())
	}
	storedCRC := b.Uint32(crcBuf[:])

	if VerifyChecksum {
		if want := crcOf(typ, data); want != storedCRC {
			return nil, errors.Wrapf(ErrCrcMismatch, "chunk %s: stored %08x, computed %08x", typ, storedCRC, want)
		}
	}

	return &Chunk{Length: length, Type: typ, Data: data, CRC: storedCRC}, nil
}

// writeChunk serializes one chunk: length, type, data, then a freshly
// computed CRC-32/ISO-HDLC over type||data.
func writeChunk(w io.Writer, typ ChunkType, data []byte) error {
	var head [8]byte
	b.PutUint32(head[0:4], uint32(len(data)))
	copy(head[4:8], typ)
	if _, err := w.Write(head[:]); err != nil {
		return errors.Wrap(err, "pngcodec: write chunk header")
	}
	if len(data) > 0 {
		if _, err := w.Write(data); err != nil {
			return errors.Wrap(err, "pngcodec: write chunk data")
		}
	}
	var crcBuf [4]byte
	b.PutUint32(crcBuf[:], crcOf(typ, data))
	if _, err := w.Write(crcBuf[:]); err != nil {
		return errors.Wrap(err, "pngcodec: write chunk crc")
	}
	return nil
}

// readAllChunks reads chunks from r until (and including) IEND.
func readAllChunks(r io.Reader) ([]*Chunk, error) {
	var chunks []*Chunk
	for {
		c, err := readChunk(r)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
		if c.Type == ChunkIEND {
			return chunks, nil
		}
	}
}

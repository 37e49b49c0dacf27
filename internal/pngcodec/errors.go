package pngcodec

import "github.com/pkg/errors"

// Sentinel errors matching the taxonomy in the PNG codec specification.
// Wrapped with errors.Wrap/errors.WithStack at each call site so callers
// can still recover the sentinel via errors.Is.
var (
	ErrBadSignature         = errors.New("pngcodec: bad signature")
	ErrShortChunk           = errors.New("pngcodec: short chunk")
	ErrMissingIHDR          = errors.New("pngcodec: missing IHDR")
	ErrBadColorType         = errors.New("pngcodec: bad color type")
	ErrUnsupported          = errors.New("pngcodec: unsupported feature")
	ErrZlibFailure          = errors.New("pngcodec: zlib failure")
	ErrBadFilterType        = errors.New("pngcodec: bad filter type")
	ErrTruncatedPixelStream = errors.New("pngcodec: truncated pixel stream")
	ErrCrcMismatch          = errors.New("pngcodec: crc mismatch")
)

package pngcodec

import "github.com/pkg/errors"

// Filter type bytes, as per the PNG spec.
const (
	ftNone    = 0
	ftSub     = 1
	ftUp      = 2
	ftAverage = 3
	ftPaeth   = 4
	nFilter   = 5
)

// paeth is the three-neighbor predictor: the neighbor closest to a+b-c
// wins, with a preferred on ties against b, and b preferred on ties
// against c.
func paeth(a, b, c uint8) uint8 {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	switch {
	case pa <= pb && pa <= pc:
		return a
	case pb <= pc:
		return b
	default:
		return c
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// abs8 is the absolute value of a byte interpreted as a signed delta,
// used by the MSAD filter heuristic.
func abs8(d uint8) int {
	if d < 128 {
		return int(d)
	}
	return 256 - int(d)
}

// unfilterRow reverses filter type ft in place over cur, using prev (the
// previous unfiltered scanline within the same Adam7 pass, or an all-zero
// row for the first scanline of a pass) and bpp bytes per pixel.
func unfilterRow(ft byte, cur, prev []byte, bpp int) error {
	switch ft {
	case ftNone:
		// No-op.
	case ftSub:
		for i := bpp; i < len(cur); i++ {
			cur[i] += cur[i-bpp]
		}
	case ftUp:
		for i := range cur {
			cur[i] += prev[i]
		}
	case ftAverage:
		for i := 0; i < bpp && i < len(cur); i++ {
			cur[i] += prev[i] / 2
		}
		for i := bpp; i < len(cur); i++ {
			cur[i] += uint8((int(cur[i-bpp]) + int(prev[i])) / 2)
		}
	case ftPaeth:
		for i := 0; i < bpp && i < len(cur); i++ {
			cur[i] += paeth(0, prev[i], 0)
		}
		for i := bpp; i < len(cur); i++ {
			cur[i] += paeth(cur[i-bpp], prev[i], prev[i-bpp])
		}
	default:
		return errors.Wrapf(ErrBadFilterType, "filter type %d", ft)
	}
	return nil
}

// filterRowAs applies filter type ft to row (using prev as the previous
// unfiltered scanline), writing the result into dst. dst must be the same
// length as row.
func filterRowAs(ft byte, dst, row, prev []byte, bpp int) {
	switch ft {
	case ftNone:
		copy(dst, row)
	case ftSub:
		for i, x := range row {
			var a byte
			if i >= bpp {
				a = row[i-bpp]
			}
			dst[i] = x - a
		}
	case ftUp:
		for i, x := range row {
			dst[i] = x - prev[i]
		}
	case ftAverage:
		for i, x := range row {
			var a int
			if i >= bpp {
				a = int(row[i-bpp])
			}
			dst[i] = x - uint8((a+int(prev[i]))/2)
		}
	case ftPaeth:
		for i, x := range row {
			var a, c byte
			if i >= bpp {
				a = row[i-bpp]
				c = prev[i-bpp]
			}
			dst[i] = x - paeth(a, prev[i], c)
		}
	}
}

// selectFilterMSAD picks the filter type that minimizes the sum of
// absolute signed byte values of the filtered row, the same heuristic
// libpng defaults to. It is the settings-flag alternative the spec (§9)
// permits in place of the exhaustive per-row deflate trial.
func selectFilterMSAD(row, prev []byte, bpp int) (ft byte, filtered []byte) {
	var scratch [nFilter][]byte
	for i := range scratch {
		scratch[i] = make([]byte, len(row))
	}
	best := -1
	var bestFT byte
	for candidate := byte(0); candidate < nFilter; candidate++ {
		filterRowAs(candidate, scratch[candidate], row, prev, bpp)
		sum := 0
		for _, v := range scratch[candidate] {
			sum += abs8(v)
			if best >= 0 && sum >= best {
				break
			}
		}
		if best < 0 || sum < best {
			best = sum
			bestFT = candidate
		}
	}
	return bestFT, scratch[bestFT]
}

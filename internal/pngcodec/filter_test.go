package pngcodec

import (
	"math/rand"
	"testing"
)

func TestPaeth(t *testing.T) {
	cases := []struct {
		a, b, c, want uint8
	}{
		{10, 20, 15, 15},
		{0, 0, 0, 0},
		{200, 100, 150, 150},
	}
	for _, c := range cases {
		if got := paeth(c.a, c.b, c.c); got != c.want {
			t.Errorf("paeth(%d,%d,%d) = %d, want %d", c.a, c.b, c.c, got, c.want)
		}
	}
}

func TestPaethSymmetryOnEquals(t *testing.T) {
	for x := 0; x < 256; x++ {
		if got := paeth(uint8(x), uint8(x), uint8(x)); got != uint8(x) {
			t.Fatalf("paeth(%d,%d,%d) = %d, want %d", x, x, x, got, x)
		}
	}
}

func TestFilterSubEncode(t *testing.T) {
	row := []byte{10, 20, 30, 40}
	prev := make([]byte, len(row))
	filtered := make([]byte, len(row))
	filterRowAs(ftSub, filtered, row, prev, 1)
	want := []byte{10, 10, 10, 10}
	for i := range want {
		if filtered[i] != want[i] {
			t.Fatalf("sub filter byte %d = %d, want %d", i, filtered[i], want[i])
		}
	}
}

func TestFilterUpDecode(t *testing.T) {
	cur := []byte{5, 5, 5}
	prev := []byte{10, 20, 30}
	if err := unfilterRow(ftUp, cur, prev, 1); err != nil {
		t.Fatal(err)
	}
	want := []byte{15, 25, 35}
	for i := range want {
		if cur[i] != want[i] {
			t.Fatalf("up-decoded byte %d = %d, want %d", i, cur[i], want[i])
		}
	}
}

func TestFilterRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, bpp := range []int{1, 2, 3, 4} {
		for ft := byte(0); ft < nFilter; ft++ {
			row := make([]byte, bpp*6)
			prev := make([]byte, bpp*6)
			rng.Read(row)
			rng.Read(prev)

			filtered := make([]byte, len(row))
			filterRowAs(ft, filtered, row, prev, bpp)

			recovered := make([]byte, len(filtered))
			copy(recovered, filtered)
			if err := unfilterRow(ft, recovered, prev, bpp); err != nil {
				t.Fatalf("bpp=%d ft=%d: %v", bpp, ft, err)
			}
			for i := range row {
				if recovered[i] != row[i] {
					t.Fatalf("bpp=%d ft=%d byte %d: got %d, want %d", bpp, ft, i, recovered[i], row[i])
				}
			}
		}
	}
}

func TestUnfilterRowBadFilterType(t *testing.T) {
	cur := []byte{1, 2, 3}
	prev := []byte{0, 0, 0}
	if err := unfilterRow(5, cur, prev, 1); err == nil {
		t.Fatal("expected an error for an out-of-range filter type")
	}
}

func TestSelectFilterMSADTieBreaksLow(t *testing.T) {
	// An all-zero row filters to all zeros under every filter type, so the
	// lowest filter number (None) must win the tie.
	row := make([]byte, 8)
	prev := make([]byte, 8)
	ft, _ := selectFilterMSAD(row, prev, 2)
	if ft != ftNone {
		t.Fatalf("filter = %d, want ftNone on an all-zero tie", ft)
	}
}

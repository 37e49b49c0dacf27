package raster

import "testing"

func TestNewColorDefaultsOpaque(t *testing.T) {
	c := NewColor(1, 2, 3)
	if c.A != 255 {
		t.Fatalf("alpha = %d, want 255", c.A)
	}
}

func TestNewColorFromBytesShortSlices(t *testing.T) {
	cases := []struct {
		in   []byte
		want Color
	}{
		{nil, Color{0, 0, 0, 255}},
		{[]byte{9}, Color{9, 0, 0, 255}},
		{[]byte{9, 8}, Color{9, 8, 0, 255}},
		{[]byte{9, 8, 7}, Color{9, 8, 7, 255}},
		{[]byte{9, 8, 7, 6}, Color{9, 8, 7, 6}},
	}
	for _, c := range cases {
		if got := NewColorFromBytes(c.in); got != c.want {
			t.Errorf("NewColorFromBytes(%v) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

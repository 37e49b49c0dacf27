package raster

import "testing"

func TestNewImageShape(t *testing.T) {
	img, err := NewImage(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := img.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(img.Pixels) != 2 || len(img.Pixels[0]) != 3 {
		t.Fatalf("shape = %dx%d, want 2 rows of 3", len(img.Pixels), len(img.Pixels[0]))
	}
}

func TestNewImageRejectsNonPositiveDimensions(t *testing.T) {
	if _, err := NewImage(0, 5); err == nil {
		t.Fatal("expected an error for zero width")
	}
	if _, err := NewImage(5, -1); err == nil {
		t.Fatal("expected an error for negative height")
	}
}

func TestValidateCatchesShapeViolation(t *testing.T) {
	img, err := NewImage(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	img.Pixels = img.Pixels[:1]
	if err := img.Validate(); err == nil {
		t.Fatal("expected Validate to catch a truncated row set")
	}
}

func TestSetAt(t *testing.T) {
	img, err := NewImage(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	c := Color{R: 1, G: 2, B: 3, A: 4}
	img.Set(1, 0, c)
	if got := img.At(1, 0); got != c {
		t.Fatalf("At(1,0) = %+v, want %+v", got, c)
	}
}

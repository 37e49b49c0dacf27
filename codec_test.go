package rasterpng

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReaderForWriterForDispatch(t *testing.T) {
	if _, err := ReaderFor("photo.PNG"); err != nil {
		t.Fatalf("expected a PNG reader for a .PNG path: %v", err)
	}
	if _, err := WriterFor("photo.ppm"); err != nil {
		t.Fatalf("expected a PPM writer for a .ppm path: %v", err)
	}
	if _, err := ReaderFor("photo.bmp"); err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
}

func TestPPMToPNGToPPMRoundTrip(t *testing.T) {
	const body = "P3\n3 2\n255\n" +
		"255 0 0  0 255 0  0 0 255  255 255 0  0 255 255  255 0 255"

	dir := t.TempDir()
	ppmPath := filepath.Join(dir, "in.ppm")
	if err := os.WriteFile(ppmPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	direct, err := PPMReader{}.Read(ppmPath)
	if err != nil {
		t.Fatal(err)
	}

	pngPath := filepath.Join(dir, "out.png")
	if err := (PNGWriter{}).Write(direct, pngPath); err != nil {
		t.Fatal(err)
	}
	viaPNG, err := PNGReader{}.Read(pngPath)
	if err != nil {
		t.Fatal(err)
	}

	roundTripPPMPath := filepath.Join(dir, "out.ppm")
	if err := (PPMWriter{}).Write(viaPNG, roundTripPPMPath); err != nil {
		t.Fatal(err)
	}
	final, err := PPMReader{}.Read(roundTripPPMPath)
	if err != nil {
		t.Fatal(err)
	}

	for y := 0; y < direct.Height; y++ {
		for x := 0; x < direct.Width; x++ {
			if final.At(x, y) != direct.At(x, y) {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, final.At(x, y), direct.At(x, y))
			}
		}
	}
}

func TestExtHandlesPathsWithoutDots(t *testing.T) {
	if got := ext("noextension"); got != "" {
		t.Fatalf("ext(%q) = %q, want empty", "noextension", got)
	}
	if got := ext(strings.ToUpper("img.PNG")); got != "png" {
		t.Fatalf("ext = %q, want png", got)
	}
}

// Command imgconv converts between the raster formats this module
// supports (PNG, PPM), dispatching on file extension.
package main

import (
	"flag"
	"log"

	"github.com/XC-Zero/rasterpng"
	"github.com/XC-Zero/rasterpng/internal/pngcodec"
)

func main() {
	var (
		in         string
		out        string
		strictCRC  bool
		fastFilter bool
	)
	flag.StringVar(&in, "in", "", "input image path (.png or .ppm)")
	flag.StringVar(&out, "out", "", "output image path (.png or .ppm)")
	flag.BoolVar(&strictCRC, "strict-crc", false, "verify chunk CRC-32 on PNG read")
	flag.BoolVar(&fastFilter, "filter-heuristic", false, "use the minimum-sum-of-absolute-differences filter heuristic instead of the exhaustive deflate trial")
	flag.Parse()

	if in == "" || out == "" {
		log.Fatal("imgconv: both -in and -out are required")
	}

	pngcodec.VerifyChecksum = strictCRC

	reader, err := rasterpng.ReaderFor(in)
	if err != nil {
		log.Fatal(err)
	}
	img, err := reader.Read(in)
	if err != nil {
		log.Fatalf("imgconv: decode %s: %v", in, err)
	}
	log.Printf("decoded %s: %dx%d", in, img.Width, img.Height)

	writer, err := rasterpng.WriterFor(out)
	if err != nil {
		log.Fatal(err)
	}
	if pw, ok := writer.(rasterpng.PNGWriter); ok && fastFilter {
		pw.Settings.FilterHeuristic = pngcodec.MinimumSumAbsoluteDifference
		writer = pw
	}
	if err := writer.Write(img, out); err != nil {
		log.Fatalf("imgconv: encode %s: %v", out, err)
	}
	log.Printf("wrote %s", out)
}

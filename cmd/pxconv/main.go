// pxconv converts raw pixel buffers between pixel formats and pipes
// bytes through one of the registered streaming compression
// algorithms.
//
// Usage:
//
//	pxconv convert -src <format> -dst <format> -width <n> -height <n> infile outfile
//	pxconv compress -algorithm <id> [-budget <seconds>] infile outfile
//	pxconv decompress -algorithm <id> infile outfile
//	pxconv list
//
// Options:
//
//	-src, -dst     pixel format tag, e.g. R8_G8_B8_A8_Unsigned
//	-width, -height  bitmap dimensions in pixels
//	-algorithm     8-byte compression algorithm id, e.g. DFLT0002
//	-budget        time budget in seconds for -algorithm=auto (default 1.0)
//	-h, -help      show usage information
//	-version       show version information
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Cygon/nuclex-pixelstorage-go/compression"
	"github.com/Cygon/nuclex-pixelstorage-go/pixelformat"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "convert":
		err = runConvert(os.Args[2:])
	case "compress":
		err = runCompress(os.Args[2:])
	case "decompress":
		err = runDecompress(os.Args[2:])
	case "list":
		runList()
	case "-h", "-help", "--help":
		printUsage()
		os.Exit(0)
	case "-version", "--version":
		fmt.Printf("pxconv version %s\n", version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "pxconv:", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  pxconv convert -src <format> -dst <format> -width <n> -height <n> infile outfile\n")
	fmt.Fprintf(os.Stderr, "  pxconv compress -algorithm <id> infile outfile\n")
	fmt.Fprintf(os.Stderr, "  pxconv decompress -algorithm <id> infile outfile\n")
	fmt.Fprintf(os.Stderr, "  pxconv list\n")
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	src := fs.String("src", "", "source pixel format")
	dst := fs.String("dst", "", "destination pixel format")
	width := fs.Int("width", 0, "bitmap width in pixels")
	height := fs.Int("height", 0, "bitmap height in pixels")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pxconv convert -src <format> -dst <format> -width <n> -height <n> infile outfile\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 || *width <= 0 || *height <= 0 {
		fs.Usage()
		os.Exit(2)
	}

	srcFormat, err := lookupFormat(*src)
	if err != nil {
		return err
	}
	dstFormat, err := lookupFormat(*dst)
	if err != nil {
		return err
	}

	srcBytesPerPixel, err := pixelformat.BytesPerPixel(srcFormat)
	if err != nil {
		return err
	}
	dstBytesPerPixel, err := pixelformat.BytesPerPixel(dstFormat)
	if err != nil {
		return err
	}

	input, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	wantLen := *width * srcBytesPerPixel * *height
	if len(input) < wantLen {
		return fmt.Errorf("input is %d bytes, need at least %d for a %dx%d %s bitmap", len(input), wantLen, *width, *height, *src)
	}

	source := pixelformat.BitmapMemory{
		Pixels:      input,
		Width:       *width,
		Height:      *height,
		Stride:      *width * srcBytesPerPixel,
		PixelFormat: srcFormat,
	}
	target := pixelformat.BitmapMemory{
		Pixels:      make([]byte, *width**height*dstBytesPerPixel),
		Width:       *width,
		Height:      *height,
		Stride:      *width * dstBytesPerPixel,
		PixelFormat: dstFormat,
	}
	if err := pixelformat.ConvertBitmap(source, target); err != nil {
		return err
	}
	return os.WriteFile(fs.Arg(1), target.Pixels, 0644)
}

func runCompress(args []string) error {
	fs := flag.NewFlagSet("compress", flag.ExitOnError)
	algorithmID := fs.String("algorithm", "", "compression algorithm id, e.g. DFLT0002")
	budget := fs.Float64("budget", 1.0, "time budget in seconds when -algorithm=auto")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pxconv compress -algorithm <id> infile outfile\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 || *algorithmID == "" {
		fs.Usage()
		os.Exit(2)
	}

	input, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	provider := compression.NewProvider()
	algorithm, err := resolveAlgorithm(provider, *algorithmID, len(input), *budget)
	if err != nil {
		return err
	}

	out, err := os.Create(fs.Arg(1))
	if err != nil {
		return err
	}
	defer out.Close()
	return streamCompress(algorithm.NewCompressor(), input, out)
}

func runDecompress(args []string) error {
	fs := flag.NewFlagSet("decompress", flag.ExitOnError)
	algorithmID := fs.String("algorithm", "", "compression algorithm id, e.g. DFLT0002")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pxconv decompress -algorithm <id> infile outfile\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 || *algorithmID == "" {
		fs.Usage()
		os.Exit(2)
	}

	provider := compression.NewProvider()
	algorithm, err := provider.Get(compression.ID(*algorithmID))
	if err != nil {
		return err
	}

	input, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	out, err := os.Create(fs.Arg(1))
	if err != nil {
		return err
	}
	defer out.Close()
	return streamDecompress(algorithm.NewDecompressor(), input, out)
}

func runList() {
	provider := compression.NewProvider()
	for i := 0; i < provider.Count(); i++ {
		alg, err := provider.GetByIndex(i)
		if err != nil {
			continue
		}
		experimental := ""
		if alg.IsExperimental {
			experimental = " (experimental)"
		}
		fmt.Printf("%-10s %-24s cycles/KB=%-8.1f ratio=%.2f%s\n",
			alg.ID, alg.Name, alg.AverageCyclesPerKilobyte, alg.AverageCompressionRatio, experimental)
	}
}

// resolveAlgorithm treats the special id "auto" as a request to pick
// the strongest algorithm meeting the given time budget for
// inputSize bytes of uncompressed data (CompressionProvider.GetOptimal).
// Any other id is looked up directly.
func resolveAlgorithm(provider *compression.Provider, id string, inputSize int, budget float64) (compression.Algorithm, error) {
	if id == "auto" {
		return provider.GetOptimal(inputSize, budget)
	}
	return provider.Get(compression.ID(id))
}

const ioChunkSize = 64 * 1024

func streamCompress(c compression.Compressor, input []byte, out io.Writer) error {
	buffer := make([]byte, ioChunkSize)
	remaining := input
	for len(remaining) > 0 {
		inputLen := len(remaining)
		outputLen := 0
		reason, err := c.Process(remaining, &inputLen, buffer, &outputLen)
		if err != nil {
			return err
		}
		if _, err := out.Write(buffer[:outputLen]); err != nil {
			return err
		}
		remaining = remaining[len(remaining)-inputLen:]
		_ = reason
	}
	for {
		outputLen := 0
		reason, err := c.Finish(buffer, &outputLen)
		if err != nil {
			return err
		}
		if _, err := out.Write(buffer[:outputLen]); err != nil {
			return err
		}
		if reason == compression.Finished {
			return nil
		}
	}
}

func streamDecompress(d compression.Decompressor, input []byte, out io.Writer) error {
	buffer := make([]byte, ioChunkSize)
	remaining := input
	for len(remaining) > 0 {
		inputLen := len(remaining)
		outputLen := 0
		reason, err := d.Process(remaining, &inputLen, buffer, &outputLen)
		if err != nil {
			return err
		}
		if _, err := out.Write(buffer[:outputLen]); err != nil {
			return err
		}
		remaining = remaining[len(remaining)-inputLen:]
		_ = reason
	}
	for {
		outputLen := 0
		reason, err := d.Finish(buffer, &outputLen)
		if err != nil {
			return err
		}
		if _, err := out.Write(buffer[:outputLen]); err != nil {
			return err
		}
		if reason == compression.Finished {
			return nil
		}
	}
}

// formatNames maps the CLI's flag spelling to the pixelformat package's
// closed set of PixelFormat values.
var formatNames = map[string]pixelformat.PixelFormat{
	"R8_Unsigned":                       pixelformat.R8_Unsigned,
	"A8_Unsigned":                       pixelformat.A8_Unsigned,
	"R8_G8_Unsigned":                    pixelformat.R8_G8_Unsigned,
	"R8_A8_Unsigned":                    pixelformat.R8_A8_Unsigned,
	"R5_G6_B5_Unsigned_Native16":        pixelformat.R5_G6_B5_Unsigned_Native16,
	"B5_G6_R5_Unsigned_Native16":        pixelformat.B5_G6_R5_Unsigned_Native16,
	"R8_G8_B8_Unsigned":                 pixelformat.R8_G8_B8_Unsigned,
	"B8_G8_R8_Unsigned":                 pixelformat.B8_G8_R8_Unsigned,
	"R8_G8_B8_A8_Unsigned":              pixelformat.R8_G8_B8_A8_Unsigned,
	"R16_Unsigned_Native16":             pixelformat.R16_Unsigned_Native16,
	"A16_Unsigned_Native16":             pixelformat.A16_Unsigned_Native16,
	"R16_G16_Unsigned_Native16":         pixelformat.R16_G16_Unsigned_Native16,
	"R16_A16_Unsigned_Native16":         pixelformat.R16_A16_Unsigned_Native16,
	"R16_G16_B16_A16_Unsigned_Native16": pixelformat.R16_G16_B16_A16_Unsigned_Native16,
	"R16_Float_Native16":                pixelformat.R16_Float_Native16,
	"A16_Float_Native16":                pixelformat.A16_Float_Native16,
	"R16_G16_Float_Native16":            pixelformat.R16_G16_Float_Native16,
	"A16_R16_G16_B16_Float_Native16":    pixelformat.A16_R16_G16_B16_Float_Native16,
	"R32_Float_Native32":                pixelformat.R32_Float_Native32,
	"A32_Float_Native32":                pixelformat.A32_Float_Native32,
	"R32_G32_B32_A32_Float_Native32":    pixelformat.R32_G32_B32_A32_Float_Native32,
	"A2_B10_G10_R10_Unsigned_Native32":  pixelformat.A2_B10_G10_R10_Unsigned_Native32,
	"A2_R10_G10_B10_Unsigned_Native32":  pixelformat.A2_R10_G10_B10_Unsigned_Native32,
}

func lookupFormat(name string) (pixelformat.PixelFormat, error) {
	format, ok := formatNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown pixel format %q", name)
	}
	return format, nil
}

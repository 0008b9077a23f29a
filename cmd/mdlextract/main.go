package main

import (
	"flag"
	"fmt"
	"os"

	"mdl-extract/internal/extract"
	"mdl-extract/internal/palette"
)

func main() {
	paletteFile := flag.String("palette", "", "Path to a 768-byte palette file (default: embedded Quake palette)")
	outDir := flag.String("out", "", "Output directory (default: next to each input)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-palette file] [-out dir] <input.mdl> [more.mdl ...]\n", os.Args[0])
		os.Exit(1)
	}

	opts := extract.Options{OutDir: *outDir}
	if *paletteFile != "" {
		pal, err := palette.Load(*paletteFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		opts.Palette = pal
	}

	for _, path := range flag.Args() {
		fmt.Printf("Reading model file: %s\n", path)
		stats, err := extract.File(path, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			os.Exit(1)
		}
		h := stats.Header
		fmt.Printf("  Skins: %d (%dx%d)  Vertices: %d  Triangles: %d  Frames: %d\n",
			h.SkinCount, h.SkinWidth, h.SkinHeight, h.VertexCount, h.TriangleCount, h.FrameCount)
		fmt.Printf("  Wrote %d .lbm and %d .tri files\n", stats.Skins, stats.Frames)
	}
}

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mdl-extract/internal/mdl"
	"mdl-extract/internal/palette"
	"mdl-extract/internal/preview"
)

func main() {
	format := flag.String("format", "png", "Output format: png, tga or webp")
	scale := flag.Int("scale", 1, "Integer upscale factor")
	paletteFile := flag.String("palette", "", "Path to a 768-byte palette file (default: embedded Quake palette)")
	outDir := flag.String("out", "", "Output directory (default: next to each input)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-format png|tga|webp] [-scale n] <input.mdl> [more.mdl ...]\n", os.Args[0])
		os.Exit(1)
	}

	pal := &palette.Quake
	if *paletteFile != "" {
		p, err := palette.Load(*paletteFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		pal = p
	}

	for _, path := range flag.Args() {
		if err := dump(path, pal, *format, *scale, *outDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			os.Exit(1)
		}
	}
}

func dump(path string, pal *palette.Table, format string, scale int, outDir string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	d, err := mdl.NewDecoder(f)
	if err != nil {
		return err
	}
	h := d.Header()

	base := strings.TrimSuffix(path, filepath.Ext(path))
	if outDir != "" {
		base = filepath.Join(outDir, filepath.Base(base))
	}

	for i := 0; i < int(h.SkinCount); i++ {
		skin, err := d.NextSkin()
		if err != nil {
			return err
		}
		img, err := preview.Expand(skin.Pixels, int(h.SkinWidth), int(h.SkinHeight), pal)
		if err != nil {
			return err
		}
		img = preview.Scale(img, scale)
		name := fmt.Sprintf("%s_skin%d.%s", base, i, format)
		if err := preview.Save(name, img, format); err != nil {
			return err
		}
		fmt.Printf("  Saved %s (%dx%d)\n", name, img.Bounds().Dx(), img.Bounds().Dy())
	}
	return nil
}

// Package preview turns paletted skin pixels into modern raster files
// for quick inspection, independent of the legacy LBM output.
package preview

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"mdl-extract/internal/palette"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// Formats lists the supported output encodings.
var Formats = []string{"png", "tga", "webp"}

// Expand maps 8-bit palette indices to an opaque NRGBA image.
func Expand(pixels []byte, width, height int, pal *palette.Table) (*image.NRGBA, error) {
	if len(pixels) != width*height {
		return nil, fmt.Errorf("preview: pixel buffer is %d bytes, want %d (%dx%d)",
			len(pixels), width*height, width, height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, p := range pixels {
		c := pal.RGBA(p)
		j := i * 4
		img.Pix[j] = c.R
		img.Pix[j+1] = c.G
		img.Pix[j+2] = c.B
		img.Pix[j+3] = c.A
	}
	return img, nil
}

// Scale resizes by an integer factor with CatmullRom filtering. A factor
// of 1 or less returns the image unchanged.
func Scale(img *image.NRGBA, factor int) *image.NRGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Save encodes img to path in the named format (png, tga or webp).
func Save(path string, img *image.NRGBA, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: create %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(format) {
	case "png":
		err = png.Encode(f, img)
	case "tga":
		err = tga.Encode(f, img)
	case "webp":
		err = nativewebp.Encode(f, img, nil)
	default:
		return fmt.Errorf("preview: unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("preview: encode %s: %w", path, err)
	}
	return nil
}

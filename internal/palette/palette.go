// Package palette holds the 256-entry RGB color table paletted skins
// index into. The table is opaque configuration: nothing here computes
// colors, it only carries them to the raster writers.
package palette

import (
	"fmt"
	"image/color"
	"os"
)

// Table is 256 RGB entries, 3 bytes each.
type Table [768]byte

// Load reads an external palette file. The file must be exactly 768
// bytes of raw RGB triplets (the classic gfx/palette.lmp layout).
func Load(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("palette: read %s: %w", path, err)
	}
	if len(b) != len(Table{}) {
		return nil, fmt.Errorf("palette: %s has wrong size %d, want %d", path, len(b), len(Table{}))
	}
	var t Table
	copy(t[:], b)
	return &t, nil
}

// RGBA expands one palette index to an opaque color.
func (t *Table) RGBA(index byte) color.NRGBA {
	i := int(index) * 3
	return color.NRGBA{R: t[i], G: t[i+1], B: t[i+2], A: 255}
}

// Package extract drives the conversion of one model container into its
// per-skin LBM files and per-frame triangle-geometry files. The container
// is streamed once: each skin is written the moment it is decoded, each
// frame the moment its vertices are reconstructed.
package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mdl-extract/internal/geom"
	"mdl-extract/internal/lbm"
	"mdl-extract/internal/mdl"
	"mdl-extract/internal/palette"
	"mdl-extract/internal/tri"
)

// Names written into every .tri file, matching what the Alias tool chain
// emitted for exported objects.
const (
	ObjectName  = "exported_object"
	TextureName = "default_skin"
)

// Options configures one extraction run.
type Options struct {
	Palette *palette.Table // nil selects the embedded Quake palette
	OutDir  string         // "" writes next to the input
}

// Stats reports what one run produced.
type Stats struct {
	Header mdl.Header
	Skins  int // raster files written
	Frames int // geometry files written (flat frames plus group members)
}

// File converts one container on disk. The output base name is the input
// path with its final extension stripped.
func File(path string, opts Options) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("extract: open %s: %w", path, err)
	}
	defer f.Close()

	base := strings.TrimSuffix(path, filepath.Ext(path))
	if opts.OutDir != "" {
		base = filepath.Join(opts.OutDir, filepath.Base(base))
	}
	return Run(f, base, opts)
}

// Run converts one container from r, writing outputs named after base.
func Run(r io.Reader, base string, opts Options) (Stats, error) {
	pal := opts.Palette
	if pal == nil {
		pal = &palette.Quake
	}

	d, err := mdl.NewDecoder(r)
	if err != nil {
		return Stats{}, err
	}
	hdr := d.Header()
	stats := Stats{Header: hdr}

	for i := 0; i < int(hdr.SkinCount); i++ {
		skin, err := d.NextSkin()
		if err != nil {
			return stats, err
		}
		name := fmt.Sprintf("%s_skin%d.lbm", base, i)
		if err := writeSkin(name, skin, hdr, pal); err != nil {
			return stats, err
		}
		stats.Skins++
	}

	if err := d.ReadTables(); err != nil {
		return stats, err
	}

	for {
		slot := d.Slot()
		rec, err := d.NextFrame()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}
		switch fr := rec.(type) {
		case *mdl.SingleFrame:
			name := fmt.Sprintf("%s_frame%d.tri", base, slot)
			if err := writeFrame(name, fr, hdr, d.Triangles()); err != nil {
				return stats, err
			}
			stats.Frames++
		case *mdl.GroupFrame:
			for j := range fr.Frames {
				name := fmt.Sprintf("%s_frame%d_sub%d.tri", base, slot, j)
				if err := writeFrame(name, &fr.Frames[j], hdr, d.Triangles()); err != nil {
					return stats, err
				}
				stats.Frames++
			}
		}
	}
	return stats, nil
}

func writeSkin(name string, skin *mdl.Skin, hdr mdl.Header, pal *palette.Table) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("extract: create %s: %w", name, err)
	}
	defer f.Close()
	return lbm.Write(f, skin.Pixels, int(hdr.SkinWidth), int(hdr.SkinHeight), pal)
}

func writeFrame(name string, fr *mdl.SingleFrame, hdr mdl.Header, tris []mdl.Triangle) error {
	rec := geom.Reconstruct(hdr.Scale, hdr.ScaleOrigin, tris, fr.Verts)
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("extract: create %s: %w", name, err)
	}
	defer f.Close()
	return tri.Write(f, ObjectName, TextureName, rec)
}

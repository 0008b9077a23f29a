package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"mdl-extract/internal/geom"
	"mdl-extract/internal/mdl"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <input.mdl> [more.mdl ...]\n", os.Args[0])
		os.Exit(1)
	}

	status := 0
	for _, path := range os.Args[1:] {
		if err := inspect(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			status = 1
		}
	}
	os.Exit(status)
}

func inspect(path string) error {
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

	fmt.Printf("\n=== %s ===\n", path)
	fmt.Printf("  Skins: %d (%dx%d)\n", h.SkinCount, h.SkinWidth, h.SkinHeight)
	fmt.Printf("  Vertices: %d\n", h.VertexCount)
	fmt.Printf("  Triangles: %d\n", h.TriangleCount)
	fmt.Printf("  Frames: %d\n", h.FrameCount)
	fmt.Printf("  Scale: (%.4f, %.4f, %.4f)\n", h.Scale[0], h.Scale[1], h.Scale[2])
	fmt.Printf("  Scale origin: (%.4f, %.4f, %.4f)\n", h.ScaleOrigin[0], h.ScaleOrigin[1], h.ScaleOrigin[2])
	fmt.Printf("  Bounding radius: %.4f  Sync: %d  Flags: 0x%x\n", h.BoundingRadius, h.SyncType, h.Flags)

	for i := 0; i < int(h.SkinCount); i++ {
		skin, err := d.NextSkin()
		if err != nil {
			return err
		}
		fmt.Printf("  Skin %d: kind %d, %d pixel bytes\n", i, skin.Kind, len(skin.Pixels))
	}

	if err := d.ReadTables(); err != nil {
		return err
	}

	for {
		slot := d.Slot()
		rec, err := d.NextFrame()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		switch fr := rec.(type) {
		case *mdl.SingleFrame:
			min, max := geom.Bounds(h.Scale, h.ScaleOrigin, fr.Verts)
			fmt.Printf("  Frame %d: %q min=(%.1f,%.1f,%.1f) max=(%.1f,%.1f,%.1f)\n",
				slot, fr.Name, min[0], min[1], min[2], max[0], max[1], max[2])
		case *mdl.GroupFrame:
			fmt.Printf("  Frame %d: group of %d\n", slot, len(fr.Frames))
			for j := range fr.Frames {
				sub := &fr.Frames[j]
				min, max := geom.Bounds(h.Scale, h.ScaleOrigin, sub.Verts)
				fmt.Printf("    Sub %d: %q min=(%.1f,%.1f,%.1f) max=(%.1f,%.1f,%.1f)\n",
					j, sub.Name, min[0], min[1], min[2], max[0], max[1], max[2])
			}
		}
	}
	return nil
}

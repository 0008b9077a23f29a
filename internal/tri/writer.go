// Package tri writes Alias triangle-geometry files: a big-endian stream
// of full 11-float corner records bracketed by object start/end markers
// and NUL-terminated names. This is the variant the Alias tool chain's
// trilib reader consumes; a bare position-only little-endian layout also
// circulates but is not what modelgen expects.
package tri

import (
	"io"

	"mdl-extract/internal/binio"
	"mdl-extract/internal/geom"
)

const (
	// Magic identifies an Alias .tri file.
	Magic = 123322

	startMarker float32 = 99999.0
	endMarker   float32 = -99999.0
)

// Size returns the exact byte length Write produces for the given names
// and triangle count.
func Size(objName, texName string, numTris int) int {
	n := 4 + 4 + len(objName) + 1 + 4 // magic, start marker, object name, count
	if numTris > 0 {
		n += len(texName) + 1
	}
	n += numTris * 3 * 11 * 4
	n += 4 + len(objName) + 1 // end marker, closing name
	return n
}

// Write emits one object. Each triangle corner is 11 big-endian floats:
// normal, position, color, then u/v; only positions carry data here.
func Write(w io.Writer, objName, texName string, tris []geom.Triangle) error {
	bw := binio.NewWriter(w)

	if err := bw.BigI32(Magic); err != nil {
		return err
	}
	if err := bw.BigF32(startMarker); err != nil {
		return err
	}
	if err := bw.CString(objName); err != nil {
		return err
	}
	if err := bw.BigI32(int32(len(tris))); err != nil {
		return err
	}
	if len(tris) > 0 {
		if err := bw.CString(texName); err != nil {
			return err
		}
	}

	for _, t := range tris {
		for c := 0; c < 3; c++ {
			corner := [11]float32{
				0, 0, 0, // normal
				t.Verts[c][0], t.Verts[c][1], t.Verts[c][2],
				0, 0, 0, // color
				0, 0, // u, v
			}
			for _, f := range corner {
				if err := bw.BigF32(f); err != nil {
					return err
				}
			}
		}
	}

	if err := bw.BigF32(endMarker); err != nil {
		return err
	}
	return bw.CString(objName)
}

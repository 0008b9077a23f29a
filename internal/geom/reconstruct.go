package geom

import "mdl-extract/internal/mdl"

// Vec3 is one float position, x/y/z.
type Vec3 [3]float32

// Triangle is one reconstructed output triangle. Only positions exist in
// the source container; the geometry writer zero-fills the normal, color
// and UV slots its output format allocates.
type Triangle struct {
	Verts [3]Vec3
}

// Reconstruct inverts the container's byte quantization for one frame:
// byte value b on axis a maps to b*scale[a] + origin[a], with no rounding
// or clamping. Byte 0 lands on the origin, byte 255 on origin + 255*scale.
// Triangle indices must have been range-checked against len(verts).
func Reconstruct(scale, origin [3]float32, tris []mdl.Triangle, verts []mdl.PackedVertex) []Triangle {
	out := make([]Triangle, len(tris))
	for t := range tris {
		for c := 0; c < 3; c++ {
			v := verts[tris[t].Vert[c]]
			for a := 0; a < 3; a++ {
				out[t].Verts[c][a] = float32(v.PackedPosition[a])*scale[a] + origin[a]
			}
		}
	}
	return out
}

// Bounds returns the axis-aligned min/max of one frame's reconstructed
// vertex positions.
func Bounds(scale, origin [3]float32, verts []mdl.PackedVertex) (min, max Vec3) {
	min = Vec3{999999, 999999, 999999}
	max = Vec3{-999999, -999999, -999999}
	for _, v := range verts {
		for a := 0; a < 3; a++ {
			p := float32(v.PackedPosition[a])*scale[a] + origin[a]
			if p < min[a] {
				min[a] = p
			}
			if p > max[a] {
				max[a] = p
			}
		}
	}
	return min, max
}

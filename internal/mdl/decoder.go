package mdl

import (
	"bytes"
	"fmt"
	"io"

	"mdl-extract/internal/binio"
)

// Decoder streams one model container top to bottom: header, skins,
// texture coordinates, triangle indices, frame stream. The caller drives
// it in that order and consumes each skin and frame as it is produced;
// only the header and the two index tables stay resident.
type Decoder struct {
	r   *binio.Reader
	hdr Header

	texCoords []TexCoord
	triangles []Triangle

	skinsRead  int32
	tablesRead bool
	frameSlot  int32
}

// NewDecoder reads and validates the container header.
func NewDecoder(r io.Reader) (*Decoder, error) {
	d := &Decoder{r: binio.NewReader(r)}
	if err := d.readHeader(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Decoder) Header() Header {
	return d.hdr
}

func (d *Decoder) readHeader() error {
	ident, err := d.r.LittleI32()
	if err != nil {
		return err
	}
	if ident != Magic {
		return &FormatError{Offset: d.r.Offset(), Reason: "magic mismatch", Value: int64(ident)}
	}
	version, err := d.r.LittleI32()
	if err != nil {
		return err
	}
	if version != Version {
		return &FormatError{Offset: d.r.Offset(), Reason: "version mismatch", Value: int64(version)}
	}

	h := &d.hdr
	readF := func(dst *float32) {
		if err == nil {
			*dst, err = d.r.LittleF32()
		}
	}
	readI := func(dst *int32) {
		if err == nil {
			*dst, err = d.r.LittleI32()
		}
	}
	readF(&h.Scale[0])
	readF(&h.Scale[1])
	readF(&h.Scale[2])
	readF(&h.ScaleOrigin[0])
	readF(&h.ScaleOrigin[1])
	readF(&h.ScaleOrigin[2])
	readF(&h.BoundingRadius)
	readF(&h.EyePosition[0])
	readF(&h.EyePosition[1])
	readF(&h.EyePosition[2])
	readI(&h.SkinCount)
	readI(&h.SkinWidth)
	readI(&h.SkinHeight)
	readI(&h.VertexCount)
	readI(&h.TriangleCount)
	readI(&h.FrameCount)
	readI(&h.SyncType)
	readI(&h.Flags)
	readF(&h.Size)
	if err != nil {
		return err
	}

	for _, c := range []struct {
		name string
		v    int32
	}{
		{"skin count", h.SkinCount},
		{"skin width", h.SkinWidth},
		{"skin height", h.SkinHeight},
		{"vertex count", h.VertexCount},
		{"triangle count", h.TriangleCount},
		{"frame count", h.FrameCount},
	} {
		if c.v < 0 {
			return &FormatError{Offset: d.r.Offset(), Reason: "negative " + c.name, Value: int64(c.v)}
		}
	}
	return nil
}

// NextSkin reads one skin record. The kind tag is advisory: grouped skins
// carry the same pixel layout as single skins and are read identically.
func (d *Decoder) NextSkin() (*Skin, error) {
	if d.skinsRead >= d.hdr.SkinCount {
		return nil, fmt.Errorf("mdl: all %d skins already read", d.hdr.SkinCount)
	}
	kind, err := d.r.LittleI32()
	if err != nil {
		return nil, err
	}
	pixels := make([]byte, int(d.hdr.SkinWidth)*int(d.hdr.SkinHeight))
	if err := d.r.Bytes(pixels); err != nil {
		return nil, err
	}
	d.skinsRead++
	return &Skin{Kind: kind, Pixels: pixels}, nil
}

// ReadTables reads the texture-coordinate and triangle-index tables that
// sit between the skins and the frame stream. Every triangle index is
// range-checked here, before any frame is decoded.
func (d *Decoder) ReadTables() error {
	if d.skinsRead < d.hdr.SkinCount {
		return fmt.Errorf("mdl: %d of %d skins not yet read", d.hdr.SkinCount-d.skinsRead, d.hdr.SkinCount)
	}
	if d.tablesRead {
		return nil
	}

	d.texCoords = make([]TexCoord, d.hdr.VertexCount)
	for i := range d.texCoords {
		tc := &d.texCoords[i]
		var err error
		if tc.OnSeam, err = d.r.LittleI32(); err != nil {
			return err
		}
		if tc.S, err = d.r.LittleI32(); err != nil {
			return err
		}
		if tc.T, err = d.r.LittleI32(); err != nil {
			return err
		}
	}

	d.triangles = make([]Triangle, d.hdr.TriangleCount)
	for i := range d.triangles {
		t := &d.triangles[i]
		var err error
		if t.FacesFront, err = d.r.LittleI32(); err != nil {
			return err
		}
		for c := 0; c < 3; c++ {
			if t.Vert[c], err = d.r.LittleI32(); err != nil {
				return err
			}
			if t.Vert[c] < 0 || t.Vert[c] >= d.hdr.VertexCount {
				return &FormatError{
					Offset: d.r.Offset(),
					Reason: fmt.Sprintf("triangle %d vertex index out of range [0,%d)", i, d.hdr.VertexCount),
					Value:  int64(t.Vert[c]),
				}
			}
		}
	}

	d.tablesRead = true
	return nil
}

// TexCoords returns the shared texture-coordinate table.
func (d *Decoder) TexCoords() []TexCoord {
	return d.texCoords
}

// Triangles returns the shared triangle-index table.
func (d *Decoder) Triangles() []Triangle {
	return d.triangles
}

// Slot is the logical frame-stream position of the next record. A single
// frame occupies one slot; a group occupies one slot for its header plus
// one per member, matching how the header's frame count was accounted.
func (d *Decoder) Slot() int {
	return int(d.frameSlot)
}

// NextFrame decodes the next frame-stream record and returns io.EOF once
// exactly FrameCount logical slots have been produced. Overshooting the
// declared count is a format error, not a silent stop.
func (d *Decoder) NextFrame() (FrameRecord, error) {
	if !d.tablesRead {
		if err := d.ReadTables(); err != nil {
			return nil, err
		}
	}
	if d.frameSlot == d.hdr.FrameCount {
		return nil, io.EOF
	}

	tag, err := d.r.LittleI32()
	if err != nil {
		return nil, err
	}
	switch tag {
	case frameSingle:
		f, err := d.readSingle()
		if err != nil {
			return nil, err
		}
		d.frameSlot++
		return f, nil
	case frameGroup:
		g, err := d.readGroup()
		if err != nil {
			return nil, err
		}
		slots := int32(1 + len(g.Frames))
		if d.frameSlot+slots > d.hdr.FrameCount {
			return nil, &FormatError{
				Offset: d.r.Offset(),
				Reason: fmt.Sprintf("frame group overruns declared frame count %d", d.hdr.FrameCount),
				Value:  int64(d.frameSlot + slots),
			}
		}
		d.frameSlot += slots
		return g, nil
	default:
		return nil, &FormatError{Offset: d.r.Offset(), Reason: "unknown frame type", Value: int64(tag)}
	}
}

func (d *Decoder) readPackedVertex() (PackedVertex, error) {
	var buf [4]byte
	if err := d.r.Bytes(buf[:]); err != nil {
		return PackedVertex{}, err
	}
	return PackedVertex{
		PackedPosition:   [3]byte{buf[0], buf[1], buf[2]},
		LightNormalIndex: buf[3],
	}, nil
}

func (d *Decoder) readSingle() (*SingleFrame, error) {
	f := &SingleFrame{}
	var err error
	if f.BBoxMin, err = d.readPackedVertex(); err != nil {
		return nil, err
	}
	if f.BBoxMax, err = d.readPackedVertex(); err != nil {
		return nil, err
	}
	var name [16]byte
	if err := d.r.Bytes(name[:]); err != nil {
		return nil, err
	}
	if i := bytes.IndexByte(name[:], 0); i >= 0 {
		f.Name = string(name[:i])
	} else {
		f.Name = string(name[:])
	}

	f.Verts = make([]PackedVertex, d.hdr.VertexCount)
	for i := range f.Verts {
		if f.Verts[i], err = d.readPackedVertex(); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (d *Decoder) readGroup() (*GroupFrame, error) {
	// The group count reads correctly as little-endian even though the
	// original tool chain nominally byte-swapped it. Observed behavior
	// on real files wins here.
	count, err := d.r.LittleI32()
	if err != nil {
		return nil, err
	}
	if count < 1 || count > maxGroupFrames {
		return nil, &FormatError{Offset: d.r.Offset(), Reason: "suspicious group size", Value: int64(count)}
	}

	g := &GroupFrame{}
	if g.BBoxMin, err = d.readPackedVertex(); err != nil {
		return nil, err
	}
	if g.BBoxMax, err = d.readPackedVertex(); err != nil {
		return nil, err
	}

	// Timing intervals: stream positioning only, no scheduling semantics.
	for i := int32(0); i < count; i++ {
		if _, err := d.r.LittleF32(); err != nil {
			return nil, err
		}
	}

	// Members carry no type tag of their own: count bare single-frame
	// records follow the interval table.
	g.Frames = make([]SingleFrame, count)
	for i := range g.Frames {
		f, err := d.readSingle()
		if err != nil {
			return nil, err
		}
		g.Frames[i] = *f
	}
	return g, nil
}

package mdl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
)

type builder struct {
	bytes.Buffer
}

func (b *builder) i32(v int32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v))
	b.Write(tmp[:])
}

func (b *builder) f32(v float32) {
	b.i32(int32(math.Float32bits(v)))
}

func (b *builder) header(skins, w, h, verts, tris, frames int32) {
	b.i32(Magic)
	b.i32(Version)
	for _, f := range []float32{1, 2, 3} { // scale
		b.f32(f)
	}
	for _, f := range []float32{10, 20, 30} { // scale origin
		b.f32(f)
	}
	b.f32(50) // bounding radius
	b.f32(0)  // eye position
	b.f32(0)
	b.f32(22)
	b.i32(skins)
	b.i32(w)
	b.i32(h)
	b.i32(verts)
	b.i32(tris)
	b.i32(frames)
	b.i32(SyncSynchronized)
	b.i32(0) // flags
	b.f32(0) // size
}

func (b *builder) skin(w, h int32, fill byte) {
	b.i32(SkinSingle)
	for i := int32(0); i < w*h; i++ {
		b.WriteByte(fill)
	}
}

func (b *builder) texCoords(n int32) {
	for i := int32(0); i < n; i++ {
		b.i32(0)     // onseam
		b.i32(i)     // s
		b.i32(i * 2) // t
	}
}

func (b *builder) triangle(v0, v1, v2 int32) {
	b.i32(1) // faces front
	b.i32(v0)
	b.i32(v1)
	b.i32(v2)
}

func (b *builder) packedVertex(x, y, z, n byte) {
	b.Write([]byte{x, y, z, n})
}

func (b *builder) singleFrame(name string, verts ...[4]byte) {
	b.i32(0)                         // single tag
	b.packedVertex(0, 0, 0, 0)       // bboxmin
	b.packedVertex(255, 255, 255, 0) // bboxmax
	var n [16]byte
	copy(n[:], name)
	b.Write(n[:])
	for _, v := range verts {
		b.packedVertex(v[0], v[1], v[2], v[3])
	}
}

func testVerts() [][4]byte {
	return [][4]byte{{0, 128, 255, 1}, {10, 20, 30, 2}, {1, 2, 3, 4}}
}

func buildMinimal() *builder {
	b := &builder{}
	b.header(1, 4, 4, 3, 1, 1)
	b.skin(4, 4, 7)
	b.texCoords(3)
	b.triangle(0, 1, 2)
	b.singleFrame("stand1", testVerts()...)
	return b
}

func TestDecodeMinimal(t *testing.T) {
	d, err := NewDecoder(bytes.NewReader(buildMinimal().Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	h := d.Header()
	if h.SkinCount != 1 || h.SkinWidth != 4 || h.SkinHeight != 4 {
		t.Fatalf("bad skin header fields: %+v", h)
	}
	if h.VertexCount != 3 || h.TriangleCount != 1 || h.FrameCount != 1 {
		t.Fatalf("bad count fields: %+v", h)
	}
	if h.Scale != [3]float32{1, 2, 3} || h.ScaleOrigin != [3]float32{10, 20, 30} {
		t.Fatalf("bad scale fields: %+v", h)
	}

	skin, err := d.NextSkin()
	if err != nil {
		t.Fatal(err)
	}
	if len(skin.Pixels) != 16 || skin.Pixels[0] != 7 {
		t.Fatalf("bad skin: kind=%d len=%d", skin.Kind, len(skin.Pixels))
	}

	if err := d.ReadTables(); err != nil {
		t.Fatal(err)
	}
	if len(d.TexCoords()) != 3 || d.TexCoords()[2].S != 2 {
		t.Fatalf("bad texcoords: %+v", d.TexCoords())
	}
	tris := d.Triangles()
	if len(tris) != 1 || tris[0].Vert != [3]int32{0, 1, 2} {
		t.Fatalf("bad triangles: %+v", tris)
	}

	rec, err := d.NextFrame()
	if err != nil {
		t.Fatal(err)
	}
	fr, ok := rec.(*SingleFrame)
	if !ok {
		t.Fatalf("expected single frame, got %T", rec)
	}
	if fr.Name != "stand1" {
		t.Fatalf("frame name = %q", fr.Name)
	}
	if len(fr.Verts) != 3 || fr.Verts[0].PackedPosition != [3]byte{0, 128, 255} {
		t.Fatalf("bad frame verts: %+v", fr.Verts)
	}
	if fr.Verts[1].LightNormalIndex != 2 {
		t.Fatalf("bad normal index: %+v", fr.Verts[1])
	}

	if _, err := d.NextFrame(); err != io.EOF {
		t.Fatalf("expected EOF after last frame, got %v", err)
	}
}

func TestMagicMismatch(t *testing.T) {
	b := &builder{}
	b.i32(0x12345678)
	b.i32(Version)
	_, err := NewDecoder(bytes.NewReader(b.Bytes()))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if fe.Reason != "magic mismatch" || fe.Value != 0x12345678 {
		t.Fatalf("unexpected error: %+v", fe)
	}
}

func TestVersionMismatch(t *testing.T) {
	b := &builder{}
	b.i32(Magic)
	b.i32(7)
	_, err := NewDecoder(bytes.NewReader(b.Bytes()))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if fe.Reason != "version mismatch" || fe.Value != 7 {
		t.Fatalf("unexpected error: %+v", fe)
	}
}

func TestNegativeCount(t *testing.T) {
	b := &builder{}
	b.header(-1, 4, 4, 3, 1, 1)
	_, err := NewDecoder(bytes.NewReader(b.Bytes()))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if fe.Value != -1 {
		t.Fatalf("unexpected error: %+v", fe)
	}
}

func TestTriangleIndexOutOfRange(t *testing.T) {
	b := &builder{}
	b.header(0, 4, 4, 3, 1, 1)
	b.texCoords(3)
	b.triangle(0, 1, 3) // numverts is 3, index 3 is out of range
	d, err := NewDecoder(bytes.NewReader(b.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	err = d.ReadTables()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if fe.Value != 3 {
		t.Fatalf("unexpected error: %+v", fe)
	}
}

func TestUnknownFrameType(t *testing.T) {
	b := &builder{}
	b.header(0, 4, 4, 1, 0, 1)
	b.texCoords(1)
	b.i32(9) // bogus frame tag
	d, err := NewDecoder(bytes.NewReader(b.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	_, err = d.NextFrame()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if fe.Reason != "unknown frame type" || fe.Value != 9 {
		t.Fatalf("unexpected error: %+v", fe)
	}
}

func buildGroup(count int32, declared int32) *builder {
	b := &builder{}
	b.header(0, 4, 4, 1, 0, declared)
	b.texCoords(1)
	b.i32(1)     // group tag
	b.i32(count) // sub-frame count, little-endian
	b.packedVertex(0, 0, 0, 0)
	b.packedVertex(255, 255, 255, 0)
	for i := int32(0); i < count; i++ {
		b.f32(0.1 * float32(i+1)) // interval
	}
	for i := int32(0); i < count; i++ {
		// group members carry no tag
		b.packedVertex(0, 0, 0, 0)
		b.packedVertex(255, 255, 255, 0)
		var n [16]byte
		copy(n[:], "flame")
		b.Write(n[:])
		b.packedVertex(byte(i), byte(i), byte(i), 0)
	}
	return b
}

func TestGroupFrame(t *testing.T) {
	d, err := NewDecoder(bytes.NewReader(buildGroup(2, 3).Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	rec, err := d.NextFrame()
	if err != nil {
		t.Fatal(err)
	}
	g, ok := rec.(*GroupFrame)
	if !ok {
		t.Fatalf("expected group frame, got %T", rec)
	}
	if len(g.Frames) != 2 {
		t.Fatalf("group has %d members", len(g.Frames))
	}
	if g.Frames[1].Name != "flame" || g.Frames[1].Verts[0].PackedPosition != [3]byte{1, 1, 1} {
		t.Fatalf("bad group member: %+v", g.Frames[1])
	}
	if d.Slot() != 3 {
		t.Fatalf("group should advance 1+count logical slots, got %d", d.Slot())
	}
	if _, err := d.NextFrame(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestGroupSizeBounds(t *testing.T) {
	for _, count := range []int32{0, 20000} {
		b := &builder{}
		b.header(0, 4, 4, 1, 0, 1)
		b.texCoords(1)
		b.i32(1) // group tag
		b.i32(count)
		b.packedVertex(0, 0, 0, 0)
		b.packedVertex(255, 255, 255, 0)
		d, err := NewDecoder(bytes.NewReader(b.Bytes()))
		if err != nil {
			t.Fatal(err)
		}
		_, err = d.NextFrame()
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Fatalf("count %d: expected FormatError, got %v", count, err)
		}
		if fe.Reason != "suspicious group size" || fe.Value != int64(count) {
			t.Fatalf("count %d: unexpected error: %+v", count, fe)
		}
	}
}

func TestGroupOverrunsFrameCount(t *testing.T) {
	// Header declares 1 frame but the group occupies 1+2 logical slots.
	d, err := NewDecoder(bytes.NewReader(buildGroup(2, 1).Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	_, err = d.NextFrame()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestTruncatedFrameStream(t *testing.T) {
	full := buildMinimal().Bytes()
	// Cut into the last frame's vertex data.
	d, err := NewDecoder(bytes.NewReader(full[:len(full)-5]))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.NextSkin(); err != nil {
		t.Fatal(err)
	}
	_, err = d.NextFrame()
	if err == nil {
		t.Fatal("expected read error on truncated stream")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected unexpected-EOF, got %v", err)
	}
}

func TestFrameStreamEndsShortOfDeclaredCount(t *testing.T) {
	// Two frames declared, one present: the stream ends cleanly at the
	// next tag boundary, which must still read as truncation rather than
	// the end-of-frames sentinel.
	b := &builder{}
	b.header(0, 4, 4, 3, 1, 2)
	b.texCoords(3)
	b.triangle(0, 1, 2)
	b.singleFrame("stand1", testVerts()...)

	d, err := NewDecoder(bytes.NewReader(b.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.NextFrame(); err != nil {
		t.Fatal(err)
	}
	_, err = d.NextFrame()
	if err == nil {
		t.Fatal("expected read error with one declared frame missing")
	}
	if errors.Is(err, io.EOF) {
		t.Fatalf("undershoot must not look like normal end of frames: %v", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected unexpected-EOF, got %v", err)
	}
}

func TestSkinSequencing(t *testing.T) {
	d, err := NewDecoder(bytes.NewReader(buildMinimal().Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.ReadTables(); err == nil {
		t.Fatal("ReadTables before skins should fail")
	}
	if _, err := d.NextSkin(); err != nil {
		t.Fatal(err)
	}
	if _, err := d.NextSkin(); err == nil {
		t.Fatal("reading past the skin count should fail")
	}
}

package mdl

// Container constants from modelgen. The ident reads as "IDPO" on disk.
const (
	Magic   = 'O'<<24 | 'P'<<16 | 'D'<<8 | 'I'
	Version = 6
)

// Sync modes.
const (
	SyncSynchronized = 0
	SyncRandom       = 1
)

// Skin kinds. The kind is advisory only: single and grouped skins carry
// identically laid out pixel data and are decoded the same way.
const (
	SkinSingle = 0
	SkinGroup  = 1
)

// Frame-stream tags.
const (
	frameSingle = 0
	frameGroup  = 1
)

// A frame group may not declare more sub-frames than this.
const maxGroupFrames = 10000

// Header is the fixed little-endian container header. Every multi-byte
// field is 4 bytes, in declared order, with no padding.
type Header struct {
	Scale          [3]float32
	ScaleOrigin    [3]float32
	BoundingRadius float32
	EyePosition    [3]float32
	SkinCount      int32
	SkinWidth      int32
	SkinHeight     int32
	VertexCount    int32
	TriangleCount  int32
	FrameCount     int32
	SyncType       int32
	Flags          int32
	Size           float32
}

// Skin is one raw 8-bit paletted pixel buffer of SkinWidth*SkinHeight bytes.
type Skin struct {
	Kind   int32
	Pixels []byte
}

// TexCoord is one texture-space vertex. It is decoded for stream
// positioning; no output format here consumes it.
type TexCoord struct {
	OnSeam int32
	S, T   int32
}

// Triangle indexes three vertices of the shared vertex domain.
type Triangle struct {
	FacesFront int32
	Vert       [3]int32
}

// PackedVertex is a position quantized to one unsigned byte per axis plus
// a lighting-normal lookup index.
type PackedVertex struct {
	PackedPosition   [3]byte
	LightNormalIndex byte
}

// FrameRecord is either a SingleFrame or a GroupFrame.
type FrameRecord interface {
	frameRecord()
}

// SingleFrame is one pose of the mesh.
type SingleFrame struct {
	Name             string
	BBoxMin, BBoxMax PackedVertex
	Verts            []PackedVertex
}

// GroupFrame is a run of poses sharing one timing table. The intervals
// themselves are consumed during decode and not retained.
type GroupFrame struct {
	BBoxMin, BBoxMax PackedVertex
	Frames           []SingleFrame
}

func (*SingleFrame) frameRecord() {}
func (*GroupFrame) frameRecord()  {}

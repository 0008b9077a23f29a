// Package lbm writes uncompressed 8-bit paletted PBM-type LBM images:
// one FORM chunk wrapping BMHD, CMAP and BODY sub-chunks, all lengths
// big-endian, every odd-length chunk padded to an even boundary.
package lbm

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"mdl-extract/internal/palette"
)

const (
	planes      = 8 // 256 colors
	maskNone    = 0
	compNone    = 0
	xAspect     = 5
	yAspect     = 6
	transparent = 0
)

// Write assembles the whole container in memory, backpatches the chunk
// lengths, and emits it in one pass.
func Write(w io.Writer, pixels []byte, width, height int, pal *palette.Table) error {
	if width < 0 || height < 0 || len(pixels) != width*height {
		return fmt.Errorf("lbm: pixel buffer is %d bytes, want %d (%dx%d)",
			len(pixels), width*height, width, height)
	}

	var buf bytes.Buffer
	buf.WriteString("FORM")
	formLenAt := reserveLen(&buf)
	buf.WriteString("PBM ")

	writeChunk(&buf, "BMHD", bitmapHeader(width, height))
	writeChunk(&buf, "CMAP", pal[:])
	writeChunk(&buf, "BODY", pixels)

	patchLen(&buf, formLenAt)

	_, err := w.Write(buf.Bytes())
	if err != nil {
		return fmt.Errorf("lbm: write: %w", err)
	}
	return nil
}

// Size returns the byte length Write produces for the given dimensions.
func Size(width, height int) int {
	n := 12                       // FORM + length + PBM
	n += 8 + 20                   // BMHD, even
	n += 8 + len(palette.Table{}) // CMAP, even
	body := width * height
	n += 8 + body + body&1
	return n
}

func bitmapHeader(width, height int) []byte {
	h := make([]byte, 20)
	binary.BigEndian.PutUint16(h[0:], uint16(width))
	binary.BigEndian.PutUint16(h[2:], uint16(height))
	// x, y origin stay 0
	h[8] = planes
	h[9] = maskNone
	h[10] = compNone
	// h[11] reserved pad byte
	binary.BigEndian.PutUint16(h[12:], transparent)
	h[14] = xAspect
	h[15] = yAspect
	binary.BigEndian.PutUint16(h[16:], uint16(width))  // page width
	binary.BigEndian.PutUint16(h[18:], uint16(height)) // page height
	return h
}

// reserveLen emits a 4-byte length placeholder and returns its offset.
func reserveLen(buf *bytes.Buffer) int {
	at := buf.Len()
	buf.Write([]byte{0, 0, 0, 0})
	return at
}

// patchLen backpatches the length at the given offset to cover all bytes
// written after the placeholder.
func patchLen(buf *bytes.Buffer, at int) {
	b := buf.Bytes()
	binary.BigEndian.PutUint32(b[at:], uint32(len(b)-(at+4)))
}

// writeChunk emits one sub-chunk: tag, big-endian content length, the
// content itself, and a zero pad byte when the length is odd. The length
// never counts the tag+length header or the pad.
func writeChunk(buf *bytes.Buffer, tag string, content []byte) {
	buf.WriteString(tag)
	at := reserveLen(buf)
	buf.Write(content)
	patchLen(buf, at)
	if len(content)&1 == 1 {
		buf.WriteByte(0)
	}
}

package binio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Writer encodes fixed-width primitives to a byte stream. All multi-byte
// values written through it are big-endian; the legacy output formats this
// tool emits use no little-endian fields.
type Writer struct {
	w   io.Writer
	off int64
	buf [4]byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Offset is the number of bytes written so far.
func (w *Writer) Offset() int64 {
	return w.off
}

// Bytes writes p completely or fails.
func (w *Writer) Bytes(p []byte) error {
	n, err := w.w.Write(p)
	w.off += int64(n)
	if err != nil {
		return fmt.Errorf("binio: short write at offset %d: want %d bytes, wrote %d: %w",
			w.off, len(p), n, err)
	}
	return nil
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) error {
	w.buf[0] = b
	return w.Bytes(w.buf[:1])
}

// BigU16 writes a 2-byte big-endian unsigned integer.
func (w *Writer) BigU16(v uint16) error {
	binary.BigEndian.PutUint16(w.buf[:2], v)
	return w.Bytes(w.buf[:2])
}

// BigI32 writes a 4-byte big-endian signed integer.
func (w *Writer) BigI32(v int32) error {
	binary.BigEndian.PutUint32(w.buf[:4], uint32(v))
	return w.Bytes(w.buf[:4])
}

// BigF32 writes a 4-byte big-endian IEEE 754 float.
func (w *Writer) BigF32(v float32) error {
	binary.BigEndian.PutUint32(w.buf[:4], math.Float32bits(v))
	return w.Bytes(w.buf[:4])
}

// CString writes s followed by a NUL terminator.
func (w *Writer) CString(s string) error {
	if err := w.Bytes([]byte(s)); err != nil {
		return err
	}
	return w.Byte(0)
}

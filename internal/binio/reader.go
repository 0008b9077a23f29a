package binio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Reader decodes fixed-width primitives from a byte stream and tracks the
// absolute offset so short reads can be reported with their position.
type Reader struct {
	r   io.Reader
	off int64
	buf [4]byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Offset is the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.off
}

// Bytes fills dst completely or fails. A stream that ends before the
// first byte is still a short read, never a clean io.EOF; callers that
// treat io.EOF as an end-of-input sentinel must hand it out themselves.
func (r *Reader) Bytes(dst []byte) error {
	n, err := io.ReadFull(r.r, dst)
	r.off += int64(n)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("binio: short read at offset %d: want %d bytes, got %d: %w",
			r.off, len(dst), n, err)
	}
	return nil
}

// Byte reads a single byte.
func (r *Reader) Byte() (byte, error) {
	if err := r.Bytes(r.buf[:1]); err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

// LittleI32 reads a 4-byte little-endian signed integer.
func (r *Reader) LittleI32() (int32, error) {
	if err := r.Bytes(r.buf[:4]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(r.buf[:4])), nil
}

// LittleF32 reads a 4-byte little-endian IEEE 754 float.
func (r *Reader) LittleF32() (float32, error) {
	if err := r.Bytes(r.buf[:4]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(r.buf[:4])), nil
}

// BigI32 reads a 4-byte big-endian signed integer.
func (r *Reader) BigI32() (int32, error) {
	if err := r.Bytes(r.buf[:4]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(r.buf[:4])), nil
}

// BigF32 reads a 4-byte big-endian IEEE 754 float.
func (r *Reader) BigF32() (float32, error) {
	if err := r.Bytes(r.buf[:4]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(r.buf[:4])), nil
}

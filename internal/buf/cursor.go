package buf

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds indicates a seek or read that falls outside the stream.
var ErrOutOfBounds = errors.New("buf: out of bounds")

// Cursor is a little-endian read cursor over an in-memory stream. Positions
// are absolute offsets from the start of the stream. A Cursor is not safe for
// concurrent use; each decode owns its own.
type Cursor struct {
	b   []byte
	pos int
}

// NewCursor returns a cursor positioned at offset 0 of b.
func NewCursor(b []byte) *Cursor {
	return &Cursor{b: b}
}

// Len returns the total stream length in bytes.
func (c *Cursor) Len() int { return len(c.b) }

// Pos returns the current absolute position.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of bytes between the position and the end.
func (c *Cursor) Remaining() int { return len(c.b) - c.pos }

// Seek moves the cursor to the absolute offset off. Seeking to Len() is
// allowed; seeking past it is not.
func (c *Cursor) Seek(off int) error {
	if off < 0 || off > len(c.b) {
		return fmt.Errorf("seek to %d (len %d): %w", off, len(c.b), ErrOutOfBounds)
	}
	c.pos = off
	return nil
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) error {
	end, ok := AddOverflowSafe(c.pos, n)
	if !ok {
		return fmt.Errorf("skip %d at %d: %w", n, c.pos, ErrOutOfBounds)
	}
	return c.Seek(end)
}

// Bytes returns the next n bytes and advances past them. The returned slice
// aliases the underlying stream and must be treated as read-only.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	b, ok := Slice(c.b, c.pos, n)
	if !ok {
		return nil, fmt.Errorf("read %d bytes at %d (len %d): %w", n, c.pos, len(c.b), ErrOutOfBounds)
	}
	c.pos += n
	return b, nil
}

// U8 reads one byte.
func (c *Cursor) U8() (uint8, error) {
	b, err := c.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// I8 reads one signed byte.
func (c *Cursor) I8() (int8, error) {
	v, err := c.U8()
	return int8(v), err
}

// U16 reads a little-endian uint16.
func (c *Cursor) U16() (uint16, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}
	return U16LE(b), nil
}

// I16 reads a little-endian int16.
func (c *Cursor) I16() (int16, error) {
	v, err := c.U16()
	return int16(v), err
}

// U32 reads a little-endian uint32.
func (c *Cursor) U32() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return U32LE(b), nil
}

// I32 reads a little-endian int32.
func (c *Cursor) I32() (int32, error) {
	v, err := c.U32()
	return int32(v), err
}

// U64 reads a little-endian uint64.
func (c *Cursor) U64() (uint64, error) {
	b, err := c.Bytes(8)
	if err != nil {
		return 0, err
	}
	return U64LE(b), nil
}

// I64 reads a little-endian int64.
func (c *Cursor) I64() (int64, error) {
	b, err := c.Bytes(8)
	if err != nil {
		return 0, err
	}
	return I64LE(b), nil
}

// F32 reads a little-endian IEEE-754 float32.
func (c *Cursor) F32() (float32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return F32LE(b), nil
}

// F64 reads a little-endian IEEE-754 float64.
func (c *Cursor) F64() (float64, error) {
	b, err := c.Bytes(8)
	if err != nil {
		return 0, err
	}
	return F64LE(b), nil
}

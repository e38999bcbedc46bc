package buf

import (
	"errors"
	"testing"
)

func TestCursorSequentialReads(t *testing.T) {
	data := []byte{
		0xFE, 0xFF, // u16
		0x01, 0x00, 0x00, 0x00, // u32
		0xFF,                                           // i8
		0x10, 0x27, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // i64 = 10000
	}
	c := NewCursor(data)
	if c.Len() != len(data) || c.Pos() != 0 {
		t.Fatalf("fresh cursor: len=%d pos=%d", c.Len(), c.Pos())
	}

	u16, err := c.U16()
	if err != nil || u16 != 0xFFFE {
		t.Fatalf("U16 = 0x%x, %v", u16, err)
	}
	u32, err := c.U32()
	if err != nil || u32 != 1 {
		t.Fatalf("U32 = %d, %v", u32, err)
	}
	i8, err := c.I8()
	if err != nil || i8 != -1 {
		t.Fatalf("I8 = %d, %v", i8, err)
	}
	i64, err := c.I64()
	if err != nil || i64 != 10000 {
		t.Fatalf("I64 = %d, %v", i64, err)
	}
	if c.Remaining() != 0 {
		t.Fatalf("Remaining = %d, want 0", c.Remaining())
	}
	if _, err := c.U8(); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("read past end: got %v, want ErrOutOfBounds", err)
	}
}

func TestCursorSeekAndSkip(t *testing.T) {
	c := NewCursor(make([]byte, 8))
	if err := c.Seek(8); err != nil {
		t.Fatalf("seek to len should succeed: %v", err)
	}
	if err := c.Seek(9); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("seek past len: got %v", err)
	}
	if c.Pos() != 8 {
		t.Fatalf("failed seek must not move cursor, pos=%d", c.Pos())
	}
	if err := c.Seek(2); err != nil {
		t.Fatal(err)
	}
	if err := c.Skip(4); err != nil || c.Pos() != 6 {
		t.Fatalf("Skip: pos=%d err=%v", c.Pos(), err)
	}
	if err := c.Skip(3); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("skip past end: got %v", err)
	}
	if err := c.Seek(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("negative seek: got %v", err)
	}
}

func TestCursorBytesFailureKeepsPosition(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3})
	if _, err := c.Bytes(4); err == nil {
		t.Fatalf("expected error for oversized read")
	}
	if c.Pos() != 0 {
		t.Fatalf("pos=%d after failed read, want 0", c.Pos())
	}
	b, err := c.Bytes(3)
	if err != nil || len(b) != 3 || b[2] != 3 {
		t.Fatalf("Bytes(3) = %v, %v", b, err)
	}
}

package testutil

import (
	"encoding/binary"
	"math"
	"unicode/utf16"

	"github.com/Microsoft/go-winio/pkg/guid"
)

// Prop is one property placed in a built set. Value is written verbatim at
// the entry offset: a typed value (see Typed) or a Dictionary block.
type Prop struct {
	ID    uint32
	Value []byte
}

// Set describes one property set of a built stream.
type Set struct {
	FMTID guid.GUID
	Props []Prop
}

// BuildStream encodes a property set stream with one descriptor per set.
// Values are laid out in Props order, each starting on a 4-byte boundary.
func BuildStream(sets ...Set) []byte {
	return BuildStreamCount(uint32(len(sets)), sets...)
}

// BuildStreamCount is BuildStream with the header's set count written as
// numSets regardless of how many sets follow.
func BuildStreamCount(numSets uint32, sets ...Set) []byte {
	const headerSize = 28
	const descriptorSize = 20

	encoded := make([][]byte, len(sets))
	for i, s := range sets {
		encoded[i] = encodeSet(s)
	}

	var b []byte
	b = binary.LittleEndian.AppendUint16(b, 0xFFFE) // byte order
	b = binary.LittleEndian.AppendUint16(b, 0)      // version
	b = binary.LittleEndian.AppendUint32(b, 0x00020006)
	b = append(b, make([]byte, 16)...) // class id
	b = binary.LittleEndian.AppendUint32(b, numSets)

	off := headerSize + descriptorSize*len(sets)
	for i, s := range sets {
		fmtid := s.FMTID.ToWindowsArray()
		b = append(b, fmtid[:]...)
		b = binary.LittleEndian.AppendUint32(b, uint32(off))
		off += len(encoded[i])
	}
	for _, e := range encoded {
		b = append(b, e...)
	}
	return b
}

// SetOffsets returns the base offset of each set in a stream built by
// BuildStream from the same sets.
func SetOffsets(sets ...Set) []int {
	offs := make([]int, len(sets))
	off := 28 + 20*len(sets)
	for i, s := range sets {
		offs[i] = off
		off += len(encodeSet(s))
	}
	return offs
}

func encodeSet(s Set) []byte {
	tableEnd := 8 + 8*len(s.Props)
	var values []byte
	offsets := make([]uint32, len(s.Props))
	for i, p := range s.Props {
		offsets[i] = uint32(tableEnd + len(values))
		values = append(values, p.Value...)
		values = pad4(values)
	}

	var b []byte
	b = binary.LittleEndian.AppendUint32(b, uint32(tableEnd+len(values)))
	b = binary.LittleEndian.AppendUint32(b, uint32(len(s.Props)))
	for i, p := range s.Props {
		b = binary.LittleEndian.AppendUint32(b, p.ID)
		b = binary.LittleEndian.AppendUint32(b, offsets[i])
	}
	return append(b, values...)
}

func pad4(b []byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

// VT tags used by the value helpers.
const (
	VTEmpty    uint16 = 0
	VTI2       uint16 = 2
	VTI4       uint16 = 3
	VTR4       uint16 = 4
	VTR8       uint16 = 5
	VTCY       uint16 = 6
	VTDate     uint16 = 7
	VTBSTR     uint16 = 8
	VTError    uint16 = 10
	VTBool     uint16 = 11
	VTVariant  uint16 = 12
	VTDecimal  uint16 = 14
	VTI1       uint16 = 16
	VTUI1      uint16 = 17
	VTUI2      uint16 = 18
	VTUI4      uint16 = 19
	VTI8       uint16 = 20
	VTUI8      uint16 = 21
	VTLPSTR    uint16 = 30
	VTLPWSTR   uint16 = 31
	VTFiletime uint16 = 64
	VTBlob     uint16 = 65
	VTCLSID    uint16 = 72
	VTVector   uint16 = 0x1000
	VTArray    uint16 = 0x2000
)

// Typed returns a value header (tag, reserved) followed by the payloads.
func Typed(tag uint16, payload ...[]byte) []byte {
	b := binary.LittleEndian.AppendUint16(nil, tag)
	b = binary.LittleEndian.AppendUint16(b, 0)
	for _, p := range payload {
		b = append(b, p...)
	}
	return b
}

// Vector returns a vector value of base with the given element payloads.
func Vector(base uint16, elems ...[]byte) []byte {
	return Typed(base|VTVector, append([][]byte{U32(uint32(len(elems)))}, elems...)...)
}

// Payload encoders.

func U16(v uint16) []byte { return binary.LittleEndian.AppendUint16(nil, v) }
func U32(v uint32) []byte { return binary.LittleEndian.AppendUint32(nil, v) }
func U64(v uint64) []byte { return binary.LittleEndian.AppendUint64(nil, v) }
func F64(v float64) []byte {
	return binary.LittleEndian.AppendUint64(nil, math.Float64bits(v))
}

// Str encodes a narrow string: u32 byte length including a NUL, the bytes
// and the NUL.
func Str(s string) []byte {
	return RawStr(append([]byte(s), 0))
}

// RawStr encodes b with a u32 length prefix and no terminator.
func RawStr(b []byte) []byte {
	return append(U32(uint32(len(b))), b...)
}

// WStr encodes a wide string: u32 length in UTF-16 code units including a
// NUL, then the UTF-16LE units.
func WStr(s string) []byte {
	units := utf16.Encode([]rune(s + "\x00"))
	return append(U32(uint32(len(units))), UTF16LE(s+"\x00")...)
}

// UTF16LE returns the UTF-16LE bytes of s with no length or terminator.
func UTF16LE(s string) []byte {
	var b []byte
	for _, u := range utf16.Encode([]rune(s)) {
		b = binary.LittleEndian.AppendUint16(b, u)
	}
	return b
}

// Value helpers returning complete typed values.

func I2(v int16) []byte { return Typed(VTI2, U16(uint16(v))) }
func I4(v int32) []byte { return Typed(VTI4, U32(uint32(v))) }
func UI4(v uint32) []byte { return Typed(VTUI4, U32(v)) }
func R8(v float64) []byte { return Typed(VTR8, F64(v)) }
func Bool(v bool) []byte { return Typed(VTBool, U16(boolWord(v))) }
func CY(raw int64) []byte { return Typed(VTCY, U64(uint64(raw))) }
func Date(oa float64) []byte { return Typed(VTDate, F64(oa)) }
func Filetime(ticks int64) []byte { return Typed(VTFiletime, U64(uint64(ticks))) }
func LPSTR(s string) []byte { return Typed(VTLPSTR, Str(s)) }
func LPWSTR(s string) []byte { return Typed(VTLPWSTR, WStr(s)) }

// CodePage returns the VT_I2 value stored under property id 1.
func CodePage(cp uint16) []byte { return Typed(VTI2, U16(cp)) }

func boolWord(v bool) uint16 {
	if v {
		return 0xFFFF
	}
	return 0
}

// DictEntry is one record of a name dictionary.
type DictEntry struct {
	ID   uint32
	Name string
}

// Dictionary encodes the block stored under property id 0. Wide records
// hold UTF-16LE names padded to 4 bytes; narrow records hold the raw name
// bytes and a NUL with no padding.
func Dictionary(wide bool, entries ...DictEntry) []byte {
	b := U32(uint32(len(entries)))
	for _, e := range entries {
		rec := U32(e.ID)
		if wide {
			rec = append(rec, WStr(e.Name)...)
			rec = pad4(rec)
		} else {
			rec = append(rec, Str(e.Name)...)
		}
		b = append(b, rec...)
	}
	return b
}

// Package format houses the wire-level layout of OLE property set streams
// (MS-OLEPS): field sizes, reserved property identifiers, type-tag masks and
// the small conversions shared by the decoders. It has no knowledge of the
// public data model so higher-level packages can orchestrate decoding in a
// more ergonomic form.
package format

// Stream header layout (little-endian):
//
//	0x00  byteOrder  u16   (0xFFFE)
//	0x02  version    u16
//	0x04  systemId   u32
//	0x08  classId    [16]byte
//	0x18  numSets    u32
//	0x1C  descriptors start
const (
	ByteOrderSize     = 2
	VersionSize       = 2
	SystemIDSize      = 4
	ClassIDSize       = 16
	NumSetsSize       = 4
	StreamHeaderSize  = ByteOrderSize + VersionSize + SystemIDSize + ClassIDSize + NumSetsSize
	FMTIDSize         = 16
	DescriptorSize    = FMTIDSize + 4
	ByteOrderMark     = 0xFFFE
	MinPropertySets   = 1
	MaxPropertySets   = 2
	SecondDescriptorN = 2 // numSets value that makes a second descriptor present
)

// Property set layout: size u32, count u32, then count (id u32, offset u32)
// entries. Entry offsets are relative to the start of the set.
const (
	SetHeaderSize = 8
	EntrySize     = 8
)

// Reserved property identifiers.
const (
	// PIDDictionary holds the id -> name dictionary; it is never a value.
	PIDDictionary uint32 = 0
	// PIDCodePage holds the VT_I2 code page used for narrow strings and names.
	PIDCodePage uint32 = 1
)

// Typed value layout: type tag u16, reserved u16, then the scalar or vector.
const (
	ValueHeaderSize = 4
	VectorCountSize = 4
	StringLenSize   = 4
	DictCountSize   = 4
	// DictRecordHeaderSize covers the id u32 and length u32 of a dictionary record.
	DictRecordHeaderSize = 8
)

// Type tag bit layout.
const (
	BaseTypeMask uint16 = 0x00FF
	VectorFlag   uint16 = 0x1000
	ArrayFlag    uint16 = 0x2000
)

// Alignment is the boundary property values are padded to.
const Alignment = 4

// CodePageUTF16 selects UTF-16LE for strings and dictionary names.
const CodePageUTF16 uint16 = 1200

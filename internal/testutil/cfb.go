package testutil

import (
	"encoding/binary"
	"fmt"
	"unicode/utf16"
)

// Stream is one named stream of a built compound file.
type Stream struct {
	Name string // may start with "\x05" for property set streams
	Data []byte
}

const (
	cfbSector     = 512
	cfbDirEntry   = 128
	cfbMinStream  = 4096 // streams below the cutoff would live in the mini stream
	cfbFATSect    = 0xFFFFFFFD
	cfbEndOfChain = 0xFFFFFFFE
	cfbFree       = 0xFFFFFFFF
	cfbNoStream   = 0xFFFFFFFF
)

// BuildCompoundFile encodes a version 3 compound file holding streams in the
// root storage. Streams shorter than the 4096-byte mini stream cutoff are
// zero-padded to it, so every stream lives in regular sectors and the file
// needs no mini stream. Streams are listed in the given order.
func BuildCompoundFile(streams ...Stream) ([]byte, error) {
	dirEntries := 1 + len(streams)
	dirSectors := (dirEntries*cfbDirEntry + cfbSector - 1) / cfbSector

	type placed struct {
		start, sectors int
	}
	places := make([]placed, len(streams))
	next := 1 + dirSectors
	for i, s := range streams {
		size := max(len(s.Data), cfbMinStream)
		n := (size + cfbSector - 1) / cfbSector
		places[i] = placed{start: next, sectors: n}
		next += n
	}
	total := next
	if total > cfbSector/4 {
		return nil, fmt.Errorf("testutil: %d sectors do not fit one FAT sector", total)
	}

	fat := make([]uint32, cfbSector/4)
	for i := range fat {
		fat[i] = cfbFree
	}
	fat[0] = cfbFATSect
	chain := func(start, n int) {
		for i := 0; i < n-1; i++ {
			fat[start+i] = uint32(start + i + 1)
		}
		fat[start+n-1] = cfbEndOfChain
	}
	chain(1, dirSectors)
	for _, p := range places {
		chain(p.start, p.sectors)
	}

	out := make([]byte, cfbSector*(1+total))

	// Header
	h := out[:cfbSector]
	copy(h, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	binary.LittleEndian.PutUint16(h[24:], 0x003E)
	binary.LittleEndian.PutUint16(h[26:], 3)
	binary.LittleEndian.PutUint16(h[28:], 0xFFFE)
	binary.LittleEndian.PutUint16(h[30:], 9)
	binary.LittleEndian.PutUint16(h[32:], 6)
	binary.LittleEndian.PutUint32(h[44:], 1) // FAT sectors
	binary.LittleEndian.PutUint32(h[48:], 1) // first directory sector
	binary.LittleEndian.PutUint32(h[56:], cfbMinStream)
	binary.LittleEndian.PutUint32(h[60:], cfbEndOfChain) // mini FAT
	binary.LittleEndian.PutUint32(h[68:], cfbEndOfChain) // DIFAT
	binary.LittleEndian.PutUint32(h[76:], 0)             // DIFAT[0] -> FAT in sector 0
	for i := 1; i < 109; i++ {
		binary.LittleEndian.PutUint32(h[76+4*i:], cfbFree)
	}

	sector := func(n int) []byte {
		off := cfbSector * (n + 1)
		return out[off : off+cfbSector]
	}

	// FAT
	f := sector(0)
	for i, v := range fat {
		binary.LittleEndian.PutUint32(f[4*i:], v)
	}

	// Directory: root, then each stream as the right sibling of the previous.
	dir := out[cfbSector*2 : cfbSector*2+dirSectors*cfbSector]
	child := uint32(cfbNoStream)
	if len(streams) > 0 {
		child = 1
	}
	writeDirEntry(dir[0:], "Root Entry", 5, child, cfbNoStream, cfbEndOfChain, 0)
	for i, s := range streams {
		right := uint32(cfbNoStream)
		if i+1 < len(streams) {
			right = uint32(i + 2)
		}
		writeDirEntry(dir[(i+1)*cfbDirEntry:], s.Name, 2, cfbNoStream, right, uint32(places[i].start), uint32(max(len(s.Data), cfbMinStream)))
	}
	for i := dirEntries; i < dirSectors*cfbSector/cfbDirEntry; i++ {
		e := dir[i*cfbDirEntry:]
		binary.LittleEndian.PutUint32(e[68:], cfbNoStream)
		binary.LittleEndian.PutUint32(e[72:], cfbNoStream)
		binary.LittleEndian.PutUint32(e[76:], cfbNoStream)
	}

	// Stream data
	for i, s := range streams {
		copy(out[cfbSector*(places[i].start+1):], s.Data)
	}
	return out, nil
}

func writeDirEntry(e []byte, name string, objType byte, child, right, start, size uint32) {
	units := utf16.Encode([]rune(name))
	for i, u := range units {
		binary.LittleEndian.PutUint16(e[2*i:], u)
	}
	binary.LittleEndian.PutUint16(e[64:], uint16(2*(len(units)+1)))
	e[66] = objType
	e[67] = 1 // black
	binary.LittleEndian.PutUint32(e[68:], cfbNoStream)
	binary.LittleEndian.PutUint32(e[72:], right)
	binary.LittleEndian.PutUint32(e[76:], child)
	binary.LittleEndian.PutUint32(e[116:], start)
	binary.LittleEndian.PutUint32(e[120:], size)
}

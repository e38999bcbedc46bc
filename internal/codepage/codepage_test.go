package codepage

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		cp    uint16
		codec Codec
		known bool
	}{
		{1200, UTF16LE, true},
		{1250, Windows1250, true},
		{1251, Windows1251, true},
		{1252, Windows1252, true},
		{1253, Windows1253, true},
		{1254, Windows1254, true},
		{0, UTF8, false},
		{65001, UTF8, false},
		{1255, UTF8, false},
		{437, UTF8, false},
	}
	for _, tt := range tests {
		codec, ok := Lookup(tt.cp)
		if codec != tt.codec || ok != tt.known {
			t.Fatalf("Lookup(%d) = %v,%v want %v,%v", tt.cp, codec, ok, tt.codec, tt.known)
		}
		if Known(tt.cp) != tt.known {
			t.Fatalf("Known(%d) = %v", tt.cp, !tt.known)
		}
	}
}

func TestDecodeNarrow(t *testing.T) {
	tests := []struct {
		name  string
		codec Codec
		in    []byte
		want  string
	}{
		{"ascii with terminator", Windows1252, []byte("Author\x00"), "Author"},
		{"several terminators", Windows1252, []byte("x\x00\x00\x00"), "x"},
		{"1252 euro and umlaut", Windows1252, []byte{0x80, 0xE4}, "€ä"},
		{"1250 s caron", Windows1250, []byte{0x9A}, "š"},
		{"1251 cyrillic", Windows1251, []byte{0xC0, 0xE1}, "Аб"},
		{"1253 greek", Windows1253, []byte{0xE1}, "α"},
		{"1254 turkish", Windows1254, []byte{0xFD}, "ı"},
		{"utf8 fallback", UTF8, []byte("h\xc3\xa9\x00"), "hé"},
		{"leading nul kept", UTF8, []byte("\x00a"), "\x00a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.codec.Decode(tt.in)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Decode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeUTF8Invalid(t *testing.T) {
	if _, err := UTF8.Decode([]byte{0xff, 0xfe, 0x41}); !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestDecodeUTF16(t *testing.T) {
	// "Tö" + NUL, plus a surrogate pair for U+1F600.
	data := []byte{'T', 0, 0xF6, 0, 0x3D, 0xD8, 0x00, 0xDE, 0, 0}
	got, err := UTF16LE.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "Tö\U0001F600" {
		t.Fatalf("Decode = %q", got)
	}
	if _, err := DecodeUTF16([]byte{'a', 0, 'b'}); !errors.Is(err, ErrOddLength) {
		t.Fatalf("odd length: got %v", err)
	}
	if s, err := DecodeUTF16(nil); err != nil || s != "" {
		t.Fatalf("empty input: %q, %v", s, err)
	}
}

func TestCodecString(t *testing.T) {
	if UTF16LE.String() != "UTF-16LE" || Windows1254.String() != "Windows-1254" {
		t.Fatalf("unexpected names: %s %s", UTF16LE, Windows1254)
	}
	if Codec(99).String() != "Codec(99)" {
		t.Fatalf("unexpected fallback name %s", Codec(99))
	}
}

// Package codepage maps the property-set code page identifier to a text codec
// and decodes narrow (LPSTR, dictionary) and wide (LPWSTR) string bytes.
//
// Only six code pages are recognized: 1200 (UTF-16LE) and the Windows legacy
// pages 1250 to 1254. Everything else falls back to UTF-8; callers can detect
// the fallback with Known and report it.
package codepage

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/olekit/internal/format"
)

var (
	// ErrOddLength indicates UTF-16 data with an odd number of bytes.
	ErrOddLength = errors.New("codepage: utf-16 data has odd length")
	// ErrInvalidUTF8 indicates bytes that are not valid UTF-8 under the fallback codec.
	ErrInvalidUTF8 = errors.New("codepage: invalid utf-8")
)

// Codec identifies the text codec chosen for a code page.
type Codec uint8

const (
	UTF8 Codec = iota // fallback for unknown code pages, including 0
	UTF16LE
	Windows1250
	Windows1251
	Windows1252
	Windows1253
	Windows1254
)

var codecNames = [...]string{
	UTF8:        "UTF-8",
	UTF16LE:     "UTF-16LE",
	Windows1250: "Windows-1250",
	Windows1251: "Windows-1251",
	Windows1252: "Windows-1252",
	Windows1253: "Windows-1253",
	Windows1254: "Windows-1254",
}

func (c Codec) String() string {
	if int(c) < len(codecNames) {
		return codecNames[c]
	}
	return fmt.Sprintf("Codec(%d)", uint8(c))
}

// Wide reports whether the codec uses two bytes per code unit.
func (c Codec) Wide() bool { return c == UTF16LE }

// Lookup returns the codec for a code page. ok is false when the code page is
// not one of the recognized values and UTF-8 was substituted.
func Lookup(cp uint16) (Codec, bool) {
	switch cp {
	case format.CodePageUTF16:
		return UTF16LE, true
	case 1250:
		return Windows1250, true
	case 1251:
		return Windows1251, true
	case 1252:
		return Windows1252, true
	case 1253:
		return Windows1253, true
	case 1254:
		return Windows1254, true
	default:
		return UTF8, false
	}
}

// Known reports whether cp is a recognized code page.
func Known(cp uint16) bool {
	_, ok := Lookup(cp)
	return ok
}

func (c Codec) encoding() encoding.Encoding {
	switch c {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case Windows1250:
		return charmap.Windows1250
	case Windows1251:
		return charmap.Windows1251
	case Windows1252:
		return charmap.Windows1252
	case Windows1253:
		return charmap.Windows1253
	case Windows1254:
		return charmap.Windows1254
	default:
		return nil
	}
}

// Decode converts raw bytes with the codec and trims trailing NUL characters.
func (c Codec) Decode(data []byte) (string, error) {
	var s string
	switch {
	case c == UTF8:
		if !utf8.Valid(data) {
			return "", ErrInvalidUTF8
		}
		s = string(data)
	case c.Wide():
		return DecodeUTF16(data)
	case isASCII(data):
		// ASCII is identical in every supported Windows code page.
		s = string(data)
	default:
		decoded, err := c.encoding().NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("%s: %w", c, err)
		}
		s = string(decoded)
	}
	return TrimNUL(s), nil
}

// DecodeUTF16 decodes UTF-16LE bytes and trims trailing NUL characters.
func DecodeUTF16(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", ErrOddLength
	}
	decoded, err := UTF16LE.encoding().NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", UTF16LE, err)
	}
	return TrimNUL(string(decoded)), nil
}

// TrimNUL removes trailing NUL characters.
func TrimNUL(s string) string {
	return strings.TrimRight(s, "\x00")
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

package format

import "errors"

var (
	// ErrTruncated indicates the stream lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated stream")
	// ErrSanityLimit indicates a count or size read from the stream exceeds the configured limit.
	ErrSanityLimit = errors.New("format: sanity limit exceeded")
	// ErrSetCount indicates a stream header declaring other than one or two property sets.
	ErrSetCount = errors.New("format: unsupported property set count")
	// ErrUnknownType indicates a type tag whose base type is not in the VT registry.
	ErrUnknownType = errors.New("format: unknown property type")
	// ErrUnsupported indicates a recognized type or shape that cannot be decoded.
	ErrUnsupported = errors.New("format: unsupported property type")
	// ErrValueRange indicates a value that has no representation once converted (a NaN DATE, say).
	ErrValueRange = errors.New("format: value out of range")
	// ErrTextDecode indicates string bytes that are invalid for the active code page.
	ErrTextDecode = errors.New("format: text decode failed")
)

package propset

import (
	"fmt"

	"github.com/joshuapare/olekit/internal/codepage"
	"github.com/joshuapare/olekit/internal/format"
	"github.com/joshuapare/olekit/pkg/types"
)

// valueReader reads one property value of a single on-disk type. The tag
// fixes the base type and shape; the code page selects the narrow text codec.
type valueReader struct {
	tag      types.VarType
	base     types.VarType
	dim      types.Dimension
	codePage uint16
	codec    codepage.Codec
	variant  bool // nested inside a variant vector: never padded
}

// newValueReader dispatches a type tag to its reader. It fails with
// format.ErrUnknownType when the base type is not in the registry and with
// format.ErrUnsupported when the base type has no value reader.
func newValueReader(tag uint16, codePage uint16, isVariant bool) (*valueReader, error) {
	vt := types.VarType(tag)
	base, ok := vt.LookupBase()
	if !ok {
		return nil, fmt.Errorf("%w: %s", format.ErrUnknownType, vt)
	}
	if !readable(base) {
		return nil, fmt.Errorf("%w: %s", format.ErrUnsupported, vt)
	}
	codec, _ := codepage.Lookup(codePage)
	return &valueReader{
		tag:      vt,
		base:     base,
		dim:      vt.Dimension(),
		codePage: codePage,
		codec:    codec,
		variant:  isVariant,
	}, nil
}

// readable reports whether base has a scalar reader.
func readable(base types.VarType) bool {
	switch base {
	case types.VT_EMPTY, types.VT_NULL,
		types.VT_I1, types.VT_UI1, types.VT_I2, types.VT_UI2,
		types.VT_I4, types.VT_INT, types.VT_UI4, types.VT_UINT,
		types.VT_I8, types.VT_UI8,
		types.VT_R4, types.VT_R8, types.VT_CY, types.VT_BOOL,
		types.VT_DATE, types.VT_FILETIME,
		types.VT_LPSTR, types.VT_BSTR, types.VT_LPWSTR,
		types.VT_ERROR, types.VT_CLSID, types.VT_BLOB,
		types.VT_VARIANT:
		return true
	default:
		return false
	}
}

// minWidth is the smallest number of bytes one scalar of base can occupy.
// Vector counts are checked against it before any allocation. EMPTY and
// NULL occupy no bytes but count as one, so their vectors stay bounded by
// the remaining stream.
func minWidth(base types.VarType) int {
	switch base {
	case types.VT_EMPTY, types.VT_NULL, types.VT_I1, types.VT_UI1:
		return 1
	case types.VT_I2, types.VT_UI2, types.VT_BOOL:
		return 2
	case types.VT_I4, types.VT_INT, types.VT_UI4, types.VT_UINT, types.VT_R4, types.VT_ERROR:
		return 4
	case types.VT_I8, types.VT_UI8, types.VT_R8, types.VT_CY, types.VT_DATE, types.VT_FILETIME:
		return 8
	case types.VT_CLSID:
		return format.ClassIDSize
	case types.VT_LPSTR, types.VT_BSTR, types.VT_LPWSTR, types.VT_BLOB:
		return format.StringLenSize
	case types.VT_VARIANT:
		return format.ValueHeaderSize
	default:
		return 1
	}
}

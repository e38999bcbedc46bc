package types

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Microsoft/go-winio/pkg/guid"
)

// TimeLayout is the rendering of FILETIME and DATE values.
const TimeLayout = "2006-01-02T15:04:05Z"

// Kind is the discriminant of the Value union.
type Kind uint8

const (
	KindEmpty    Kind = iota // VT_EMPTY, VT_NULL
	KindInt                  // VT_I1, VT_I2, VT_I4, VT_INT, VT_I8
	KindUint                 // VT_UI1, VT_UI2, VT_UI4, VT_UINT, VT_UI8
	KindFloat                // VT_R4, VT_R8
	KindCurrency             // VT_CY, already scaled down by 10000
	KindBool                 // VT_BOOL
	KindTime                 // VT_FILETIME, VT_DATE
	KindString               // VT_LPSTR, VT_BSTR, VT_LPWSTR
	KindError                // VT_ERROR (HRESULT / SCODE)
	KindGUID                 // VT_CLSID
	KindBlob                 // VT_BLOB
	KindVariant              // element of a VT_VECTOR|VT_VARIANT property
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindCurrency:
		return "currency"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindString:
		return "string"
	case KindError:
		return "error"
	case KindGUID:
		return "guid"
	case KindBlob:
		return "blob"
	case KindVariant:
		return "variant"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is one decoded scalar. Kind selects which field is meaningful; Type
// records the base VT type it was decoded from. A KindVariant value boxes the
// nested, independently typed property.
type Value struct {
	Kind Kind
	Type VarType

	Int     int64
	Uint    uint64
	Float   float64
	Bool    bool
	Time    time.Time
	Text    string
	GUID    guid.GUID
	Blob    []byte
	Variant *Property
}

// EmptyValue returns the placeholder decoded from VT_EMPTY and VT_NULL.
func EmptyValue(t VarType) Value { return Value{Kind: KindEmpty, Type: t} }

// IntValue returns a signed integer value.
func IntValue(t VarType, v int64) Value { return Value{Kind: KindInt, Type: t, Int: v} }

// UintValue returns an unsigned integer value.
func UintValue(t VarType, v uint64) Value { return Value{Kind: KindUint, Type: t, Uint: v} }

// FloatValue returns a floating point value.
func FloatValue(t VarType, v float64) Value { return Value{Kind: KindFloat, Type: t, Float: v} }

// CurrencyValue returns a VT_CY value in whole currency units.
func CurrencyValue(v int64) Value { return Value{Kind: KindCurrency, Type: VT_CY, Int: v} }

// BoolValue returns a VT_BOOL value.
func BoolValue(v bool) Value { return Value{Kind: KindBool, Type: VT_BOOL, Bool: v} }

// TimeValue returns a FILETIME or DATE value.
func TimeValue(t VarType, v time.Time) Value { return Value{Kind: KindTime, Type: t, Time: v} }

// StringValue returns a text value.
func StringValue(t VarType, v string) Value { return Value{Kind: KindString, Type: t, Text: v} }

// ErrorValue returns a VT_ERROR status code.
func ErrorValue(v uint32) Value { return Value{Kind: KindError, Type: VT_ERROR, Uint: uint64(v)} }

// GUIDValue returns a VT_CLSID value.
func GUIDValue(g guid.GUID) Value { return Value{Kind: KindGUID, Type: VT_CLSID, GUID: g} }

// BlobValue returns a VT_BLOB value.
func BlobValue(b []byte) Value { return Value{Kind: KindBlob, Type: VT_BLOB, Blob: b} }

// VariantValue boxes a nested variant element.
func VariantValue(p *Property) Value { return Value{Kind: KindVariant, Type: VT_VARIANT, Variant: p} }

// String renders the value for diagnostics and export.
func (v Value) String() string {
	switch v.Kind {
	case KindEmpty:
		return "<empty>"
	case KindInt, KindCurrency:
		return strconv.FormatInt(v.Int, 10)
	case KindUint:
		return strconv.FormatUint(v.Uint, 10)
	case KindFloat:
		if v.Type == VT_R4 {
			return strconv.FormatFloat(v.Float, 'g', -1, 32)
		}
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindTime:
		return v.Time.UTC().Format(TimeLayout)
	case KindString:
		return v.Text
	case KindError:
		return fmt.Sprintf("0x%08X", v.Uint)
	case KindGUID:
		return "{" + v.GUID.String() + "}"
	case KindBlob:
		return fmt.Sprintf("<%d bytes>", len(v.Blob))
	case KindVariant:
		if v.Variant == nil {
			return "<nil>"
		}
		return v.Variant.String()
	default:
		return "<nil>"
	}
}

// Interface returns the value as a native Go value: int64, uint64, float64,
// bool, time.Time, string, []byte, nil for empty values, and the nested
// property's Interface() for variant elements.
func (v Value) Interface() any {
	switch v.Kind {
	case KindInt, KindCurrency:
		return v.Int
	case KindUint, KindError:
		return v.Uint
	case KindFloat:
		return v.Float
	case KindBool:
		return v.Bool
	case KindTime:
		return v.Time
	case KindString:
		return v.Text
	case KindGUID:
		return v.GUID.String()
	case KindBlob:
		return v.Blob
	case KindVariant:
		if v.Variant == nil {
			return nil
		}
		return v.Variant.Interface()
	default:
		return nil
	}
}

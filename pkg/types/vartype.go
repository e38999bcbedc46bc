package types

import (
	"fmt"
	"strings"

	"github.com/joshuapare/olekit/internal/format"
)

// VarType is the on-disk 16-bit property type tag. The low byte selects the
// base type; bits 0x1000 and 0x2000 mark vector and array shapes.
// (The numbers align with the OLE Automation VARENUM definitions.)
type VarType uint16

const (
	VT_EMPTY            VarType = 0
	VT_NULL             VarType = 1
	VT_I2               VarType = 2
	VT_I4               VarType = 3
	VT_R4               VarType = 4
	VT_R8               VarType = 5
	VT_CY               VarType = 6
	VT_DATE             VarType = 7
	VT_BSTR             VarType = 8
	VT_ERROR            VarType = 10
	VT_BOOL             VarType = 11
	VT_VARIANT          VarType = 12
	VT_DECIMAL          VarType = 14
	VT_I1               VarType = 16
	VT_UI1              VarType = 17
	VT_UI2              VarType = 18
	VT_UI4              VarType = 19
	VT_I8               VarType = 20
	VT_UI8              VarType = 21
	VT_INT              VarType = 22
	VT_UINT             VarType = 23
	VT_LPSTR            VarType = 30
	VT_LPWSTR           VarType = 31
	VT_FILETIME         VarType = 64
	VT_BLOB             VarType = 65
	VT_STREAM           VarType = 66
	VT_STORAGE          VarType = 67
	VT_STREAMED_OBJECT  VarType = 68
	VT_STORED_OBJECT    VarType = 69
	VT_BLOB_OBJECT      VarType = 70
	VT_CF               VarType = 71
	VT_CLSID            VarType = 72
	VT_VERSIONED_STREAM VarType = 73

	VT_VECTOR VarType = VarType(format.VectorFlag)
	VT_ARRAY  VarType = VarType(format.ArrayFlag)

	// VT_VARIANT_VECTOR is the tag of a vector of independently typed elements.
	VT_VARIANT_VECTOR VarType = VT_VECTOR | VT_VARIANT
)

var baseNames = map[VarType]string{
	VT_EMPTY:            "VT_EMPTY",
	VT_NULL:             "VT_NULL",
	VT_I2:               "VT_I2",
	VT_I4:               "VT_I4",
	VT_R4:               "VT_R4",
	VT_R8:               "VT_R8",
	VT_CY:               "VT_CY",
	VT_DATE:             "VT_DATE",
	VT_BSTR:             "VT_BSTR",
	VT_ERROR:            "VT_ERROR",
	VT_BOOL:             "VT_BOOL",
	VT_VARIANT:          "VT_VARIANT",
	VT_DECIMAL:          "VT_DECIMAL",
	VT_I1:               "VT_I1",
	VT_UI1:              "VT_UI1",
	VT_UI2:              "VT_UI2",
	VT_UI4:              "VT_UI4",
	VT_I8:               "VT_I8",
	VT_UI8:              "VT_UI8",
	VT_INT:              "VT_INT",
	VT_UINT:             "VT_UINT",
	VT_LPSTR:            "VT_LPSTR",
	VT_LPWSTR:           "VT_LPWSTR",
	VT_FILETIME:         "VT_FILETIME",
	VT_BLOB:             "VT_BLOB",
	VT_STREAM:           "VT_STREAM",
	VT_STORAGE:          "VT_STORAGE",
	VT_STREAMED_OBJECT:  "VT_STREAMED_OBJECT",
	VT_STORED_OBJECT:    "VT_STORED_OBJECT",
	VT_BLOB_OBJECT:      "VT_BLOB_OBJECT",
	VT_CF:               "VT_CF",
	VT_CLSID:            "VT_CLSID",
	VT_VERSIONED_STREAM: "VT_VERSIONED_STREAM",
}

// Base returns the base type encoded in the low byte.
func (t VarType) Base() VarType {
	return t & VarType(format.BaseTypeMask)
}

// LookupBase returns the base type of t and whether the registry knows it.
func (t VarType) LookupBase() (VarType, bool) {
	b := t.Base()
	_, ok := baseNames[b]
	return b, ok
}

// Known reports whether the base type is in the registry.
func (t VarType) Known() bool {
	_, ok := t.LookupBase()
	return ok
}

// Dimension derives the value shape from the flag bits. The vector bit wins
// when both are set.
func (t VarType) Dimension() Dimension {
	switch {
	case t&VT_VECTOR != 0:
		return DimVector
	case t&VT_ARRAY != 0:
		return DimArray
	default:
		return DimScalar
	}
}

// String implements the Stringer interface for VarType.
func (t VarType) String() string {
	name, ok := baseNames[t.Base()]
	if !ok {
		name = fmt.Sprintf("VT_UNKNOWN_%d", uint16(t.Base()))
	}
	var b strings.Builder
	b.WriteString(name)
	if t&VT_VECTOR != 0 {
		b.WriteString("|VT_VECTOR")
	}
	if t&VT_ARRAY != 0 {
		b.WriteString("|VT_ARRAY")
	}
	return b.String()
}

// Dimension is the shape of a property value.
type Dimension uint8

const (
	DimScalar Dimension = iota
	DimVector
	DimArray
)

func (d Dimension) String() string {
	switch d {
	case DimScalar:
		return "scalar"
	case DimVector:
		return "vector"
	case DimArray:
		return "array"
	default:
		return fmt.Sprintf("Dimension(%d)", uint8(d))
	}
}

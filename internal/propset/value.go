package propset

import (
	"bytes"
	"fmt"

	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/joshuapare/olekit/internal/buf"
	"github.com/joshuapare/olekit/internal/codepage"
	"github.com/joshuapare/olekit/internal/format"
	"github.com/joshuapare/olekit/pkg/types"
)

// maxVariantDepth bounds variant elements nested inside variant elements.
const maxVariantDepth = 16

// valueContext identifies the property being read for logs and diagnostics.
type valueContext struct {
	fmtid guid.GUID
	id    uint32
	depth int
}

// readProperty reads the value of r at the cursor: one scalar, or a u32
// count followed by that many scalars. Elements that fail to decode are
// dropped from a vector, except variant elements whose tag dispatched: those
// keep their slot with an absent nested value. A scalar that fails leaves the
// property absent.
// Afterwards the cursor is realigned to 4 bytes from the value start unless
// r is a variant element or the aligned position lies past the stream end.
//
// A nil property with a nil error means the value has the array shape and
// must be omitted. Any returned error is structural.
func (d *decoder) readProperty(r *valueReader, vc valueContext) (*types.Property, error) {
	p0 := d.c.Pos()
	p := &types.Property{
		ID:        vc.id,
		Type:      r.tag,
		Dimension: r.dim,
		Variant:   r.variant,
	}

	switch r.dim {
	case types.DimScalar:
		v, err := d.readScalar(r, vc)
		switch {
		case err == nil:
			p.Value = &v
		case structural(err):
			return nil, err
		default:
			d.skipValue(vc, r.tag, p0, "property value skipped", err)
		}

	case types.DimVector:
		n, err := d.c.U32()
		if err != nil {
			return nil, truncated(err)
		}
		count, err := d.checkCount("vector", n, d.limits.MaxVectorLen, minWidth(r.base))
		if err != nil {
			return nil, err
		}
		values := make([]types.Value, 0, count)
		for i := 0; i < count; i++ {
			pos := d.c.Pos()
			v, err := d.readScalar(r, vc)
			if err != nil {
				if structural(err) {
					return nil, err
				}
				d.skipValue(vc, r.tag, pos, fmt.Sprintf("vector element %d skipped", i), err)
				continue
			}
			values = append(values, v)
		}
		p.Values = values

	default:
		d.skipValue(vc, r.tag, p0, "property skipped", errArrayDimension)
		return nil, nil
	}

	d.pad(p0, r.variant)
	return p, nil
}

// pad advances the cursor to the next 4-byte boundary relative to p0.
func (d *decoder) pad(p0 int, variant bool) {
	if variant {
		return
	}
	n := format.Pad4(d.c.Pos() - p0)
	if n == 0 {
		return
	}
	if end := d.c.Pos() + n; end <= d.c.Len() {
		_ = d.c.Seek(end)
	}
}

// readScalar decodes one scalar of r's base type at the cursor.
func (d *decoder) readScalar(r *valueReader, vc valueContext) (types.Value, error) {
	c := d.c
	switch r.base {
	case types.VT_EMPTY, types.VT_NULL:
		return types.EmptyValue(r.base), nil

	case types.VT_I1:
		v, err := c.I8()
		return types.IntValue(r.base, int64(v)), truncated(err)
	case types.VT_UI1:
		v, err := c.U8()
		return types.UintValue(r.base, uint64(v)), truncated(err)
	case types.VT_I2:
		v, err := c.I16()
		return types.IntValue(r.base, int64(v)), truncated(err)
	case types.VT_UI2:
		v, err := c.U16()
		return types.UintValue(r.base, uint64(v)), truncated(err)
	case types.VT_I4, types.VT_INT:
		v, err := c.I32()
		return types.IntValue(r.base, int64(v)), truncated(err)
	case types.VT_UI4, types.VT_UINT:
		v, err := c.U32()
		return types.UintValue(r.base, uint64(v)), truncated(err)
	case types.VT_I8:
		v, err := c.I64()
		return types.IntValue(r.base, v), truncated(err)
	case types.VT_UI8:
		v, err := c.U64()
		return types.UintValue(r.base, v), truncated(err)
	case types.VT_R4:
		v, err := c.F32()
		return types.FloatValue(r.base, float64(v)), truncated(err)
	case types.VT_R8:
		v, err := c.F64()
		return types.FloatValue(r.base, v), truncated(err)

	case types.VT_CY:
		v, err := c.I64()
		return types.CurrencyValue(v / 10000), truncated(err)

	case types.VT_BOOL:
		v, err := c.U16()
		return types.BoolValue(v != 0), truncated(err)

	case types.VT_FILETIME:
		v, err := c.I64()
		if err != nil {
			return types.Value{}, truncated(err)
		}
		return types.TimeValue(r.base, format.FiletimeToTime(v)), nil

	case types.VT_DATE:
		v, err := c.F64()
		if err != nil {
			return types.Value{}, truncated(err)
		}
		t, ok := format.OLEDateToTime(v)
		if !ok {
			return types.Value{}, fmt.Errorf("%w: DATE %v", format.ErrValueRange, v)
		}
		return types.TimeValue(r.base, t), nil

	case types.VT_LPSTR, types.VT_BSTR:
		s, err := d.readText(r.codec.Decode, 1)
		return types.StringValue(r.base, s), err

	case types.VT_LPWSTR:
		s, err := d.readText(codepage.DecodeUTF16, 2)
		return types.StringValue(r.base, s), err

	case types.VT_ERROR:
		v, err := c.U32()
		return types.ErrorValue(v), truncated(err)

	case types.VT_CLSID:
		b, err := c.Bytes(format.ClassIDSize)
		if err != nil {
			return types.Value{}, truncated(err)
		}
		return types.GUIDValue(guid.FromWindowsArray([16]byte(b))), nil

	case types.VT_BLOB:
		n, err := c.U32()
		if err != nil {
			return types.Value{}, truncated(err)
		}
		if err := d.checkLength("blob", int(n)); err != nil {
			return types.Value{}, err
		}
		b, err := c.Bytes(int(n))
		if err != nil {
			return types.Value{}, truncated(err)
		}
		return types.BlobValue(bytes.Clone(b)), nil

	case types.VT_VARIANT:
		return d.readVariant(r, vc)

	default:
		return types.Value{}, fmt.Errorf("%w: %s", format.ErrUnsupported, r.tag)
	}
}

// readText reads a u32 length in code units of unit bytes, then the text.
func (d *decoder) readText(decode func([]byte) (string, error), unit int) (string, error) {
	l, err := d.c.U32()
	if err != nil {
		return "", truncated(err)
	}
	n, ok := buf.MulOverflowSafe(int(l), unit)
	if !ok {
		return "", fmt.Errorf("string length %d: %w", l, format.ErrSanityLimit)
	}
	if err := d.checkLength("string", n); err != nil {
		return "", err
	}
	b, err := d.c.Bytes(n)
	if err != nil {
		return "", truncated(err)
	}
	s, err := decode(b)
	if err != nil {
		return "", fmt.Errorf("%w: %w", format.ErrTextDecode, err)
	}
	return s, nil
}

// readVariant reads one element of a variant vector: its own type tag and
// reserved field, then a complete nested value that is never padded.
func (d *decoder) readVariant(r *valueReader, vc valueContext) (types.Value, error) {
	if vc.depth >= maxVariantDepth {
		return types.Value{}, fmt.Errorf("%w: variant nesting deeper than %d", format.ErrUnsupported, maxVariantDepth)
	}
	tag, err := d.c.U16()
	if err != nil {
		return types.Value{}, truncated(err)
	}
	if _, err := d.c.U16(); err != nil {
		return types.Value{}, truncated(err)
	}
	nr, err := newValueReader(tag, r.codePage, true)
	if err != nil {
		return types.Value{}, err
	}
	nested, err := d.readProperty(nr, valueContext{fmtid: vc.fmtid, id: vc.id, depth: vc.depth + 1})
	if err != nil {
		return types.Value{}, err
	}
	if nested == nil {
		// Array shape, already reported.
		nested = &types.Property{Type: nr.tag, Dimension: nr.dim, Variant: true}
	}
	// A nested value that failed to decode keeps its slot and renders as <nil>.
	nested.ID = 0
	return types.VariantValue(nested), nil
}

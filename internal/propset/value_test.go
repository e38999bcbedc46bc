package propset

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/olekit/internal/buf"
	"github.com/joshuapare/olekit/internal/format"
	tu "github.com/joshuapare/olekit/internal/testutil"
	"github.com/joshuapare/olekit/pkg/types"
)

func cat(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

// readValue reads one value payload (no type header) of the given tag from
// the start of data.
func readValue(
	t *testing.T,
	data []byte,
	tag uint16,
	cp uint16,
	variant bool,
	opts *types.Options,
) (*types.Property, *decoder, error) {
	t.Helper()
	d := newDecoder(buf.NewCursor(data), opts)
	r, err := newValueReader(tag, cp, variant)
	require.NoError(t, err)
	p, err := d.readProperty(r, valueContext{id: 2})
	return p, d, err
}

func withDiagnostics() *types.Options {
	return &types.Options{CollectDiagnostics: true}
}

func TestScalarTransforms(t *testing.T) {
	negativeCY := int64(-15000)

	summary := tu.FMTIDSummary.ToWindowsArray()

	tests := []struct {
		name    string
		tag     uint16
		cp      uint16
		payload []byte
		want    string
	}{
		{"I1", tu.VTI1, 0, []byte{0xFF}, "-1"},
		{"UI1", tu.VTUI1, 0, []byte{0xFF}, "255"},
		{"I2", tu.VTI2, 0, tu.U16(0xFFFE), "-2"},
		{"UI2", tu.VTUI2, 0, tu.U16(65535), "65535"},
		{"I4", tu.VTI4, 0, tu.U32(0xFFFFFFFF), "-1"},
		{"INT", 22, 0, tu.U32(7), "7"},
		{"UI4", tu.VTUI4, 0, tu.U32(4000000000), "4000000000"},
		{"UINT", 23, 0, tu.U32(9), "9"},
		{"I8", tu.VTI8, 0, tu.U64(1 << 40), "1099511627776"},
		{"UI8", tu.VTUI8, 0, tu.U64(math.MaxUint64), "18446744073709551615"},
		{"R4", tu.VTR4, 0, tu.U32(math.Float32bits(1.5)), "1.5"},
		{"R8", tu.VTR8, 0, tu.F64(2.25), "2.25"},
		{"CY whole units", tu.VTCY, 0, tu.U64(10000), "1"},
		// Integer division by 10000: 12345000 is 1234 units, not 1.
		{"CY truncates", tu.VTCY, 0, tu.U64(12345000), "1234"},
		{"CY negative", tu.VTCY, 0, tu.U64(uint64(negativeCY)), "-1"},
		{"BOOL true", tu.VTBool, 0, tu.U16(0xFFFF), "true"},
		{"BOOL nonzero", tu.VTBool, 0, tu.U16(1), "true"},
		{"BOOL false", tu.VTBool, 0, tu.U16(0), "false"},
		{"FILETIME epoch", tu.VTFiletime, 0, tu.U64(116444736000000000), "1970-01-01T00:00:00Z"},
		{"FILETIME 2019", tu.VTFiletime, 0, tu.U64(uint64(tu.SampleCreatedTicks)), tu.SampleCreated},
		{"DATE epoch", tu.VTDate, 0, tu.F64(25569.0), "1970-01-01T00:00:00Z"},
		{"DATE noon", tu.VTDate, 0, tu.F64(25569.5), "1970-01-01T12:00:00Z"},
		{"DATE before epoch", tu.VTDate, 0, tu.F64(0), "1899-12-30T00:00:00Z"},
		{"LPSTR ascii", tu.VTLPSTR, 1252, tu.Str("hello"), "hello"},
		{"LPSTR 1252", tu.VTLPSTR, 1252, tu.RawStr([]byte{'c', 'a', 'f', 0xE9, 0}), "café"},
		{"LPSTR 1251", tu.VTLPSTR, 1251, tu.RawStr([]byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2, 0}), "Привет"},
		{"LPSTR 1250", tu.VTLPSTR, 1250, tu.RawStr([]byte{0x9A, 0}), "š"},
		{"LPSTR 1253", tu.VTLPSTR, 1253, tu.RawStr([]byte{0xE1, 0}), "α"},
		{"LPSTR 1254", tu.VTLPSTR, 1254, tu.RawStr([]byte{0xFD, 0}), "ı"},
		{"LPSTR 1200", tu.VTLPSTR, 1200, tu.RawStr(tu.UTF16LE("hi\x00")), "hi"},
		{"LPSTR utf-8 fallback", tu.VTLPSTR, 0, tu.Str("naïve"), "naïve"},
		{"LPSTR unknown code page", tu.VTLPSTR, 932, tu.Str("plain"), "plain"},
		{"LPSTR no terminator", tu.VTLPSTR, 1252, tu.RawStr([]byte("abc")), "abc"},
		{"LPSTR trailing NULs", tu.VTLPSTR, 1252, tu.RawStr([]byte("ab\x00\x00\x00")), "ab"},
		{"BSTR", tu.VTBSTR, 1252, tu.Str("bstr"), "bstr"},
		{"LPWSTR", tu.VTLPWSTR, 1252, tu.WStr("Grüße"), "Grüße"},
		{"ERROR", tu.VTError, 0, tu.U32(0x80070005), "0x80070005"},
		{"CLSID", tu.VTCLSID, 0, summary[:], "{f29f85e0-4ff9-1068-ab91-08002b27b3d9}"},
		{"BLOB", tu.VTBlob, 0, tu.RawStr([]byte{1, 2, 3}), "<3 bytes>"},
		{"EMPTY", tu.VTEmpty, 0, nil, "<empty>"},
		{"NULL", 1, 0, nil, "<empty>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, d, err := readValue(t, tt.payload, tt.tag, tt.cp, false, withDiagnostics())
			require.NoError(t, err)
			require.NotNil(t, p)
			assert.Equal(t, types.DimScalar, p.Dimension)
			assert.Equal(t, tt.want, p.String())
			assert.False(t, d.diag.report.HasAnyIssues())
		})
	}
}

func TestScalarDecodeFailureLeavesValueAbsent(t *testing.T) {
	tests := []struct {
		name     string
		tag      uint16
		cp       uint16
		payload  []byte
		category types.DiagCategory
	}{
		{"invalid utf-8", tu.VTLPSTR, 0, tu.RawStr([]byte{0xFF, 0xFE, 0}), types.DiagEncoding},
		{"odd utf-16 under 1200", tu.VTLPSTR, 1200, tu.RawStr([]byte{'a', 0, 'b'}), types.DiagEncoding},
		{"NaN date", tu.VTDate, 0, tu.F64(math.NaN()), types.DiagData},
		{"infinite date", tu.VTDate, 0, tu.F64(math.Inf(1)), types.DiagData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, d, err := readValue(t, tt.payload, tt.tag, tt.cp, false, withDiagnostics())
			require.NoError(t, err)
			require.NotNil(t, p)
			assert.True(t, p.Absent())
			assert.Equal(t, "<nil>", p.String())

			report := d.diag.getReport()
			require.Len(t, report.Diagnostics, 1)
			assert.Equal(t, tt.category, report.Diagnostics[0].Category)
			assert.Equal(t, types.SevError, report.Diagnostics[0].Severity)
		})
	}
}

func TestPaddingAlignsToValueStart(t *testing.T) {
	tests := []struct {
		name    string
		tag     uint16
		payload []byte
		consume int // bytes the value itself occupies
	}{
		{"I1", tu.VTI1, []byte{1}, 1},
		{"I2", tu.VTI2, tu.U16(1), 2},
		{"BOOL", tu.VTBool, tu.U16(1), 2},
		{"I4", tu.VTI4, tu.U32(1), 4},
		{"R8", tu.VTR8, tu.F64(1), 8},
		{"LPSTR 1 char", tu.VTLPSTR, tu.Str("a"), 6},
		{"LPSTR 3 chars", tu.VTLPSTR, tu.Str("abc"), 8},
		{"LPWSTR", tu.VTLPWSTR, tu.WStr("abc"), 12},
		{"I2 vector", tu.VTI2 | tu.VTVector, cat(tu.U32(3), tu.U16(1), tu.U16(2), tu.U16(3)), 10},
		{"BLOB", tu.VTBlob, tu.RawStr([]byte{1, 2, 3, 4, 5}), 9},
	}
	for _, tt := range tests {
		for _, start := range []int{0, 1, 2, 3, 4} {
			// Room for the value plus a full alignment word.
			data := cat(make([]byte, start), tt.payload, make([]byte, 4))
			c := buf.NewCursor(data)
			require.NoError(t, c.Seek(start))
			d := newDecoder(c, nil)
			r, err := newValueReader(tt.tag, 1252, false)
			require.NoError(t, err)

			_, err = d.readProperty(r, valueContext{})
			require.NoError(t, err, "%s at %d", tt.name, start)
			assert.Equal(t, 0, (c.Pos()-start)%4, "%s at %d: pos %d", tt.name, start, c.Pos())
			assert.GreaterOrEqual(t, c.Pos()-start, tt.consume)
			assert.Less(t, c.Pos()-start, tt.consume+4)
		}
	}
}

func TestPaddingNeverPassesStreamEnd(t *testing.T) {
	// I2 at offset 0 in a 2-byte and a 3-byte stream: aligning would need 4.
	for _, n := range []int{2, 3} {
		data := make([]byte, n)
		p, d, err := readValue(t, data, tu.VTI2, 0, false, nil)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, 2, d.c.Pos(), "stream of %d bytes", n)
	}

	// Exactly enough room: padding lands on the stream end.
	_, d, err := readValue(t, make([]byte, 4), tu.VTI2, 0, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, d.c.Pos())
}

func TestVariantElementsAreNeverPadded(t *testing.T) {
	_, d, err := readValue(t, cat(tu.U16(1), make([]byte, 6)), tu.VTI2, 0, true, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, d.c.Pos())

	// A variant vector whose first element is 11 bytes long. If the element
	// were padded, the second element would be read one byte late.
	payload := cat(tu.U32(2), tu.LPSTR("ab"), tu.I4(7), []byte{0})
	p, d, err := readValue(t, payload, tu.VTVariant|tu.VTVector, 1252, false, nil)
	require.NoError(t, err)
	require.Len(t, p.Values, 2)
	assert.Equal(t, "[ab, 7]", p.String())
	assert.True(t, p.Values[0].Variant.Variant)
	assert.Equal(t, types.VT_LPSTR, p.Values[0].Variant.Type)
	// 4 + 11 + 8 = 23 bytes, padded to 24 at the top level only.
	assert.Equal(t, 24, d.c.Pos())
}

func TestVectorLength(t *testing.T) {
	t.Run("all elements decode", func(t *testing.T) {
		payload := cat(tu.U32(3), tu.U32(10), tu.U32(20), tu.U32(30))
		p, _, err := readValue(t, payload, tu.VTI4|tu.VTVector, 0, false, nil)
		require.NoError(t, err)
		assert.Equal(t, types.DimVector, p.Dimension)
		assert.Len(t, p.Values, 3)
		assert.Equal(t, "[10, 20, 30]", p.String())
		assert.Equal(t, []any{int64(10), int64(20), int64(30)}, p.Interface())
	})

	t.Run("failed elements are dropped", func(t *testing.T) {
		payload := cat(tu.U32(3), tu.Str("a"), tu.RawStr([]byte{0xFF, 0}), tu.Str("b"))
		p, d, err := readValue(t, payload, tu.VTLPSTR|tu.VTVector, 0, false, withDiagnostics())
		require.NoError(t, err)
		assert.Len(t, p.Values, 2)
		assert.Equal(t, "[a, b]", p.String())
		assert.Equal(t, 1, d.diag.report.Summary.Errors)
	})

	t.Run("empty vector", func(t *testing.T) {
		p, _, err := readValue(t, tu.U32(0), tu.VTI4|tu.VTVector, 0, false, nil)
		require.NoError(t, err)
		assert.NotNil(t, p.Values)
		assert.False(t, p.Absent())
		assert.Equal(t, "[]", p.String())
	})

	t.Run("count over limit", func(t *testing.T) {
		opts := &types.Options{Limits: &types.Limits{MaxVectorLen: 2}}
		_, _, err := readValue(t, cat(tu.U32(3), make([]byte, 12)), tu.VTI4|tu.VTVector, 0, false, opts)
		require.Error(t, err)
		assert.True(t, errors.Is(err, format.ErrSanityLimit))
	})

	t.Run("count past stream end", func(t *testing.T) {
		_, _, err := readValue(t, cat(tu.U32(1000), make([]byte, 8)), tu.VTI4|tu.VTVector, 0, false, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, format.ErrTruncated))
	})
}

func TestVariantVector(t *testing.T) {
	t.Run("mixed element types", func(t *testing.T) {
		payload := cat(tu.U32(3), tu.LPSTR("Title"), tu.I4(1), tu.Bool(true))
		p, _, err := readValue(t, payload, tu.VTVariant|tu.VTVector, 1252, false, nil)
		require.NoError(t, err)
		assert.Equal(t, "[Title, 1, true]", p.String())
		assert.Equal(t, []any{"Title", int64(1), true}, p.Interface())
	})

	t.Run("unknown element type is dropped", func(t *testing.T) {
		payload := cat(tu.U32(2), tu.I4(5), tu.Typed(0x00FE))
		p, d, err := readValue(t, payload, tu.VTVariant|tu.VTVector, 1252, false, withDiagnostics())
		require.NoError(t, err)
		assert.Equal(t, "[5]", p.String())
		report := d.diag.getReport()
		require.Len(t, report.Diagnostics, 1)
		assert.Equal(t, types.DiagType, report.Diagnostics[0].Category)
	})

	t.Run("nested vector element", func(t *testing.T) {
		inner := tu.Vector(tu.VTI2, tu.U16(1), tu.U16(2))
		payload := cat(tu.U32(1), inner)
		p, _, err := readValue(t, payload, tu.VTVariant|tu.VTVector, 1252, false, nil)
		require.NoError(t, err)
		assert.Equal(t, "[[1, 2]]", p.String())
	})

	t.Run("nesting depth is bounded", func(t *testing.T) {
		v := tu.I4(1)
		for i := 0; i < maxVariantDepth+4; i++ {
			v = tu.Typed(tu.VTVariant, v)
		}
		// Strip the outer header; readValue supplies the tag.
		p, d, err := readValue(t, v[4:], tu.VTVariant, 0, false, withDiagnostics())
		require.NoError(t, err)
		assert.Equal(t, "<nil>", p.String(), "innermost element past the bound has no value")
		assert.Equal(t, 1, d.diag.report.Summary.Errors)
	})

	t.Run("undecodable element keeps its slot", func(t *testing.T) {
		payload := cat(tu.U32(2), tu.Typed(tu.VTLPSTR, tu.RawStr([]byte{0xFF, 0xFE, 0})), tu.I4(7))
		p, d, err := readValue(t, payload, tu.VTVariant|tu.VTVector, 0, false, withDiagnostics())
		require.NoError(t, err)
		require.Len(t, p.Values, 2)
		assert.Equal(t, "[<nil>, 7]", p.String())
		require.NotNil(t, p.Values[0].Variant)
		assert.True(t, p.Values[0].Variant.Absent())
		assert.Equal(t, types.VT_LPSTR, p.Values[0].Variant.Type)
		assert.Equal(t, 1, d.diag.report.Summary.Errors)
	})

	t.Run("array element keeps its slot", func(t *testing.T) {
		payload := cat(tu.U32(2), tu.Typed(tu.VTI4|tu.VTArray), tu.I4(7))
		p, _, err := readValue(t, payload, tu.VTVariant|tu.VTVector, 0, false, nil)
		require.NoError(t, err)
		require.Len(t, p.Values, 2)
		assert.Equal(t, types.DimArray, p.Values[0].Variant.Dimension)
		assert.Equal(t, "[<nil>, 7]", p.String())
	})
}

func TestEmptyVectorCountIsBounded(t *testing.T) {
	limits := types.RelaxedLimits()
	opts := &types.Options{Limits: &limits}

	_, _, err := readValue(t, tu.U32(1<<20), tu.VTEmpty|tu.VTVector, 0, false, opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, format.ErrTruncated))

	p, _, err := readValue(t, cat(tu.U32(3), make([]byte, 4)), tu.VTEmpty|tu.VTVector, 0, false, opts)
	require.NoError(t, err)
	assert.Equal(t, "[<empty>, <empty>, <empty>]", p.String())
}

func TestArrayDimensionIsSkipped(t *testing.T) {
	p, d, err := readValue(t, tu.U32(1), tu.VTI4|tu.VTArray, 0, false, withDiagnostics())
	require.NoError(t, err)
	assert.Nil(t, p)
	report := d.diag.getReport()
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, types.DiagType, report.Diagnostics[0].Category)
}

func TestStringLimits(t *testing.T) {
	opts := &types.Options{Limits: &types.Limits{MaxStringBytes: 4}}
	_, _, err := readValue(t, tu.Str("too long"), tu.VTLPSTR, 1252, false, opts)
	assert.True(t, errors.Is(err, format.ErrSanityLimit))

	_, _, err = readValue(t, tu.U32(100), tu.VTLPSTR, 1252, false, nil)
	assert.True(t, errors.Is(err, format.ErrTruncated))
}

func TestNewValueReader(t *testing.T) {
	_, err := newValueReader(0x00FE, 0, false)
	assert.True(t, errors.Is(err, format.ErrUnknownType))

	for _, tag := range []uint16{tu.VTDecimal, 66, 67, 71, 73} {
		_, err := newValueReader(tag, 0, false)
		assert.True(t, errors.Is(err, format.ErrUnsupported), "tag %d", tag)
	}

	r, err := newValueReader(tu.VTLPSTR|tu.VTVector, 1251, false)
	require.NoError(t, err)
	assert.Equal(t, types.VT_LPSTR, r.base)
	assert.Equal(t, types.DimVector, r.dim)
	assert.Equal(t, "Windows-1251", r.codec.String())
}

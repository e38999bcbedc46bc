package types

import (
	"strings"
)

// Property is one decoded entry of a property set, or one element nested in
// a variant vector.
type Property struct {
	ID    uint32 // property identifier, unique within its set
	Name  string // dictionary name, meaningful only when Named is true
	Named bool

	Type      VarType // raw on-disk tag including shape bits
	Dimension Dimension

	// Value holds the scalar result; Values holds vector elements in stream
	// order. Exactly one is set for a successful decode. Both nil means the
	// scalar failed to decode.
	Value  *Value
	Values []Value

	// Variant is true for elements nested inside a variant vector. Such
	// elements are never padded individually.
	Variant bool
}

// Absent reports whether no value was decoded.
func (p *Property) Absent() bool {
	return p.Value == nil && p.Values == nil
}

// DisplayName returns the dictionary name, or "" when the property is unnamed.
func (p *Property) DisplayName() string {
	if p.Named {
		return p.Name
	}
	return ""
}

// String renders the property value: bare scalars, bracketed comma-joined
// vectors, and "<nil>" when absent.
func (p *Property) String() string {
	if p == nil {
		return "<nil>"
	}
	switch p.Dimension {
	case DimScalar:
		if p.Value != nil {
			return p.Value.String()
		}
	case DimVector:
		if p.Values != nil {
			parts := make([]string, len(p.Values))
			for i, v := range p.Values {
				parts[i] = v.String()
			}
			return "[" + strings.Join(parts, ", ") + "]"
		}
	}
	return "<nil>"
}

// Interface returns the scalar as a native Go value (see Value.Interface), a
// []any for vectors, or nil when absent.
func (p *Property) Interface() any {
	if p == nil {
		return nil
	}
	switch {
	case p.Value != nil:
		return p.Value.Interface()
	case p.Values != nil:
		out := make([]any, len(p.Values))
		for i, v := range p.Values {
			out[i] = v.Interface()
		}
		return out
	default:
		return nil
	}
}

// Text returns the scalar string value. ok is false for other kinds.
func (p *Property) Text() (string, bool) {
	if p == nil || p.Value == nil || p.Value.Kind != KindString {
		return "", false
	}
	return p.Value.Text, true
}

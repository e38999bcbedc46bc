package types

import (
	"fmt"

	"github.com/Microsoft/go-winio/pkg/guid"
)

// Well-known property set format identifiers.
// https://learn.microsoft.com/en-us/windows/win32/stg/predefined-property-set-format-identifiers
var (
	FMTIDSummaryInformation    = mustGUID("F29F85E0-4FF9-1068-AB91-08002B27B3D9")
	FMTIDDocSummaryInformation = mustGUID("D5CDD502-2E9C-101B-9397-08002B2CF9AE")
	FMTIDUserDefinedProperties = mustGUID("D5CDD505-2E9C-101B-9397-08002B2CF9AE")
)

func mustGUID(s string) guid.GUID {
	g, err := guid.FromString(s)
	if err != nil {
		panic(fmt.Sprintf("types: bad GUID literal %q: %v", s, err))
	}
	return g
}

// SetClass classifies a property set by its format identifier.
type SetClass uint8

const (
	ClassOther SetClass = iota
	ClassSummary
	ClassDocSummary
	ClassUserDefined
)

func (c SetClass) String() string {
	switch c {
	case ClassSummary:
		return "SummaryInformation"
	case ClassDocSummary:
		return "DocSummaryInformation"
	case ClassUserDefined:
		return "UserDefinedProperties"
	default:
		return "Other"
	}
}

// Classify maps a format identifier to its well-known class.
func Classify(fmtid guid.GUID) SetClass {
	switch fmtid {
	case FMTIDSummaryInformation:
		return ClassSummary
	case FMTIDDocSummaryInformation:
		return ClassDocSummary
	case FMTIDUserDefinedProperties:
		return ClassUserDefined
	default:
		return ClassOther
	}
}

// Descriptor locates one property set inside the stream.
type Descriptor struct {
	FormatID guid.GUID
	Offset   uint32 // from the start of the stream
}

// Entry is one row of a property set's id -> offset table.
type Entry struct {
	ID     uint32
	Offset uint32 // from the start of the owning set
}

// PropertySet is one decoded property set.
type PropertySet struct {
	FormatID      guid.GUID
	Offset        uint32 // base offset of the set within the stream
	Size          uint32
	PropertyCount uint32
	Entries       []Entry // stored order

	// CodePage is taken from property id 1; 0 when absent (decoded as UTF-8).
	CodePage uint16
	// Names is the id -> name dictionary from property id 0; empty when absent.
	Names map[uint32]string

	// Properties holds one decoded property per entry, in entry order,
	// excluding the dictionary and any entry whose type could not be
	// dispatched or whose shape is unsupported. A property whose scalar failed
	// to decode is kept and reports Absent.
	Properties []*Property
}

// Class returns the well-known classification of the set.
func (s *PropertySet) Class() SetClass {
	return Classify(s.FormatID)
}

// HasNamedProperties reports whether the set carries a name dictionary.
func (s *PropertySet) HasNamedProperties() bool {
	return len(s.Names) > 0
}

// Lookup returns the property with the given id.
func (s *PropertySet) Lookup(id uint32) (*Property, bool) {
	for _, p := range s.Properties {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// ByName returns the first property whose dictionary name equals name.
func (s *PropertySet) ByName(name string) (*Property, bool) {
	for _, p := range s.Properties {
		if p.Named && p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Label returns the dictionary name of p, or the well-known label for its id
// in this set's class, or "".
func (s *PropertySet) Label(p *Property) string {
	if p.Named {
		return p.Name
	}
	return PropertyLabel(s.Class(), p.ID)
}

// Collection is a decoded property set stream.
type Collection struct {
	// Header fields, retained verbatim.
	ByteOrder        uint16
	Version          uint16
	SystemIdentifier uint32
	ClassID          [16]byte

	Descriptors []Descriptor
	Sets        []*PropertySet // one per descriptor, same order

	// Diagnostics is set when Options.CollectDiagnostics was requested.
	Diagnostics *DiagnosticReport
}

// AllProperties returns every property of every set, in set order then
// property order.
func (c *Collection) AllProperties() []*Property {
	var out []*Property
	for _, s := range c.Sets {
		out = append(out, s.Properties...)
	}
	return out
}

// CustomProperties returns the properties of the UserDefinedProperties sets.
func (c *Collection) CustomProperties() []*Property {
	var out []*Property
	for _, s := range c.Sets {
		if s.FormatID == FMTIDUserDefinedProperties {
			out = append(out, s.Properties...)
		}
	}
	return out
}

// Set returns the first set with the given format identifier.
func (c *Collection) Set(fmtid guid.GUID) (*PropertySet, bool) {
	for _, s := range c.Sets {
		if s.FormatID == fmtid {
			return s, true
		}
	}
	return nil, false
}

// Summary returns the SummaryInformation set, if present.
func (c *Collection) Summary() (*PropertySet, bool) { return c.Set(FMTIDSummaryInformation) }

// DocSummary returns the DocSummaryInformation set, if present.
func (c *Collection) DocSummary() (*PropertySet, bool) { return c.Set(FMTIDDocSummaryInformation) }

// UserDefined returns the UserDefinedProperties set, if present.
func (c *Collection) UserDefined() (*PropertySet, bool) { return c.Set(FMTIDUserDefinedProperties) }

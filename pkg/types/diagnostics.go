package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// -----------------------------------------------------------------------------
// Diagnostics
// -----------------------------------------------------------------------------
//
// Opt-in via Options.CollectDiagnostics. The decoder records every value it
// had to drop, every fallback it took and every structure it rejected, with
// the stream offset it was working at. With collection disabled the decoder
// only logs.

// Severity classifies how serious a diagnostic issue is.
type Severity int

const (
	SevInfo     Severity = iota // Unusual but valid
	SevWarning                  // Fallback taken, output may differ from the writer's intent
	SevError                    // A property was dropped
	SevCritical                 // The stream could not be decoded
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	case SevCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the severity by name in JSON output.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// DiagCategory classifies the type of issue found.
type DiagCategory int

const (
	DiagStructure DiagCategory = iota // Header, descriptor, set or entry table problems
	DiagData                          // Value payload truncated or undecodable
	DiagType                          // Unknown or unsupported VT tag
	DiagEncoding                      // Code page or text decoding problems
)

func (c DiagCategory) String() string {
	switch c {
	case DiagStructure:
		return "STRUCTURE"
	case DiagData:
		return "DATA"
	case DiagType:
		return "TYPE"
	case DiagEncoding:
		return "ENCODING"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the category by name in JSON output.
func (c DiagCategory) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Diagnostic is a single issue found while decoding.
type Diagnostic struct {
	Severity Severity     `json:"severity"`
	Category DiagCategory `json:"category"`

	Offset    int    `json:"offset"`    // absolute byte offset in the stream
	Structure string `json:"structure"` // "HEADER", "SET", "ENTRY", "VALUE", "DICTIONARY", "CODEPAGE"
	Issue     string `json:"issue"`

	// Set and property context, when known.
	FormatID   string  `json:"format_id,omitempty"`
	PropertyID *uint32 `json:"property_id,omitempty"`
	Type       string  `json:"type,omitempty"`

	Expected any `json:"expected,omitempty"`
	Actual   any `json:"actual,omitempty"`
}

// DiagnosticReport collects all diagnostics found during a decode.
type DiagnosticReport struct {
	Source     string        `json:"source,omitempty"`
	StreamSize int           `json:"stream_size"`
	ScanTime   time.Duration `json:"scan_time"`

	Diagnostics []Diagnostic `json:"diagnostics"`
	Summary     DiagSummary  `json:"summary"`

	BySeverity  map[Severity][]Diagnostic `json:"-"`
	ByStructure map[string][]Diagnostic   `json:"-"`
	ByOffset    []Diagnostic              `json:"-"` // sorted by offset
}

// DiagSummary provides quick statistics.
type DiagSummary struct {
	Critical int `json:"critical"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

// NewDiagnosticReport creates an empty report.
func NewDiagnosticReport() *DiagnosticReport {
	return &DiagnosticReport{
		Diagnostics: []Diagnostic{},
		BySeverity:  make(map[Severity][]Diagnostic),
		ByStructure: make(map[string][]Diagnostic),
	}
}

// Add adds a diagnostic to the report and updates indices.
func (r *DiagnosticReport) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)

	switch d.Severity {
	case SevCritical:
		r.Summary.Critical++
	case SevError:
		r.Summary.Errors++
	case SevWarning:
		r.Summary.Warnings++
	case SevInfo:
		r.Summary.Info++
	}

	r.BySeverity[d.Severity] = append(r.BySeverity[d.Severity], d)
	r.ByStructure[d.Structure] = append(r.ByStructure[d.Structure], d)
}

// Finalize sorts diagnostics by offset and prepares for output.
func (r *DiagnosticReport) Finalize() {
	r.ByOffset = make([]Diagnostic, len(r.Diagnostics))
	copy(r.ByOffset, r.Diagnostics)
	sort.SliceStable(r.ByOffset, func(i, j int) bool {
		return r.ByOffset[i].Offset < r.ByOffset[j].Offset
	})
}

// HasCriticalIssues returns true if any critical issues were found.
func (r *DiagnosticReport) HasCriticalIssues() bool {
	return r.Summary.Critical > 0
}

// HasErrors returns true if any errors or critical issues were found.
func (r *DiagnosticReport) HasErrors() bool {
	return r.Summary.Critical > 0 || r.Summary.Errors > 0
}

// HasAnyIssues returns true if any issues were found, including info.
func (r *DiagnosticReport) HasAnyIssues() bool {
	return len(r.Diagnostics) > 0
}

// FormatJSON returns the report as formatted JSON (2-space indentation).
func (r *DiagnosticReport) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatText returns a human-readable text report.
func (r *DiagnosticReport) FormatText() string {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", 79) + "\n")
	b.WriteString("Property Set Diagnostic Report\n")
	b.WriteString(strings.Repeat("=", 79) + "\n\n")

	if r.Source != "" {
		fmt.Fprintf(&b, "Source:    %s\n", r.Source)
	}
	fmt.Fprintf(&b, "Size:      %d bytes\n", r.StreamSize)
	fmt.Fprintf(&b, "Scan time: %v\n\n", r.ScanTime)

	b.WriteString("SUMMARY\n")
	b.WriteString(strings.Repeat("-", 79) + "\n")
	fmt.Fprintf(&b, "  Critical: %d\n", r.Summary.Critical)
	fmt.Fprintf(&b, "  Errors:   %d\n", r.Summary.Errors)
	fmt.Fprintf(&b, "  Warnings: %d\n", r.Summary.Warnings)
	fmt.Fprintf(&b, "  Info:     %d\n\n", r.Summary.Info)

	if len(r.Diagnostics) == 0 {
		b.WriteString("No issues found.\n")
		return b.String()
	}

	b.WriteString("DIAGNOSTICS\n")
	b.WriteString(strings.Repeat("-", 79) + "\n\n")

	for _, severity := range []Severity{SevCritical, SevError, SevWarning, SevInfo} {
		diags := r.BySeverity[severity]
		if len(diags) == 0 {
			continue
		}

		fmt.Fprintf(&b, "%s (%d)\n", severity, len(diags))
		b.WriteString(strings.Repeat("~", 79) + "\n")

		for i, d := range diags {
			fmt.Fprintf(&b, "\n%d. [%s/%s] at offset 0x%X\n", i+1, d.Structure, d.Category, d.Offset)
			fmt.Fprintf(&b, "   %s\n", d.Issue)
			if d.FormatID != "" {
				fmt.Fprintf(&b, "   Set:      {%s}\n", d.FormatID)
			}
			if d.PropertyID != nil {
				fmt.Fprintf(&b, "   Property: %d\n", *d.PropertyID)
			}
			if d.Type != "" {
				fmt.Fprintf(&b, "   Type:     %s\n", d.Type)
			}
			if d.Expected != nil {
				fmt.Fprintf(&b, "   Expected: %v\n", d.Expected)
			}
			if d.Actual != nil {
				fmt.Fprintf(&b, "   Actual:   %v\n", d.Actual)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// FormatTextCompact returns a compact one-line-per-issue text format.
// Finalize must have been called.
func (r *DiagnosticReport) FormatTextCompact() string {
	var b strings.Builder

	for _, d := range r.ByOffset {
		fmt.Fprintf(&b, "0x%08X [%s/%s/%s] %s\n",
			d.Offset, d.Severity, d.Structure, d.Category, d.Issue)
	}

	if len(r.Diagnostics) == 0 {
		b.WriteString("No issues found.\n")
	}

	return b.String()
}

package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticReport(t *testing.T) {
	r := NewDiagnosticReport()
	r.StreamSize = 512
	assert.False(t, r.HasAnyIssues())

	id := uint32(5)
	r.Add(Diagnostic{Severity: SevError, Category: DiagType, Offset: 0x90, Structure: "VALUE",
		Issue: "unknown type", PropertyID: &id, Type: "VT_UNKNOWN_13"})
	r.Add(Diagnostic{Severity: SevWarning, Category: DiagEncoding, Offset: 0x30, Structure: "CODEPAGE",
		Issue: "unsupported code page 932"})
	r.Finalize()

	assert.True(t, r.HasErrors())
	assert.False(t, r.HasCriticalIssues())
	assert.Equal(t, 1, r.Summary.Errors)
	assert.Equal(t, 1, r.Summary.Warnings)
	require.Len(t, r.ByOffset, 2)
	assert.Equal(t, 0x30, r.ByOffset[0].Offset)

	compact := r.FormatTextCompact()
	lines := strings.Split(strings.TrimSpace(compact), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "0x00000030 [WARNING/CODEPAGE/ENCODING] unsupported code page 932", lines[0])

	text := r.FormatText()
	assert.Contains(t, text, "Property Set Diagnostic Report")
	assert.Contains(t, text, "Property: 5")

	js, err := r.FormatJSON()
	require.NoError(t, err)
	assert.Contains(t, js, `"severity": "ERROR"`)
	assert.Contains(t, js, `"category": "TYPE"`)
}

func TestEmptyReport(t *testing.T) {
	r := NewDiagnosticReport()
	r.Finalize()
	assert.Equal(t, "No issues found.\n", r.FormatTextCompact())
	assert.Contains(t, r.FormatText(), "No issues found.")
}

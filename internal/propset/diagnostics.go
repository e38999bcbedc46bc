package propset

import (
	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/joshuapare/olekit/pkg/types"
)

// diagnosticCollector accumulates diagnostics during a decode.
// It's nil unless Options.CollectDiagnostics is set, and every method is a
// no-op on a nil receiver.
type diagnosticCollector struct {
	report *types.DiagnosticReport
}

func newDiagnosticCollector(streamSize int) *diagnosticCollector {
	r := types.NewDiagnosticReport()
	r.StreamSize = streamSize
	return &diagnosticCollector{report: r}
}

// record adds a diagnostic to the collection.
func (dc *diagnosticCollector) record(d types.Diagnostic) {
	if dc == nil {
		return
	}
	dc.report.Add(d)
}

// getReport returns the diagnostic report, finalizing it first.
func (dc *diagnosticCollector) getReport() *types.DiagnosticReport {
	if dc == nil {
		return nil
	}
	dc.report.Finalize()
	return dc.report
}

// Helper functions for creating common diagnostics

func diagStructure(severity types.Severity, offset int, structure, issue string, expected, actual any) types.Diagnostic {
	return types.Diagnostic{
		Severity:  severity,
		Category:  types.DiagStructure,
		Offset:    offset,
		Structure: structure,
		Issue:     issue,
		Expected:  expected,
		Actual:    actual,
	}
}

// diagValue creates a diagnostic about a single property value.
func diagValue(
	severity types.Severity,
	category types.DiagCategory,
	offset int,
	fmtid guid.GUID,
	id uint32,
	vt types.VarType,
	issue string,
) types.Diagnostic {
	return types.Diagnostic{
		Severity:   severity,
		Category:   category,
		Offset:     offset,
		Structure:  "VALUE",
		Issue:      issue,
		FormatID:   fmtid.String(),
		PropertyID: &id,
		Type:       vt.String(),
	}
}

// diagEncoding creates a code page or text decoding diagnostic.
func diagEncoding(severity types.Severity, offset int, structure string, fmtid guid.GUID, issue string) types.Diagnostic {
	return types.Diagnostic{
		Severity:  severity,
		Category:  types.DiagEncoding,
		Offset:    offset,
		Structure: structure,
		Issue:     issue,
		FormatID:  fmtid.String(),
	}
}

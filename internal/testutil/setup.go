package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Microsoft/go-winio/pkg/guid"
)

// Well-known format identifiers, duplicated here so fixtures do not depend
// on the packages under test.
var (
	FMTIDSummary     = mustGUID("F29F85E0-4FF9-1068-AB91-08002B27B3D9")
	FMTIDDocSummary  = mustGUID("D5CDD502-2E9C-101B-9397-08002B2CF9AE")
	FMTIDUserDefined = mustGUID("D5CDD505-2E9C-101B-9397-08002B2CF9AE")
)

func mustGUID(s string) guid.GUID {
	g, err := guid.FromString(s)
	if err != nil {
		panic(err)
	}
	return g
}

// Sample fixture values.
const (
	SampleTitle      = "Quarterly Report"
	SampleAuthor     = "Jane Doe"
	SampleKeywords   = "finance; q3"
	SampleAppName    = "Microsoft Office Word"
	SampleCompany    = "Contoso Ltd."
	SampleCustomName = "Client"
	SampleCustomText = "ACME"

	// SampleCreatedTicks is 2019-04-17T18:40:00Z as a FILETIME.
	SampleCreatedTicks int64 = 132000000000000000
	SampleCreated            = "2019-04-17T18:40:00Z"
)

// SampleSummaryStream returns a SummaryInformation stream with a code page,
// title, author, keywords, creation time, page count and application name.
func SampleSummaryStream() []byte {
	return BuildStream(Set{
		FMTID: FMTIDSummary,
		Props: []Prop{
			{ID: 1, Value: CodePage(1252)},
			{ID: 2, Value: LPSTR(SampleTitle)},
			{ID: 4, Value: LPSTR(SampleAuthor)},
			{ID: 5, Value: LPSTR(SampleKeywords)},
			{ID: 0x0C, Value: Filetime(SampleCreatedTicks)},
			{ID: 0x0E, Value: I4(3)},
			{ID: 0x12, Value: LPSTR(SampleAppName)},
		},
	})
}

// SampleDocSummaryStream returns a DocSummaryInformation stream with two
// sets: the company name, and a user-defined set with one named property.
func SampleDocSummaryStream() []byte {
	return BuildStream(
		Set{
			FMTID: FMTIDDocSummary,
			Props: []Prop{
				{ID: 1, Value: CodePage(1252)},
				{ID: 0x0F, Value: LPSTR(SampleCompany)},
			},
		},
		Set{
			FMTID: FMTIDUserDefined,
			Props: []Prop{
				{ID: 0, Value: Dictionary(false, DictEntry{ID: 2, Name: SampleCustomName})},
				{ID: 1, Value: CodePage(1252)},
				{ID: 2, Value: LPSTR(SampleCustomText)},
			},
		},
	)
}

// SampleDocument returns a compound file holding both sample property set
// streams and an unrelated "WordDocument" stream.
func SampleDocument() ([]byte, error) {
	return BuildCompoundFile(
		Stream{Name: "\x05SummaryInformation", Data: SampleSummaryStream()},
		Stream{Name: "\x05DocumentSummaryInformation", Data: SampleDocSummaryStream()},
		Stream{Name: "WordDocument", Data: []byte("not a property set")},
	)
}

// WriteTemp writes data to a file named name in a per-test directory and
// returns its path.
func WriteTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// WriteSampleDocument writes SampleDocument to a temp file and returns its path.
func WriteSampleDocument(t *testing.T) string {
	t.Helper()
	data, err := SampleDocument()
	if err != nil {
		t.Fatalf("Failed to build sample document: %v", err)
	}
	return WriteTemp(t, "sample.doc", data)
}

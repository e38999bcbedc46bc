package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tu "github.com/joshuapare/olekit/internal/testutil"
)

func TestStreamsCommand(t *testing.T) {
	resetFlags()
	output, err := captureOutput(t, func() error {
		return runStreams([]string{testDocPath(t)})
	})
	if err != nil {
		t.Fatalf("runStreams() error = %v", err)
	}
	assertContains(t, output, []string{
		"SummaryInformation", "DocumentSummaryInformation", "WordDocument",
		"propset", "UserDefinedProperties",
	})

	resetFlags()
	jsonOut = true
	output, err = captureOutput(t, func() error {
		return runStreams([]string{testDocPath(t)})
	})
	if err != nil {
		t.Fatalf("runStreams() error = %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{`"property_set": true`, `"property_set": false`})
}

func TestSummaryCommand(t *testing.T) {
	resetFlags()
	output, err := captureOutput(t, func() error {
		return runSummary([]string{testDocPath(t)})
	})
	if err != nil {
		t.Fatalf("runSummary() error = %v", err)
	}
	assertContains(t, output, []string{
		tu.SampleTitle, tu.SampleAuthor, tu.SampleKeywords, tu.SampleAppName,
		tu.SampleCompany, tu.SampleCreated, "Pages:", "Custom:", tu.SampleCustomName,
	})
	assertNotContains(t, output, []string{"Last Printed", "Manager"})

	resetFlags()
	jsonOut = true
	output, err = captureOutput(t, func() error {
		return runSummary([]string{testDocPath(t)})
	})
	if err != nil {
		t.Fatalf("runSummary() error = %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{`"title"`, `"company"`, `"custom"`})
}

func TestXMPCommand(t *testing.T) {
	resetFlags()
	output, err := captureOutput(t, func() error {
		return runXMP([]string{testDocPath(t)})
	})
	if err != nil {
		t.Fatalf("runXMP() error = %v", err)
	}
	assertContains(t, output, []string{"dc:title", tu.SampleTitle, "olekit:Company"})

	resetFlags()
	xmpOutputFile = filepath.Join(t.TempDir(), "out.xmp")
	output, err = captureOutput(t, func() error {
		return runXMP([]string{testDocPath(t)})
	})
	if err != nil {
		t.Fatalf("runXMP() error = %v", err)
	}
	assertContains(t, output, []string{"XMP written to"})
	data, err := os.ReadFile(xmpOutputFile)
	if err != nil {
		t.Fatalf("failed to read XMP output: %v", err)
	}
	assertContains(t, string(data), []string{tu.SampleAuthor})
}

func TestDiagnoseCommand(t *testing.T) {
	unknown := tu.WriteTemp(t, "unknown.bin", tu.BuildStream(tu.Set{
		FMTID: tu.FMTIDSummary,
		Props: []tu.Prop{
			{ID: 2, Value: tu.Typed(0x00FE, tu.U32(1))},
			{ID: 4, Value: tu.LPSTR(tu.SampleAuthor)},
		},
	}))
	truncated := tu.WriteTemp(t, "truncated.bin", []byte{0xFE, 0xFF, 0x00})

	tests := []struct {
		name        string
		path        string
		raw         bool
		format      string
		summary     bool
		wantCode    int
		wantJSON    bool
		wantContain []string
	}{
		{
			name:        "clean document",
			path:        testDocPath(t),
			format:      "text",
			wantContain: []string{"Property Set Diagnostic Report", "No issues found"},
		},
		{
			name:        "clean document as JSON",
			path:        testDocPath(t),
			format:      "json",
			wantJSON:    true,
			wantContain: []string{`"summary"`, "DocumentSummaryInformation"},
		},
		{
			name:        "unknown type is an error",
			path:        unknown,
			raw:         true,
			format:      "compact",
			wantCode:    1,
			wantContain: []string{"unknown.bin", "VALUE"},
		},
		{
			name:        "truncated stream is critical",
			path:        truncated,
			raw:         true,
			format:      "text",
			summary:     true,
			wantCode:    2,
			wantContain: []string{"Diagnostic Summary", "Critical:  1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			rawStream = tt.raw
			diagFormat = tt.format
			diagShowSummary = tt.summary
			quiet = tt.wantJSON

			output, err := captureOutput(t, func() error {
				return runDiagnose([]string{tt.path})
			})

			code := 0
			if err != nil {
				var ee *exitError
				if !errors.As(err, &ee) {
					t.Fatalf("runDiagnose() error = %v", err)
				}
				code = ee.code
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, output)
			}
			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestDiagnoseCommandUnknownFormat(t *testing.T) {
	resetFlags()
	diagFormat = "hex"
	_, err := captureOutput(t, func() error {
		return runDiagnose([]string{testDocPath(t)})
	})
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestDecodeOptions(t *testing.T) {
	resetFlags()
	opts := decodeOptions(true)
	if opts.Limits != nil || opts.Tolerant || !opts.CollectDiagnostics {
		t.Errorf("unexpected default options: %+v", opts)
	}

	strict = true
	tolerant = true
	opts = decodeOptions(false)
	if opts.Limits == nil || !opts.Tolerant {
		t.Errorf("strict/tolerant flags not applied: %+v", opts)
	}
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/olekit/pkg/olekit"
	"github.com/joshuapare/olekit/pkg/types"
)

var (
	diagFormat      string
	diagOutputFile  string
	diagShowSummary bool
)

func init() {
	cmd := newDiagnoseCmd()
	cmd.Flags().StringVarP(&diagFormat, "format", "f", "text",
		"Output format: text, json, compact (text=human-readable, json=structured, compact=one-line-per-issue)")
	cmd.Flags().StringVarP(&diagOutputFile, "output", "o", "",
		"Write report to file instead of stdout")
	cmd.Flags().BoolVarP(&diagShowSummary, "summary", "s", false,
		"Show only summary (no detailed diagnostics)")
	rootCmd.AddCommand(cmd)
}

func newDiagnoseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagnose <file>",
		Short: "Report structural and data issues of every property set stream",
		Long: `Decodes every property set stream with diagnostics collection on and
reports each issue with its byte offset:
  - Structural damage (header, set count, offsets outside the stream)
  - Unknown or unsupported value types
  - Undecodable strings and dictionary names
  - Code page fallbacks

Exit status is 2 when a critical issue was found, 1 for errors.`,
		Example: `  # Text report for a document
  olectl diagnose report.doc

  # JSON for programmatic analysis
  olectl diagnose --format json report.doc

  # Compact format for grep
  olectl diagnose --format compact --raw SummaryInformation.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(args)
		},
	}
	return cmd
}

func runDiagnose(args []string) error {
	path := args[0]
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", path)
	}
	switch diagFormat {
	case "text", "json", "compact":
	default:
		return fmt.Errorf("unknown format: %s (use: text, json, compact)", diagFormat)
	}

	reports, err := collectReports(path)
	if err != nil {
		return err
	}

	output, err := formatReports(reports)
	if err != nil {
		return err
	}

	if diagOutputFile != "" {
		if err := os.WriteFile(diagOutputFile, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		printInfo("Report written to: %s\n", diagOutputFile)
	} else {
		fmt.Print(output)
	}

	// Exit code based on severity
	var critical, errs, warnings int
	for _, r := range reports {
		critical += r.Summary.Critical
		errs += r.Summary.Errors
		warnings += r.Summary.Warnings
	}
	switch {
	case critical > 0:
		return &exitError{code: 2, msg: "CRITICAL issues found"}
	case errs > 0:
		return &exitError{code: 1, msg: "Errors found"}
	case warnings > 0:
		printInfo("\nWarnings found (non-critical)\n")
	default:
		printInfo("\nNo issues found\n")
	}
	return nil
}

// collectReports returns one report per property set stream. Streams that
// fail to decode still contribute their report.
func collectReports(path string) ([]*types.DiagnosticReport, error) {
	opts := decodeOptions(true)
	if rawStream {
		report, err := olekit.DiagnoseFile(path, opts)
		if report == nil {
			return nil, fmt.Errorf("failed to read stream: %w", err)
		}
		if err != nil {
			printVerbose("Decode failed: %v\n", err)
		}
		return []*types.DiagnosticReport{report}, nil
	}

	doc, err := olekit.OpenDocument(path, opts)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to open document: %w\n\nNote: diagnose --raw checks a single extracted stream.",
			err,
		)
	}
	reports := make([]*types.DiagnosticReport, 0, len(doc.Streams))
	for _, s := range doc.Streams {
		if s.Diagnostics != nil {
			reports = append(reports, s.Diagnostics)
		}
	}
	return reports, nil
}

func formatReports(reports []*types.DiagnosticReport) (string, error) {
	if diagFormat == "json" {
		if len(reports) == 0 {
			return "[]\n", nil
		}
		var b strings.Builder
		for i, r := range reports {
			if i == 0 {
				b.WriteString("[\n")
			} else {
				b.WriteString(",\n")
			}
			s, err := r.FormatJSON()
			if err != nil {
				return "", fmt.Errorf("failed to format JSON: %w", err)
			}
			b.WriteString(s)
		}
		b.WriteString("\n]\n")
		return b.String(), nil
	}

	var b strings.Builder
	for _, r := range reports {
		switch {
		case diagFormat == "compact":
			fmt.Fprintf(&b, "# %s\n", r.Source)
			b.WriteString(r.FormatTextCompact())
		case diagShowSummary:
			b.WriteString(formatSummaryOnly(r))
		default:
			b.WriteString(r.FormatText())
		}
	}
	if len(reports) == 0 {
		b.WriteString("No property set streams found.\n")
	}
	return b.String(), nil
}

func formatSummaryOnly(report *types.DiagnosticReport) string {
	output := fmt.Sprintf("Diagnostic Summary for %s\n", report.Source)
	output += fmt.Sprintf("Stream size: %d bytes\n", report.StreamSize)
	output += fmt.Sprintf("Scan time: %v\n\n", report.ScanTime)
	output += fmt.Sprintf("Critical:  %d\n", report.Summary.Critical)
	output += fmt.Sprintf("Errors:    %d\n", report.Summary.Errors)
	output += fmt.Sprintf("Warnings:  %d\n", report.Summary.Warnings)
	output += fmt.Sprintf("Info:      %d\n\n", report.Summary.Info)
	return output
}

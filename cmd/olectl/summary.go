package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/olekit/pkg/olekit"
	"github.com/joshuapare/olekit/pkg/types"
)

func init() {
	rootCmd.AddCommand(newSummaryCmd())
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <file>",
		Short: "Show the document summary",
		Long: `The summary command shows the well-known SummaryInformation and
DocSummaryInformation fields together with the user-defined properties.

Example:
  olectl summary report.doc
  olectl summary report.doc --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(args)
		},
	}
	return cmd
}

func runSummary(args []string) error {
	doc, err := openInput(args[0], decodeOptions(false))
	if err != nil {
		return err
	}
	if err := reportStreamErrors(doc); err != nil {
		return err
	}

	s := doc.Summary()
	if jsonOut {
		return printJSON(s)
	}
	if s.IsZero() {
		printInfo("No summary properties found\n")
		return nil
	}
	printSummary(s)
	return nil
}

func printSummary(s olekit.Summary) {
	field := func(label, value string) {
		if value != "" {
			fmt.Printf("%-16s %s\n", label+":", value)
		}
	}
	stamp := func(label string, t time.Time) {
		if !t.IsZero() {
			field(label, t.UTC().Format(types.TimeLayout))
		}
	}
	count := func(label string, n int64) {
		if n != 0 {
			field(label, fmt.Sprint(n))
		}
	}

	field("Title", s.Title)
	field("Subject", s.Subject)
	field("Author", s.Author)
	field("Keywords", s.Keywords)
	field("Comments", s.Comments)
	field("Template", s.Template)
	field("Last Author", s.LastAuthor)
	field("Revision", s.RevisionNumber)
	field("Application", s.AppName)
	stamp("Created", s.Created)
	stamp("Last Saved", s.LastSaved)
	stamp("Last Printed", s.LastPrinted)
	count("Pages", s.PageCount)
	count("Words", s.WordCount)
	count("Characters", s.CharCount)
	field("Category", s.Category)
	field("Manager", s.Manager)
	field("Company", s.Company)

	if len(s.Custom) > 0 {
		fmt.Println("Custom:")
		for _, c := range s.Custom {
			fmt.Printf("  %-14s %s (%s)\n", c.Name+":", c.Value, c.Type)
		}
	}
}

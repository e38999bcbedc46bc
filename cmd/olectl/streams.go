package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStreamsCmd())
}

func newStreamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streams <file>",
		Short: "List the streams of a compound document",
		Long: `The streams command lists every stream of a compound document and marks
the property set streams with the number of sets they decode to.

Example:
  olectl streams report.doc
  olectl streams report.doc --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStreams(args)
		},
	}
	return cmd
}

type streamRow struct {
	Name        string   `json:"name"`
	Size        int64    `json:"size"`
	PropertySet bool     `json:"property_set"`
	Sets        []string `json:"sets,omitempty"`
	Error       string   `json:"error,omitempty"`
}

func runStreams(args []string) error {
	doc, err := openInput(args[0], decodeOptions(false))
	if err != nil {
		return err
	}

	rows := make([]streamRow, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		row := streamRow{Name: e.Name, Size: e.Size, PropertySet: e.PropertySet}
		if ps, ok := doc.Stream(e.Name); ok && e.PropertySet {
			if ps.Err != nil {
				row.Error = ps.Err.Error()
			} else {
				for _, set := range ps.Collection.Sets {
					row.Sets = append(row.Sets, set.Class().String())
				}
			}
		}
		rows = append(rows, row)
	}

	if jsonOut {
		return printJSON(rows)
	}

	printInfo("Streams in %s:\n", doc.Path)
	for _, r := range rows {
		kind := "stream"
		detail := ""
		if r.PropertySet {
			kind = "propset"
			detail = fmt.Sprintf("%d set(s) %v", len(r.Sets), r.Sets)
			if r.Error != "" {
				detail = "error: " + r.Error
			}
		}
		fmt.Printf("  %-8s %10d  %-32s %s\n", kind, r.Size, r.Name, detail)
	}
	return nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/olekit/pkg/types"
)

var (
	propsCustom bool
	propsSet    string
)

func init() {
	cmd := newPropsCmd()
	cmd.Flags().BoolVar(&propsCustom, "custom", false, "Only list user-defined properties")
	cmd.Flags().StringVar(&propsSet, "set", "", "Only list one set: summary, docsummary or user")
	rootCmd.AddCommand(cmd)
}

func newPropsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "props <file>",
		Short: "List the properties of every property set",
		Long: `The props command decodes every property set stream of a document and
lists its properties with id, label, type and value.

Example:
  olectl props report.doc
  olectl props report.doc --custom
  olectl props report.doc --set summary --json
  olectl props --raw SummaryInformation.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProps(args)
		},
	}
	return cmd
}

// propRow is one listed property.
type propRow struct {
	Stream string `json:"stream"`
	Set    string `json:"set"`
	FMTID  string `json:"fmtid"`
	ID     uint32 `json:"id"`
	Label  string `json:"label,omitempty"`
	Type   string `json:"type"`
	Value  any    `json:"value"`
	Text   string `json:"text"`
}

func runProps(args []string) error {
	want, err := parseSetFilter(propsSet)
	if err != nil {
		return err
	}
	if propsCustom {
		want = types.ClassUserDefined
	}

	doc, err := openInput(args[0], decodeOptions(false))
	if err != nil {
		return err
	}
	if err := reportStreamErrors(doc); err != nil {
		return err
	}

	var rows []propRow
	for _, s := range doc.Streams {
		if s.Collection == nil {
			continue
		}
		for _, set := range s.Collection.Sets {
			if want != classAny && set.Class() != want {
				continue
			}
			for _, p := range set.Properties {
				rows = append(rows, propRow{
					Stream: s.Name,
					Set:    set.Class().String(),
					FMTID:  set.FormatID.String(),
					ID:     p.ID,
					Label:  set.Label(p),
					Type:   p.Type.String(),
					Value:  p.Interface(),
					Text:   p.String(),
				})
			}
		}
	}

	if jsonOut {
		if rows == nil {
			rows = []propRow{}
		}
		return printJSON(rows)
	}

	stream, set := "", ""
	for _, r := range rows {
		if r.Stream != stream || r.Set != set {
			stream, set = r.Stream, r.Set
			printInfo("[%s] %s {%s}\n", r.Stream, r.Set, r.FMTID)
		}
		label := r.Label
		if label == "" {
			label = "-"
		}
		fmt.Printf("  0x%08X  %-20s %-22s %s\n", r.ID, label, r.Type, r.Text)
	}
	if len(rows) == 0 {
		printInfo("No properties found\n")
	}
	return nil
}

// classAny matches every set class in a filter.
const classAny types.SetClass = 0xFF

func parseSetFilter(name string) (types.SetClass, error) {
	switch strings.ToLower(name) {
	case "":
		return classAny, nil
	case "summary":
		return types.ClassSummary, nil
	case "docsummary":
		return types.ClassDocSummary, nil
	case "user", "custom":
		return types.ClassUserDefined, nil
	default:
		return 0, fmt.Errorf("unknown set %q (use: summary, docsummary, user)", name)
	}
}

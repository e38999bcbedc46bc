package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/olekit/pkg/olekit"
)

var xmpOutputFile string

func init() {
	cmd := newXMPCmd()
	cmd.Flags().StringVarP(&xmpOutputFile, "output", "o", "", "Write the packet to a file instead of stdout")
	rootCmd.AddCommand(cmd)
}

func newXMPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xmp <file>",
		Short: "Export the document summary as an XMP packet",
		Long: `The xmp command converts the document summary to an XMP packet. Title,
author and comments map to Dublin Core; the other fields use the olekit
namespace.

Example:
  olectl xmp report.doc
  olectl xmp report.doc -o report.xmp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runXMP(args)
		},
	}
	return cmd
}

func runXMP(args []string) error {
	doc, err := openInput(args[0], decodeOptions(false))
	if err != nil {
		return err
	}
	if err := reportStreamErrors(doc); err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if xmpOutputFile != "" {
		f, err := os.Create(xmpOutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := olekit.WriteXMP(w, doc.Summary()); err != nil {
		return fmt.Errorf("failed to write XMP: %w", err)
	}
	if xmpOutputFile != "" {
		printInfo("XMP written to: %s\n", xmpOutputFile)
	}
	return nil
}

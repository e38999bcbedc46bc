package olekit_test

import (
	"fmt"
	"os"

	"github.com/joshuapare/olekit/pkg/olekit"
)

// Example prints the title and author of a document.
func Example() {
	doc, err := olekit.OpenDocument("report.doc", nil)
	if err != nil {
		fmt.Printf("Open failed: %v\n", err)
		return
	}
	s := doc.Summary()
	fmt.Println(s.Title, s.Author)
}

// ExampleDecode lists every property of an extracted stream.
func ExampleDecode() {
	data, err := os.ReadFile("SummaryInformation.bin")
	if err != nil {
		fmt.Printf("Read failed: %v\n", err)
		return
	}
	col, err := olekit.Decode(data, &olekit.Options{Tolerant: true})
	if err != nil {
		fmt.Printf("Decode failed: %v\n", err)
		return
	}
	for _, set := range col.Sets {
		for _, p := range set.Properties {
			fmt.Printf("%s: %s\n", set.Label(p), p)
		}
	}
}

// ExampleWriteXMP exports a document summary as XMP.
func ExampleWriteXMP() {
	doc, err := olekit.OpenDocument("report.doc", nil)
	if err != nil {
		fmt.Printf("Open failed: %v\n", err)
		return
	}
	if err := olekit.WriteXMP(os.Stdout, doc.Summary()); err != nil {
		fmt.Printf("Export failed: %v\n", err)
	}
}

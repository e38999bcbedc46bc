/*
Package olekit decodes OLE property set streams, the metadata blocks Office
documents and other compound files carry as "\x05SummaryInformation",
"\x05DocumentSummaryInformation" and similar streams.

# Quick Start

Read the summary of a Word document:

	doc, err := olekit.OpenDocument("report.doc", nil)
	if err != nil {
	    log.Fatal(err)
	}
	s := doc.Summary()
	fmt.Println(s.Title, s.Author, s.Created)

# Raw Streams

Decode a stream that was already extracted from its container:

	col, err := olekit.Decode(data, nil)
	if err != nil {
	    log.Fatal(err)
	}
	for _, p := range col.CustomProperties() {
	    fmt.Printf("%s = %s\n", p.Name, p)
	}

# Options

Decoding is best effort per property: an unknown type tag or an undecodable
string drops that single value and decoding continues. Structural damage
(offsets outside the stream, counts above Limits) fails the whole stream
unless Tolerant is set, in which case damage confined to one property value
only skips that property.

	limits := types.StrictLimits()
	opts := &olekit.Options{
	    Logger:             slog.Default(),
	    Limits:             &limits,
	    CollectDiagnostics: true,
	}

# Export

WriteXMP renders a Summary as an XMP packet with Dublin Core title, creator
and description plus an olekit namespace for the remaining fields.
*/
package olekit

package olekit

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joshuapare/olekit/internal/buf"
	"github.com/joshuapare/olekit/internal/container"
	"github.com/joshuapare/olekit/internal/mmfile"
	"github.com/joshuapare/olekit/internal/propset"
	"github.com/joshuapare/olekit/pkg/types"
)

// StreamInfo describes one stream of a compound document.
type StreamInfo struct {
	Name        string `json:"name"` // slash-joined path, control character removed
	Size        int64  `json:"size"`
	PropertySet bool   `json:"property_set"`
}

// PropertyStream is one decoded property set stream of a document.
type PropertyStream struct {
	Name string // e.g. "SummaryInformation"
	Size int64

	// Collection is nil when Err is set.
	Collection *types.Collection

	// Diagnostics is set when Options.CollectDiagnostics was requested, also
	// for streams that failed to decode.
	Diagnostics *types.DiagnosticReport

	Err error
}

// Document holds the property set streams of a compound document.
type Document struct {
	Path string

	// Streams are the property set streams in directory order.
	Streams []*PropertyStream

	// Entries lists every stream of the document in directory order.
	Entries []StreamInfo
}

// OpenDocument loads the compound document at path and decodes each of its
// property set streams. Only container failures are returned as errors; a
// stream that fails to decode keeps its error in PropertyStream.Err.
//
// Example:
//
//	doc, err := olekit.OpenDocument("report.doc", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range doc.CustomProperties() {
//	    fmt.Printf("%s = %s\n", p.Name, p)
//	}
func OpenDocument(path string, opts *Options) (*Document, error) {
	data, cleanup, err := mmfile.Map(path, 0)
	if err != nil {
		return nil, fmt.Errorf("olekit: open %s: %w", path, err)
	}
	defer cleanup()

	doc, err := OpenDocumentBytes(data, opts)
	if err != nil {
		return nil, fmt.Errorf("olekit: %s: %w", path, err)
	}
	doc.Path = path
	for _, s := range doc.Streams {
		if s.Diagnostics != nil {
			s.Diagnostics.Source = path + ":" + s.Name
		}
	}
	return doc, nil
}

// OpenDocumentBytes is OpenDocument over an in-memory compound document.
func OpenDocumentBytes(data []byte, opts *Options) (*Document, error) {
	log := slog.New(slog.DiscardHandler)
	if opts != nil && opts.Logger != nil {
		log = opts.Logger
	}

	// Stream data is copied out of the container, so the result never
	// aliases data.
	entries, err := container.Read(bytes.NewReader(data), container.PropertySets, opts.EffectiveLimits().MaxStreamSize)
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	for i := range entries {
		e := &entries[i]
		doc.Entries = append(doc.Entries, StreamInfo{
			Name:        e.FullName(),
			Size:        e.Size,
			PropertySet: e.PropertySet(),
		})
		if !e.PropertySet() {
			continue
		}

		ps := &PropertyStream{Name: e.FullName(), Size: e.Size}
		ps.Collection, ps.Diagnostics, ps.Err = propset.DecodeWithReport(buf.NewCursor(e.Data), opts)
		if ps.Diagnostics != nil {
			ps.Diagnostics.Source = ps.Name
		}
		if ps.Err != nil {
			log.Warn("property set stream skipped", "stream", ps.Name, "size", ps.Size, "error", ps.Err)
		} else {
			log.Debug("property set stream decoded", "stream", ps.Name, "sets", len(ps.Collection.Sets))
		}
		doc.Streams = append(doc.Streams, ps)
	}
	return doc, nil
}

// Stream returns the property set stream with the given name. A leading
// 0x05 control character in name is ignored.
func (d *Document) Stream(name string) (*PropertyStream, bool) {
	name = strings.TrimPrefix(name, "\x05")
	for _, s := range d.Streams {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Collections returns the successfully decoded collections in stream order.
func (d *Document) Collections() []*types.Collection {
	var out []*types.Collection
	for _, s := range d.Streams {
		if s.Collection != nil {
			out = append(out, s.Collection)
		}
	}
	return out
}

// AllProperties returns every property of every decoded stream.
func (d *Document) AllProperties() []*types.Property {
	var out []*types.Property
	for _, c := range d.Collections() {
		out = append(out, c.AllProperties()...)
	}
	return out
}

// CustomProperties returns the user-defined properties of every decoded
// stream.
func (d *Document) CustomProperties() []*types.Property {
	var out []*types.Property
	for _, c := range d.Collections() {
		out = append(out, c.CustomProperties()...)
	}
	return out
}

// Summary merges the well-known properties of every decoded stream.
func (d *Document) Summary() Summary {
	return NewSummary(d.Collections()...)
}

// Err joins the decode errors of all streams, or returns nil.
func (d *Document) Err() error {
	var errs []error
	for _, s := range d.Streams {
		if s.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, s.Err))
		}
	}
	return errors.Join(errs...)
}

package propset

import (
	"errors"
	"fmt"
	"time"

	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/joshuapare/olekit/internal/buf"
	"github.com/joshuapare/olekit/internal/format"
	"github.com/joshuapare/olekit/pkg/types"
)

// DecodeCollection decodes a whole property set stream starting at offset 0
// of c. Structural failures are returned as *types.Error: ErrNotPropertySet
// for a bad set count, ErrCorrupt for anything falling outside the stream or
// exceeding a limit.
func DecodeCollection(c *buf.Cursor, opts *types.Options) (*types.Collection, error) {
	col, _, err := DecodeWithReport(c, opts)
	return col, err
}

// Diagnose decodes the stream with diagnostics collection forced on and
// returns the report. Unlike DecodeCollection, a structural failure still
// yields a report: the failure is its critical entry and err is returned
// alongside.
func Diagnose(c *buf.Cursor, opts *types.Options) (*types.DiagnosticReport, error) {
	var o types.Options
	if opts != nil {
		o = *opts
	}
	o.CollectDiagnostics = true
	_, report, err := DecodeWithReport(c, &o)
	return report, err
}

// DecodeWithReport is DecodeCollection that also returns the diagnostic
// report, which is nil unless opts.CollectDiagnostics is set.
func DecodeWithReport(c *buf.Cursor, opts *types.Options) (*types.Collection, *types.DiagnosticReport, error) {
	start := time.Now()
	d := newDecoder(c, opts)

	report := func() *types.DiagnosticReport {
		if d.diag == nil {
			return nil
		}
		d.diag.report.ScanTime = time.Since(start)
		return d.diag.getReport()
	}

	col, err := d.decodeStream()
	if err != nil {
		if d.diag != nil && !d.diag.report.HasCriticalIssues() {
			d.diag.record(diagStructure(types.SevCritical, c.Pos(), "STREAM", err.Error(), nil, nil))
		}
		var te *types.Error
		if !errors.As(err, &te) {
			te = types.Wrap(types.ErrCorrupt, err)
		}
		return nil, report(), te
	}

	col.Diagnostics = report()
	return col, col.Diagnostics, nil
}

func (d *decoder) decodeStream() (*types.Collection, error) {
	if limit := d.limits.MaxStreamSize; limit > 0 && int64(d.c.Len()) > limit {
		return nil, fmt.Errorf("stream size %d exceeds limit %d: %w", d.c.Len(), limit, format.ErrSanityLimit)
	}
	return d.decodeCollection()
}

func (d *decoder) decodeCollection() (*types.Collection, error) {
	col := &types.Collection{}
	numSets, err := d.readHeader(col)
	if err != nil {
		return nil, err
	}
	if err := d.readDescriptors(col, numSets); err != nil {
		return nil, err
	}

	col.Sets = make([]*types.PropertySet, 0, len(col.Descriptors))
	for _, desc := range col.Descriptors {
		set, err := d.decodeSet(desc.Offset, desc.FormatID)
		if err != nil {
			return nil, err
		}
		col.Sets = append(col.Sets, set)
	}
	return col, nil
}

// readHeader reads the fixed stream header and returns the declared set count.
func (d *decoder) readHeader(col *types.Collection) (uint32, error) {
	if err := d.c.Seek(0); err != nil {
		return 0, truncated(err)
	}
	hdr, err := d.c.Bytes(format.StreamHeaderSize)
	if err != nil {
		return 0, fmt.Errorf("header: %w", truncated(err))
	}
	col.ByteOrder = buf.U16LE(hdr[0:2])
	col.Version = buf.U16LE(hdr[2:4])
	col.SystemIdentifier = buf.U32LE(hdr[4:8])
	copy(col.ClassID[:], hdr[8:8+format.ClassIDSize])
	numSets := buf.U32LE(hdr[8+format.ClassIDSize:])

	if col.ByteOrder != format.ByteOrderMark {
		d.log.Debug("unexpected byte order mark", "byte_order", col.ByteOrder)
		d.diag.record(diagStructure(types.SevInfo, 0, "HEADER",
			"unexpected byte order mark", format.ByteOrderMark, col.ByteOrder))
	}
	if numSets < format.MinPropertySets || numSets > format.MaxPropertySets {
		d.diag.record(diagStructure(types.SevCritical, format.StreamHeaderSize-4, "HEADER",
			"unsupported property set count", "1 or 2", numSets))
		return 0, types.Wrap(types.ErrNotPropertySet, fmt.Errorf("%d sets: %w", numSets, format.ErrSetCount))
	}
	return numSets, nil
}

// readDescriptors reads the first descriptor, and the second when the
// header declares two sets.
func (d *decoder) readDescriptors(col *types.Collection, numSets uint32) error {
	col.Descriptors = make([]types.Descriptor, 0, numSets)
	for i := uint32(0); i < numSets; i++ {
		b, err := d.c.Bytes(format.DescriptorSize)
		if err != nil {
			return fmt.Errorf("descriptor %d: %w", i, truncated(err))
		}
		col.Descriptors = append(col.Descriptors, types.Descriptor{
			FormatID: guid.FromWindowsArray([16]byte(b[:format.FMTIDSize])),
			Offset:   buf.U32LE(b[format.FMTIDSize:]),
		})
	}
	return nil
}

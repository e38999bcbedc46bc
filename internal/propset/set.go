package propset

import (
	"fmt"
	"log/slog"

	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/joshuapare/olekit/internal/buf"
	"github.com/joshuapare/olekit/internal/codepage"
	"github.com/joshuapare/olekit/internal/format"
	"github.com/joshuapare/olekit/pkg/types"
)

// DecodeSet decodes the property set at base. The cursor may be anywhere;
// on return it is left after the last value read.
func DecodeSet(c *buf.Cursor, base uint32, fmtid guid.GUID, opts *types.Options) (*types.PropertySet, error) {
	d := newDecoder(c, opts)
	set, err := d.decodeSet(base, fmtid)
	if err != nil {
		return nil, types.Wrap(types.ErrCorrupt, err)
	}
	return set, nil
}

// decodeSet runs the single pass: header, entry table, code page, name
// dictionary, then every value in stored entry order.
func (d *decoder) decodeSet(base uint32, fmtid guid.GUID) (*types.PropertySet, error) {
	set := &types.PropertySet{
		FormatID: fmtid,
		Offset:   base,
		Names:    map[uint32]string{},
	}

	if err := d.readSetHeader(set); err != nil {
		return nil, err
	}
	if err := d.readEntries(set); err != nil {
		return nil, err
	}
	if err := d.loadCodePage(set); err != nil {
		return nil, err
	}
	if err := d.loadDictionary(set); err != nil {
		return nil, err
	}
	if err := d.readProperties(set); err != nil {
		return nil, err
	}
	return set, nil
}

func (d *decoder) readSetHeader(set *types.PropertySet) error {
	if err := d.c.Seek(int(set.Offset)); err != nil {
		return fmt.Errorf("set {%s}: %w", set.FormatID, truncated(err))
	}
	size, err := d.c.U32()
	if err != nil {
		return fmt.Errorf("set {%s} size: %w", set.FormatID, truncated(err))
	}
	count, err := d.c.U32()
	if err != nil {
		return fmt.Errorf("set {%s} count: %w", set.FormatID, truncated(err))
	}
	set.Size = size
	set.PropertyCount = count
	return nil
}

func (d *decoder) readEntries(set *types.PropertySet) error {
	n, err := d.checkCount("property", set.PropertyCount, d.limits.MaxProperties, format.EntrySize)
	if err != nil {
		d.diag.record(diagStructure(types.SevCritical, d.c.Pos(), "SET",
			"entry table does not fit", d.limits.MaxProperties, set.PropertyCount))
		return fmt.Errorf("set {%s}: %w", set.FormatID, err)
	}
	set.Entries = make([]types.Entry, n)
	for i := range set.Entries {
		// checkCount guarantees the table fits.
		id, _ := d.c.U32()
		off, _ := d.c.U32()
		set.Entries[i] = types.Entry{ID: id, Offset: off}
	}
	return nil
}

// entry returns the first entry with the given id.
func entry(set *types.PropertySet, id uint32) (types.Entry, bool) {
	for _, e := range set.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return types.Entry{}, false
}

// seekEntry positions the cursor at an entry's data.
func (d *decoder) seekEntry(set *types.PropertySet, e types.Entry) error {
	if err := d.c.Seek(int(set.Offset) + int(e.Offset)); err != nil {
		return fmt.Errorf("set {%s} entry %d: %w", set.FormatID, e.ID, truncated(err))
	}
	return nil
}

// loadCodePage reads the code page from entry id 1 when present. The cursor
// position is restored on every path.
func (d *decoder) loadCodePage(set *types.PropertySet) (err error) {
	saved := d.c.Pos()
	defer func() {
		if serr := d.c.Seek(saved); serr != nil && err == nil {
			err = truncated(serr)
		}
	}()

	e, ok := entry(set, format.PIDCodePage)
	if !ok {
		return nil
	}
	if err := d.seekEntry(set, e); err != nil {
		return err
	}
	if err := d.c.Skip(format.ValueHeaderSize); err != nil {
		return fmt.Errorf("set {%s} code page: %w", set.FormatID, truncated(err))
	}
	cp, err := d.c.U16()
	if err != nil {
		return fmt.Errorf("set {%s} code page: %w", set.FormatID, truncated(err))
	}
	set.CodePage = cp

	if codec, known := codepage.Lookup(cp); !known {
		d.log.Warn("unsupported code page, decoding text as UTF-8",
			slog.String("fmtid", set.FormatID.String()),
			slog.Int("code_page", int(cp)),
			slog.String("codec", codec.String()),
		)
		d.diag.record(diagEncoding(types.SevWarning, int(set.Offset)+int(e.Offset), "CODEPAGE", set.FormatID,
			fmt.Sprintf("unsupported code page %d, falling back to UTF-8", cp)))
	}
	return nil
}

// loadDictionary reads the id -> name records of entry id 0 when present.
// Names that fail to decode are dropped.
func (d *decoder) loadDictionary(set *types.PropertySet) error {
	e, ok := entry(set, format.PIDDictionary)
	if !ok {
		return nil
	}
	if err := d.seekEntry(set, e); err != nil {
		return err
	}
	raw, err := d.c.U32()
	if err != nil {
		return fmt.Errorf("set {%s} dictionary: %w", set.FormatID, truncated(err))
	}
	n, err := d.checkCount("dictionary", raw, d.limits.MaxDictionaryEntries, format.DictRecordHeaderSize)
	if err != nil {
		d.diag.record(diagStructure(types.SevCritical, d.c.Pos(), "DICTIONARY",
			"dictionary does not fit", d.limits.MaxDictionaryEntries, raw))
		return fmt.Errorf("set {%s}: %w", set.FormatID, err)
	}

	codec, _ := codepage.Lookup(set.CodePage)
	for i := 0; i < n; i++ {
		recordStart := d.c.Pos()
		id, err := d.c.U32()
		if err != nil {
			return fmt.Errorf("set {%s} dictionary record %d: %w", set.FormatID, i, truncated(err))
		}
		length, err := d.c.U32()
		if err != nil {
			return fmt.Errorf("set {%s} dictionary record %d: %w", set.FormatID, i, truncated(err))
		}

		unit := 1
		if codec.Wide() {
			unit = 2
		}
		size, ok := buf.MulOverflowSafe(int(length), unit)
		if !ok {
			return fmt.Errorf("set {%s} dictionary record %d: %w", set.FormatID, i, format.ErrSanityLimit)
		}
		if err := d.checkLength("dictionary name", size); err != nil {
			return fmt.Errorf("set {%s} dictionary record %d: %w", set.FormatID, i, err)
		}
		b, err := d.c.Bytes(size)
		if err != nil {
			return fmt.Errorf("set {%s} dictionary record %d: %w", set.FormatID, i, truncated(err))
		}
		if codec.Wide() {
			d.pad(recordStart, false)
		}

		name, err := codec.Decode(b)
		if err != nil {
			d.log.Debug("dictionary name dropped",
				slog.String("fmtid", set.FormatID.String()),
				slog.Uint64("property_id", uint64(id)),
				slog.Int("offset", recordStart),
				slog.Any("error", err),
			)
			d.diag.record(diagEncoding(types.SevInfo, recordStart, "DICTIONARY", set.FormatID,
				fmt.Sprintf("name of property %d dropped: %v", id, err)))
			continue
		}
		set.Names[id] = name
	}
	return nil
}

// readProperties decodes every entry except the dictionary. Unknown types
// and unsupported shapes skip the entry. Structural failures abort unless
// the decoder is tolerant.
func (d *decoder) readProperties(set *types.PropertySet) error {
	set.Properties = make([]*types.Property, 0, len(set.Entries))
	for _, e := range set.Entries {
		if e.ID == format.PIDDictionary {
			continue
		}
		p, err := d.readEntry(set, e)
		if err != nil {
			if !d.tolerant {
				return err
			}
			d.skipEntry(set, e, err)
			continue
		}
		if p != nil {
			set.Properties = append(set.Properties, p)
		}
	}
	return nil
}

// readEntry decodes one entry. A nil property with a nil error means the
// entry was skipped.
func (d *decoder) readEntry(set *types.PropertySet, e types.Entry) (*types.Property, error) {
	vc := valueContext{fmtid: set.FormatID, id: e.ID}
	if err := d.seekEntry(set, e); err != nil {
		return nil, err
	}
	off := d.c.Pos()
	tag, err := d.c.U16()
	if err != nil {
		return nil, fmt.Errorf("set {%s} entry %d: %w", set.FormatID, e.ID, truncated(err))
	}
	if _, err := d.c.U16(); err != nil {
		return nil, fmt.Errorf("set {%s} entry %d: %w", set.FormatID, e.ID, truncated(err))
	}

	r, err := newValueReader(tag, set.CodePage, false)
	if err != nil {
		d.skipValue(vc, types.VarType(tag), off, "property skipped", err)
		return nil, nil
	}
	p, err := d.readProperty(r, vc)
	if err != nil {
		return nil, fmt.Errorf("set {%s} entry %d: %w", set.FormatID, e.ID, err)
	}
	if p == nil {
		return nil, nil
	}
	if name, ok := set.Names[e.ID]; ok {
		p.Name, p.Named = name, true
	}
	return p, nil
}

// skipEntry reports an entry dropped by a tolerant decode.
func (d *decoder) skipEntry(set *types.PropertySet, e types.Entry, err error) {
	off := int(set.Offset) + int(e.Offset)
	d.log.Error("property skipped",
		slog.String("fmtid", set.FormatID.String()),
		slog.Uint64("property_id", uint64(e.ID)),
		slog.Int("offset", off),
		slog.Any("error", err),
	)
	id := e.ID
	d.diag.record(types.Diagnostic{
		Severity:   types.SevError,
		Category:   types.DiagStructure,
		Offset:     off,
		Structure:  "ENTRY",
		Issue:      fmt.Sprintf("property skipped: %v", err),
		FormatID:   set.FormatID.String(),
		PropertyID: &id,
	})
}

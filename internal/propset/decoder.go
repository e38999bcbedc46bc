package propset

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/joshuapare/olekit/internal/buf"
	"github.com/joshuapare/olekit/internal/format"
	"github.com/joshuapare/olekit/pkg/types"
)

var (
	// errArrayDimension marks a value tagged VT_ARRAY; there is no array reader.
	errArrayDimension = errors.New("propset: array dimension not supported")
)

var discardLogger = slog.New(slog.DiscardHandler)

// decoder carries the per-call state of one stream decode. It owns the
// cursor for the duration of the call.
type decoder struct {
	c        *buf.Cursor
	log      *slog.Logger
	diag     *diagnosticCollector
	limits   types.Limits
	tolerant bool
}

func newDecoder(c *buf.Cursor, opts *types.Options) *decoder {
	d := &decoder{
		c:      c,
		log:    discardLogger,
		limits: opts.EffectiveLimits(),
	}
	if opts != nil {
		if opts.Logger != nil {
			d.log = opts.Logger
		}
		d.tolerant = opts.Tolerant
		if opts.CollectDiagnostics {
			d.diag = newDiagnosticCollector(c.Len())
		}
	}
	return d
}

// truncated tags a cursor failure as a structural truncation. nil stays nil.
func truncated(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", format.ErrTruncated, err)
}

// structural reports whether err must abort the decode.
func structural(err error) bool {
	return errors.Is(err, format.ErrTruncated) || errors.Is(err, format.ErrSanityLimit)
}

// checkCount validates a count read from the stream against its limit and
// against the bytes left after the cursor, assuming each element occupies at
// least width bytes. A limit of zero or less disables the limit check.
func (d *decoder) checkCount(what string, n uint32, limit, width int) (int, error) {
	if limit > 0 && uint64(n) > uint64(limit) {
		return 0, fmt.Errorf("%s count %d exceeds limit %d: %w", what, n, limit, format.ErrSanityLimit)
	}
	if _, err := buf.CheckListBounds(d.c.Len(), d.c.Pos(), int(n), width); err != nil {
		return 0, fmt.Errorf("%s count %d: %w: %w", what, n, format.ErrTruncated, err)
	}
	return int(n), nil
}

// checkLength validates a byte length read from the stream against
// Limits.MaxStringBytes.
func (d *decoder) checkLength(what string, n int) error {
	if limit := d.limits.MaxStringBytes; limit > 0 && n > limit {
		return fmt.Errorf("%s length %d exceeds limit %d: %w", what, n, limit, format.ErrSanityLimit)
	}
	return nil
}

// category maps a local decode failure to its diagnostic category.
func category(err error) types.DiagCategory {
	switch {
	case errors.Is(err, format.ErrTextDecode):
		return types.DiagEncoding
	case errors.Is(err, format.ErrUnknownType), errors.Is(err, format.ErrUnsupported), errors.Is(err, errArrayDimension):
		return types.DiagType
	case structural(err):
		return types.DiagStructure
	default:
		return types.DiagData
	}
}

// skipValue reports a property value or vector element that was dropped.
func (d *decoder) skipValue(vc valueContext, vt types.VarType, offset int, what string, err error) {
	d.log.Warn(what,
		slog.String("fmtid", vc.fmtid.String()),
		slog.Uint64("property_id", uint64(vc.id)),
		slog.Int("offset", offset),
		slog.String("vt", vt.String()),
		slog.Any("error", err),
	)
	d.diag.record(diagValue(types.SevError, category(err), offset, vc.fmtid, vc.id, vt, fmt.Sprintf("%s: %v", what, err)))
}

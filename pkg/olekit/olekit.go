package olekit

import (
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/olekit/internal/buf"
	"github.com/joshuapare/olekit/internal/format"
	"github.com/joshuapare/olekit/internal/mmfile"
	"github.com/joshuapare/olekit/internal/propset"
	"github.com/joshuapare/olekit/pkg/types"
)

// Options controls logging, limits, tolerance and diagnostics of a decode.
// A nil *Options selects the defaults.
type Options = types.Options

// Decode decodes one property set stream held in memory.
//
// Example:
//
//	col, err := olekit.Decode(data, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if s, ok := col.Summary(); ok {
//	    for _, p := range s.Properties {
//	        fmt.Printf("%s: %s\n", s.Label(p), p)
//	    }
//	}
func Decode(data []byte, opts *Options) (*types.Collection, error) {
	return propset.DecodeCollection(buf.NewCursor(data), opts)
}

// DecodeReader reads a whole property set stream from r and decodes it.
// Reading stops with ErrCorrupt once the stream exceeds
// Limits.MaxStreamSize.
func DecodeReader(r io.Reader, opts *Options) (*types.Collection, error) {
	data, err := readStream(r, opts.EffectiveLimits().MaxStreamSize)
	if err != nil {
		return nil, err
	}
	return Decode(data, opts)
}

// DecodeFile decodes a file holding a raw property set stream, one that was
// already extracted from its compound document. Use OpenDocument for the
// document itself.
func DecodeFile(path string, opts *Options) (*types.Collection, error) {
	data, cleanup, err := loadFile(path, opts)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	// Decoded values never alias data, so unmapping afterwards is safe.
	return Decode(data, opts)
}

// Diagnose decodes data with diagnostics collection on and returns the
// report. A structural failure still produces a report whose critical entry
// describes it; the error is returned alongside.
func Diagnose(data []byte, opts *Options) (*types.DiagnosticReport, error) {
	return propset.Diagnose(buf.NewCursor(data), opts)
}

// DiagnoseFile is Diagnose over a raw property set stream file. The report's
// Source is set to path.
func DiagnoseFile(path string, opts *Options) (*types.DiagnosticReport, error) {
	data, cleanup, err := loadFile(path, opts)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	report, err := Diagnose(data, opts)
	if report != nil {
		report.Source = path
	}
	return report, err
}

func loadFile(path string, opts *Options) ([]byte, func() error, error) {
	data, cleanup, err := mmfile.Map(path, opts.EffectiveLimits().MaxStreamSize)
	if err != nil {
		if errors.Is(err, mmfile.ErrTooLarge) {
			return nil, nil, types.Wrap(types.ErrCorrupt, fmt.Errorf("%w: %w", format.ErrSanityLimit, err))
		}
		return nil, nil, fmt.Errorf("olekit: open %s: %w", path, err)
	}
	return data, cleanup, nil
}

// readStream reads r to EOF. A limit of zero or less reads without bound.
func readStream(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, types.Wrap(types.ErrCorrupt,
			fmt.Errorf("stream exceeds %d bytes: %w", limit, format.ErrSanityLimit))
	}
	return data, nil
}

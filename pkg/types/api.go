package types

import "log/slog"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFormat      ErrKind = iota // malformed stream header (e.g., bad property set count)
	ErrKindCorrupt                    // structural corruption (offsets/counts outside the stream)
	ErrKindUnsupported                // valid feature we don't support
	ErrKindNotFound                   // missing stream/set/property
	ErrKindType                       // requested decode doesn't match the property type
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindFormat:
		return "format"
	case ErrKindCorrupt:
		return "corrupt"
	case ErrKindUnsupported:
		return "unsupported"
	case ErrKindNotFound:
		return "not found"
	case ErrKindType:
		return "type"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinels of the same kind and message, so wrapped instances
// created by the decoder satisfy errors.Is(err, types.ErrCorrupt).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind && e.Msg == t.Msg
}

// Sentinels commonly returned by implementations.
var (
	// ErrNotPropertySet indicates a stream whose header cannot be a property set stream.
	ErrNotPropertySet = &Error{Kind: ErrKindFormat, Msg: "not a property set stream"}
	// ErrCorrupt indicates non-recoverable structural inconsistency.
	ErrCorrupt = &Error{Kind: ErrKindCorrupt, Msg: "corrupt property set stream"}
	// ErrUnsupported indicates a recognized but unsupported feature/variant.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "unsupported property set feature"}
	// ErrNotFound indicates a missing stream, set or property.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrTypeMismatch indicates the requested decode doesn't match the property type.
	ErrTypeMismatch = &Error{Kind: ErrKindType, Msg: "property has different type"}
)

// Wrap returns a copy of the sentinel carrying err as its cause.
func Wrap(sentinel *Error, err error) *Error {
	return &Error{Kind: sentinel.Kind, Msg: sentinel.Msg, Err: err}
}

// -----------------------------------------------------------------------------
// Decode Options
// -----------------------------------------------------------------------------

// Options controls safety/diagnostics tradeoffs for a decode.
type Options struct {
	// Logger receives one record per skipped property, dropped dictionary
	// name or code page fallback. Nil discards.
	Logger *slog.Logger

	// Limits bounds counts and sizes read from the stream. Nil selects
	// DefaultLimits().
	Limits *Limits

	// Tolerant downgrades structural failures inside a single property value
	// (a string length running past the end of the stream, say) to a skipped
	// property plus an error diagnostic. Header, entry table and dictionary
	// failures still abort the decode.
	Tolerant bool

	// CollectDiagnostics attaches a DiagnosticReport to the decoded
	// Collection. Without it, skips are only logged.
	CollectDiagnostics bool
}

// EffectiveLimits returns the configured limits or the defaults.
func (o *Options) EffectiveLimits() Limits {
	if o == nil || o.Limits == nil {
		return DefaultLimits()
	}
	return *o.Limits
}

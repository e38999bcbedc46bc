// Package types defines the public data model for decoded OLE property sets:
// the VT type registry, the tagged value union, properties, property sets and
// collections, together with typed errors, decode options, limits and the
// diagnostics report.
//
// Design goals:
//   - Decoded entities are plain values built once per decode and read-only
//     afterwards; nothing here is shared across decode calls.
//   - Paranoid bounds checking; never panic on malformed input.
//   - Typed errors with stable categories (format/corrupt/unsupported/...).
//   - Best-effort decoding: a bad property shrinks the result instead of
//     failing it, and is reported through slog and the diagnostics report.
package types

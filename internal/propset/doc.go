// Package propset decodes OLE property set streams (MS-OLEPS) into
// pkg/types values.
//
// The decoder walks one in-memory stream with a buf.Cursor: the collection
// header and its one or two descriptors, then for each set the entry table,
// the code page property (id 1), the name dictionary (id 0) and every
// remaining value. Only structural failures (offsets or counts that fall
// outside the stream, sanity limits) abort a decode. Unknown types,
// unsupported shapes and undecodable text skip the affected entry and are
// logged and, when requested, recorded as diagnostics.
package propset

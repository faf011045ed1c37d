// Package coder provides the framing shared by every record in the movie
// and video containers.
//
// # Cursor
//
// A Cursor wraps a fixed-capacity buffer and tracks an absolute bit
// position. Words of 1 to 4 bytes are big-endian; bit fields are read and
// written MSB first. Byte operations require a byte-aligned position.
// Encoders are created with NewSizedCursor using the exact size computed in
// a sizing pass, so a record that writes more than it declared fails with
// ErrOutOfBounds rather than growing the buffer.
//
// # Record Header
//
// Every record starts with a 2-byte word holding the type code in the top
// 10 bits and the body length in the low 6 bits:
//
//	short: [type<<6 | length]                 (length < 63)
//	long:  [type<<6 | 0x3F][length(4)]        (length >= 63)
//
// # Integrity Check
//
// After a body is decoded or encoded the cursor must sit exactly at
// header end + length. Check returns a *CoderError otherwise, carrying the
// record name, the byte offset of its header, the declared length and the
// signed byte delta. The check always runs.
//
// # Error Handling
//
//   - *FormatError (ErrBadSignature, ErrUnsupportedFormat): the buffer fails
//     a structural precondition
//   - *CoderError: declared and actual record lengths disagree
//   - ErrOutOfBounds: a read or write crosses the buffer capacity
//   - ErrOutOfRange: a field value is rejected at construction time
//
// Errors are wrapped with github.com/cockroachdb/errors; use errors.Is and
// errors.As to classify them.
package coder

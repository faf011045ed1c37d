package coder

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// FormatError reports a buffer that fails a structural precondition before
// any record-level work starts.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

// Errors
var (
	ErrBadSignature      = &FormatError{"coder: bad signature"}
	ErrUnsupportedFormat = &FormatError{"coder: unsupported format"}

	ErrOutOfBounds = errors.New("coder: out of bounds")
	ErrUnaligned   = errors.New("coder: byte access on unaligned position")
	ErrOutOfRange  = errors.New("coder: value out of range")
)

// CoderError reports a record whose declared length does not match the
// number of bytes actually consumed or produced.
type CoderError struct {
	Name   string // record type name
	Start  int    // byte offset of the record header
	Length int    // declared body length in bytes
	Delta  int    // bytes past (positive) or short of (negative) the end
}

func (e *CoderError) Error() string {
	return fmt.Sprintf("coder: %s at byte %d: declared length %d, delta %d",
		e.Name, e.Start, e.Length, e.Delta)
}

// IsFatal reports whether err belongs to one of the codec error classes.
// Every such error aborts the enclosing container operation.
func IsFatal(err error) bool {
	var fe *FormatError
	var ce *CoderError
	return errors.As(err, &fe) || errors.As(err, &ce) ||
		errors.Is(err, ErrOutOfBounds) || errors.Is(err, ErrUnaligned)
}

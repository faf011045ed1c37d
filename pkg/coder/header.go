package coder

import (
	"github.com/cockroachdb/errors"
)

const (
	// LengthEscape is the packed length value that signals a 4-byte
	// extended length field.
	LengthEscape = 0x3F

	ShortHeaderSize = 2
	LongHeaderSize  = 6

	// MaxTypeCode is the largest code that fits the packed header.
	MaxTypeCode = 0x3FF
)

// RecordHeader is the type code and true body length of one record.
type RecordHeader struct {
	Type   int
	Length int
}

// HeaderSize returns the encoded header size for a body of length bytes.
func HeaderSize(length int) int {
	if length >= LengthEscape {
		return LongHeaderSize
	}
	return ShortHeaderSize
}

// RecordSize returns the full encoded size of a record with a body of
// length bytes.
func RecordSize(length int) int {
	return HeaderSize(length) + length
}

// ReadHeader decodes a short or long record header.
func ReadHeader(c *Cursor) (RecordHeader, error) {
	word, err := c.ReadWord(2, false)
	if err != nil {
		return RecordHeader{}, err
	}

	h := RecordHeader{Type: word >> 6, Length: word & LengthEscape}
	if h.Length == LengthEscape {
		length, err := c.ReadWord(4, false)
		if err != nil {
			return RecordHeader{}, err
		}
		if length < 0 {
			return RecordHeader{}, errors.Wrapf(ErrOutOfBounds, "extended length %d", length)
		}
		h.Length = length
	}
	return h, nil
}

// WriteHeader encodes h, switching to the long form when the length is
// LengthEscape or more.
func WriteHeader(c *Cursor, h RecordHeader) error {
	if h.Type < 0 || h.Type > MaxTypeCode {
		return errors.Wrapf(ErrOutOfRange, "type code %d", h.Type)
	}
	if h.Length < 0 {
		return errors.Wrapf(ErrOutOfRange, "length %d", h.Length)
	}

	if h.Length >= LengthEscape {
		if err := c.WriteWord(h.Type<<6|LengthEscape, 2); err != nil {
			return err
		}
		return c.WriteWord(h.Length, 4)
	}
	return c.WriteWord(h.Type<<6|h.Length, 2)
}

// Check compares the cursor position with end, the bit position where the
// record that started at bit start was declared to finish.
func Check(c *Cursor, name string, start, end, length int) error {
	if c.Position() == end {
		return nil
	}
	return &CoderError{
		Name:   name,
		Start:  start >> 3,
		Length: length,
		Delta:  (c.Position() - end) >> 3,
	}
}

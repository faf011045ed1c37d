package coder

import (
	"github.com/cockroachdb/errors"
)

// Cursor provides bit and byte level access to a fixed-capacity buffer.
// Positions are absolute bit offsets from the start of the buffer and words
// are big-endian. The buffer never grows: an encoder must be created with
// the exact encoded size.
type Cursor struct {
	data []byte
	pos  int // bit position
}

// NewCursor creates a cursor for decoding data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// NewSizedCursor creates a cursor over a zeroed buffer of size bytes for
// encoding.
func NewSizedCursor(size int) *Cursor {
	return &Cursor{data: make([]byte, size)}
}

// Bytes returns the underlying buffer.
func (c *Cursor) Bytes() []byte {
	return c.data
}

// Len returns the capacity of the buffer in bytes.
func (c *Cursor) Len() int {
	return len(c.data)
}

// Position returns the current bit position.
func (c *Cursor) Position() int {
	return c.pos
}

// SetPosition moves the cursor to an absolute bit offset.
func (c *Cursor) SetPosition(bit int) error {
	if bit < 0 || bit > len(c.data)<<3 {
		return errors.Wrapf(ErrOutOfBounds, "position %d outside %d bits", bit, len(c.data)<<3)
	}
	c.pos = bit
	return nil
}

// Advance moves the cursor forward (or backward for negative n) by n bits.
func (c *Cursor) Advance(n int) error {
	return c.SetPosition(c.pos + n)
}

// Remaining returns the number of whole bytes left after the current
// position.
func (c *Cursor) Remaining() int {
	return (len(c.data)<<3 - c.pos) >> 3
}

// Aligned reports whether the position is on a byte boundary.
func (c *Cursor) Aligned() bool {
	return c.pos&7 == 0
}

// Align moves to the next byte boundary. No-op when already aligned.
func (c *Cursor) Align() {
	c.pos = (c.pos + 7) &^ 7
}

func (c *Cursor) checkBytes(n int) error {
	if !c.Aligned() {
		return errors.Wrapf(ErrUnaligned, "bit %d", c.pos)
	}
	if n < 0 || (c.pos>>3)+n > len(c.data) {
		return errors.Wrapf(ErrOutOfBounds, "%d bytes at byte %d of %d", n, c.pos>>3, len(c.data))
	}
	return nil
}

// ReadWord reads an n byte (1-4) big-endian word, sign extending it when
// signed is true.
func (c *Cursor) ReadWord(n int, signed bool) (int, error) {
	if n < 1 || n > 4 {
		return 0, errors.Wrapf(ErrOutOfRange, "word size %d", n)
	}
	if err := c.checkBytes(n); err != nil {
		return 0, err
	}

	i := c.pos >> 3
	var v uint32
	for _, b := range c.data[i : i+n] {
		v = v<<8 | uint32(b)
	}
	c.pos += n << 3

	if signed {
		shift := uint(32 - n*8)
		return int(int32(v<<shift) >> shift), nil
	}
	return int(v), nil
}

// WriteWord writes value as an n byte (1-4) big-endian word. The value
// must fit the word either as a signed or an unsigned field.
func (c *Cursor) WriteWord(value, n int) error {
	if n < 1 || n > 4 {
		return errors.Wrapf(ErrOutOfRange, "word size %d", n)
	}
	if value < -(1<<(n*8-1)) || value >= 1<<(n*8) {
		return errors.Wrapf(ErrOutOfRange, "value %d does not fit %d bytes", value, n)
	}
	if err := c.checkBytes(n); err != nil {
		return err
	}

	i := c.pos >> 3
	v := uint32(value)
	for k := n - 1; k >= 0; k-- {
		c.data[i+k] = byte(v)
		v >>= 8
	}
	c.pos += n << 3
	return nil
}

// ReadBytes returns a copy of the next n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.checkBytes(n); err != nil {
		return nil, err
	}

	i := c.pos >> 3
	out := make([]byte, n)
	copy(out, c.data[i:i+n])
	c.pos += n << 3
	return out, nil
}

// WriteBytes copies b into the buffer at the current position.
func (c *Cursor) WriteBytes(b []byte) error {
	if err := c.checkBytes(len(b)); err != nil {
		return err
	}

	copy(c.data[c.pos>>3:], b)
	c.pos += len(b) << 3
	return nil
}

// ReadBits reads an n bit (0-32) field MSB first. Signed fields are sign
// extended from bit n-1.
func (c *Cursor) ReadBits(n int, signed bool) (int, error) {
	if n < 0 || n > 32 {
		return 0, errors.Wrapf(ErrOutOfRange, "bit count %d", n)
	}
	if n == 0 {
		return 0, nil
	}
	if c.pos+n > len(c.data)<<3 {
		return 0, errors.Wrapf(ErrOutOfBounds, "%d bits at bit %d of %d", n, c.pos, len(c.data)<<3)
	}

	var v uint32
	for range n {
		bit := (c.data[c.pos>>3] >> (7 - uint(c.pos&7))) & 1
		v = v<<1 | uint32(bit)
		c.pos++
	}

	if signed {
		shift := uint(32 - n)
		return int(int32(v<<shift) >> shift), nil
	}
	return int(v), nil
}

// WriteBits writes the low n bits (0-32) of value MSB first.
func (c *Cursor) WriteBits(value, n int) error {
	if n < 0 || n > 32 {
		return errors.Wrapf(ErrOutOfRange, "bit count %d", n)
	}
	if c.pos+n > len(c.data)<<3 {
		return errors.Wrapf(ErrOutOfBounds, "%d bits at bit %d of %d", n, c.pos, len(c.data)<<3)
	}

	v := uint32(value)
	for i := n - 1; i >= 0; i-- {
		mask := byte(1) << (7 - uint(c.pos&7))
		if (v>>uint(i))&1 != 0 {
			c.data[c.pos>>3] |= mask
		} else {
			c.data[c.pos>>3] &^= mask
		}
		c.pos++
	}
	return nil
}

// Package datatype holds the bit-packed value types nested inside records.
package datatype

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/ssargent/flashkit/pkg/coder"
)

const (
	fieldSizeBits = 5
	maxFieldBits  = 31
)

// Bounds is a rectangle in twips.
type Bounds struct {
	MinX, MinY int
	MaxX, MaxY int
}

// NewBounds creates a rectangle from its corners.
func NewBounds(minX, minY, maxX, maxY int) Bounds {
	return Bounds{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// Width returns MaxX - MinX.
func (b Bounds) Width() int {
	return b.MaxX - b.MinX
}

// Height returns MaxY - MinY.
func (b Bounds) Height() int {
	return b.MaxY - b.MinY
}

func (b Bounds) fieldBits() int {
	return coder.MaxSignedBits(b.MinX, b.MaxX, b.MinY, b.MaxY)
}

// Size returns the encoded size in bytes.
func (b Bounds) Size(ctx *coder.Context) int {
	return coder.BitsToBytes(fieldSizeBits + 4*b.fieldBits())
}

// Encode writes the rectangle and pads to a byte boundary.
func (b Bounds) Encode(c *coder.Cursor, ctx *coder.Context) error {
	n := b.fieldBits()
	if n > maxFieldBits {
		return errors.Wrapf(coder.ErrOutOfRange, "bounds field needs %d bits", n)
	}

	if err := c.WriteBits(n, fieldSizeBits); err != nil {
		return err
	}
	for _, v := range []int{b.MinX, b.MaxX, b.MinY, b.MaxY} {
		if err := c.WriteBits(v, n); err != nil {
			return err
		}
	}
	return writeAlign(c)
}

// DecodeBounds reads a rectangle written by Encode.
func DecodeBounds(c *coder.Cursor, ctx *coder.Context) (Bounds, error) {
	n, err := c.ReadBits(fieldSizeBits, false)
	if err != nil {
		return Bounds{}, err
	}

	var v [4]int
	for i := range v {
		if v[i], err = c.ReadBits(n, true); err != nil {
			return Bounds{}, err
		}
	}
	c.Align()
	return Bounds{MinX: v[0], MaxX: v[1], MinY: v[2], MaxY: v[3]}, nil
}

func (b Bounds) String() string {
	return fmt.Sprintf("Bounds{minX=%d minY=%d maxX=%d maxY=%d}", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// writeAlign zero pads the rest of the current byte.
func writeAlign(c *coder.Cursor) error {
	if pad := (8 - c.Position()&7) & 7; pad > 0 {
		return c.WriteBits(0, pad)
	}
	return nil
}

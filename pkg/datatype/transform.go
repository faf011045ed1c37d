package datatype

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/ssargent/flashkit/pkg/coder"
)

// Unity is 1.0 in 16.16 fixed point.
const Unity = 1 << 16

// CoordTransform is a 2D affine transform. Scale and shear terms are 16.16
// fixed point, translations are twips.
type CoordTransform struct {
	ScaleX, ScaleY int
	Shear0, Shear1 int
	TranslateX     int
	TranslateY     int
}

// Identity returns the transform that maps every point onto itself.
func Identity() CoordTransform {
	return CoordTransform{ScaleX: Unity, ScaleY: Unity}
}

// Translate returns a pure translation.
func Translate(x, y int) CoordTransform {
	t := Identity()
	t.TranslateX, t.TranslateY = x, y
	return t
}

// Scale returns a pure scaling transform.
func Scale(sx, sy float64) CoordTransform {
	return CoordTransform{ScaleX: ToFixed(sx), ScaleY: ToFixed(sy)}
}

// ToFixed converts v to 16.16 fixed point.
func ToFixed(v float64) int {
	return int(math.Round(v * Unity))
}

// FromFixed converts a 16.16 fixed point value to float64.
func FromFixed(v int) float64 {
	return float64(v) / Unity
}

func (t CoordTransform) hasScale() bool {
	return t.ScaleX != Unity || t.ScaleY != Unity
}

func (t CoordTransform) hasShear() bool {
	return t.Shear0 != 0 || t.Shear1 != 0
}

func (t CoordTransform) bitSize() int {
	n := 1 + 1 + fieldSizeBits + 2*coder.MaxSignedBits(t.TranslateX, t.TranslateY)
	if t.hasScale() {
		n += fieldSizeBits + 2*coder.MaxSignedBits(t.ScaleX, t.ScaleY)
	}
	if t.hasShear() {
		n += fieldSizeBits + 2*coder.MaxSignedBits(t.Shear0, t.Shear1)
	}
	return n
}

// Size returns the encoded size in bytes.
func (t CoordTransform) Size(ctx *coder.Context) int {
	return coder.BitsToBytes(t.bitSize())
}

// Encode writes the transform and pads to a byte boundary.
func (t CoordTransform) Encode(c *coder.Cursor, ctx *coder.Context) error {
	if err := encodePair(c, t.hasScale(), t.ScaleX, t.ScaleY); err != nil {
		return err
	}
	if err := encodePair(c, t.hasShear(), t.Shear0, t.Shear1); err != nil {
		return err
	}
	if err := writePair(c, t.TranslateX, t.TranslateY); err != nil {
		return err
	}
	return writeAlign(c)
}

func encodePair(c *coder.Cursor, present bool, a, b int) error {
	if !present {
		return c.WriteBits(0, 1)
	}
	if err := c.WriteBits(1, 1); err != nil {
		return err
	}
	return writePair(c, a, b)
}

func writePair(c *coder.Cursor, a, b int) error {
	n := coder.MaxSignedBits(a, b)
	if n > maxFieldBits {
		return errors.Wrapf(coder.ErrOutOfRange, "transform field needs %d bits", n)
	}
	if err := c.WriteBits(n, fieldSizeBits); err != nil {
		return err
	}
	if err := c.WriteBits(a, n); err != nil {
		return err
	}
	return c.WriteBits(b, n)
}

func readPair(c *coder.Cursor) (int, int, error) {
	n, err := c.ReadBits(fieldSizeBits, false)
	if err != nil {
		return 0, 0, err
	}
	a, err := c.ReadBits(n, true)
	if err != nil {
		return 0, 0, err
	}
	b, err := c.ReadBits(n, true)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// DecodeCoordTransform reads a transform written by Encode.
func DecodeCoordTransform(c *coder.Cursor, ctx *coder.Context) (CoordTransform, error) {
	t := Identity()

	flag, err := c.ReadBits(1, false)
	if err != nil {
		return t, err
	}
	if flag == 1 {
		if t.ScaleX, t.ScaleY, err = readPair(c); err != nil {
			return t, err
		}
	}

	if flag, err = c.ReadBits(1, false); err != nil {
		return t, err
	}
	if flag == 1 {
		if t.Shear0, t.Shear1, err = readPair(c); err != nil {
			return t, err
		}
	}

	if t.TranslateX, t.TranslateY, err = readPair(c); err != nil {
		return t, err
	}
	c.Align()
	return t, nil
}

func (t CoordTransform) String() string {
	return fmt.Sprintf("CoordTransform{scale=(%g,%g) shear=(%g,%g) translate=(%d,%d)}",
		FromFixed(t.ScaleX), FromFixed(t.ScaleY), FromFixed(t.Shear0), FromFixed(t.Shear1),
		t.TranslateX, t.TranslateY)
}

package datatype

import (
	"fmt"

	"github.com/ssargent/flashkit/pkg/coder"
)

// Color is an RGBA colour. The alpha channel is only encoded while the
// context marks colours as transparent.
type Color struct {
	R, G, B, A uint8
}

// RGB creates an opaque colour.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xFF}
}

// RGBA creates a colour with an explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Size returns 4 bytes for transparent colours, 3 otherwise.
func (col Color) Size(ctx *coder.Context) int {
	if ctx.Get(coder.Transparent) != 0 {
		return 4
	}
	return 3
}

func (col Color) Encode(c *coder.Cursor, ctx *coder.Context) error {
	channels := []byte{col.R, col.G, col.B, col.A}
	return c.WriteBytes(channels[:col.Size(ctx)])
}

// DecodeColor reads a colour; opaque encodings get an alpha of 255.
func DecodeColor(c *coder.Cursor, ctx *coder.Context) (Color, error) {
	n := Color{}.Size(ctx)
	b, err := c.ReadBytes(n)
	if err != nil {
		return Color{}, err
	}
	col := Color{R: b[0], G: b[1], B: b[2], A: 0xFF}
	if n == 4 {
		col.A = b[3]
	}
	return col, nil
}

func (col Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", col.R, col.G, col.B, col.A)
}

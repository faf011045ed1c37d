// Package fillstyle encodes the gradient fills used by morphing shapes.
package fillstyle

import (
	"fmt"

	"github.com/ssargent/flashkit/pkg/coder"
	"github.com/ssargent/flashkit/pkg/datatype"
)

// MorphGradient is a control point of a gradient at the start and the end
// of a morph. Colours always carry alpha.
type MorphGradient struct {
	StartRatio int
	StartColor datatype.Color
	EndRatio   int
	EndColor   datatype.Color
}

const morphGradientSize = 10

// NewMorphGradient creates a control point. Ratios must be in 0..255.
func NewMorphGradient(startRatio int, startColor datatype.Color, endRatio int, endColor datatype.Color) (MorphGradient, error) {
	if err := checkRatio(startRatio); err != nil {
		return MorphGradient{}, err
	}
	if err := checkRatio(endRatio); err != nil {
		return MorphGradient{}, err
	}
	return MorphGradient{
		StartRatio: startRatio,
		StartColor: startColor,
		EndRatio:   endRatio,
		EndColor:   endColor,
	}, nil
}

func (g MorphGradient) Size(ctx *coder.Context) int {
	return morphGradientSize
}

func (g MorphGradient) Encode(c *coder.Cursor, ctx *coder.Context) error {
	rgba := ctx.With(coder.Transparent, 1)

	if err := c.WriteWord(g.StartRatio, 1); err != nil {
		return err
	}
	if err := g.StartColor.Encode(c, rgba); err != nil {
		return err
	}
	if err := c.WriteWord(g.EndRatio, 1); err != nil {
		return err
	}
	return g.EndColor.Encode(c, rgba)
}

// DecodeMorphGradient reads a control point.
func DecodeMorphGradient(c *coder.Cursor, ctx *coder.Context) (MorphGradient, error) {
	rgba := ctx.With(coder.Transparent, 1)

	var g MorphGradient
	var err error
	if g.StartRatio, err = c.ReadWord(1, false); err != nil {
		return g, err
	}
	if g.StartColor, err = datatype.DecodeColor(c, rgba); err != nil {
		return g, err
	}
	if g.EndRatio, err = c.ReadWord(1, false); err != nil {
		return g, err
	}
	g.EndColor, err = datatype.DecodeColor(c, rgba)
	return g, err
}

func (g MorphGradient) String() string {
	return fmt.Sprintf("MorphGradient{start=%d:%s end=%d:%s}", g.StartRatio, g.StartColor, g.EndRatio, g.EndColor)
}

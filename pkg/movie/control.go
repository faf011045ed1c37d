package movie

import (
	"bytes"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/ssargent/flashkit/pkg/coder"
	"github.com/ssargent/flashkit/pkg/datatype"
)

// End marks the end of a movie or sprite.
type End struct{}

func (t *End) Type() int { return TypeEnd }

func (t *End) Size(ctx *coder.Context) int { return 0 }

func (t *End) Encode(c *coder.Cursor, ctx *coder.Context) error { return nil }

func (t *End) Copy() Tag { return &End{} }

func (t *End) String() string { return "End" }

// ShowFrame displays the current frame.
type ShowFrame struct{}

func (t *ShowFrame) Type() int { return TypeShowFrame }

func (t *ShowFrame) Size(ctx *coder.Context) int { return 0 }

func (t *ShowFrame) Encode(c *coder.Cursor, ctx *coder.Context) error { return nil }

func (t *ShowFrame) Copy() Tag { return &ShowFrame{} }

func (t *ShowFrame) String() string { return "ShowFrame" }

// SetBackgroundColor sets the colour of the stage.
type SetBackgroundColor struct {
	Color datatype.Color
}

func NewSetBackgroundColor(col datatype.Color) *SetBackgroundColor {
	return &SetBackgroundColor{Color: col}
}

func (t *SetBackgroundColor) Type() int {
	return TypeSetBackgroundColor
}

func (t *SetBackgroundColor) Size(ctx *coder.Context) int {
	return t.Color.Size(ctx)
}

func (t *SetBackgroundColor) Encode(c *coder.Cursor, ctx *coder.Context) error {
	return t.Color.Encode(c, ctx)
}

func (t *SetBackgroundColor) Copy() Tag {
	out := *t
	return &out
}

func (t *SetBackgroundColor) String() string {
	return fmt.Sprintf("SetBackgroundColor{color=%s}", t.Color)
}

func decodeSetBackgroundColor(c *coder.Cursor, ctx *coder.Context) (*SetBackgroundColor, error) {
	col, err := datatype.DecodeColor(c, ctx)
	if err != nil {
		return nil, err
	}
	return &SetBackgroundColor{Color: col}, nil
}

// FrameLabel names the current frame. Anchor labels can be targeted from
// a browser URL.
type FrameLabel struct {
	Label  string
	Anchor bool
}

func NewFrameLabel(label string, anchor bool) (*FrameLabel, error) {
	if label == "" || bytes.IndexByte([]byte(label), 0) >= 0 {
		return nil, errors.Wrapf(coder.ErrOutOfRange, "frame label %q", label)
	}
	return &FrameLabel{Label: label, Anchor: anchor}, nil
}

func (t *FrameLabel) Type() int {
	return TypeFrameLabel
}

func (t *FrameLabel) Size(ctx *coder.Context) int {
	n := len(t.Label) + 1
	if t.Anchor {
		n++
	}
	return n
}

func (t *FrameLabel) Encode(c *coder.Cursor, ctx *coder.Context) error {
	if err := c.WriteBytes([]byte(t.Label)); err != nil {
		return err
	}
	if err := c.WriteWord(0, 1); err != nil {
		return err
	}
	if t.Anchor {
		return c.WriteWord(1, 1)
	}
	return nil
}

func (t *FrameLabel) Copy() Tag {
	out := *t
	return &out
}

func (t *FrameLabel) String() string {
	return fmt.Sprintf("FrameLabel{label=%q anchor=%t}", t.Label, t.Anchor)
}

func decodeFrameLabel(c *coder.Cursor, ctx *coder.Context, length int) (*FrameLabel, error) {
	body, err := c.ReadBytes(length)
	if err != nil {
		return nil, err
	}

	i := bytes.IndexByte(body, 0)
	if i < 0 {
		return nil, errors.Wrap(coder.ErrOutOfBounds, "unterminated frame label")
	}

	t := &FrameLabel{Label: string(body[:i])}
	used := i + 1
	if used < length && body[used] == 1 {
		t.Anchor = true
		used++
	}

	// Bytes past the label stay unconsumed for the integrity check.
	return t, c.Advance((used - length) << 3)
}

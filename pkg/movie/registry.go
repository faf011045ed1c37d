package movie

import (
	"github.com/cockroachdb/errors"
	"github.com/ssargent/flashkit/pkg/coder"
)

// decodeTag reads one record. Records of unknown kind are stepped over and
// reported through onSkip; nil is returned for them.
func decodeTag(c *coder.Cursor, ctx *coder.Context, onSkip func(coder.Skipped)) (Tag, error) {
	start := c.Position()

	h, err := coder.ReadHeader(c)
	if err != nil {
		return nil, errors.Wrapf(err, "record header at byte %d", start>>3)
	}

	end := c.Position() + h.Length<<3
	if end > c.Len()<<3 {
		return nil, errors.Wrapf(coder.ErrOutOfBounds, "%s at byte %d declares %d bytes, %d remain",
			TypeName(h.Type), start>>3, h.Length, c.Remaining())
	}

	var t Tag
	switch h.Type {
	case TypeEnd:
		t = &End{}
	case TypeShowFrame:
		t = &ShowFrame{}
	case TypeSetBackgroundColor:
		t, err = decodeSetBackgroundColor(c, ctx)
	case TypeDefineJPEGImage2:
		t, err = decodeDefineJPEGImage2(c, ctx, h.Length)
	case TypeDefineJPEGImage3:
		t, err = decodeDefineJPEGImage3(c, ctx, h.Length)
	case TypeFrameLabel:
		t, err = decodeFrameLabel(c, ctx, h.Length)
	default:
		if err := c.SetPosition(end); err != nil {
			return nil, err
		}
		if onSkip != nil {
			onSkip(coder.Skipped{Type: h.Type, Offset: start >> 3, Length: h.Length})
		}
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s at byte %d", TypeName(h.Type), start>>3)
	}

	if err := coder.Check(c, TypeName(h.Type), start, end, h.Length); err != nil {
		return nil, err
	}
	return t, nil
}

// encodeTag writes one record through the shared header codec.
func encodeTag(c *coder.Cursor, ctx *coder.Context, t Tag) error {
	return coder.WriteRecord(c, ctx, TypeName(t.Type()), t)
}

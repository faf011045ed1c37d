package video

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/ssargent/flashkit/pkg/coder"
)

// Type codes
const (
	TypeAudioData = 8
	TypeVideoData = 9
	TypeMetaData  = 18
)

const (
	// TagHeaderSize is the size of the header in front of every tag body.
	TagHeaderSize = 11

	// BackLengthSize is the size of the trailing field that repeats the
	// length of the preceding tag.
	BackLengthSize = 4

	maxBodyLength = 1<<24 - 1
	maxTimestamp  = 1<<32 - 1
)

var typeNames = map[int]string{
	TypeAudioData: "AudioData",
	TypeVideoData: "VideoData",
	TypeMetaData:  "MetaData",
}

// TypeName returns the name of the tag kind with the given code.
func TypeName(code int) string {
	if name, ok := typeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", code)
}

// Tag is one record of a video. Size and Encode cover the body only; the
// container writes the tag header and back-length around it.
type Tag interface {
	coder.Record
	Timestamp() int
	Copy() Tag
}

// timed holds the presentation time shared by every tag kind.
type timed struct {
	timestamp int
}

// Timestamp returns the presentation time in milliseconds.
func (t *timed) Timestamp() int {
	return t.timestamp
}

// SetTimestamp sets the presentation time in milliseconds.
func (t *timed) SetTimestamp(ms int) error {
	if ms < 0 || ms > maxTimestamp {
		return errors.Wrapf(coder.ErrOutOfRange, "timestamp %d", ms)
	}
	t.timestamp = ms
	return nil
}

// tagHeader is the decoded form of the 11-byte tag header:
//
//	[type(1)][length(3)][timestamp(3)][timestamp high(1)][stream(3)]
type tagHeader struct {
	Type      int
	Length    int
	Timestamp int
}

func readTagHeader(c *coder.Cursor) (tagHeader, error) {
	var h tagHeader
	var err error

	if h.Type, err = c.ReadWord(1, false); err != nil {
		return h, err
	}
	if h.Length, err = c.ReadWord(3, false); err != nil {
		return h, err
	}
	low, err := c.ReadWord(3, false)
	if err != nil {
		return h, err
	}
	high, err := c.ReadWord(1, false)
	if err != nil {
		return h, err
	}
	h.Timestamp = high<<24 | low

	// stream identifier, always 0
	if _, err := c.ReadWord(3, false); err != nil {
		return h, err
	}
	return h, nil
}

func writeTagHeader(c *coder.Cursor, h tagHeader) error {
	if h.Length < 0 || h.Length > maxBodyLength {
		return errors.Wrapf(coder.ErrOutOfRange, "tag length %d", h.Length)
	}
	if err := c.WriteWord(h.Type, 1); err != nil {
		return err
	}
	if err := c.WriteWord(h.Length, 3); err != nil {
		return err
	}
	if err := c.WriteWord(h.Timestamp&0xFFFFFF, 3); err != nil {
		return err
	}
	if err := c.WriteWord(h.Timestamp>>24, 1); err != nil {
		return err
	}
	return c.WriteWord(0, 3)
}

// decodeTag reads one tag and its back-length. Tags of unknown kind are
// stepped over and reported through onSkip; nil is returned for them.
func decodeTag(c *coder.Cursor, onSkip func(coder.Skipped)) (Tag, error) {
	start := c.Position()

	h, err := readTagHeader(c)
	if err != nil {
		return nil, errors.Wrapf(err, "tag header at byte %d", start>>3)
	}

	end := c.Position() + h.Length<<3
	if end > c.Len()<<3 {
		return nil, errors.Wrapf(coder.ErrOutOfBounds, "%s at byte %d declares %d bytes, %d remain",
			TypeName(h.Type), start>>3, h.Length, c.Remaining())
	}

	var t Tag
	switch h.Type {
	case TypeAudioData:
		t, err = decodeAudioData(c, h)
	case TypeVideoData:
		t, err = decodeVideoData(c, h)
	case TypeMetaData:
		t, err = decodeMetaData(c, h)
	default:
		if err := c.SetPosition(end); err != nil {
			return nil, err
		}
		if onSkip != nil {
			onSkip(coder.Skipped{Type: h.Type, Offset: start >> 3, Length: h.Length})
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s at byte %d", TypeName(h.Type), start>>3)
	}

	if t != nil {
		if err := coder.Check(c, TypeName(h.Type), start, end, h.Length); err != nil {
			return nil, err
		}
	}

	if _, err := c.ReadWord(BackLengthSize, false); err != nil {
		return nil, errors.Wrapf(err, "back-length of %s at byte %d", TypeName(h.Type), start>>3)
	}
	return t, nil
}

// encodeTag writes the header, body and back-length of t.
func encodeTag(c *coder.Cursor, ctx *coder.Context, t Tag) error {
	length := t.Size(ctx)
	start := c.Position()

	if err := writeTagHeader(c, tagHeader{Type: t.Type(), Length: length, Timestamp: t.Timestamp()}); err != nil {
		return err
	}
	end := c.Position() + length<<3

	if err := t.Encode(c, ctx); err != nil {
		return err
	}
	if err := coder.Check(c, TypeName(t.Type()), start, end, length); err != nil {
		return err
	}
	return c.WriteWord(TagHeaderSize+length, BackLengthSize)
}

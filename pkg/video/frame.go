package video

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/ssargent/flashkit/pkg/coder"
)

// Frame types
const (
	KeyFrame          = 1
	InterFrame        = 2
	DisposableFrame   = 3
	GeneratedKeyFrame = 4
	CommandFrame      = 5
)

// Codecs
const (
	CodecJPEG         = 1
	CodecH263         = 2
	CodecScreenVideo  = 3
	CodecVP6          = 4
	CodecVP6Alpha     = 5
	CodecScreenVideo2 = 6
	CodecAVC          = 7
)

const videoHeaderSize = 1

// VideoData carries one encoded video frame:
//
//	[frame type(4) codec(4)][payload]
type VideoData struct {
	timed

	frameType int
	codec     int
	payload   []byte
}

// NewVideoData creates a video tag. frameType and codec must each fit in
// four bits.
func NewVideoData(frameType, codec int, payload []byte) (*VideoData, error) {
	t := &VideoData{payload: payload}
	if err := t.SetFrameType(frameType); err != nil {
		return nil, err
	}
	if err := t.SetCodec(codec); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *VideoData) FrameType() int {
	return t.frameType
}

func (t *VideoData) SetFrameType(frameType int) error {
	if frameType < 0 || frameType > 15 {
		return errors.Wrapf(coder.ErrOutOfRange, "frame type %d", frameType)
	}
	t.frameType = frameType
	return nil
}

func (t *VideoData) Codec() int {
	return t.codec
}

func (t *VideoData) SetCodec(codec int) error {
	if codec < 0 || codec > 15 {
		return errors.Wrapf(coder.ErrOutOfRange, "codec %d", codec)
	}
	t.codec = codec
	return nil
}

func (t *VideoData) Payload() []byte {
	return t.payload
}

func (t *VideoData) SetPayload(payload []byte) {
	t.payload = payload
}

func (t *VideoData) Type() int {
	return TypeVideoData
}

func (t *VideoData) Size(ctx *coder.Context) int {
	return videoHeaderSize + len(t.payload)
}

func (t *VideoData) Encode(c *coder.Cursor, ctx *coder.Context) error {
	if err := c.WriteWord(t.frameType<<4|t.codec, 1); err != nil {
		return err
	}
	return c.WriteBytes(t.payload)
}

func (t *VideoData) Copy() Tag {
	out := *t
	out.payload = append([]byte(nil), t.payload...)
	return &out
}

func (t *VideoData) String() string {
	return fmt.Sprintf("VideoData{timestamp=%d frameType=%d codec=%d payload=%d}",
		t.timestamp, t.frameType, t.codec, len(t.payload))
}

func decodeVideoData(c *coder.Cursor, h tagHeader) (*VideoData, error) {
	b, err := c.ReadWord(1, false)
	if err != nil {
		return nil, err
	}
	payload, err := c.ReadBytes(h.Length - videoHeaderSize)
	if err != nil {
		return nil, err
	}
	return &VideoData{
		timed:     timed{timestamp: h.Timestamp},
		frameType: b >> 4,
		codec:     b & 0x0F,
		payload:   payload,
	}, nil
}

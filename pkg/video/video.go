// Package video encodes and decodes the streaming video container: a
// 9-byte file header followed by audio, video and script tags, each
// trailed by a 4-byte back-length so the stream can be walked in reverse.
//
//	[FLV][version(1)][flags(1)][header length(4)=9][back-length(4)=0]
//	[tag header(11)][body][back-length(4)=11+body] ...
package video

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/ssargent/flashkit/pkg/coder"
)

const (
	Signature      = "FLV"
	DefaultVersion = 1

	// HeaderLength is the declared size of the file header.
	HeaderLength = 9

	// Flags
	FlagVideo = 1
	FlagAudio = 4

	minHeaderSize  = 8
	fileHeaderSize = HeaderLength + BackLengthSize

	maxVersion = 0xFF
)

// Video is an ordered sequence of tags.
type Video struct {
	Version int

	tags []Tag
}

func New() *Video {
	return &Video{Version: DefaultVersion}
}

// SetVersion sets the format version, 0..255.
func (v *Video) SetVersion(version int) error {
	if version < 0 || version > maxVersion {
		return errors.Wrapf(coder.ErrOutOfRange, "version %d", version)
	}
	v.Version = version
	return nil
}

func (v *Video) Tags() []Tag {
	return v.tags
}

func (v *Video) SetTags(tags []Tag) {
	v.tags = tags
}

// Add appends tags in order.
func (v *Video) Add(tags ...Tag) *Video {
	v.tags = append(v.tags, tags...)
	return v
}

// Copy returns a deep copy of the video and its tags.
func (v *Video) Copy() *Video {
	out := &Video{Version: v.Version, tags: make([]Tag, len(v.tags))}
	for i, t := range v.tags {
		out.tags[i] = t.Copy()
	}
	return out
}

// Flags returns the header flags describing which stream kinds the video
// contains.
func (v *Video) Flags() int {
	flags := 0
	for _, t := range v.tags {
		switch t.(type) {
		case *AudioData:
			flags |= FlagAudio
		case *VideoData:
			flags |= FlagVideo
		}
	}
	return flags
}

func (v *Video) String() string {
	return fmt.Sprintf("Video{signature=%s version=%d tags=%d}", Signature, v.Version, len(v.tags))
}

// Decoder decodes videos. The zero value is ready to use.
type Decoder struct {
	// OnSkip, when set, is called for every tag whose type code is not
	// recognised.
	OnSkip func(coder.Skipped)
}

// Decode decodes a video with a zero Decoder.
func Decode(data []byte) (*Video, error) {
	return (&Decoder{}).Decode(data)
}

// Decode verifies the signature, reads the file header and then every tag
// up to the end of data. The header flags and back-lengths are recomputed
// on encode so their decoded values are discarded.
func (d *Decoder) Decode(data []byte) (*Video, error) {
	if len(data) < minHeaderSize {
		return nil, errors.Wrapf(coder.ErrBadSignature, "%d bytes is shorter than the %d byte header", len(data), minHeaderSize)
	}
	if string(data[:3]) != Signature {
		return nil, errors.Wrapf(coder.ErrBadSignature, "signature %q", data[:3])
	}

	c := coder.NewCursor(data)
	if err := c.Advance(24); err != nil {
		return nil, err
	}

	v := &Video{}
	var err error
	if v.Version, err = c.ReadWord(1, false); err != nil {
		return nil, err
	}
	if _, err := c.ReadWord(1, false); err != nil {
		return nil, errors.Wrap(err, "flags")
	}
	if _, err := c.ReadWord(4, false); err != nil {
		return nil, errors.Wrap(err, "header length")
	}
	if _, err := c.ReadWord(BackLengthSize, false); err != nil {
		return nil, errors.Wrap(err, "first back-length")
	}

	for c.Remaining() > 0 {
		t, err := decodeTag(c, d.OnSkip)
		if err != nil {
			return nil, err
		}
		if t != nil {
			v.tags = append(v.tags, t)
		}
	}
	return v, nil
}

// EncodedSize returns the size of the encoded video.
func (v *Video) EncodedSize() int {
	ctx := coder.NewContext(v.Version)
	length := fileHeaderSize
	for _, t := range v.tags {
		length += TagHeaderSize + t.Size(ctx) + BackLengthSize
	}
	return length
}

// Encode sizes every tag, allocates a buffer of exactly that size and
// writes the file header followed by the tags in order.
func (v *Video) Encode() ([]byte, error) {
	ctx := coder.NewContext(v.Version)
	length := v.EncodedSize()
	c := coder.NewSizedCursor(length)

	if err := c.WriteBytes([]byte(Signature)); err != nil {
		return nil, err
	}
	if err := c.WriteWord(v.Version, 1); err != nil {
		return nil, errors.Wrap(err, "version")
	}
	if err := c.WriteWord(v.Flags(), 1); err != nil {
		return nil, err
	}
	if err := c.WriteWord(HeaderLength, 4); err != nil {
		return nil, err
	}
	if err := c.WriteWord(0, BackLengthSize); err != nil {
		return nil, err
	}

	for _, t := range v.tags {
		if err := encodeTag(c, ctx, t); err != nil {
			return nil, err
		}
	}

	if err := coder.Check(c, "Video", 0, length<<3, length); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

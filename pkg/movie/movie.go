package movie

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zlib"
	"github.com/ssargent/flashkit/pkg/coder"
	"github.com/ssargent/flashkit/pkg/datatype"
)

// Signatures
const (
	SignatureFWS = "FWS" // uncompressed
	SignatureCWS = "CWS" // body after the first 8 bytes is zlib compressed
)

const (
	// DefaultVersion is the format version of new movies.
	DefaultVersion = 10

	// minHeaderSize covers the signature, version and file length.
	minHeaderSize = 8

	maxVersion    = 0xFF
	maxFrameCount = 0xFFFF
)

// Movie is an ordered sequence of tags with the header information that
// precedes them in a file.
type Movie struct {
	Version    int
	Compressed bool
	FrameSize  datatype.Bounds
	FrameRate  int // frames per second, 8.8 fixed point
	FrameCount int

	tags []Tag
}

// New creates an empty movie with a 550x400 pixel stage at 12 frames per
// second.
func New() *Movie {
	return &Movie{
		Version:   DefaultVersion,
		FrameSize: datatype.NewBounds(0, 0, 550*20, 400*20),
		FrameRate: 12 << 8,
	}
}

// Signature returns the signature written by Encode.
func (m *Movie) Signature() string {
	if m.Compressed {
		return SignatureCWS
	}
	return SignatureFWS
}

// SetVersion sets the format version, 0..255.
func (m *Movie) SetVersion(version int) error {
	if version < 0 || version > maxVersion {
		return errors.Wrapf(coder.ErrOutOfRange, "version %d", version)
	}
	m.Version = version
	return nil
}

// SetFrameCount sets the number of frames, 0..65535.
func (m *Movie) SetFrameCount(n int) error {
	if n < 0 || n > maxFrameCount {
		return errors.Wrapf(coder.ErrOutOfRange, "frame count %d", n)
	}
	m.FrameCount = n
	return nil
}

// Rate returns the frame rate in frames per second.
func (m *Movie) Rate() float64 {
	return float64(m.FrameRate) / 256
}

// SetRate sets the frame rate in frames per second.
func (m *Movie) SetRate(fps float64) error {
	rate := int(math.Round(fps * 256))
	if rate < 0 || rate > 0xFFFF {
		return errors.Wrapf(coder.ErrOutOfRange, "frame rate %g", fps)
	}
	m.FrameRate = rate
	return nil
}

// Tags returns the tags in playback order.
func (m *Movie) Tags() []Tag {
	return m.tags
}

// SetTags replaces all tags.
func (m *Movie) SetTags(tags []Tag) {
	m.tags = tags
}

// Add appends tags in order.
func (m *Movie) Add(tags ...Tag) *Movie {
	m.tags = append(m.tags, tags...)
	return m
}

// Copy returns a deep copy of the movie and its tags.
func (m *Movie) Copy() *Movie {
	out := *m
	out.tags = make([]Tag, len(m.tags))
	for i, t := range m.tags {
		out.tags[i] = t.Copy()
	}
	return &out
}

func (m *Movie) String() string {
	return fmt.Sprintf("Movie{signature=%s version=%d frameSize=%s rate=%g frames=%d tags=%d}",
		m.Signature(), m.Version, m.FrameSize, m.Rate(), m.FrameCount, len(m.tags))
}

// Decoder decodes movies. The zero value is ready to use.
type Decoder struct {
	// OnSkip, when set, is called for every record whose type code is not
	// recognised.
	OnSkip func(coder.Skipped)

	// MaxLength, when positive, is the largest uncompressed movie accepted.
	// Compressed movies are checked against the length their header
	// declares before anything is inflated.
	MaxLength int
}

// Decode decodes a movie with a zero Decoder.
func Decode(data []byte) (*Movie, error) {
	return (&Decoder{}).Decode(data)
}

// Decode verifies the signature, reads the header and then every record up
// to the end of data. Unknown records are skipped.
func (d *Decoder) Decode(data []byte) (*Movie, error) {
	if len(data) < minHeaderSize {
		return nil, errors.Wrapf(coder.ErrBadSignature, "%d bytes is shorter than the %d byte header", len(data), minHeaderSize)
	}

	m := &Movie{}
	switch string(data[:3]) {
	case SignatureFWS:
		if d.MaxLength > 0 && len(data) > d.MaxLength {
			return nil, errors.Wrapf(coder.ErrBadSignature, "movie of %d bytes exceeds the %d byte limit", len(data), d.MaxLength)
		}
	case SignatureCWS:
		m.Compressed = true
		declared := int(binary.BigEndian.Uint32(data[4:minHeaderSize]))
		if declared < minHeaderSize {
			return nil, errors.Wrapf(coder.ErrBadSignature, "declared length %d is shorter than the header", declared)
		}
		if d.MaxLength > 0 && declared > d.MaxLength {
			return nil, errors.Wrapf(coder.ErrBadSignature, "declared length %d exceeds the %d byte limit", declared, d.MaxLength)
		}
		inflated, err := inflate(data, declared)
		if err != nil {
			return nil, err
		}
		data = inflated
	default:
		return nil, errors.Wrapf(coder.ErrBadSignature, "signature %q", data[:3])
	}

	c := coder.NewCursor(data)
	if err := c.Advance(24); err != nil {
		return nil, err
	}

	var err error
	if m.Version, err = c.ReadWord(1, false); err != nil {
		return nil, err
	}
	if _, err = c.ReadWord(4, false); err != nil {
		return nil, err
	}

	ctx := coder.NewContext(m.Version)
	if m.FrameSize, err = datatype.DecodeBounds(c, ctx); err != nil {
		return nil, errors.Wrap(err, "frame size")
	}
	if m.FrameRate, err = c.ReadWord(2, false); err != nil {
		return nil, errors.Wrap(err, "frame rate")
	}
	if m.FrameCount, err = c.ReadWord(2, false); err != nil {
		return nil, errors.Wrap(err, "frame count")
	}

	for c.Remaining() > 0 {
		t, err := decodeTag(c, ctx, d.OnSkip)
		if err != nil {
			return nil, err
		}
		if t != nil {
			m.tags = append(m.tags, t)
		}
	}
	return m, nil
}

func (m *Movie) headerSize(ctx *coder.Context) int {
	return minHeaderSize + m.FrameSize.Size(ctx) + 4
}

// EncodedSize returns the uncompressed size of the encoded movie.
func (m *Movie) EncodedSize() int {
	ctx := coder.NewContext(m.Version)
	length := m.headerSize(ctx)
	for _, t := range m.tags {
		length += coder.RecordSize(t.Size(ctx))
	}
	return length
}

// Encode sizes every tag, allocates a buffer of exactly that size and
// writes the header followed by the tags in order.
func (m *Movie) Encode() ([]byte, error) {
	ctx := coder.NewContext(m.Version)
	length := m.EncodedSize()
	c := coder.NewSizedCursor(length)

	if err := c.WriteBytes([]byte(m.Signature())); err != nil {
		return nil, err
	}
	if err := c.WriteWord(m.Version, 1); err != nil {
		return nil, errors.Wrap(err, "version")
	}
	if err := c.WriteWord(length, 4); err != nil {
		return nil, err
	}
	if err := m.FrameSize.Encode(c, ctx); err != nil {
		return nil, errors.Wrap(err, "frame size")
	}
	if err := c.WriteWord(m.FrameRate, 2); err != nil {
		return nil, errors.Wrap(err, "frame rate")
	}
	if err := c.WriteWord(m.FrameCount, 2); err != nil {
		return nil, errors.Wrap(err, "frame count")
	}

	for _, t := range m.tags {
		if err := encodeTag(c, ctx, t); err != nil {
			return nil, err
		}
	}

	if err := coder.Check(c, "Movie", 0, length<<3, length); err != nil {
		return nil, err
	}

	if !m.Compressed {
		return c.Bytes(), nil
	}
	return deflate(c.Bytes())
}

// inflate expands a compressed movie, reading no more than one byte past
// the declared length so an oversized body is caught without expanding it.
func inflate(data []byte, declared int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data[minHeaderSize:]))
	if err != nil {
		return nil, errors.Wrap(coder.ErrBadSignature, "compressed body is not zlib data")
	}
	defer r.Close()

	var buf bytes.Buffer
	buf.Grow(min(declared, minHeaderSize+len(data)*4))
	buf.Write(data[:minHeaderSize])
	if _, err := io.Copy(&buf, io.LimitReader(r, int64(declared-minHeaderSize+1))); err != nil {
		return nil, errors.Wrapf(coder.ErrBadSignature, "failed to inflate movie: %v", err)
	}
	if buf.Len() != declared {
		return nil, errors.Wrapf(coder.ErrBadSignature, "compressed body inflates to %d bytes, header declares %d", buf.Len(), declared)
	}
	return buf.Bytes(), nil
}

func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(data[:minHeaderSize])

	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data[minHeaderSize:]); err != nil {
		return nil, errors.Wrap(err, "failed to compress movie")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to compress movie")
	}
	return buf.Bytes(), nil
}

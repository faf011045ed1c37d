package video

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/ssargent/flashkit/pkg/coder"
)

// Audio formats
const (
	FormatPCM        = 0
	FormatADPCM      = 1
	FormatMP3        = 2
	FormatPCMLE      = 3
	FormatNellymoser = 6
	FormatAAC        = 10
	FormatSpeex      = 11
)

// Sample rates
const (
	Rate5512  = 0
	Rate11025 = 1
	Rate22050 = 2
	Rate44100 = 3
)

var sampleRates = [...]int{5512, 11025, 22050, 44100}

const audioHeaderSize = 1

// AudioData carries a block of sound samples. The stream parameters are
// packed into the first byte of the body:
//
//	[format(4) rate(2) 16bit(1) stereo(1)][samples]
type AudioData struct {
	timed

	format  int
	rate    int
	wide    bool
	stereo  bool
	samples []byte
}

// NewAudioData creates an audio tag. format must be in 0..15 and rate in
// 0..3.
func NewAudioData(format, rate int, wide, stereo bool, samples []byte) (*AudioData, error) {
	t := &AudioData{wide: wide, stereo: stereo, samples: samples}
	if err := t.SetFormat(format); err != nil {
		return nil, err
	}
	if err := t.SetRate(rate); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *AudioData) Format() int {
	return t.format
}

func (t *AudioData) SetFormat(format int) error {
	if format < 0 || format > 15 {
		return errors.Wrapf(coder.ErrOutOfRange, "audio format %d", format)
	}
	t.format = format
	return nil
}

// Rate returns the sample rate code.
func (t *AudioData) Rate() int {
	return t.rate
}

// SampleRate returns the sample rate in Hz.
func (t *AudioData) SampleRate() int {
	return sampleRates[t.rate]
}

func (t *AudioData) SetRate(rate int) error {
	if rate < 0 || rate >= len(sampleRates) {
		return errors.Wrapf(coder.ErrOutOfRange, "sample rate code %d", rate)
	}
	t.rate = rate
	return nil
}

// SampleSize returns the size of one sample in bits.
func (t *AudioData) SampleSize() int {
	if t.wide {
		return 16
	}
	return 8
}

// Channels returns 2 for stereo streams and 1 for mono.
func (t *AudioData) Channels() int {
	if t.stereo {
		return 2
	}
	return 1
}

func (t *AudioData) Samples() []byte {
	return t.samples
}

func (t *AudioData) SetSamples(samples []byte) {
	t.samples = samples
}

func (t *AudioData) Type() int {
	return TypeAudioData
}

func (t *AudioData) Size(ctx *coder.Context) int {
	return audioHeaderSize + len(t.samples)
}

func (t *AudioData) Encode(c *coder.Cursor, ctx *coder.Context) error {
	if err := c.WriteBits(t.format, 4); err != nil {
		return err
	}
	if err := c.WriteBits(t.rate, 2); err != nil {
		return err
	}
	if err := c.WriteBits(flag(t.wide), 1); err != nil {
		return err
	}
	if err := c.WriteBits(flag(t.stereo), 1); err != nil {
		return err
	}
	return c.WriteBytes(t.samples)
}

func (t *AudioData) Copy() Tag {
	out := *t
	out.samples = append([]byte(nil), t.samples...)
	return &out
}

func (t *AudioData) String() string {
	return fmt.Sprintf("AudioData{timestamp=%d format=%d rate=%d size=%d channels=%d samples=%d}",
		t.timestamp, t.format, t.SampleRate(), t.SampleSize(), t.Channels(), len(t.samples))
}

func decodeAudioData(c *coder.Cursor, h tagHeader) (*AudioData, error) {
	t := &AudioData{timed: timed{timestamp: h.Timestamp}}

	var err error
	if t.format, err = c.ReadBits(4, false); err != nil {
		return nil, err
	}
	if t.rate, err = c.ReadBits(2, false); err != nil {
		return nil, err
	}
	wide, err := c.ReadBits(1, false)
	if err != nil {
		return nil, err
	}
	stereo, err := c.ReadBits(1, false)
	if err != nil {
		return nil, err
	}
	t.wide, t.stereo = wide == 1, stereo == 1

	if t.samples, err = c.ReadBytes(h.Length - audioHeaderSize); err != nil {
		return nil, err
	}
	return t, nil
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Package inspect decodes containers of either kind into a flat report
// used by the command line tools, the HTTP API and the asset store.
package inspect

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ssargent/flashkit/pkg/coder"
	"github.com/ssargent/flashkit/pkg/movie"
	"github.com/ssargent/flashkit/pkg/video"
)

// Kind names a container format.
type Kind string

// Kinds
const (
	KindMovie Kind = "movie"
	KindVideo Kind = "video"
)

// ErrUnknownKind is returned for container kinds other than movie and video.
var ErrUnknownKind = errors.New("inspect: unknown container kind")

// ParseKind converts a name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(name)); k {
	case KindMovie, KindVideo:
		return k, nil
	}
	return "", errors.Wrapf(ErrUnknownKind, "%q", name)
}

// Detect returns the kind whose signature data starts with.
func Detect(data []byte) (Kind, error) {
	if len(data) >= 3 {
		switch string(data[:3]) {
		case movie.SignatureFWS, movie.SignatureCWS:
			return KindMovie, nil
		case video.Signature:
			return KindVideo, nil
		}
	}
	return "", errors.Wrap(coder.ErrBadSignature, "no known container signature")
}

// Record summarises one decoded record.
type Record struct {
	Index  int    `json:"index"`
	Type   int    `json:"type"`
	Name   string `json:"name"`
	Size   int    `json:"size"`
	Detail string `json:"detail"`
}

// Report is the result of inspecting one container.
type Report struct {
	Kind       Kind            `json:"kind"`
	Signature  string          `json:"signature"`
	Version    int             `json:"version"`
	Length     int             `json:"length"`
	Compressed bool            `json:"compressed,omitempty"`
	FrameSize  string          `json:"frame_size,omitempty"`
	FrameRate  float64         `json:"frame_rate,omitempty"`
	FrameCount int             `json:"frame_count,omitempty"`
	Records    []Record        `json:"records"`
	Skipped    []coder.Skipped `json:"skipped,omitempty"`
}

// Decoded holds a decoded container of either kind.
type Decoded struct {
	Kind  Kind
	Movie *movie.Movie
	Video *video.Video
}

// Encode re-encodes the container.
func (d *Decoded) Encode() ([]byte, error) {
	if d.Kind == KindVideo {
		return d.Video.Encode()
	}
	return d.Movie.Encode()
}

// Inspector decodes containers of either kind. The zero value applies no
// size limit.
type Inspector struct {
	// MaxLength, when positive, rejects movies whose uncompressed length
	// exceeds it.
	MaxLength int
}

// Decode decodes data as kind with a zero Inspector.
func Decode(kind Kind, data []byte) (*Decoded, []coder.Skipped, error) {
	return Inspector{}.Decode(kind, data)
}

// Inspect decodes data as kind with a zero Inspector and summarises it.
func Inspect(kind Kind, data []byte) (*Report, error) {
	return Inspector{}.Inspect(kind, data)
}

// RoundTrip decodes data with a zero Inspector and encodes it again.
func RoundTrip(kind Kind, data []byte) ([]byte, []coder.Skipped, error) {
	return Inspector{}.RoundTrip(kind, data)
}

// Decode decodes data as kind. Records of unknown type are collected in the
// returned slice.
func (in Inspector) Decode(kind Kind, data []byte) (*Decoded, []coder.Skipped, error) {
	var skipped []coder.Skipped
	onSkip := func(s coder.Skipped) { skipped = append(skipped, s) }

	switch kind {
	case KindMovie:
		m, err := (&movie.Decoder{OnSkip: onSkip, MaxLength: in.MaxLength}).Decode(data)
		if err != nil {
			return nil, nil, err
		}
		return &Decoded{Kind: kind, Movie: m}, skipped, nil
	case KindVideo:
		v, err := (&video.Decoder{OnSkip: onSkip}).Decode(data)
		if err != nil {
			return nil, nil, err
		}
		return &Decoded{Kind: kind, Video: v}, skipped, nil
	}
	return nil, nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
}

// Inspect decodes data as kind and summarises it.
func (in Inspector) Inspect(kind Kind, data []byte) (*Report, error) {
	d, skipped, err := in.Decode(kind, data)
	if err != nil {
		return nil, err
	}
	r := Summarize(d)
	r.Length = len(data)
	r.Skipped = skipped
	return r, nil
}

// Summarize builds the report for a decoded container.
func Summarize(d *Decoded) *Report {
	if d.Kind == KindVideo {
		return summarizeVideo(d.Video)
	}
	return summarizeMovie(d.Movie)
}

func summarizeMovie(m *movie.Movie) *Report {
	ctx := coder.NewContext(m.Version)
	r := &Report{
		Kind:       KindMovie,
		Signature:  m.Signature(),
		Version:    m.Version,
		Length:     m.EncodedSize(),
		Compressed: m.Compressed,
		FrameSize:  m.FrameSize.String(),
		FrameRate:  m.Rate(),
		FrameCount: m.FrameCount,
		Records:    make([]Record, 0, len(m.Tags())),
	}
	for i, t := range m.Tags() {
		r.Records = append(r.Records, Record{
			Index:  i,
			Type:   t.Type(),
			Name:   movie.TypeName(t.Type()),
			Size:   coder.RecordSize(t.Size(ctx)),
			Detail: fmt.Sprint(t),
		})
	}
	return r
}

func summarizeVideo(v *video.Video) *Report {
	ctx := coder.NewContext(v.Version)
	r := &Report{
		Kind:      KindVideo,
		Signature: video.Signature,
		Version:   v.Version,
		Length:    v.EncodedSize(),
		Records:   make([]Record, 0, len(v.Tags())),
	}
	for i, t := range v.Tags() {
		r.Records = append(r.Records, Record{
			Index:  i,
			Type:   t.Type(),
			Name:   video.TypeName(t.Type()),
			Size:   video.TagHeaderSize + t.Size(ctx) + video.BackLengthSize,
			Detail: fmt.Sprint(t),
		})
	}
	return r
}

// Counts returns the number of records per record name.
func (r *Report) Counts() map[string]int {
	counts := make(map[string]int, len(r.Records))
	for _, rec := range r.Records {
		counts[rec.Name]++
	}
	return counts
}

// RoundTrip decodes data and encodes it again.
func (in Inspector) RoundTrip(kind Kind, data []byte) ([]byte, []coder.Skipped, error) {
	d, skipped, err := in.Decode(kind, data)
	if err != nil {
		return nil, nil, err
	}
	out, err := d.Encode()
	if err != nil {
		return nil, nil, err
	}
	return out, skipped, nil
}

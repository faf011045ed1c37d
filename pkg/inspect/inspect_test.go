package inspect

import (
	"testing"

	"github.com/ssargent/flashkit/pkg/coder"
	"github.com/ssargent/flashkit/pkg/movie"
	"github.com/ssargent/flashkit/pkg/video"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedMovie(t *testing.T, compressed bool) []byte {
	t.Helper()
	label, err := movie.NewFrameLabel("start", false)
	require.NoError(t, err)

	m := movie.New()
	m.Compressed = compressed
	m.FrameCount = 1
	m.Add(label, &movie.ShowFrame{}, &movie.End{})

	data, err := m.Encode()
	require.NoError(t, err)
	return data
}

func encodedVideo(t *testing.T) []byte {
	t.Helper()
	frame, err := video.NewVideoData(video.KeyFrame, video.CodecH263, []byte{1, 2, 3})
	require.NoError(t, err)

	data, err := video.New().Add(video.NewMetaData([]byte{2}), frame).Encode()
	require.NoError(t, err)
	return data
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Movie")
	require.NoError(t, err)
	assert.Equal(t, KindMovie, k)

	k, err = ParseKind("video")
	require.NoError(t, err)
	assert.Equal(t, KindVideo, k)

	_, err = ParseKind("audio")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected Kind
	}{
		{name: "movie", data: encodedMovie(t, false), expected: KindMovie},
		{name: "compressed movie", data: encodedMovie(t, true), expected: KindMovie},
		{name: "video", data: encodedVideo(t), expected: KindVideo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := Detect(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, k)
		})
	}

	_, err := Detect([]byte("GIF89a"))
	assert.ErrorIs(t, err, coder.ErrBadSignature)
	_, err = Detect(nil)
	assert.ErrorIs(t, err, coder.ErrBadSignature)
}

func TestInspect_Movie(t *testing.T) {
	data := encodedMovie(t, true)

	r, err := Inspect(KindMovie, data)
	require.NoError(t, err)

	assert.Equal(t, KindMovie, r.Kind)
	assert.Equal(t, movie.SignatureCWS, r.Signature)
	assert.True(t, r.Compressed)
	assert.Equal(t, len(data), r.Length)
	assert.Equal(t, 12.0, r.FrameRate)
	assert.Equal(t, 1, r.FrameCount)
	require.Len(t, r.Records, 3)
	assert.Equal(t, "FrameLabel", r.Records[0].Name)
	assert.Equal(t, 2+6, r.Records[0].Size)
	assert.Equal(t, map[string]int{"FrameLabel": 1, "ShowFrame": 1, "End": 1}, r.Counts())
	assert.Empty(t, r.Skipped)
}

func TestInspect_Video(t *testing.T) {
	r, err := Inspect(KindVideo, encodedVideo(t))
	require.NoError(t, err)

	assert.Equal(t, video.Signature, r.Signature)
	require.Len(t, r.Records, 2)
	assert.Equal(t, "VideoData", r.Records[1].Name)
	assert.Equal(t, 11+4+4, r.Records[1].Size)
}

func TestInspect_CollectsSkipped(t *testing.T) {
	data := append(encodedMovie(t, false), 0x19, 0x01, 0xEE)

	r, err := Inspect(KindMovie, data)
	require.NoError(t, err)
	require.Len(t, r.Skipped, 1)
	assert.Equal(t, 100, r.Skipped[0].Type)
	assert.Equal(t, 1, r.Skipped[0].Length)
}

func TestInspect_Errors(t *testing.T) {
	_, err := Inspect(KindVideo, encodedMovie(t, false))
	assert.ErrorIs(t, err, coder.ErrBadSignature)

	_, err = Inspect(Kind("audio"), nil)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestRoundTrip(t *testing.T) {
	for _, kind := range []Kind{KindMovie, KindVideo} {
		t.Run(string(kind), func(t *testing.T) {
			var data []byte
			if kind == KindMovie {
				data = encodedMovie(t, false)
			} else {
				data = encodedVideo(t)
			}

			out, skipped, err := RoundTrip(kind, data)
			require.NoError(t, err)
			assert.Empty(t, skipped)
			assert.Equal(t, data, out)
		})
	}
}

func TestRoundTrip_DropsUnknownRecords(t *testing.T) {
	data := encodedMovie(t, false)
	withUnknown := append(append([]byte(nil), data...), 0x19, 0x01, 0xEE)

	out, skipped, err := RoundTrip(KindMovie, withUnknown)
	require.NoError(t, err)
	assert.Len(t, skipped, 1)
	assert.Equal(t, data, out)
}

func TestInspector_MaxLength(t *testing.T) {
	size := len(encodedMovie(t, false))
	compressed := encodedMovie(t, true)

	_, err := Inspector{MaxLength: size - 1}.Inspect(KindMovie, compressed)
	assert.ErrorIs(t, err, coder.ErrBadSignature)

	r, err := Inspector{MaxLength: size}.Inspect(KindMovie, compressed)
	require.NoError(t, err)
	assert.True(t, r.Compressed)
	assert.Equal(t, len(compressed), r.Length)
}

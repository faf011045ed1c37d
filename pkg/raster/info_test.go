package raster

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ssargent/flashkit/pkg/coder"
)

func TestImageInfo_CopiesPayload(t *testing.T) {
	image := syntheticJPEG(frame(0xFFC0, 640, 480))
	alpha := []byte{1, 2, 3}
	info := NewImageInfo(image, alpha)

	image[0] = 0
	alpha[0] = 0

	assert.Equal(t, byte(0xFF), info.Image()[0])
	assert.Equal(t, []byte{1, 2, 3}, info.Alpha())
	assert.Equal(t, 640, info.Width())
}

func TestImageInfo_SetImageRecomputesGeometry(t *testing.T) {
	info := NewImageInfo(syntheticJPEG(frame(0xFFC0, 640, 480)), nil)
	assert.Equal(t, 640, info.Width())
	assert.Equal(t, 480, info.Height())
	assert.False(t, info.HasAlpha())

	info.SetImage(syntheticJPEG(frame(0xFFC0, 32, 16)))
	assert.Equal(t, 32, info.Width())
	assert.Equal(t, 16, info.Height())

	info.SetImage([]byte("not a jpeg"))
	assert.Equal(t, Geometry{}, info.Geometry())
}

func TestReadImage(t *testing.T) {
	data := syntheticJPEG(frame(0xFFC0, 640, 480))

	info, err := ReadImage(data, len(data))
	require.NoError(t, err)
	assert.Equal(t, 640, info.Width())
	assert.Equal(t, 480, info.Height())
	assert.Equal(t, data, info.Image())

	// The image is a copy of the input.
	data[0] = 0
	assert.Equal(t, byte(0xFF), info.Image()[0])
}

func TestReadImage_ContentLength(t *testing.T) {
	data := append(syntheticJPEG(frame(0xFFC0, 8, 8)), 0xAA, 0xBB)

	info, err := ReadImage(data, len(data)-2)
	require.NoError(t, err)
	assert.Len(t, info.Image(), len(data)-2)

	_, err = ReadImage(data, len(data)+1)
	assert.True(t, errors.Is(err, coder.ErrOutOfBounds))
}

func TestReadImage_UnsupportedFormat(t *testing.T) {
	_, err := ReadImage([]byte("GIF89a"), 6)
	require.Error(t, err)
	assert.True(t, errors.Is(err, coder.ErrUnsupportedFormat))

	var fe *coder.FormatError
	assert.True(t, errors.As(err, &fe))
}

func TestRead(t *testing.T) {
	data := syntheticJPEG(frame(0xFFC0, 10, 20))

	info, err := Read(bytes.NewReader(data), len(data))
	require.NoError(t, err)
	assert.Equal(t, Geometry{10, 20}, info.Geometry())

	_, err = Read(bytes.NewReader(data[:4]), len(data))
	assert.Error(t, err)
}

func TestFromImage_Opaque(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 24, 12))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}

	info, err := FromImage(img, 90)
	require.NoError(t, err)
	assert.Equal(t, Geometry{24, 12}, info.Geometry())
	assert.False(t, info.HasAlpha())
}

func TestFromImage_Transparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: uint8(x * 60)})
		}
	}

	info, err := FromImage(img, 0)
	require.NoError(t, err)
	assert.Equal(t, Geometry{4, 2}, info.Geometry())
	require.True(t, info.HasAlpha())

	plane, err := DecompressAlpha(info.Alpha())
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 60, 120, 180, 0, 60, 120, 180}, plane)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "picture.png")
	img := image.NewNRGBA(image.Rect(0, 0, 6, 3))
	require.NoError(t, imaging.Save(img, pngPath))

	info, err := Open(pngPath, 80)
	require.NoError(t, err)
	assert.Equal(t, Geometry{6, 3}, info.Geometry())
	assert.True(t, info.HasAlpha(), "a zero NRGBA image is fully transparent")

	jpegPath := filepath.Join(dir, "picture.jpg")
	data := syntheticJPEG(frame(0xFFC0, 7, 5))
	require.NoError(t, os.WriteFile(jpegPath, data, 0600))

	info, err = Open(jpegPath, 80)
	require.NoError(t, err)
	assert.Equal(t, data, info.Image(), "JPEG files are embedded unchanged")

	_, err = Open(filepath.Join(dir, "missing.png"), 80)
	assert.Error(t, err)
}

func TestCompressAlpha_RoundTrip(t *testing.T) {
	plane := bytes.Repeat([]byte{0x00, 0x80, 0xFF}, 100)
	alpha, err := CompressAlpha(plane)
	require.NoError(t, err)
	assert.Less(t, len(alpha), len(plane))

	got, err := DecompressAlpha(alpha)
	require.NoError(t, err)
	assert.Equal(t, plane, got)

	_, err = DecompressAlpha([]byte{1, 2, 3})
	assert.Error(t, err)
}

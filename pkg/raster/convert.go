package raster

import (
	"bytes"
	"image"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/disintegration/imaging"
	"github.com/klauspost/compress/zlib"
)

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 85

// FromImage encodes img as a JPEG. When img has transparent pixels the
// alpha channel is stored separately, one byte per pixel, zlib compressed.
func FromImage(img image.Image, quality int) (*ImageInfo, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, errors.Wrap(err, "failed to encode JPEG")
	}

	info := NewImageInfo(buf.Bytes(), nil)
	if isOpaque(img) {
		return info, nil
	}

	alpha, err := CompressAlpha(alphaPlane(img))
	if err != nil {
		return nil, err
	}
	info.SetAlpha(alpha)
	return info, nil
}

// Open loads an image file. JPEG files are embedded unchanged, anything
// else imaging can decode is converted with FromImage.
func Open(path string, quality int) (*ImageInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	if _, ok := ScanJPEG(data); ok {
		return ReadImage(data, len(data))
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}
	return FromImage(img, quality)
}

// CompressAlpha zlib compresses an alpha plane.
func CompressAlpha(plane []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(plane); err != nil {
		return nil, errors.Wrap(err, "failed to compress alpha")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to compress alpha")
	}
	return buf.Bytes(), nil
}

// DecompressAlpha inflates an alpha channel produced by CompressAlpha.
func DecompressAlpha(alpha []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(alpha))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read alpha")
	}
	defer r.Close()

	plane, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to inflate alpha")
	}
	return plane, nil
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xFFFF {
				return false
			}
		}
	}
	return true
}

func alphaPlane(img image.Image) []byte {
	b := img.Bounds()
	plane := make([]byte, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			plane = append(plane, byte(a>>8))
		}
	}
	return plane
}

// Package raster reads embedded JPEG images and prepares them for the
// image records of a movie.
package raster

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/ssargent/flashkit/pkg/coder"
)

// ImageInfo holds a JPEG image, an optional zlib compressed alpha channel
// and the image geometry. Width and height are derived from the image
// bytes every time they are assigned.
type ImageInfo struct {
	geometry Geometry
	image    []byte
	alpha    []byte
}

// NewImageInfo creates an ImageInfo holding copies of image and alpha and
// scans the image for its geometry.
func NewImageInfo(image, alpha []byte) *ImageInfo {
	info := &ImageInfo{}
	info.SetImage(image)
	info.SetAlpha(alpha)
	return info
}

// Width returns the image width in pixels, or zero when unknown.
func (i *ImageInfo) Width() int {
	return i.geometry.Width
}

// Height returns the image height in pixels, or zero when unknown.
func (i *ImageInfo) Height() int {
	return i.geometry.Height
}

func (i *ImageInfo) Geometry() Geometry {
	return i.geometry
}

func (i *ImageInfo) Image() []byte {
	return i.image
}

// SetImage replaces the image with a copy of image and recomputes the
// geometry.
func (i *ImageInfo) SetImage(image []byte) {
	i.image = bytes.Clone(image)
	i.geometry, _ = ScanJPEG(image)
}

func (i *ImageInfo) Alpha() []byte {
	return i.alpha
}

func (i *ImageInfo) SetAlpha(alpha []byte) {
	i.alpha = bytes.Clone(alpha)
}

// HasAlpha reports whether an alpha channel is present.
func (i *ImageInfo) HasAlpha() bool {
	return len(i.alpha) > 0
}

func (i *ImageInfo) String() string {
	return fmt.Sprintf("ImageInfo{width=%d height=%d image=%d alpha=%d}",
		i.geometry.Width, i.geometry.Height, len(i.image), len(i.alpha))
}

// ReadImage wraps the first contentLength bytes of data as a JPEG image.
// It fails with ErrUnsupportedFormat when the bytes are not a JPEG stream.
func ReadImage(data []byte, contentLength int) (*ImageInfo, error) {
	if contentLength < 0 || contentLength > len(data) {
		return nil, errors.Wrapf(coder.ErrOutOfBounds, "content length %d of %d bytes", contentLength, len(data))
	}

	image := make([]byte, contentLength)
	copy(image, data)

	geometry, ok := ScanJPEG(image)
	if !ok {
		return nil, errors.Wrap(coder.ErrUnsupportedFormat, "missing JPEG start of image")
	}
	return &ImageInfo{geometry: geometry, image: image}, nil
}

// Read reads contentLength bytes from r and wraps them with ReadImage.
func Read(r io.Reader, contentLength int) (*ImageInfo, error) {
	if contentLength < 0 {
		return nil, errors.Wrapf(coder.ErrOutOfBounds, "content length %d", contentLength)
	}

	data := make([]byte, contentLength)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.Wrap(err, "failed to read image")
	}
	return ReadImage(data, contentLength)
}

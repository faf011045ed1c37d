package movie

import (
	"bytes"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/ssargent/flashkit/pkg/coder"
	"github.com/ssargent/flashkit/pkg/raster"
)

const (
	minIdentifier = 1
	maxIdentifier = 65535

	identifierSize = 2
	offsetSize     = 4
)

// checkIdentifier guards constructors and setters. Decoding keeps whatever
// identifier a file carries, 0 included, so it encodes back unchanged.
func checkIdentifier(id int) error {
	if id < minIdentifier || id > maxIdentifier {
		return errors.Wrapf(coder.ErrOutOfRange, "identifier %d not in %d..%d", id, minIdentifier, maxIdentifier)
	}
	return nil
}

// DefineJPEGImage2 defines a JPEG image whose encoding tables are embedded
// in the image data.
type DefineJPEGImage2 struct {
	identifier int
	geometry   raster.Geometry
	image      []byte
}

// NewDefineJPEGImage2 creates an image record. The identifier must be in
// 1..65535.
func NewDefineJPEGImage2(id int, image []byte) (*DefineJPEGImage2, error) {
	t := &DefineJPEGImage2{}
	if err := t.SetIdentifier(id); err != nil {
		return nil, err
	}
	t.SetImage(image)
	return t, nil
}

func (t *DefineJPEGImage2) Identifier() int {
	return t.identifier
}

func (t *DefineJPEGImage2) SetIdentifier(id int) error {
	if err := checkIdentifier(id); err != nil {
		return err
	}
	t.identifier = id
	return nil
}

// Width returns the image width in pixels.
func (t *DefineJPEGImage2) Width() int {
	return t.geometry.Width
}

// Height returns the image height in pixels.
func (t *DefineJPEGImage2) Height() int {
	return t.geometry.Height
}

func (t *DefineJPEGImage2) Image() []byte {
	return t.image
}

// SetImage replaces the image with a copy of image and recomputes its
// geometry.
func (t *DefineJPEGImage2) SetImage(image []byte) {
	t.image = bytes.Clone(image)
	t.geometry, _ = raster.ScanJPEG(image)
}

func (t *DefineJPEGImage2) Type() int {
	return TypeDefineJPEGImage2
}

func (t *DefineJPEGImage2) Size(ctx *coder.Context) int {
	return identifierSize + len(t.image)
}

func (t *DefineJPEGImage2) Encode(c *coder.Cursor, ctx *coder.Context) error {
	if err := c.WriteWord(t.identifier, identifierSize); err != nil {
		return err
	}
	return c.WriteBytes(t.image)
}

func (t *DefineJPEGImage2) Copy() Tag {
	out := *t
	out.image = append([]byte(nil), t.image...)
	return &out
}

func (t *DefineJPEGImage2) String() string {
	return fmt.Sprintf("DefineJPEGImage2{identifier=%d image=%d}", t.identifier, len(t.image))
}

func decodeDefineJPEGImage2(c *coder.Cursor, ctx *coder.Context, length int) (*DefineJPEGImage2, error) {
	id, err := c.ReadWord(identifierSize, false)
	if err != nil {
		return nil, err
	}
	image, err := c.ReadBytes(length - identifierSize)
	if err != nil {
		return nil, err
	}

	t := &DefineJPEGImage2{identifier: id, image: image}
	t.geometry, _ = raster.ScanJPEG(image)
	return t, nil
}

// DefineJPEGImage3 defines a transparent JPEG image: the JPEG data is
// followed by a separate zlib compressed alpha channel so the transparency
// can change without re-encoding the image.
//
// On the wire the image and alpha share one body:
//
//	[identifier(2)][offset(4)][image(offset)][alpha(length-offset-6)]
type DefineJPEGImage3 struct {
	identifier int
	geometry   raster.Geometry
	image      []byte
	alpha      []byte
}

// NewDefineJPEGImage3 creates a transparent image record. The identifier
// must be in 1..65535.
func NewDefineJPEGImage3(id int, image, alpha []byte) (*DefineJPEGImage3, error) {
	t := &DefineJPEGImage3{}
	if err := t.SetIdentifier(id); err != nil {
		return nil, err
	}
	t.SetImage(image)
	t.SetAlpha(alpha)
	return t, nil
}

func (t *DefineJPEGImage3) Identifier() int {
	return t.identifier
}

func (t *DefineJPEGImage3) SetIdentifier(id int) error {
	if err := checkIdentifier(id); err != nil {
		return err
	}
	t.identifier = id
	return nil
}

// Width returns the image width in pixels.
func (t *DefineJPEGImage3) Width() int {
	return t.geometry.Width
}

// Height returns the image height in pixels.
func (t *DefineJPEGImage3) Height() int {
	return t.geometry.Height
}

func (t *DefineJPEGImage3) Image() []byte {
	return t.image
}

// SetImage replaces the image with a copy of image and recomputes its
// geometry. The alpha channel is not touched.
func (t *DefineJPEGImage3) SetImage(image []byte) {
	t.image = bytes.Clone(image)
	t.geometry, _ = raster.ScanJPEG(image)
}

func (t *DefineJPEGImage3) Alpha() []byte {
	return t.alpha
}

// SetAlpha replaces the zlib compressed alpha channel with a copy of alpha.
func (t *DefineJPEGImage3) SetAlpha(alpha []byte) {
	t.alpha = bytes.Clone(alpha)
}

func (t *DefineJPEGImage3) Type() int {
	return TypeDefineJPEGImage3
}

func (t *DefineJPEGImage3) Size(ctx *coder.Context) int {
	return identifierSize + offsetSize + len(t.image) + len(t.alpha)
}

func (t *DefineJPEGImage3) Encode(c *coder.Cursor, ctx *coder.Context) error {
	if err := c.WriteWord(t.identifier, identifierSize); err != nil {
		return err
	}
	if err := c.WriteWord(len(t.image), offsetSize); err != nil {
		return err
	}
	if err := c.WriteBytes(t.image); err != nil {
		return err
	}
	return c.WriteBytes(t.alpha)
}

func (t *DefineJPEGImage3) Copy() Tag {
	out := *t
	out.image = append([]byte(nil), t.image...)
	out.alpha = append([]byte(nil), t.alpha...)
	return &out
}

func (t *DefineJPEGImage3) String() string {
	return fmt.Sprintf("DefineJPEGImage3{identifier=%d image=%d alpha=%d}", t.identifier, len(t.image), len(t.alpha))
}

func decodeDefineJPEGImage3(c *coder.Cursor, ctx *coder.Context, length int) (*DefineJPEGImage3, error) {
	id, err := c.ReadWord(identifierSize, false)
	if err != nil {
		return nil, err
	}
	offset, err := c.ReadWord(offsetSize, false)
	if err != nil {
		return nil, err
	}

	alphaLength := length - offset - identifierSize - offsetSize
	if offset < 0 || alphaLength < 0 {
		return nil, errors.Wrapf(coder.ErrOutOfBounds, "image offset %d exceeds body of %d bytes", offset, length)
	}

	image, err := c.ReadBytes(offset)
	if err != nil {
		return nil, err
	}
	alpha, err := c.ReadBytes(alphaLength)
	if err != nil {
		return nil, err
	}

	t := &DefineJPEGImage3{identifier: id, image: image, alpha: alpha}
	t.geometry, _ = raster.ScanJPEG(image)
	return t, nil
}

// DefineImage creates the image record for info: DefineJPEGImage3 when it
// carries an alpha channel, DefineJPEGImage2 otherwise.
func DefineImage(id int, info *raster.ImageInfo) (Tag, error) {
	if info.HasAlpha() {
		return NewDefineJPEGImage3(id, info.Image(), info.Alpha())
	}
	return NewDefineJPEGImage2(id, info.Image())
}

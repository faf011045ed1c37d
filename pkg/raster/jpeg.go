package raster

import (
	"github.com/ssargent/flashkit/pkg/coder"
)

// JPEG markers
const (
	markerPrefix = 0xFF00
	markerSOI    = 0xFFD8
	markerSOF0   = 0xFFC0
	markerSOF15  = 0xFFCF
	markerDHT    = 0xFFC4
	markerJPG    = 0xFFC8
)

// frameHeaderSkip is the segment length and sample precision that precede
// the height in a start-of-frame segment.
const frameHeaderSkip = 24

// Geometry is the size of an image in pixels.
type Geometry struct {
	Width  int
	Height int
}

// Known reports whether both dimensions were found.
func (g Geometry) Known() bool {
	return g.Width > 0 && g.Height > 0
}

func isFrameMarker(marker int) bool {
	return marker >= markerSOF0 && marker <= markerSOF15 &&
		marker != markerDHT && marker != markerJPG
}

// ScanJPEG walks the marker segments of a JPEG stream looking for the
// start-of-frame segment. ok is false when data does not begin with the
// start-of-image marker. A recognised stream whose frame header cannot be
// found yields a zero Geometry.
func ScanJPEG(data []byte) (g Geometry, ok bool) {
	c := coder.NewCursor(data)

	soi, err := c.ReadWord(2, false)
	if err != nil || soi != markerSOI {
		return Geometry{}, false
	}

	for {
		marker, err := c.ReadWord(2, false)
		if err != nil || marker&markerPrefix != markerPrefix {
			break
		}

		if isFrameMarker(marker) {
			if err := c.Advance(frameHeaderSkip); err != nil {
				break
			}
			height, err := c.ReadWord(2, false)
			if err != nil {
				break
			}
			width, err := c.ReadWord(2, false)
			if err != nil {
				break
			}
			g = Geometry{Width: width, Height: height}
			break
		}

		length, err := c.ReadWord(2, false)
		if err != nil || length < 2 {
			break
		}
		if err := c.Advance((length - 2) << 3); err != nil {
			break
		}
	}
	return g, true
}

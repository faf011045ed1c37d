package movie

import (
	"fmt"

	"github.com/ssargent/flashkit/pkg/coder"
)

// Tag is one record of a movie.
type Tag interface {
	coder.Record
	Copy() Tag
}

// Type codes
const (
	TypeEnd                = 0
	TypeShowFrame          = 1
	TypeSetBackgroundColor = 9
	TypeDefineJPEGImage2   = 21
	TypeDefineJPEGImage3   = 35
	TypeFrameLabel         = 43
)

var typeNames = map[int]string{
	TypeEnd:                "End",
	TypeShowFrame:          "ShowFrame",
	TypeSetBackgroundColor: "SetBackgroundColor",
	TypeDefineJPEGImage2:   "DefineJPEGImage2",
	TypeDefineJPEGImage3:   "DefineJPEGImage3",
	TypeFrameLabel:         "FrameLabel",
}

// TypeName returns the name of the record kind with the given code.
func TypeName(code int) string {
	if name, ok := typeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", code)
}

// Known reports whether code belongs to a record kind this package decodes.
func Known(code int) bool {
	_, ok := typeNames[code]
	return ok
}

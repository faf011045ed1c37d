package video

import (
	"fmt"

	"github.com/ssargent/flashkit/pkg/coder"
)

// MetaData carries script data, typically an AMF encoded onMetaData call.
// The body is kept opaque.
type MetaData struct {
	timed

	data []byte
}

func NewMetaData(data []byte) *MetaData {
	return &MetaData{data: data}
}

func (t *MetaData) Data() []byte {
	return t.data
}

func (t *MetaData) SetData(data []byte) {
	t.data = data
}

func (t *MetaData) Type() int {
	return TypeMetaData
}

func (t *MetaData) Size(ctx *coder.Context) int {
	return len(t.data)
}

func (t *MetaData) Encode(c *coder.Cursor, ctx *coder.Context) error {
	return c.WriteBytes(t.data)
}

func (t *MetaData) Copy() Tag {
	out := *t
	out.data = append([]byte(nil), t.data...)
	return &out
}

func (t *MetaData) String() string {
	return fmt.Sprintf("MetaData{timestamp=%d data=%d}", t.timestamp, len(t.data))
}

func decodeMetaData(c *coder.Cursor, h tagHeader) (*MetaData, error) {
	data, err := c.ReadBytes(h.Length)
	if err != nil {
		return nil, err
	}
	return &MetaData{timed: timed{timestamp: h.Timestamp}, data: data}, nil
}

package coder

// Record is the encode side of the contract every record variant follows.
// Size must be free of side effects so it can be called during the sizing
// pass; Encode writes exactly Size bytes of body.
type Record interface {
	Type() int
	Size(ctx *Context) int
	Encode(c *Cursor, ctx *Context) error
}

// Skipped describes a record whose type code was not recognised and whose
// body was stepped over during decoding.
type Skipped struct {
	Type   int `json:"type"`
	Offset int `json:"offset"` // byte offset of the record header
	Length int `json:"length"`
}

// WriteRecord writes the header and body of r and verifies that the body
// occupied exactly the size that r reported.
func WriteRecord(c *Cursor, ctx *Context, name string, r Record) error {
	length := r.Size(ctx)
	start := c.Position()

	if err := WriteHeader(c, RecordHeader{Type: r.Type(), Length: length}); err != nil {
		return err
	}
	end := c.Position() + length<<3

	if err := r.Encode(c, ctx); err != nil {
		return err
	}
	return Check(c, name, start, end, length)
}

package coder

// Var names a value carried between records and nested structures while a
// container is encoded or decoded.
type Var int

const (
	// Transparent is non-zero while colours carry an alpha channel.
	Transparent Var = iota + 1
)

// Context carries cross-record state, such as the container format
// version, through the record codecs.
type Context struct {
	Version int
	vars    map[Var]int
}

// NewContext creates a context for the given format version.
func NewContext(version int) *Context {
	return &Context{Version: version, vars: make(map[Var]int)}
}

// Get returns the value of v, or zero when unset.
func (c *Context) Get(v Var) int {
	if c == nil {
		return 0
	}
	return c.vars[v]
}

// Set assigns v.
func (c *Context) Set(v Var, value int) {
	if c.vars == nil {
		c.vars = make(map[Var]int)
	}
	c.vars[v] = value
}

// Delete removes v.
func (c *Context) Delete(v Var) {
	delete(c.vars, v)
}

// With returns a copy of the context with v set to value.
func (c *Context) With(v Var, value int) *Context {
	out := &Context{vars: make(map[Var]int)}
	if c != nil {
		out.Version = c.Version
		for k, n := range c.vars {
			out.vars[k] = n
		}
	}
	out.vars[v] = value
	return out
}

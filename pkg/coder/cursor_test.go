package coder

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_ReadWord(t *testing.T) {
	testCases := []struct {
		name   string
		data   []byte
		size   int
		signed bool
		want   int
	}{
		{"one byte unsigned", []byte{0xFF}, 1, false, 255},
		{"one byte signed", []byte{0xFF}, 1, true, -1},
		{"two bytes big-endian", []byte{0x12, 0x34}, 2, false, 0x1234},
		{"two bytes signed", []byte{0x80, 0x00}, 2, true, -32768},
		{"three bytes", []byte{0x01, 0x02, 0x03}, 3, false, 0x010203},
		{"three bytes signed", []byte{0xFF, 0xFF, 0xFE}, 3, true, -2},
		{"four bytes", []byte{0xDE, 0xAD, 0xBE, 0xEF}, 4, false, 0xDEADBEEF},
		{"four bytes signed", []byte{0xFF, 0xFF, 0xFF, 0xFF}, 4, true, -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCursor(tc.data)
			got, err := c.ReadWord(tc.size, tc.signed)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.size*8, c.Position())
			assert.Equal(t, 0, c.Remaining())
		})
	}
}

func TestCursor_WriteWord(t *testing.T) {
	c := NewSizedCursor(10)

	require.NoError(t, c.WriteWord(0xAB, 1))
	require.NoError(t, c.WriteWord(0x1234, 2))
	require.NoError(t, c.WriteWord(-2, 3))
	require.NoError(t, c.WriteWord(0x01020304, 4))

	assert.Equal(t, []byte{0xAB, 0x12, 0x34, 0xFF, 0xFF, 0xFE, 0x01, 0x02, 0x03, 0x04}, c.Bytes())
	assert.Equal(t, 80, c.Position())
}

func TestCursor_WordSizeRange(t *testing.T) {
	c := NewSizedCursor(8)

	_, err := c.ReadWord(0, false)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	err = c.WriteWord(1, 5)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestCursor_WriteWordValueRange(t *testing.T) {
	testCases := []struct {
		name  string
		value int
		size  int
		ok    bool
	}{
		{"one byte max", 0xFF, 1, true},
		{"one byte min signed", -128, 1, true},
		{"one byte overflow", 0x100, 1, false},
		{"one byte underflow", -129, 1, false},
		{"two bytes max", 0xFFFF, 2, true},
		{"two bytes overflow", 70000, 2, false},
		{"three bytes overflow", 1 << 24, 3, false},
		{"four bytes max", 0xFFFFFFFF, 4, true},
		{"four bytes min signed", -(1 << 31), 4, true},
		{"four bytes overflow", 1 << 32, 4, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewSizedCursor(4)
			err := c.WriteWord(tc.value, tc.size)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.size*8, c.Position())
				return
			}
			assert.True(t, errors.Is(err, ErrOutOfRange))
			assert.Equal(t, 0, c.Position())
			assert.Equal(t, make([]byte, 4), c.Bytes())
		})
	}
}

func TestCursor_OutOfBounds(t *testing.T) {
	t.Run("read past end", func(t *testing.T) {
		c := NewCursor([]byte{0x01})
		_, err := c.ReadWord(2, false)
		assert.True(t, errors.Is(err, ErrOutOfBounds))
		assert.Equal(t, 0, c.Position(), "failed read must not move the cursor")
	})

	t.Run("write past end", func(t *testing.T) {
		c := NewSizedCursor(3)
		err := c.WriteBytes([]byte{1, 2, 3, 4})
		assert.True(t, errors.Is(err, ErrOutOfBounds))
	})

	t.Run("read bytes past end", func(t *testing.T) {
		c := NewCursor([]byte{1, 2, 3})
		_, err := c.ReadBytes(4)
		assert.True(t, errors.Is(err, ErrOutOfBounds))
	})

	t.Run("bits past end", func(t *testing.T) {
		c := NewCursor([]byte{0xFF})
		_, err := c.ReadBits(9, false)
		assert.True(t, errors.Is(err, ErrOutOfBounds))
	})

	t.Run("position past end", func(t *testing.T) {
		c := NewCursor([]byte{1, 2})
		assert.True(t, errors.Is(c.SetPosition(17), ErrOutOfBounds))
		assert.True(t, errors.Is(c.Advance(-1), ErrOutOfBounds))
		assert.NoError(t, c.SetPosition(16))
		assert.Equal(t, 0, c.Remaining())
	})
}

func TestCursor_Bytes(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	c := NewCursor(data)

	got, err := c.ReadBytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
	assert.Equal(t, 2, c.Remaining())

	// The result is a copy.
	got[0] = 99
	assert.Equal(t, byte(1), data[0])

	w := NewSizedCursor(4)
	require.NoError(t, w.WriteBytes([]byte{9, 8}))
	require.NoError(t, w.WriteBytes(nil))
	require.NoError(t, w.WriteBytes([]byte{7, 6}))
	assert.Equal(t, []byte{9, 8, 7, 6}, w.Bytes())
}

func TestCursor_Bits(t *testing.T) {
	w := NewSizedCursor(3)

	require.NoError(t, w.WriteBits(5, 3))  // 101
	require.NoError(t, w.WriteBits(-3, 5)) // 11101
	require.NoError(t, w.WriteBits(1, 1))
	assert.False(t, w.Aligned())
	w.Align()
	assert.Equal(t, 16, w.Position())
	require.NoError(t, w.WriteWord(0x7F, 1))

	assert.Equal(t, []byte{0xBD, 0x80, 0x7F}, w.Bytes())

	r := NewCursor(w.Bytes())
	v, err := r.ReadBits(3, false)
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	v, err = r.ReadBits(5, true)
	require.NoError(t, err)
	assert.Equal(t, -3, v)

	v, err = r.ReadBits(1, false)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = r.ReadWord(1, false)
	assert.True(t, errors.Is(err, ErrUnaligned))

	r.Align()
	v, err = r.ReadWord(1, false)
	require.NoError(t, err)
	assert.Equal(t, 0x7F, v)
}

func TestCursor_ZeroBits(t *testing.T) {
	c := NewCursor(nil)
	v, err := c.ReadBits(0, true)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
	assert.NoError(t, c.WriteBits(0, 0))
}

func TestCursor_SavedPosition(t *testing.T) {
	c := NewCursor([]byte{0x00, 0x10, 0x20, 0x30})

	saved := c.Position()
	_, err := c.ReadWord(2, false)
	require.NoError(t, err)

	require.NoError(t, c.SetPosition(saved))
	require.NoError(t, c.Advance(24))
	v, err := c.ReadWord(1, false)
	require.NoError(t, err)
	assert.Equal(t, 0x30, v)
}

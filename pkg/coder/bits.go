package coder

import "math/bits"

// SignedBits returns the number of bits needed to hold v as a two's
// complement field.
func SignedBits(v int) int {
	if v < 0 {
		v = ^v
	}
	return bits.Len(uint(v)) + 1
}

// MaxSignedBits returns the field width needed to hold every value, or
// zero when all values are zero.
func MaxSignedBits(values ...int) int {
	n := 0
	for _, v := range values {
		if v == 0 {
			continue
		}
		if s := SignedBits(v); s > n {
			n = s
		}
	}
	return n
}

// BitsToBytes rounds a bit count up to whole bytes.
func BitsToBytes(n int) int {
	return (n + 7) >> 3
}

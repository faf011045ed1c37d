//go:build fuzz
// +build fuzz

package movie

import (
	"bytes"
	"testing"

	"github.com/ssargent/flashkit/pkg/coder"
)

// FuzzDecode checks that arbitrary input either decodes into a movie that
// re-encodes cleanly or fails with one of the codec error classes
func FuzzDecode(f *testing.F) {
	seed, err := New().Add(&ShowFrame{}, &End{}).Encode()
	if err != nil {
		f.Fatal(err)
	}
	f.Add(seed)
	f.Add(append(append([]byte(nil), seed...), 0x19, 0x01, 0xEE))
	f.Add([]byte("FWS"))
	f.Add([]byte("CWS\x0a\x00\x00\x00\x00"))

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 1<<16 {
			t.Skip("Input too large for fuzz test")
		}

		m, err := Decode(data)
		if err != nil {
			if !coder.IsFatal(err) {
				t.Fatalf("unclassified error: %v", err)
			}
			return
		}

		encoded, err := m.Encode()
		if err != nil {
			t.Fatalf("Encode failed for decoded movie: %v", err)
		}
		again, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Decode failed for re-encoded movie: %v", err)
		}
		reencoded, err := again.Encode()
		if err != nil {
			t.Fatalf("second Encode failed: %v", err)
		}
		if !m.Compressed && !bytes.Equal(encoded, reencoded) {
			t.Errorf("encoding is not stable")
		}
	})
}

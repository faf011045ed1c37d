//go:build fuzz
// +build fuzz

package video

import (
	"bytes"
	"testing"

	"github.com/ssargent/flashkit/pkg/coder"
)

func FuzzDecode(f *testing.F) {
	frame, err := NewVideoData(KeyFrame, CodecVP6, []byte{0x01, 0x02})
	if err != nil {
		f.Fatal(err)
	}
	seed, err := New().Add(frame, NewMetaData([]byte{0x02})).Encode()
	if err != nil {
		f.Fatal(err)
	}
	f.Add(seed)
	f.Add(seed[:fileHeaderSize])
	f.Add([]byte("FLV\x01\x05\x00\x00\x00\x09"))

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 1<<16 {
			t.Skip("Input too large for fuzz test")
		}

		v, err := Decode(data)
		if err != nil {
			if !coder.IsFatal(err) {
				t.Fatalf("unclassified error: %v", err)
			}
			return
		}

		encoded, err := v.Encode()
		if err != nil {
			t.Fatalf("Encode failed for decoded video: %v", err)
		}
		again, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Decode failed for re-encoded video: %v", err)
		}
		reencoded, err := again.Encode()
		if err != nil {
			t.Fatalf("second Encode failed: %v", err)
		}
		if !bytes.Equal(encoded, reencoded) {
			t.Errorf("encoding is not stable")
		}
	})
}

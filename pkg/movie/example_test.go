package movie_test

import (
	"fmt"
	"log"

	"github.com/ssargent/flashkit/pkg/coder"
	"github.com/ssargent/flashkit/pkg/datatype"
	"github.com/ssargent/flashkit/pkg/movie"
)

// ExampleMovie_Encode builds a one-frame movie and decodes it again
func ExampleMovie_Encode() {
	m := movie.New()
	m.FrameCount = 1
	m.Add(
		movie.NewSetBackgroundColor(datatype.RGB(0x33, 0x66, 0x99)),
		&movie.ShowFrame{},
		&movie.End{},
	)

	data, err := m.Encode()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Encoded %d bytes\n", len(data))

	decoded, err := movie.Decode(data)
	if err != nil {
		log.Fatal(err)
	}
	for _, t := range decoded.Tags() {
		fmt.Println(t)
	}

	// Output:
	// Encoded 30 bytes
	// SetBackgroundColor{color=#336699ff}
	// ShowFrame
	// End
}

// ExampleDecoder_Decode reports records the decoder does not recognise
func ExampleDecoder_Decode() {
	data, err := movie.New().Encode()
	if err != nil {
		log.Fatal(err)
	}
	// type 100 with a 2 byte body, then End
	data = append(data, 0x19, 0x02, 0xAA, 0xBB, 0x00, 0x00)

	d := &movie.Decoder{OnSkip: func(s coder.Skipped) {
		fmt.Printf("skipped type %d at byte %d, %d bytes\n", s.Type, s.Offset, s.Length)
	}}
	m, err := d.Decode(data)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(len(m.Tags()), "tag")

	// Output:
	// skipped type 100 at byte 21, 2 bytes
	// 1 tag
}

// Package movie encodes and decodes the tag-structured movie container.
//
// # File Layout
//
//	[signature(3)][version(1)][file length(4)]
//	[frame size: Bounds][frame rate(2), 8.8 fixed point][frame count(2)]
//	[record] [record] ...
//
// The signature is FWS for plain files and CWS when everything after the
// first 8 bytes is zlib compressed. The file length is always the size of
// the uncompressed movie. Multi-byte fields are big-endian.
//
// Every record uses the header from package coder. Decode dispatches on
// the type code over a closed set of tags; records with any other code are
// stepped over and reported through Decoder.OnSkip, so newer files can
// still be read.
//
// # Encoding
//
// Encode runs two passes: every tag reports its body size (which picks the
// short or long header), the buffer is allocated at exactly the total, and
// the tags are then written in order. A tag writing a different number of
// bytes than it reported fails with a *coder.CoderError.
package movie

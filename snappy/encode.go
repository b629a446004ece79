// Package snappy writes lz77 token streams in the Snappy block format, and
// reads them back with github.com/golang/snappy. Only the block format is
// supported, not the framing format with its chunk checksums.
package snappy

import (
	"slices"

	"github.com/andybalholm/lz77"
	"github.com/golang/snappy"
)

const (
	// WindowSize is the largest offset a two-byte copy can hold.
	WindowSize = 65535

	// MinMatch is the shortest copy the tagCopy1 form can hold.
	MinMatch = 4
)

// Codec implements lz77.Codec in the Snappy block format.
type Codec struct {
	// MaxChain limits how many earlier positions are checked for each
	// match. Zero means no limit.
	MaxChain int
}

var _ lz77.Codec = Codec{}

func (c Codec) config() lz77.Config {
	return lz77.Config{
		WindowSize: WindowSize,
		MinMatch:   MinMatch,
		MaxChain:   c.MaxChain,
	}
}

// Compress appends the compressed form of src to dst.
func (c Codec) Compress(dst, src []byte) []byte {
	if uint64(len(src)) > 0xffffffff {
		panic("snappy: block too large")
	}
	tokens := lz77.Encode(nil, src, c.config())
	return Encode(dst, src, tokens)
}

// maxExpansion bounds the output size of a block: no tag produces more than
// 64 bytes from 3 bytes of input.
const maxExpansion = 22

// Decompress appends the data encoded in src to dst. The size in the block
// header is checked against len(src) before any space is allocated.
func (c Codec) Decompress(dst, src []byte) ([]byte, error) {
	size, err := snappy.DecodedLen(src)
	if err != nil {
		return nil, &lz77.CorruptError{Pos: 0, Err: err}
	}
	if size > maxExpansion*len(src) {
		return nil, &lz77.CorruptError{Pos: 0, Err: lz77.ErrInvalidLength}
	}

	base := len(dst)
	dst = slices.Grow(dst, size)[:base+size]
	if _, err := snappy.Decode(dst[base:], src); err != nil {
		return nil, &lz77.CorruptError{Pos: -1, Err: err}
	}
	return dst, nil
}

// Encode appends a Snappy block holding src to dst, using the matches in
// tokens, which must describe src and respect WindowSize and MinMatch.
func Encode(dst []byte, src []byte, tokens []lz77.Token) []byte {
	dst = appendUvarint(dst, uint64(len(src)))

	pos := 0
	litStart := 0
	for _, t := range tokens {
		if t.Kind == lz77.KindLiteral {
			pos++
			continue
		}
		if litStart < pos {
			dst = appendLiteral(dst, src[litStart:pos])
		}
		dst = appendCopy(dst, t.Length, t.Offset)
		pos += t.Length
		litStart = pos
	}
	if litStart < len(src) {
		dst = appendLiteral(dst, src[litStart:])
	}
	return dst
}

const (
	tagLiteral = 0x00
	tagCopy1   = 0x01
	tagCopy2   = 0x02
)

func appendLiteral(dst, lit []byte) []byte {
	n := len(lit) - 1
	switch {
	case n < 60:
		dst = append(dst, byte(n)<<2|tagLiteral)
	case n < 1<<8:
		dst = append(dst, 60<<2|tagLiteral, byte(n))
	case n < 1<<16:
		dst = append(dst, 61<<2|tagLiteral, byte(n), byte(n>>8))
	case n < 1<<24:
		dst = append(dst, 62<<2|tagLiteral, byte(n), byte(n>>8), byte(n>>16))
	default:
		dst = append(dst, 63<<2|tagLiteral, byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
	}
	return append(dst, lit...)
}

func appendCopy(dst []byte, length, offset int) []byte {
	// The maximum length for a single tagCopy1 or tagCopy2 op is 64 bytes. The
	// threshold for this loop is a little higher (at 68 = 64 + 4), and the
	// length emitted down below is is a little lower (at 60 = 64 - 4), because
	// it's shorter to encode a length 67 copy as a length 60 tagCopy2 followed
	// by a length 7 tagCopy1 (which encodes as 3+2 bytes) than to encode it as
	// a length 64 tagCopy2 followed by a length 3 tagCopy2 (which encodes as
	// 3+3 bytes). The magic 4 in the 64±4 is because the minimum length for a
	// tagCopy1 op is 4 bytes, which is why a length 3 copy has to be an
	// encodes-as-3-bytes tagCopy2 instead of an encodes-as-2-bytes tagCopy1.
	for length >= 68 {
		// Emit a length 64 copy, encoded as 3 bytes.
		dst = append(dst,
			63<<2|tagCopy2,
			byte(offset),
			byte(offset>>8),
		)
		length -= 64
	}
	if length > 64 {
		// Emit a length 60 copy, encoded as 3 bytes.
		dst = append(dst,
			59<<2|tagCopy2,
			byte(offset),
			byte(offset>>8),
		)
		length -= 60
	}
	if length >= 12 || offset >= 2048 {
		// Emit the remaining copy, encoded as 3 bytes.
		return append(dst,
			byte(length-1)<<2|tagCopy2,
			byte(offset),
			byte(offset>>8),
		)
	}
	// Emit the remaining copy, encoded as 2 bytes.
	return append(dst,
		byte(offset>>8)<<5|byte(length-4)<<2|tagCopy1,
		byte(offset),
	)
}

// appendUvarint appends x to dst in varint format.
func appendUvarint(dst []byte, x uint64) []byte {
	for x >= 0x80 {
		dst = append(dst, byte(x)|0x80)
		x >>= 7
	}
	return append(dst, byte(x))
}

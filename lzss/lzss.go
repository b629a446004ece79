// Package lzss implements an LZSS layout for lz77 token streams.
//
// Items are grouped eight at a time behind a flag byte. Bit i of the flag
// byte (least significant first) describes item i: 1 for a literal byte,
// 0 for a two-byte reference. A reference holds offset-1 in 12 bits and
// length-3 in 4 bits:
//
//	byte 0: low 8 bits of offset-1
//	byte 1: high 4 bits of offset-1 << 4 | length-3
//
// So offsets are 1..4096 and lengths 3..18. Unlike the classic ring-buffer
// LZSS, references may only point at data already decoded from the same
// stream.
package lzss

import "github.com/andybalholm/lz77"

const (
	WindowSize = 4096 // Largest offset
	MinMatch   = 3    // Shortest reference
	MaxMatch   = 18   // Longest reference
)

// Codec implements lz77.Codec in the LZSS layout.
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
		MaxMatch:   MaxMatch,
		MaxChain:   c.MaxChain,
	}
}

// Compress appends the compressed form of src to dst.
func (c Codec) Compress(dst, src []byte) []byte {
	tokens := lz77.Encode(nil, src, c.config())

	flagPos := 0
	for i, t := range tokens {
		if i%8 == 0 {
			flagPos = len(dst)
			dst = append(dst, 0)
		}
		if t.Kind == lz77.KindLiteral {
			dst[flagPos] |= 1 << (i % 8)
			dst = append(dst, t.Literal)
			continue
		}
		d := t.Offset - 1
		dst = append(dst,
			byte(d),
			byte(d>>4)&0xf0|byte(t.Length-MinMatch),
		)
	}
	return dst
}

// Decompress appends the data encoded in src to dst. Errors carry the byte
// position of the bad item.
func (c Codec) Decompress(dst, src []byte) ([]byte, error) {
	tokens, err := parse(nil, src)
	if err != nil {
		return nil, err
	}
	return lz77.Decode(dst, tokens)
}

// parse checks every offset against the bytes produced so far, so the
// tokens it returns always decode.
func parse(tokens []lz77.Token, src []byte) ([]lz77.Token, error) {
	pos := 0
	produced := 0
	for pos < len(src) {
		flags := src[pos]
		pos++
		// The encoder never writes a flag byte without an item after it.
		if pos == len(src) {
			return nil, &lz77.CorruptError{Pos: pos, Err: lz77.ErrUnexpectedEnd}
		}

		for bit := 0; bit < 8 && pos < len(src); bit++ {
			if flags&(1<<bit) != 0 {
				tokens = append(tokens, lz77.Lit(src[pos]))
				pos++
				produced++
				continue
			}
			if pos+2 > len(src) {
				return nil, &lz77.CorruptError{Pos: pos, Err: lz77.ErrUnexpectedEnd}
			}
			offset := (int(src[pos]) | int(src[pos+1]&0xf0)<<4) + 1
			length := int(src[pos+1]&0x0f) + MinMatch
			if offset > produced {
				return nil, &lz77.CorruptError{Pos: pos, Err: lz77.ErrInvalidOffset}
			}
			tokens = append(tokens, lz77.Match(offset, length))
			produced += length
			pos += 2
		}
	}
	return tokens, nil
}

// Package lz4 writes lz77 token streams in the LZ4 block format. Since a raw
// block doesn't record its decompressed size, Compress writes the size as a
// uvarint before the block.
package lz4

import (
	"encoding/binary"

	"github.com/andybalholm/lz77"
	"github.com/pierrec/lz4/v4"
)

const (
	// WindowSize is the largest offset the two-byte distance field can hold.
	WindowSize = 65535

	// MinMatch is the shortest match an LZ4 sequence can hold.
	MinMatch = 4
)

// Codec implements lz77.Codec, writing in the LZ4 block format.
type Codec struct {
	// MaxChain limits how many earlier positions are checked for each
	// match. Zero means no limit.
	MaxChain int
}

var _ lz77.Codec = Codec{}

// Compress appends the compressed form of src to dst.
func (c Codec) Compress(dst, src []byte) []byte {
	tokens := lz77.Encode(nil, src, lz77.Config{
		WindowSize: WindowSize,
		MinMatch:   MinMatch,
		MaxChain:   c.MaxChain,
	})
	dst = binary.AppendUvarint(dst, uint64(len(src)))
	return EncodeBlock(dst, src, tokens)
}

// Decompress appends the data encoded in src to dst. The block itself is
// decoded by github.com/pierrec/lz4.
func (c Codec) Decompress(dst, src []byte) ([]byte, error) {
	size, n := binary.Uvarint(src)
	switch {
	case n == 0:
		return nil, &lz77.CorruptError{Pos: 0, Err: lz77.ErrUnexpectedEnd}
	case n < 0:
		return nil, &lz77.CorruptError{Pos: 0, Err: lz77.ErrInvalidLength}
	}
	block := src[n:]
	if size == 0 {
		if len(block) != 1 || block[0] != 0 {
			return nil, &lz77.CorruptError{Pos: n, Err: lz77.ErrInvalidLength}
		}
		return dst, nil
	}
	// Each byte of the block can expand to at most 255 bytes of output.
	if size > 255*uint64(len(block))+16 {
		return nil, &lz77.CorruptError{Pos: 0, Err: lz77.ErrInvalidLength}
	}

	base := len(dst)
	dst = append(dst, make([]byte, size)...)
	decoded, err := lz4.UncompressBlock(block, dst[base:])
	if err != nil {
		return nil, &lz77.CorruptError{Pos: -1, Err: err}
	}
	if decoded != int(size) {
		return nil, &lz77.CorruptError{Pos: -1, Err: lz77.ErrInvalidLength}
	}
	return dst, nil
}

// A sequence is a run of literals followed by a match.
type sequence struct {
	Unmatched int
	Length    int
	Distance  int
}

// sequences groups tokens into LZ4 sequences. It also returns the number of
// literals after the last match.
func sequences(dst []sequence, tokens []lz77.Token) ([]sequence, int) {
	unmatched := 0
	for _, t := range tokens {
		if t.Kind != lz77.KindMatch {
			unmatched++
			continue
		}
		dst = append(dst, sequence{
			Unmatched: unmatched,
			Length:    t.Length,
			Distance:  t.Offset,
		})
		unmatched = 0
	}
	return dst, unmatched
}

// EncodeBlock appends an LZ4 block holding src to dst, using the matches in
// tokens, which must describe src and respect WindowSize and MinMatch.
func EncodeBlock(dst []byte, src []byte, tokens []lz77.Token) []byte {
	matches, trailingLiterals := sequences(nil, tokens)

	// Ensure that the block ends with at least 5 literal bytes,
	// and the last match is at least 12 bytes before the end of the block.
	// A match that runs to the end is shortened if it stays long enough.
	for len(matches) > 0 {
		lastMatch := &matches[len(matches)-1]
		if trailingLiterals+lastMatch.Length >= 12 {
			if trailingLiterals >= 5 {
				break
			}
			if k := 5 - trailingLiterals; lastMatch.Length-k >= MinMatch {
				lastMatch.Length -= k
				trailingLiterals += k
				break
			}
		}
		matches = matches[:len(matches)-1]
		trailingLiterals += lastMatch.Unmatched + lastMatch.Length
	}

	pos := 0
	for _, m := range matches {
		token := byte(0)
		if m.Unmatched > 14 {
			token |= 0xf0
		} else {
			token |= byte(m.Unmatched << 4)
		}
		if m.Length > 18 {
			token |= 0x0f
		} else {
			token |= byte(m.Length - 4)
		}
		dst = append(dst, token)

		if m.Unmatched > 14 {
			dst = appendInt(dst, m.Unmatched-15)
		}
		dst = append(dst, src[pos:pos+m.Unmatched]...)

		dst = binary.LittleEndian.AppendUint16(dst, uint16(m.Distance))
		if m.Length > 18 {
			dst = appendInt(dst, m.Length-19)
		}

		pos += m.Unmatched + m.Length
	}

	// Write the final, literals-only sequence.
	token := byte(0)
	if trailingLiterals > 14 {
		token |= 0xf0
	} else {
		token |= byte(trailingLiterals << 4)
	}
	dst = append(dst, token)
	if trailingLiterals > 14 {
		dst = appendInt(dst, trailingLiterals-15)
	}
	dst = append(dst, src[pos:]...)

	return dst
}

// appendInt appends n to dst in LZ4's variable-length integer format.
func appendInt(dst []byte, n int) []byte {
	for n >= 255 {
		dst = append(dst, 255)
		n -= 255
	}
	dst = append(dst, byte(n))
	return dst
}

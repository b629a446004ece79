// Package classic implements the textbook LZ77 triple format for lz77 token
// streams.
//
// Every item is a triple (offset, length, next): copy length bytes from
// offset bytes back, then append the byte next. A triple with a zero offset
// and length is just a literal. Triples are packed into 24 bits, most
// significant bit first: 12 bits of offset, 4 bits of length and 8 bits of
// next byte. So offsets are at most 4095 and lengths at most 15.
package classic

import (
	"bytes"
	"errors"
	"io"

	"github.com/andybalholm/lz77"
	"github.com/icza/bitio"
)

const (
	WindowSize = 1<<12 - 1 // Largest offset
	MaxMatch   = 1<<4 - 1  // Longest copy in one triple

	tripleSize = 3
)

// Codec implements lz77.Codec in the triple format.
type Codec struct {
	// MinMatch is the shortest copy worth a triple. The default is 3.
	MinMatch int

	// MaxChain limits how many earlier positions are checked for each
	// match. Zero means no limit.
	MaxChain int
}

var _ lz77.Codec = Codec{}

func (c Codec) config() lz77.Config {
	cfg := lz77.Config{
		WindowSize: WindowSize,
		MinMatch:   c.MinMatch,
		MaxMatch:   MaxMatch,
		MaxChain:   c.MaxChain,
	}
	cfg.ApplyDefaults()
	// A match must leave room in the triple for a next byte.
	cfg.MinMatch = max(2, min(cfg.MinMatch, MaxMatch))
	return cfg
}

type triple struct {
	offset, length int
	next           byte
}

// triples pairs each match with the byte after it. A match that is followed
// by another match, or ends the input, gives up its last byte instead.
func triples(src []byte, tokens []lz77.Token) []triple {
	var out []triple
	pos := 0
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if t.Kind == lz77.KindLiteral {
			out = append(out, triple{next: t.Literal})
			pos++
			continue
		}
		if i+1 < len(tokens) && tokens[i+1].Kind == lz77.KindLiteral {
			out = append(out, triple{t.Offset, t.Length, tokens[i+1].Literal})
			pos += t.Length + 1
			i++
			continue
		}
		out = append(out, triple{t.Offset, t.Length - 1, src[pos+t.Length-1]})
		pos += t.Length
	}
	return out
}

// Compress appends the compressed form of src to dst.
func (c Codec) Compress(dst, src []byte) []byte {
	tokens := lz77.Encode(nil, src, c.config())

	buf := bytes.NewBuffer(dst)
	w := bitio.NewWriter(buf)
	for _, t := range triples(src, tokens) {
		// Writes to a bytes.Buffer don't fail.
		w.WriteBits(uint64(t.offset), 12)
		w.WriteBits(uint64(t.length), 4)
		w.WriteByte(t.next)
	}
	w.Close()
	return buf.Bytes()
}

// Decompress appends the data encoded in src to dst. Errors carry the byte
// position of the bad triple.
func (c Codec) Decompress(dst, src []byte) ([]byte, error) {
	if rem := len(src) % tripleSize; rem != 0 {
		return nil, &lz77.CorruptError{Pos: len(src) - rem, Err: lz77.ErrUnexpectedEnd}
	}

	var tokens []lz77.Token
	produced := 0
	r := bitio.NewReader(bytes.NewReader(src))
	for pos := 0; pos < len(src); pos += tripleSize {
		offset, err := r.ReadBits(12)
		if err != nil {
			return nil, readError(pos, err)
		}
		length, err := r.ReadBits(4)
		if err != nil {
			return nil, readError(pos, err)
		}
		next, err := r.ReadByte()
		if err != nil {
			return nil, readError(pos, err)
		}

		switch {
		case offset == 0 && length == 0:
		case offset == 0:
			return nil, &lz77.CorruptError{Pos: pos, Err: lz77.ErrInvalidOffset}
		case length == 0:
			return nil, &lz77.CorruptError{Pos: pos, Err: lz77.ErrInvalidLength}
		case int(offset) > produced:
			return nil, &lz77.CorruptError{Pos: pos, Err: lz77.ErrInvalidOffset}
		default:
			tokens = append(tokens, lz77.Match(int(offset), int(length)))
			produced += int(length)
		}
		tokens = append(tokens, lz77.Lit(next))
		produced++
	}
	return lz77.Decode(dst, tokens)
}

func readError(pos int, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = lz77.ErrUnexpectedEnd
	}
	return &lz77.CorruptError{Pos: pos, Err: err}
}

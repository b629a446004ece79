// Package lz77 is an in-memory LZ77 compressor.
//
// Compression has two logically separate steps:
//   - A Finder looks for repeated sequences of bytes inside a sliding window.
//   - The token stream it drives is serialized in some format.
//
// Encode turns a byte slice into a sequence of Tokens using greedy parsing,
// and Decode turns the tokens back into bytes. AppendTokens and ParseTokens
// define the package's own byte format; the subpackages serialize the same
// token stream in other layouts (LZSS, classic LZ77 triples, and the Snappy and
// LZ4 block formats). Every format implements the Codec interface.
package lz77

import "strconv"

// Kind tells which variant of Token is in use.
type Kind uint8

const (
	KindLiteral Kind = iota
	KindMatch
)

// A Token is the basic unit of LZ77 compression: either a single literal byte
// or a backward reference into data that has already been produced.
type Token struct {
	Kind Kind

	// Literal is the byte to emit when Kind is KindLiteral.
	Literal byte

	// Offset is how far back from the current output position the copy
	// starts. It must be at least 1 and no more than the output length.
	Offset int

	// Length is the number of bytes to copy. It may be greater than Offset.
	Length int
}

// Lit returns a literal token for b.
func Lit(b byte) Token {
	return Token{Kind: KindLiteral, Literal: b}
}

// Match returns a token that copies length bytes from offset bytes back.
func Match(offset, length int) Token {
	return Token{Kind: KindMatch, Offset: offset, Length: length}
}

// String returns a literal as a quoted character and a match as
// <length,offset>.
func (t Token) String() string {
	if t.Kind == KindMatch {
		return "<" + strconv.Itoa(t.Length) + "," + strconv.Itoa(t.Offset) + ">"
	}
	return strconv.QuoteRune(rune(t.Literal))
}

// A Codec compresses and decompresses whole buffers.
type Codec interface {
	// Compress appends the compressed form of src to dst and returns dst.
	// It never fails.
	Compress(dst, src []byte) []byte

	// Decompress appends the data encoded in src to dst. If src is
	// malformed, it returns a *CorruptError and no partial output.
	Decompress(dst, src []byte) ([]byte, error)
}

// LZ77 is the Codec for the package's own token format. It holds only its
// configuration, so one value can be shared between goroutines.
type LZ77 struct {
	cfg Config
}

var _ Codec = (*LZ77)(nil)

// New returns an LZ77 codec using cfg. Zero fields in cfg get their default
// values.
func New(cfg Config) (*LZ77, error) {
	cfg.ApplyDefaults()
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	return &LZ77{cfg: cfg}, nil
}

// Config returns the configuration in use, with defaults applied.
func (c *LZ77) Config() Config {
	return c.cfg
}

// Encode appends the tokens for src to dst.
func (c *LZ77) Encode(dst []Token, src []byte) []Token {
	return Encode(dst, src, c.cfg)
}

// Compress appends the serialized tokens for src to dst.
func (c *LZ77) Compress(dst, src []byte) []byte {
	tokens := Encode(nil, src, c.cfg)
	return AppendTokens(dst, tokens)
}

// Decompress appends the data encoded in src to dst. See Codec.
func (c *LZ77) Decompress(dst, src []byte) ([]byte, error) {
	return decompress(dst, src)
}

// Compress compresses src with DefaultConfig.
func Compress(src []byte) []byte {
	return AppendTokens(nil, Encode(nil, src, DefaultConfig()))
}

// Decompress decodes data produced by Compress or by any LZ77 codec.
func Decompress(src []byte) ([]byte, error) {
	return decompress(nil, src)
}

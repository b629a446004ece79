package lz77

import (
	"encoding/binary"
	"math"
)

// The serialized form is a sequence of tagged items with no header:
//
//	0nnnnnnn                       n+1 literal bytes follow (1..128)
//	1lllllll uvarint(offset)       a match of length l+1 (1..127)
//	11111111 uvarint(length-128) uvarint(offset)
//	                               a match of length 128 or more
//
// So n literal bytes with no matches take n + ceil(n/128) bytes.
const (
	maxLiteralRun  = 128
	longMatchTag   = 0xff
	longMatchBase  = 128
	maxFieldLength = math.MaxInt32
)

// AppendTokens appends the serialized form of tokens to dst. Runs of literals
// are grouped together. The tokens must be valid (as produced by Encode);
// AppendTokens panics on a match with a non-positive length or offset.
func AppendTokens(dst []byte, tokens []Token) []byte {
	for i := 0; i < len(tokens); {
		t := tokens[i]
		if t.Kind != KindMatch {
			j := i + 1
			for j < len(tokens) && tokens[j].Kind != KindMatch && j-i < maxLiteralRun {
				j++
			}
			dst = append(dst, byte(j-i-1))
			for _, lit := range tokens[i:j] {
				dst = append(dst, lit.Literal)
			}
			i = j
			continue
		}

		if t.Length <= 0 || t.Offset <= 0 {
			panic("lz77: invalid match token " + t.String())
		}
		// Matches too long for one item are split; the offset stays valid
		// for every piece.
		for length := t.Length; length > 0; {
			n := min(length, maxFieldLength)
			dst = appendMatch(dst, t.Offset, n)
			length -= n
		}
		i++
	}
	return dst
}

func appendMatch(dst []byte, offset, length int) []byte {
	if length < longMatchBase {
		dst = append(dst, 0x80|byte(length-1))
	} else {
		dst = append(dst, longMatchTag)
		dst = binary.AppendUvarint(dst, uint64(length-longMatchBase))
	}
	return binary.AppendUvarint(dst, uint64(offset))
}

// ParseTokens appends the tokens serialized in src to dst. Match offsets are
// checked against the number of bytes the preceding tokens produce, so the
// result can always be passed to Decode.
func ParseTokens(dst []Token, src []byte) ([]Token, error) {
	produced := 0
	for pos := 0; pos < len(src); {
		if tag := src[pos]; tag < 0x80 {
			n := int(tag) + 1
			if n > len(src)-pos-1 {
				return nil, corrupt(pos, ErrUnexpectedEnd)
			}
			for _, b := range src[pos+1 : pos+1+n] {
				dst = append(dst, Lit(b))
			}
			produced += n
			pos += 1 + n
			continue
		}

		offset, length, next, err := readMatch(src, pos)
		if err != nil {
			return nil, err
		}
		if offset > produced {
			return nil, corrupt(pos, ErrInvalidOffset)
		}
		dst = append(dst, Match(offset, length))
		produced += length
		pos = next
	}
	return dst, nil
}

// decompress decodes the serialized form directly, without building tokens.
func decompress(dst, src []byte) ([]byte, error) {
	base := len(dst)
	for pos := 0; pos < len(src); {
		if tag := src[pos]; tag < 0x80 {
			n := int(tag) + 1
			if n > len(src)-pos-1 {
				return nil, corrupt(pos, ErrUnexpectedEnd)
			}
			dst = append(dst, src[pos+1:pos+1+n]...)
			pos += 1 + n
			continue
		}

		offset, length, next, err := readMatch(src, pos)
		if err != nil {
			return nil, err
		}
		if offset > len(dst)-base {
			return nil, corrupt(pos, ErrInvalidOffset)
		}
		dst = appendCopy(dst, offset, length)
		pos = next
	}
	return dst, nil
}

// readMatch reads the match item whose tag is at src[pos]. It returns the
// position of the following item. A varint that is still unfinished after
// MaxVarintLen64 bytes is an overflow, not a truncation.
func readMatch(src []byte, pos int) (offset, length, next int, err error) {
	tag := src[pos]
	p := pos + 1

	if tag != longMatchTag {
		length = int(tag&0x7f) + 1
	} else {
		v, n := binary.Uvarint(src[p:])
		switch {
		case n == 0 && len(src)-p < binary.MaxVarintLen64:
			return 0, 0, 0, corrupt(p, ErrUnexpectedEnd)
		case n <= 0, v > maxFieldLength-longMatchBase:
			return 0, 0, 0, corrupt(p, ErrInvalidLength)
		}
		length = int(v) + longMatchBase
		p += n
	}

	v, n := binary.Uvarint(src[p:])
	switch {
	case n == 0 && len(src)-p < binary.MaxVarintLen64:
		return 0, 0, 0, corrupt(p, ErrUnexpectedEnd)
	case n <= 0, v == 0, v > maxFieldLength:
		return 0, 0, 0, corrupt(p, ErrInvalidOffset)
	}
	return int(v), length, p + n, nil
}

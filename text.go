package lz77

import "fmt"

// AppendText appends a human-readable representation of tokens to dst.
// Literals are copied as-is, and matches are replaced with <Length,Offset>
// symbols.
func AppendText(dst []byte, tokens []Token) []byte {
	for _, t := range tokens {
		if t.Kind == KindMatch {
			dst = fmt.Appendf(dst, "<%d,%d>", t.Length, t.Offset)
			continue
		}
		dst = append(dst, t.Literal)
	}
	return dst
}

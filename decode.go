package lz77

// Decode appends the data described by tokens to dst. Match offsets are
// relative to the output produced by tokens; bytes already in dst are never
// referenced. On error, Decode returns nil and a *CorruptError whose Pos is
// the index of the bad token.
func Decode(dst []byte, tokens []Token) ([]byte, error) {
	base := len(dst)
	for i, t := range tokens {
		switch t.Kind {
		case KindLiteral:
			dst = append(dst, t.Literal)
		case KindMatch:
			if t.Offset <= 0 || t.Offset > len(dst)-base {
				return nil, corrupt(i, ErrInvalidOffset)
			}
			if t.Length <= 0 {
				return nil, corrupt(i, ErrInvalidLength)
			}
			dst = appendCopy(dst, t.Offset, t.Length)
		default:
			return nil, corrupt(i, ErrInvalidLength)
		}
	}
	return dst, nil
}

// appendCopy appends length bytes starting offset bytes before the end of dst.
// When offset < length the source and destination overlap, and bytes appended
// earlier in the same copy are read back, so the copy has to go forward one
// byte at a time.
func appendCopy(dst []byte, offset, length int) []byte {
	start := len(dst) - offset
	if offset >= length {
		return append(dst, dst[start:start+length]...)
	}
	for i := 0; i < length; i++ {
		dst = append(dst, dst[start+i])
	}
	return dst
}

package lz77

// Encode appends to dst the tokens for src and returns dst.
//
// It uses greedy parsing: at each position it takes the longest match the
// Finder reports, or a literal if there is none. Zero fields in cfg get their
// default values; Encode panics if cfg is otherwise invalid (New reports the
// same problem as an error).
func Encode(dst []Token, src []byte, cfg Config) []Token {
	cfg.ApplyDefaults()
	if err := cfg.Verify(); err != nil {
		panic(err)
	}
	if len(src) == 0 {
		return dst
	}

	f := acquireFinder()
	defer releaseFinder(f)
	f.Reset(src, cfg)

	s := 0
	for s < len(src) {
		f.Insert(s)
		offset, length, ok := f.Find(s, s-cfg.WindowSize)
		if !ok {
			dst = append(dst, Lit(src[s]))
			s++
			continue
		}
		printf("lz77: match at %d: offset=%d length=%d", s, offset, length)
		dst = append(dst, Match(offset, length))
		s += length
	}
	return dst
}

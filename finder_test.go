package lz77

import "testing"

func TestEncodeText(t *testing.T) {
	tests := []struct {
		src  string
		cfg  Config
		want string
	}{
		{"abababab", DefaultConfig(), "ab<6,2>"},
		{"xyzxyz", DefaultConfig(), "xyz<3,3>"},

		// Equal lengths: the closest source wins.
		{"abcXabcYabc", DefaultConfig(), "abcX<3,4>Y<3,4>"},

		// A longer match further back beats a short recent one.
		{"abcdeXabcYabcde", DefaultConfig(), "abcdeX<3,6>Y<5,10>"},

		// Window boundary: an offset equal to WindowSize is allowed.
		{"abc12345abc", Config{WindowSize: 8}, "abc12345<3,8>"},
		{"abc123456abc", Config{WindowSize: 8}, "abc123456abc"},

		{"abab", Config{MinMatch: 1}, "ab<2,2>"},
		{"abcabc", Config{MinMatch: 4}, "abcabc"},
		{"aaaaaaaaaaaaaaaaaaaaaaaaa", Config{MaxMatch: 10}, "a<10,1><10,1><4,1>"},

		{"abcd1abc2abcd", DefaultConfig(), "abcd1<3,5>2<4,9>"},
		{"abcd1abc2abcd", Config{MaxChain: 1}, "abcd1<3,5>2<3,4>d"},
	}
	for _, tt := range tests {
		tokens := Encode(nil, []byte(tt.src), tt.cfg)
		if got := tokenText(tokens); got != tt.want {
			t.Errorf("Encode(%q, %+v) = %s, want %s", tt.src, tt.cfg, got, tt.want)
		}
		out, err := Decode(nil, tokens)
		if err != nil {
			t.Fatal(err)
		}
		if string(out) != tt.src {
			t.Errorf("round trip of %q gave %q", tt.src, out)
		}
	}
}

func TestFinderFind(t *testing.T) {
	var f Finder
	f.Reset([]byte("xyzxyzq"), DefaultConfig())
	f.Insert(3)

	offset, length, ok := f.Find(3, 0)
	if !ok || offset != 3 || length != 3 {
		t.Fatalf("Find(3, 0) = %d, %d, %v; want 3, 3, true", offset, length, ok)
	}

	// The source is at 0, so a window starting at 1 excludes it.
	if _, _, ok := f.Find(3, 1); ok {
		t.Fatal("Find(3, 1) found a match outside the window")
	}

	// Positions that were never inserted aren't candidates.
	f.Reset([]byte("xyzxyzq"), DefaultConfig())
	if _, _, ok := f.Find(3, 0); ok {
		t.Fatal("Find found a match before Insert")
	}

	// Too close to the end for a MinMatch-length match.
	f.Insert(5)
	if _, _, ok := f.Find(5, 0); ok {
		t.Fatal("Find(5, 0) found a match in the last two bytes")
	}
}

func TestFinderWindowClamp(t *testing.T) {
	var f Finder
	f.Reset([]byte("abc12345abc"), Config{WindowSize: 4})
	f.Insert(8)
	// windowStart is clamped to cursor-WindowSize even if the caller asks
	// for more.
	if _, _, ok := f.Find(8, 0); ok {
		t.Fatal("Find looked past WindowSize")
	}
}

func TestFinderReuse(t *testing.T) {
	var f Finder
	f.Reset(sampleText(100000), DefaultConfig())
	f.Insert(100000)

	src := []byte("hello hello")
	f.Reset(src, DefaultConfig())
	f.Insert(6)
	offset, length, ok := f.Find(6, 0)
	if !ok || offset != 6 || length != 5 {
		t.Fatalf("Find after reuse = %d, %d, %v; want 6, 5, true", offset, length, ok)
	}
}

func TestExtendMatch(t *testing.T) {
	src := []byte("0123456789abcdef0123456789abcdeX")
	if got := extendMatch(src, 0, 16); got != 31 {
		t.Fatalf("extendMatch = %d, want 31", got)
	}
	if got := extendMatch(src[:20], 0, 16); got != 20 {
		t.Fatalf("extendMatch at limit = %d, want 20", got)
	}
	if got := extendMatch(src, 1, 16); got != 16 {
		t.Fatalf("extendMatch with no match = %d, want 16", got)
	}
}

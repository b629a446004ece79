package classic

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/andybalholm/lz77"
)

func TestRoundTrip(t *testing.T) {
	random := make([]byte, 8000)
	rand.New(rand.NewSource(1)).Read(random)
	inputs := map[string][]byte{
		"empty":    {},
		"single":   {0},
		"sentence": []byte("Une phrase d'exemple Une phrase d'exemple"),
		"run":      bytes.Repeat([]byte{0x41}, 1000),
		"zeros":    make([]byte, 5000),
		"pattern":  bytes.Repeat([]byte("ABCDEF0123456789"), 500),
		"random":   random,
		"trailing": append(bytes.Repeat([]byte("abcd"), 20), 0, 0, 0),
	}
	for name, src := range inputs {
		for _, c := range []Codec{{}, {MinMatch: 2}, {MinMatch: 40}, {MaxChain: 2}} {
			compressed := c.Compress(nil, src)
			if len(compressed)%3 != 0 {
				t.Fatalf("%s %+v: output is not a whole number of triples", name, c)
			}
			out, err := c.Decompress(nil, compressed)
			if err != nil {
				t.Fatalf("%s %+v: %v", name, c, err)
			}
			if !bytes.Equal(out, src) {
				t.Fatalf("%s %+v: decompressed output doesn't match", name, c)
			}
		}
	}
}

func TestLayout(t *testing.T) {
	got := Codec{}.Compress(nil, []byte("abababab"))
	want := []byte{
		0x00, 0x00, 'a',
		0x00, 0x00, 'b',
		0x00, 0x25, 'b', // offset 2, length 5, then 'b'
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}

	got = Codec{}.Compress(nil, []byte("hello world"))
	if len(got) != 33 {
		t.Fatalf("11 literals took %d bytes", len(got))
	}
}

func TestCorrupt(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
		pos  int
	}{
		{"partial triple", []byte{0x00, 0x00, 'a', 0x00}, lz77.ErrUnexpectedEnd, 3},
		{"zero offset", []byte{0x00, 0x03, 'x'}, lz77.ErrInvalidOffset, 0},
		{"zero length", []byte{0x00, 0x10, 'x'}, lz77.ErrInvalidLength, 0},
		{"copy before data", []byte{0x00, 0x13, 'x'}, lz77.ErrInvalidOffset, 0},
		{"copy past output", []byte{0x00, 0x00, 'a', 0x00, 0x23, 'x'}, lz77.ErrInvalidOffset, 3},
	}
	for _, tt := range tests {
		out, err := Codec{}.Decompress(nil, tt.data)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
		if out != nil {
			t.Errorf("%s: got partial output %q", tt.name, out)
		}
		var ce *lz77.CorruptError
		if errors.As(err, &ce) && ce.Pos != tt.pos {
			t.Errorf("%s: error at %d, want %d", tt.name, ce.Pos, tt.pos)
		}
	}
}

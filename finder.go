package lz77

import (
	"encoding/binary"
	"math/bits"
	"runtime"
	"sync"
)

const (
	minTableBits = 8
	maxTableBits = 15

	hashMul32 = 0x1e35a7bd

	// maxKeyLen is the longest prefix used as a hash key. Shorter keys are
	// used when MinMatch is smaller.
	maxKeyLen = 3
)

// A Finder is the candidate index for one input buffer. It uses hash
// chaining: table holds the most recent position for each hash of the next
// few bytes, and chain links every position to the previous one with the same
// hash. Positions that have slid out of the window are never removed; a chain
// walk just stops when it reaches one.
//
// A Finder must be Reset before use. It is not safe for concurrent use, but it
// only reads src, so several Finders may share an input.
type Finder struct {
	src []byte
	cfg Config

	keyLen int
	shift  uint32

	// table and chain store position+1, so that 0 means "none".
	table []int
	chain []int

	// Positions below inserted are in the index.
	inserted int
}

// Reset prepares f to search src with the given configuration.
func (f *Finder) Reset(src []byte, cfg Config) {
	cfg.ApplyDefaults()
	f.src = src
	f.cfg = cfg
	f.keyLen = min(cfg.MinMatch, maxKeyLen)

	tableBits := bits.Len(uint(len(src)))
	tableBits = max(minTableBits, min(tableBits, maxTableBits))
	f.shift = uint32(32 - tableBits)

	size := 1 << tableBits
	if cap(f.table) >= size {
		f.table = f.table[:size]
		clear(f.table)
	} else {
		f.table = make([]int, size)
	}

	// chain entries are written before they are read, so they don't need
	// to be cleared.
	if cap(f.chain) >= len(src) {
		f.chain = f.chain[:len(src)]
	} else {
		f.chain = make([]int, len(src))
	}

	f.inserted = 0
}

func (f *Finder) hash(pos int) uint32 {
	src := f.src
	var u uint32
	switch f.keyLen {
	case 1:
		u = uint32(src[pos])
	case 2:
		u = uint32(binary.LittleEndian.Uint16(src[pos:]))
	default:
		u = uint32(src[pos]) | uint32(src[pos+1])<<8 | uint32(src[pos+2])<<16
	}
	return (u * hashMul32) >> f.shift
}

// Insert adds every position below end to the index. Positions too close to
// the end of the input to have a full key are skipped.
func (f *Finder) Insert(end int) {
	end = min(end, len(f.src)-f.keyLen+1)
	for i := f.inserted; i < end; i++ {
		h := f.hash(i)
		f.chain[i] = f.table[h]
		f.table[h] = i + 1
	}
	if end > f.inserted {
		f.inserted = end
	}
}

// Find looks for the longest match for the bytes at cursor whose source
// starts in [windowStart, cursor). It only sees positions that have been
// added with Insert. The window is never allowed to be larger than
// WindowSize.
//
// When several sources give the same length, the closest one wins. If nothing
// reaches MinMatch bytes, ok is false.
func (f *Finder) Find(cursor, windowStart int) (offset, length int, ok bool) {
	src := f.src
	if cursor < 0 || cursor+f.keyLen > len(src) {
		return 0, 0, false
	}

	limit := len(src)
	if f.cfg.MaxMatch > 0 && cursor+f.cfg.MaxMatch < limit {
		limit = cursor + f.cfg.MaxMatch
	}
	if limit-cursor < f.cfg.MinMatch {
		return 0, 0, false
	}
	windowStart = max(windowStart, cursor-f.cfg.WindowSize, 0)

	best := f.cfg.MinMatch - 1
	bestOffset := 0

	candidate := f.table[f.hash(cursor)] - 1
	for n := 0; candidate >= windowStart; n++ {
		if f.cfg.MaxChain > 0 && n >= f.cfg.MaxChain {
			break
		}
		// A longer match has to agree at index best, so check that byte
		// before doing a full comparison.
		if candidate < cursor && src[candidate+best] == src[cursor+best] {
			end := extendMatch(src[:limit], candidate, cursor)
			if end-cursor > best {
				best = end - cursor
				bestOffset = cursor - candidate
				if end == limit {
					break
				}
			}
		}
		candidate = f.chain[candidate] - 1
	}

	if bestOffset == 0 {
		return 0, 0, false
	}
	return bestOffset, best, true
}

// extendMatch returns the largest k such that k <= len(src) and that
// src[i:i+k-j] and src[j:k] have the same contents.
//
// It assumes that:
//
//	0 <= i && i < j && j <= len(src)
func extendMatch(src []byte, i, j int) int {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		// As long as we are 8 or more bytes before the end of src, we can load and
		// compare 8 bytes at a time. If those 8 bytes are equal, repeat.
		for j+8 < len(src) {
			iBytes := binary.LittleEndian.Uint64(src[i:])
			jBytes := binary.LittleEndian.Uint64(src[j:])
			if iBytes != jBytes {
				// If those 8 bytes were not equal, XOR the two 8 byte values, and return
				// the index of the first byte that differs. The bytes were loaded in
				// little-endian order, so the lowest set bit marks the first difference,
				// and the shift by 3 converts a bit index to a byte index.
				return j + bits.TrailingZeros64(iBytes^jBytes)>>3
			}
			i, j = i+8, j+8
		}
	case "386":
		// On a 32-bit CPU, we do it 4 bytes at a time.
		for j+4 < len(src) {
			iBytes := binary.LittleEndian.Uint32(src[i:])
			jBytes := binary.LittleEndian.Uint32(src[j:])
			if iBytes != jBytes {
				return j + bits.TrailingZeros32(iBytes^jBytes)>>3
			}
			i, j = i+4, j+4
		}
	}
	for ; j < len(src) && src[i] == src[j]; i, j = i+1, j+1 {
	}
	return j
}

var finderPool = sync.Pool{
	New: func() any {
		return new(Finder)
	},
}

func acquireFinder() *Finder {
	return finderPool.Get().(*Finder)
}

func releaseFinder(f *Finder) {
	f.src = nil
	finderPool.Put(f)
}

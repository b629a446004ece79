package lz77

import (
	"errors"
	"strconv"
)

// Sentinel errors. Decoding failures are reported as a *CorruptError that
// wraps one of the first three; use errors.Is to tell them apart.
var (
	// ErrUnexpectedEnd means the stream was truncated in the middle of a token.
	ErrUnexpectedEnd = errors.New("lz77: unexpected end of stream")

	// ErrInvalidOffset means a match refers to data before the start of the
	// output, or has an offset of zero.
	ErrInvalidOffset = errors.New("lz77: invalid match offset")

	// ErrInvalidLength means a match has a zero length, or a length field is
	// out of range.
	ErrInvalidLength = errors.New("lz77: invalid length")

	// ErrInvalidConfig is wrapped by the errors from Config.Verify.
	ErrInvalidConfig = errors.New("lz77: invalid config")
)

// A CorruptError describes malformed compressed input.
type CorruptError struct {
	// Pos is where the problem was found: a byte offset for serialized
	// input, or a token index for Decode. It is -1 when unknown.
	Pos int

	Err error
}

func (e *CorruptError) Error() string {
	if e.Pos < 0 {
		return e.Err.Error()
	}
	return e.Err.Error() + " at " + strconv.Itoa(e.Pos)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

func corrupt(pos int, err error) error {
	return &CorruptError{Pos: pos, Err: err}
}

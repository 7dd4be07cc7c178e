package format

import "errors"

var (
	// ErrSignatureMismatch indicates a header had an unexpected magic.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a header.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrReserved indicates a reserved header field was not zero.
	ErrReserved = errors.New("format: reserved field set")
)

package format

import "errors"

var (
	// ErrTruncated indicates a read would run past the end of the backing buffer.
	ErrTruncated = errors.New("format: truncated buffer")

	// ErrBadSize indicates a decoded size field is not a legal block size.
	ErrBadSize = errors.New("format: illegal block size")
)

package bitview

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is matched by every *BitOutOfRangeError.
	ErrOutOfRange = errors.New("bit index out of range")

	// ErrBufferTooSmall is returned when a buffer cannot hold the requested bit length.
	ErrBufferTooSmall = errors.New("buffer too small")
)

// BitOutOfRangeError reports an access past the addressable bits.
//
// The raw functions (Test, Set, Clear, SetAll, ClearAll) panic with this
// error; the Bitmap methods return it. errors.Is(err, ErrOutOfRange) holds.
type BitOutOfRangeError struct {
	Bit uint64
	Len uint64
}

func (e *BitOutOfRangeError) Error() string {
	return fmt.Sprintf("bit %d out of range [0, %d)", e.Bit, e.Len)
}

func (e *BitOutOfRangeError) Unwrap() error { return ErrOutOfRange }

package bitview

import (
	"bytes"
	"fmt"
)

// Bitmap is a bounds-checked view over a borrowed byte buffer.
//
// The view carries its logical length in bits; the buffer itself is never
// copied, so mutations through the view are visible to the owner of the
// buffer and vice versa. A Bitmap is not safe for concurrent mutation.
type Bitmap struct {
	buf []byte
	n   uint64
}

// New returns a view over the first nbits bits of buf.
//
// It fails with ErrBufferTooSmall when buf cannot hold nbits bits.
func New(buf []byte, nbits uint64) (*Bitmap, error) {
	if need := BytesFor(nbits); need > uint64(len(buf)) {
		return nil, fmt.Errorf("%w: %d bits need %d bytes, have %d", ErrBufferTooSmall, nbits, need, len(buf))
	}
	return &Bitmap{buf: buf, n: nbits}, nil
}

// Wrap returns a view over every bit of buf.
func Wrap(buf []byte) *Bitmap {
	return &Bitmap{buf: buf, n: uint64(len(buf)) << 3}
}

// Make allocates a zeroed buffer large enough for nbits bits and wraps it.
// Like make, it panics when the buffer cannot be allocated.
func Make(nbits uint64) *Bitmap {
	return &Bitmap{buf: make([]byte, BytesFor(nbits)), n: nbits}
}

// Len returns the number of addressable bits.
func (b *Bitmap) Len() uint64 { return b.n }

// Bytes returns the bytes covering [0, Len()). The slice aliases the
// underlying buffer.
func (b *Bitmap) Bytes() []byte { return b.buf[:BytesFor(b.n)] }

// Test reports whether bit is set.
func (b *Bitmap) Test(bit uint64) (bool, error) {
	if err := b.check(bit); err != nil {
		return false, err
	}
	return Test(b.buf, bit), nil
}

// Set sets bit to 1.
func (b *Bitmap) Set(bit uint64) error {
	if err := b.check(bit); err != nil {
		return err
	}
	Set(b.buf, bit)
	return nil
}

// Clear sets bit to 0.
func (b *Bitmap) Clear(bit uint64) error {
	if err := b.check(bit); err != nil {
		return err
	}
	Clear(b.buf, bit)
	return nil
}

// SetAll sets exactly the bits in [0, Len()).
//
// Unlike the package-level SetAll, a trailing partial byte is masked: bits at
// or beyond Len() keep their previous value.
func (b *Bitmap) SetAll() {
	SetAll(b.buf, b.n)
	if rem := b.n & 7; rem != 0 {
		b.buf[b.n>>3] |= lowMask(rem)
	}
}

// ClearAll clears exactly the bits in [0, Len()).
func (b *Bitmap) ClearAll() {
	ClearAll(b.buf, b.n)
	if rem := b.n & 7; rem != 0 {
		b.buf[b.n>>3] &^= lowMask(rem)
	}
}

// Clone returns a view over a private copy of the covered bytes.
func (b *Bitmap) Clone() *Bitmap {
	buf := make([]byte, BytesFor(b.n))
	copy(buf, b.buf)
	return &Bitmap{buf: buf, n: b.n}
}

// Equal reports whether both views have the same length and the same bits in
// [0, Len()). Bits past Len() in a partial byte are ignored.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.n != o.n {
		return false
	}
	full := b.n >> 3
	if !bytes.Equal(b.buf[:full], o.buf[:full]) {
		return false
	}
	rem := b.n & 7
	if rem == 0 {
		return true
	}
	m := lowMask(rem)
	return b.buf[full]&m == o.buf[full]&m
}

func (b *Bitmap) check(bit uint64) error {
	if bit >= b.n {
		return &BitOutOfRangeError{Bit: bit, Len: b.n}
	}
	return nil
}

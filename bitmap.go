package bitview

// Bit b of a buffer lives in byte b/8 at position b%8, least-significant bit
// first. Every encoder in this module (snapshot payloads, interop, memfd
// buffers) relies on exactly this mapping.

// Test reports whether the bit at index bit is set in buf.
//
// buf must hold at least bit/8+1 bytes. A smaller buffer panics with a
// *BitOutOfRangeError.
func Test(buf []byte, bit uint64) bool {
	return buf[byteIndex(buf, bit)]&bitMask(bit) != 0
}

// Set sets the bit at index bit to 1. All other bits are left unchanged.
func Set(buf []byte, bit uint64) {
	buf[byteIndex(buf, bit)] |= bitMask(bit)
}

// Clear sets the bit at index bit to 0. All other bits are left unchanged.
func Clear(buf []byte, bit uint64) {
	buf[byteIndex(buf, bit)] &^= bitMask(bit)
}

// SetAll sets every bit in the first nbits/8 bytes of buf.
//
// The byte count truncates: when nbits is not a multiple of 8 the trailing
// partial byte is left untouched. Callers pass a multiple of 8 or use
// (*Bitmap).SetAll, which masks the partial byte.
func SetAll(buf []byte, nbits uint64) {
	fill(buf[:fullBytes(buf, nbits)], 0xff)
}

// ClearAll zeroes the first nbits/8 bytes of buf. Same addressing as SetAll.
func ClearAll(buf []byte, nbits uint64) {
	clear(buf[:fullBytes(buf, nbits)])
}

// BytesFor returns the number of bytes needed to hold nbits bits.
func BytesFor(nbits uint64) uint64 {
	n := nbits >> 3
	if nbits&7 != 0 {
		n++
	}
	return n
}

func byteIndex(buf []byte, bit uint64) uint64 {
	i := bit >> 3
	if i >= uint64(len(buf)) {
		panic(&BitOutOfRangeError{Bit: bit, Len: uint64(len(buf)) << 3})
	}
	return i
}

func fullBytes(buf []byte, nbits uint64) uint64 {
	n := nbits >> 3
	if n > uint64(len(buf)) {
		panic(&BitOutOfRangeError{Bit: nbits - 1, Len: uint64(len(buf)) << 3})
	}
	return n
}

func bitMask(bit uint64) byte {
	return 1 << (bit & 7)
}

// lowMask returns a byte with the low n bits set (n < 8).
func lowMask(n uint64) byte {
	return byte(1)<<n - 1
}

func fill(dst []byte, v byte) {
	if len(dst) == 0 {
		return
	}
	dst[0] = v
	// Doubling copy keeps the fill at memmove speed for large buffers.
	for filled := 1; filled < len(dst); filled *= 2 {
		copy(dst[filled:], dst[:filled])
	}
}

package interop

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/bitview"
)

// ErrOutOfRange is returned when a source bitmap has bits at or past the
// requested length, or when a bitmap is too long for a 32-bit index space.
var ErrOutOfRange = errors.New("interop: bit out of range")

// words packs buf into little-endian 64-bit words, zero-padding the tail.
func words(buf []byte) []uint64 {
	out := make([]uint64, (len(buf)+7)/8)
	for i := range out {
		chunk := buf[i*8:]
		if len(chunk) >= 8 {
			out[i] = binary.LittleEndian.Uint64(chunk)
			continue
		}
		var tmp [8]byte
		copy(tmp[:], chunk)
		out[i] = binary.LittleEndian.Uint64(tmp[:])
	}
	return out
}

// maskedBytes returns bm.Bytes() with bits past bm.Len() cleared. The
// buffer is copied only when a trailing partial byte needs masking.
func maskedBytes(bm *bitview.Bitmap) []byte {
	raw := bm.Bytes()
	if rem := bm.Len() & 7; rem != 0 {
		raw = append([]byte(nil), raw...)
		raw[len(raw)-1] &= byte(1)<<rem - 1
	}
	return raw
}

// fromWords unpacks words into a new bitmap of nbits. Words past the end
// are ignored, missing words read as zero, and bits past nbits in the last
// byte are cleared.
func fromWords(w []uint64, nbits uint64) *bitview.Bitmap {
	bm := bitview.Make(nbits)
	buf := bm.Bytes()

	var tmp [8]byte
	for i := 0; i < len(w) && i*8 < len(buf); i++ {
		binary.LittleEndian.PutUint64(tmp[:], w[i])
		copy(buf[i*8:], tmp[:])
	}
	if rem := nbits & 7; rem != 0 {
		buf[len(buf)-1] &= byte(1)<<rem - 1
	}
	return bm
}

// checkMax verifies that the highest set bit max is below nbits.
func checkMax(maxBit, nbits uint64) error {
	if maxBit >= nbits {
		return fmt.Errorf("%w: bit %d, length %d", ErrOutOfRange, maxBit, nbits)
	}
	return nil
}

package interop

import (
	"fmt"
	"math"

	"github.com/hupe1980/bitview"
	kbitmap "github.com/kelindar/bitmap"
)

// ToKelindar copies bm into a kelindar bitmap. kelindar indexes bits with
// uint32, so bm must not exceed 2^32 bits.
func ToKelindar(bm *bitview.Bitmap) (kbitmap.Bitmap, error) {
	if bm.Len() > math.MaxUint32+1 {
		return nil, fmt.Errorf("%w: %d bits exceed the uint32 range", ErrOutOfRange, bm.Len())
	}
	return kbitmap.Bitmap(words(maskedBytes(bm))), nil
}

// FromKelindar copies kb into a bitmap of nbits.
func FromKelindar(kb kbitmap.Bitmap, nbits uint64) (*bitview.Bitmap, error) {
	if maxBit, ok := kb.Max(); ok {
		if err := checkMax(uint64(maxBit), nbits); err != nil {
			return nil, err
		}
	}
	return fromWords(kb, nbits), nil
}

package interop

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/bitview"
)

// ToBitSet copies bm into a bitset of the same length.
func ToBitSet(bm *bitview.Bitmap) *bitset.BitSet {
	return bitset.FromWithLength(uint(bm.Len()), words(maskedBytes(bm)))
}

// FromBitSet copies bs into a bitmap of bs.Len() bits.
func FromBitSet(bs *bitset.BitSet) *bitview.Bitmap {
	return fromWords(bs.Bytes(), uint64(bs.Len()))
}

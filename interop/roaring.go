package interop

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/bitview"
)

const roaringBatch = 1024

// ToRoaring returns a roaring bitmap holding the set bits of bm.
// Bitmaps longer than 2^32 bits do not fit roaring's uint32 index space.
func ToRoaring(bm *bitview.Bitmap) (*roaring.Bitmap, error) {
	if bm.Len() > math.MaxUint32+1 {
		return nil, fmt.Errorf("%w: %d bits exceed the uint32 range", ErrOutOfRange, bm.Len())
	}

	rb := roaring.New()
	batch := make([]uint32, 0, roaringBatch)

	for i, w := range words(bm.Bytes()) {
		for w != 0 {
			bit := uint64(i)*64 + uint64(bits.TrailingZeros64(w))
			w &= w - 1
			if bit >= bm.Len() {
				break
			}
			batch = append(batch, uint32(bit))
			if len(batch) == cap(batch) {
				rb.AddMany(batch)
				batch = batch[:0]
			}
		}
	}
	rb.AddMany(batch)
	return rb, nil
}

// FromRoaring returns a bitmap of nbits with the bits of rb set.
func FromRoaring(rb *roaring.Bitmap, nbits uint64) (*bitview.Bitmap, error) {
	if !rb.IsEmpty() {
		if err := checkMax(uint64(rb.Maximum()), nbits); err != nil {
			return nil, err
		}
	}

	bm := bitview.Make(nbits)
	buf := bm.Bytes()
	it := rb.Iterator()
	for it.HasNext() {
		bitview.Set(buf, uint64(it.Next()))
	}
	return bm, nil
}

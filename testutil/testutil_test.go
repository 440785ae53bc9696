package testutil

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBits(t *testing.T) {
	rng := NewRNG(4711)

	b := rng.Bits(128, 20)

	assert.Len(t, b, 20)
	assert.True(t, sort.SliceIsSorted(b, func(i, j int) bool { return b[i] < b[j] }))
	for i := 1; i < len(b); i++ {
		assert.NotEqual(t, b[i-1], b[i])
	}
	for _, v := range b {
		assert.Less(t, v, uint64(128))
	}
}

func TestBits_Clamped(t *testing.T) {
	rng := NewRNG(4711)

	assert.Len(t, rng.Bits(4, 10), 4)
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	first := rng.Bytes(16)

	rng.Reset()

	assert.Equal(t, first, rng.Bytes(16))
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestSparse(t *testing.T) {
	rng := NewRNG(4711)

	assert.Equal(t, make([]bool, 8), rng.Sparse(8, 0))
	for _, v := range rng.Sparse(8, 1) {
		assert.True(t, v)
	}
}

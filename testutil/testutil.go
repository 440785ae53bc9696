package testutil

import (
	"math/rand"
	"sort"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Bytes returns n pseudo-random bytes.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, n)
	_, _ = r.rand.Read(b)
	return b
}

// Bits returns count distinct bit indices in [0, nbits), sorted ascending.
// count is clamped to nbits.
func (r *RNG) Bits(nbits uint64, count int) []uint64 {
	if uint64(count) > nbits {
		count = int(nbits)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[uint64]struct{}, count)
	out := make([]uint64, 0, count)
	for len(out) < count {
		b := uint64(r.rand.Int63n(int64(nbits)))
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Sparse returns a bool per index in [0, n) that is true with probability density.
func (r *RNG) Sparse(n int, density float64) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]bool, n)
	for i := range out {
		out[i] = r.rand.Float64() < density
	}
	return out
}

// Package testutil provides testing utilities for bitview.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG for generating bit patterns.
//
//	rng := testutil.NewRNG(4711)
//	buf := rng.Bytes(64)          // random bitmap contents
//	bits := rng.Bits(512, 20)     // 20 distinct indices in [0, 512)
package testutil

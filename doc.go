// Package bitview provides bit-level access to flat byte buffers.
//
// A bitmap here is not an owned container: it is a caller-allocated byte
// slice interpreted as a sequence of bits. Bit b lives in byte b/8 at
// position b%8, least-significant bit first:
//
//	byte:      0                 1
//	bit:   7 6 5 4 3 2 1 0   15 14 13 12 11 10 9 8
//
// That layout is a wire contract. Snapshots, interop conversions and shared
// memory buffers produced by the subpackages all use it byte-for-byte.
//
// # Raw functions
//
// Test, Set, Clear, SetAll and ClearAll operate directly on a []byte and keep
// no state:
//
//	buf := make([]byte, 2)
//	bitview.Set(buf, 9)
//	bitview.Test(buf, 9) // true
//	bitview.SetAll(buf, 16) // buf == []byte{0xff, 0xff}
//
// An index past the end of the buffer panics with *BitOutOfRangeError
// instead of touching adjacent memory. SetAll and ClearAll cover nbits/8
// bytes, so a trailing partial byte is left alone.
//
// # Checked view
//
// Bitmap pairs a borrowed buffer with an explicit bit length and returns
// errors instead of panicking:
//
//	bm, err := bitview.New(buf, 12)
//	if err := bm.Set(11); err != nil { ... }
//	bm.SetAll() // touches bits [0, 12) only
//
// # Concurrency
//
// Nothing in this package synchronizes. Concurrent writers touching the same
// byte race; callers that share a buffer must bring their own locking.
//
// # Subpackages
//
//   - snapshot: self-describing binary encoding with optional LZ4/ZSTD
//   - blobstore: local, memory, MinIO, S3 and DynamoDB storage backends
//   - archive: named bitmap persistence on top of a blobstore
//   - interop: conversion to roaring, bits-and-blooms/bitset and kelindar/bitmap
//   - memfd: anonymous memory-backed buffers that can be shared by fd
package bitview

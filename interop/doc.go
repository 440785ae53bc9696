// Package interop converts between the flat byte layout and other bitmap
// libraries.
//
// The flat layout and a little-endian []uint64 word array describe the same
// bits, so bitset and kelindar conversions are word copies. Roaring is
// compressed and goes through set-bit iteration.
package interop

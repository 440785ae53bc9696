package hash

import (
	"hash"
	"hash/crc32"
)

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// NewCRC32C returns a new CRC32-Castagnoli hash.Hash32 for streaming input.
func NewCRC32C() hash.Hash32 {
	return crc32.New(crc32cTable)
}

// VerifyCRC32C reports whether data matches the expected checksum.
func VerifyCRC32C(data []byte, want uint32) bool {
	return CRC32C(data) == want
}

// CRC32CBigEndian returns the checksum as 4 big-endian bytes, the form
// object stores expect in checksum headers.
func CRC32CBigEndian(data []byte) []byte {
	sum := CRC32C(data)
	return []byte{byte(sum >> 24), byte(sum >> 16), byte(sum >> 8), byte(sum)}
}

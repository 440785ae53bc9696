// Package hash provides the CRC32-Castagnoli checksum used for integrity
// checks of snapshot payloads and object-store uploads.
//
// Go's crc32 package uses SSE4.2 / ARM CRC instructions when available.
//
//	sum := hash.CRC32C(payload)
//	ok := hash.VerifyCRC32C(payload, sum)
package hash

// Package snapshot encodes bitmaps into a self-describing binary format.
//
// A snapshot is a fixed 36-byte header followed by the payload. The payload
// is the bitmap's bytes in the flat LSB-first layout, optionally compressed
// with LZ4 or ZSTD. A CRC32-Castagnoli over the uncompressed bytes guards
// against corruption.
//
//	data, err := snapshot.Marshal(bm, snapshot.WithCompression(snapshot.ZSTD))
//	...
//	bm, hdr, err := snapshot.Unmarshal(data)
//
// Changing the header layout is a breaking change: bump Version and keep
// decoding older versions.
package snapshot

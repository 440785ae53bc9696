package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/bitview"
	"github.com/hupe1980/bitview/clock"
	"github.com/hupe1980/bitview/internal/conv"
	"github.com/hupe1980/bitview/internal/hash"
)

// Version is the current format version.
const Version uint8 = 1

// HeaderSize is the encoded header length in bytes.
const HeaderSize = 36

var magic = [4]byte{'B', 'V', 'S', 'N'}

var (
	// ErrInvalidMagic is returned when the input is not a snapshot.
	ErrInvalidMagic = errors.New("snapshot: invalid magic")
	// ErrUnsupportedVersion is returned for snapshots written by a newer format.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	// ErrUnsupportedCompression is returned for unknown compression codes.
	ErrUnsupportedCompression = errors.New("snapshot: unsupported compression")
	// ErrChecksumMismatch is returned when the decoded bytes fail the CRC check.
	ErrChecksumMismatch = errors.New("snapshot: checksum mismatch")
	// ErrCorrupt is returned for structurally invalid snapshots.
	ErrCorrupt = errors.New("snapshot: corrupt")
	// ErrTooLarge is returned for bitmaps whose byte length does not fit the format.
	ErrTooLarge = errors.New("snapshot: bitmap too large")
)

// Header describes an encoded bitmap.
//
// Layout (little-endian):
//
//	magic "BVSN" | version u8 | compression u8 | reserved u16 |
//	bits u64 | created_us u64 | raw_len u32 | stored_len u32 | crc32c(raw) u32
type Header struct {
	Version       uint8
	Compression   Compression
	Bits          uint64
	CreatedMicros uint64
	RawSize       uint32
	StoredSize    uint32
	Checksum      uint32
}

func (h *Header) marshal() []byte {
	b := make([]byte, HeaderSize)
	copy(b[0:4], magic[:])
	b[4] = h.Version
	b[5] = byte(h.Compression)
	binary.LittleEndian.PutUint64(b[8:], h.Bits)
	binary.LittleEndian.PutUint64(b[16:], h.CreatedMicros)
	binary.LittleEndian.PutUint32(b[24:], h.RawSize)
	binary.LittleEndian.PutUint32(b[28:], h.StoredSize)
	binary.LittleEndian.PutUint32(b[32:], h.Checksum)
	return b
}

func parseHeader(b []byte) (Header, error) {
	if !bytes.Equal(b[0:4], magic[:]) {
		return Header{}, ErrInvalidMagic
	}
	h := Header{
		Version:       b[4],
		Compression:   Compression(b[5]),
		Bits:          binary.LittleEndian.Uint64(b[8:]),
		CreatedMicros: binary.LittleEndian.Uint64(b[16:]),
		RawSize:       binary.LittleEndian.Uint32(b[24:]),
		StoredSize:    binary.LittleEndian.Uint32(b[28:]),
		Checksum:      binary.LittleEndian.Uint32(b[32:]),
	}
	if h.Version == 0 || h.Version > Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if h.Compression > ZSTD {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedCompression, h.Compression)
	}
	if uint64(h.RawSize) != bitview.BytesFor(h.Bits) {
		return Header{}, fmt.Errorf("%w: %d bits need %d bytes, header says %d", ErrCorrupt, h.Bits, bitview.BytesFor(h.Bits), h.RawSize)
	}
	// Compressed payloads are only kept when they are smaller than the raw bytes.
	switch {
	case h.Compression == None && h.StoredSize != h.RawSize:
		return Header{}, fmt.Errorf("%w: stored %d bytes, raw %d", ErrCorrupt, h.StoredSize, h.RawSize)
	case h.Compression != None && (h.StoredSize == 0 || h.StoredSize >= h.RawSize):
		return Header{}, fmt.Errorf("%w: %s payload of %d bytes for %d raw bytes", ErrCorrupt, h.Compression, h.StoredSize, h.RawSize)
	}
	return h, nil
}

// ParseHeader decodes the header at the start of data without touching
// the payload.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupt, len(data))
	}
	return parseHeader(data[:HeaderSize])
}

// Marshal encodes bm into a self-describing snapshot.
//
// The payload is exactly bm.Bytes(), so the bit layout survives the round
// trip byte-for-byte. Bits past bm.Len() in a trailing partial byte are
// zeroed in the payload.
func Marshal(bm *bitview.Bitmap, opts ...Option) ([]byte, error) {
	o := applyOptions(opts)

	raw := bm.Bytes()
	rawSize, err := conv.IntToUint32(len(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTooLarge, err)
	}
	if rem := bm.Len() & 7; rem != 0 {
		raw = append([]byte(nil), raw...)
		raw[len(raw)-1] &= byte(1)<<rem - 1
	}

	stored, applied, err := compress(raw, o.compression)
	if err != nil {
		return nil, err
	}
	storedSize, err := conv.IntToUint32(len(stored))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTooLarge, err)
	}

	created := o.createdMicros
	if created == 0 {
		created = clock.RealtimeMicros()
	}

	h := Header{
		Version:       Version,
		Compression:   applied,
		Bits:          bm.Len(),
		CreatedMicros: created,
		RawSize:       rawSize,
		StoredSize:    storedSize,
		Checksum:      hash.CRC32C(raw),
	}

	out := make([]byte, 0, HeaderSize+len(stored))
	out = append(out, h.marshal()...)
	out = append(out, stored...)
	return out, nil
}

// Encode writes the snapshot of bm to w and returns the bytes written.
func Encode(w io.Writer, bm *bitview.Bitmap, opts ...Option) (int64, error) {
	data, err := Marshal(bm, opts...)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Unmarshal decodes a snapshot produced by Marshal. Trailing bytes after
// the payload are rejected.
func Unmarshal(data []byte) (*bitview.Bitmap, Header, error) {
	if len(data) < HeaderSize {
		return nil, Header{}, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupt, len(data))
	}
	h, err := parseHeader(data[:HeaderSize])
	if err != nil {
		return nil, Header{}, err
	}
	payload := data[HeaderSize:]
	if uint64(len(payload)) != uint64(h.StoredSize) {
		return nil, Header{}, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrCorrupt, len(payload), h.StoredSize)
	}
	bm, err := decodePayload(h, payload)
	if err != nil {
		return nil, Header{}, err
	}
	return bm, h, nil
}

// Decode reads one snapshot from r. It consumes exactly the header and the
// payload, so snapshots can be concatenated in a stream.
func Decode(r io.Reader) (*bitview.Bitmap, Header, error) {
	hb := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, hb); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, Header{}, fmt.Errorf("%w: truncated header", ErrCorrupt)
		}
		return nil, Header{}, err
	}
	h, err := parseHeader(hb)
	if err != nil {
		return nil, Header{}, err
	}
	payload, err := io.ReadAll(io.LimitReader(r, int64(h.StoredSize)))
	if err != nil {
		return nil, Header{}, err
	}
	if uint64(len(payload)) != uint64(h.StoredSize) {
		return nil, Header{}, fmt.Errorf("%w: truncated payload: %d of %d bytes", ErrCorrupt, len(payload), h.StoredSize)
	}
	bm, err := decodePayload(h, payload)
	if err != nil {
		return nil, Header{}, err
	}
	return bm, h, nil
}

func decodePayload(h Header, payload []byte) (*bitview.Bitmap, error) {
	raw, err := decompress(payload, h.Compression, int(h.RawSize))
	if err != nil {
		return nil, err
	}
	if !hash.VerifyCRC32C(raw, h.Checksum) {
		return nil, ErrChecksumMismatch
	}
	return bitview.New(raw, h.Bits)
}

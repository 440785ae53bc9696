package snapshot

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the payload compression algorithm.
type Compression uint8

const (
	// None stores the bitmap bytes as-is.
	None Compression = 0
	// LZ4 uses LZ4 block compression (fast, good for hot data).
	LZ4 Compression = 1
	// ZSTD uses Zstandard (better ratio, good for cold data).
	ZSTD Compression = 2
)

// minSavings is the fraction a compressor must save before its output is
// kept; otherwise the payload is stored uncompressed.
const minSavings = 0.10

// An LZ4 block expands by less than 255x: every extra 255 bytes of match
// length costs at least one input byte.
const lz4MaxRatio = 255

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression maps a name produced by String back to a Compression.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return ZSTD, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnsupportedCompression, name)
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(math.MaxUint32))
	return dec
}

// compress returns the stored payload and the compression actually applied.
// Output that does not save at least minSavings falls back to None.
func compress(raw []byte, c Compression) ([]byte, Compression, error) {
	if c == None || len(raw) == 0 {
		return raw, None, nil
	}

	var out []byte
	switch c {
	case LZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, dst, nil)
		if err != nil {
			return nil, None, fmt.Errorf("lz4: %w", err)
		}
		// n == 0 means incompressible.
		out = dst[:n]
	case ZSTD:
		enc := getZstdEncoder()
		out = enc.EncodeAll(raw, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, None, fmt.Errorf("%w: %s", ErrUnsupportedCompression, c)
	}

	if len(out) == 0 || float64(len(out)) > float64(len(raw))*(1-minSavings) {
		return raw, None, nil
	}
	return out, c, nil
}

func decompress(stored []byte, c Compression, rawLen int) ([]byte, error) {
	switch c {
	case None:
		if len(stored) != rawLen {
			return nil, fmt.Errorf("%w: stored %d bytes, header says %d", ErrCorrupt, len(stored), rawLen)
		}
		return bytes.Clone(stored), nil
	case LZ4:
		if uint64(rawLen) > uint64(len(stored))*lz4MaxRatio {
			return nil, fmt.Errorf("%w: lz4 payload of %d bytes cannot expand to %d", ErrCorrupt, len(stored), rawLen)
		}
		raw := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(stored, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %w", ErrCorrupt, err)
		}
		if n != rawLen {
			return nil, fmt.Errorf("%w: lz4 produced %d bytes, want %d", ErrCorrupt, n, rawLen)
		}
		return raw, nil
	case ZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)

		var zh zstd.Header
		if err := zh.Decode(stored); err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
		}
		if !zh.HasFCS || zh.FrameContentSize != uint64(rawLen) {
			return nil, fmt.Errorf("%w: zstd frame does not declare %d bytes", ErrCorrupt, rawLen)
		}

		raw, err := dec.DecodeAll(stored, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
		}
		if len(raw) != rawLen {
			return nil, fmt.Errorf("%w: zstd produced %d bytes, want %d", ErrCorrupt, len(raw), rawLen)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, c)
	}
}

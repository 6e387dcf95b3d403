// Package snapshot persists the fitted state of a StatsContext: a one-byte codec
// header, followed by the gob-encoded workflow.StateSnapshot, compressed by that codec.
package snapshot

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Codec identifies the compression applied to a snapshot
type Codec byte

const (
	// LZ4Codec compresses snapshots with lz4. It is the default.
	LZ4Codec Codec = iota
	// ZstdCodec compresses snapshots with zstd
	ZstdCodec
	// NoCodec stores snapshots uncompressed
	NoCodec
)

// String returns the name of a Codec
func (c Codec) String() string {
	switch c {
	case LZ4Codec:
		return "lz4"
	case ZstdCodec:
		return "zstd"
	case NoCodec:
		return "none"
	default:
		return fmt.Sprintf("unknown(%d)", byte(c))
	}
}

func (c Codec) valid() bool {
	return c <= NoCodec
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// compress wraps w such that data written to the result is compressed with the codec
func (c Codec) compress(w io.Writer, conf *Conf) (io.WriteCloser, error) {
	switch c {
	case LZ4Codec:
		return lz4.NewWriter(w), nil
	case ZstdCodec:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(conf.ZstdLevel))
	case NoCodec:
		return nopWriteCloser{w}, nil
	default:
		return nil, fmt.Errorf("Unsupported snapshot codec %s", c)
	}
}

// decompress wraps r such that data read from the result is decompressed with the codec
func (c Codec) decompress(r io.Reader) (io.Reader, func(), error) {
	switch c {
	case LZ4Codec:
		return lz4.NewReader(r), func() {}, nil
	case ZstdCodec:
		decompressor, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return decompressor, decompressor.Close, nil
	case NoCodec:
		return r, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("Unsupported snapshot codec %s", c)
	}
}

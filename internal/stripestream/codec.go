// Package stripestream implements the stripe data block codec: the
// byte-level compress/decompress step applied to a stripe's row buffer
// before (resp. after) it is written to (resp. read from) the data file.
// Codec selection is driven by the io.compression_codec configuration
// key and resolved once per reader session via Lookup.
package stripestream

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/lychee-technology/riff"
)

// Codec compresses and decompresses a single stripe's raw row buffer.
// Implementations must round-trip exactly: Decompress(Compress(b)) == b.
type Codec interface {
	Name() string
	Compress(raw []byte) ([]byte, error)
	Decompress(compressed []byte) ([]byte, error)
}

// Lookup resolves a configured codec name to its Codec implementation.
// The empty string and "none" both mean no compression. Unknown names
// fail with a SchemaError: a reader should not silently fall back to an
// unintended codec for a misspelled configuration value.
func Lookup(name string) (Codec, error) {
	switch name {
	case "", "none":
		return noneCodec{}, nil
	case "zstd":
		return newZstdCodec()
	case "lz4":
		return lz4Codec{}, nil
	default:
		return nil, riff.NewSchemaError(riff.ErrCodeUnknownIndexed, "unknown compression codec: "+name)
	}
}

type noneCodec struct{}

func (noneCodec) Name() string                        { return "none" }
func (noneCodec) Compress(raw []byte) ([]byte, error) { return raw, nil }
func (noneCodec) Decompress(c []byte) ([]byte, error) { return c, nil }

type zstdCodec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func newZstdCodec() (*zstdCodec, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, riff.NewIOError("constructing zstd encoder", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, riff.NewIOError("constructing zstd decoder", err)
	}
	return &zstdCodec{encoder: enc, decoder: dec}, nil
}

func (z *zstdCodec) Name() string { return "zstd" }

func (z *zstdCodec) Compress(raw []byte) ([]byte, error) {
	return z.encoder.EncodeAll(raw, nil), nil
}

func (z *zstdCodec) Decompress(compressed []byte) ([]byte, error) {
	out, err := z.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, riff.NewIOError("zstd decompress failed", err)
	}
	return out, nil
}

type lz4Codec struct{}

func (lz4Codec) Name() string { return "lz4" }

func (lz4Codec) Compress(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(raw); err != nil {
		return nil, riff.NewIOError("lz4 compress failed", err)
	}
	if err := w.Close(); err != nil {
		return nil, riff.NewIOError("lz4 compress flush failed", err)
	}
	return buf.Bytes(), nil
}

func (lz4Codec) Decompress(compressed []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(compressed))
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, riff.NewIOError("lz4 decompress failed", err)
	}
	return out, nil
}

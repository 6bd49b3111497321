package stripestream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup_UnknownCodec(t *testing.T) {
	_, err := Lookup("snappy")
	require.Error(t, err)
}

func TestCodecs_RoundTrip(t *testing.T) {
	raw := []byte("the quick brown fox jumps over the lazy dog, repeated: the quick brown fox jumps over the lazy dog")

	for _, name := range []string{"", "none", "zstd", "lz4"} {
		codec, err := Lookup(name)
		require.NoError(t, err)

		compressed, err := codec.Compress(raw)
		require.NoError(t, err)

		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Equal(t, raw, decompressed)
	}
}

func TestZstdCodec_CompressesRepetitiveData(t *testing.T) {
	codec, err := Lookup("zstd")
	require.NoError(t, err)

	raw := make([]byte, 4096)
	compressed, err := codec.Compress(raw)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(raw))
}

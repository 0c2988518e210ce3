package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEncoding(t *testing.T) {
	tests := []struct {
		base     int
		chunkLen int
		glyphs   int
	}{
		{2, 1, 8},
		{4, 1, 4},
		{8, 3, 8},
		{16, 1, 2},
		{32, 5, 8},
		{64, 3, 4},
	}
	for _, tt := range tests {
		enc, err := NewEncoding(tt.base, false)
		require.Nil(t, err, "base %d", tt.base)
		require.Equal(t, tt.chunkLen, enc.ChunkLen(), "base %d", tt.base)
		require.Equal(t, tt.glyphs, enc.GlyphsPerChunk(), "base %d", tt.base)
	}

	_, err := NewEncoding(10, false)
	require.NotNil(t, err)
	_, err = NewEncoding(64, true)
	require.NotNil(t, err, "uppercase is unavailable for base 64")
}

func TestAppendChunk(t *testing.T) {
	tests := []struct {
		base      int
		uppercase bool
		chunk     uint64
		want      string
	}{
		{16, false, 0x00, "00"},
		{16, false, 0xff, "ff"},
		{16, false, 0xab, "ab"},
		{16, true, 0xab, "AB"},
		{2, false, 0xa5, "10100101"},
		{4, false, 0xe4, "3210"},
		{8, false, 0, "00000000"},
		// One 3-byte chunk of base 64. The glyph values match standard
		// base64 (19, 22, 5, 46) but the alphabet puts digits first.
		{64, false, 0x4d616e, "jm5K"},
	}
	for _, tt := range tests {
		enc, err := NewEncoding(tt.base, tt.uppercase)
		require.Nil(t, err)
		got := enc.AppendChunk(nil, tt.chunk)
		require.Equal(t, tt.want, string(got),
			"base %d chunk %#x", tt.base, tt.chunk)
	}
}

func TestAppendChunkIsTotal(t *testing.T) {
	// Every byte value is representable in every supported base at the
	// base's fixed glyph width.
	for _, base := range []int{2, 4, 16} {
		enc, err := NewEncoding(base, false)
		require.Nil(t, err)
		seen := map[string]bool{}
		for b := 0; b < 256; b++ {
			s := string(enc.AppendChunk(nil, uint64(b)))
			require.Len(t, s, enc.GlyphsPerChunk())
			require.False(t, seen[s], "duplicate rendering %q", s)
			seen[s] = true
		}
	}
}

func TestGlyphs(t *testing.T) {
	enc, err := NewEncoding(16, false)
	require.Nil(t, err)
	require.Equal(t, []uint64{0xa, 0xb}, enc.Glyphs(0xab))
}

func TestChunkValue(t *testing.T) {
	require.Equal(t, uint64(0xab), ChunkValue([]byte{0xab}, 1, false))
	require.Equal(t, uint64(0x010203), ChunkValue([]byte{1, 2, 3}, 3, false))
	require.Equal(t, uint64(0x030201), ChunkValue([]byte{1, 2, 3}, 3, true))
	// Short chunks at end of input are zero-padded.
	require.Equal(t, uint64(0x010200), ChunkValue([]byte{1, 2}, 3, false))
	require.Equal(t, uint64(0x000201), ChunkValue([]byte{1, 2}, 3, true))
}

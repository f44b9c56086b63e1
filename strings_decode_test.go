package lnk

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"
)

func TestDecodeUTF16LE(t *testing.T) {
	units := utf16.Encode([]rune("hello"))
	raw := make([]byte, len(units)*2)
	for i, u := range units {
		raw[i*2] = byte(u)
		raw[i*2+1] = byte(u >> 8)
	}
	s, err := decodeUTF16LE(raw)
	require.NoError(t, err)
	require.Equal(t, "hello", s)
}

func TestDecodeUTF16LEOddLength(t *testing.T) {
	_, err := decodeUTF16LE([]byte{0x01, 0x02, 0x03})
	require.Error(t, err)
}

// TestSizeProbeFillUTF8 is spec.md §8 invariant 3:
// size_probe_utf8(S) = 1 + utf8_byte_length(decoded(S)).
func TestSizeProbeFillUTF8(t *testing.T) {
	s := "hello"
	need := sizeProbeUTF8(s)
	require.Equal(t, len(s)+1, need)

	buf := make([]byte, need)
	n, err := fillUTF8(buf, s)
	require.NoError(t, err)
	require.Equal(t, need, n)
	require.Equal(t, s, string(buf[:n-1]))
	require.Equal(t, byte(0), buf[n-1])
}

func TestFillUTF8BufferTooSmall(t *testing.T) {
	buf := make([]byte, 2)
	_, err := fillUTF8(buf, "hello")
	require.ErrorIs(t, err, ErrInvalidBuffer)
}

// TestSizeProbeFillUTF16 is spec.md §8 invariant 4, the UTF-16 analogue.
func TestSizeProbeFillUTF16(t *testing.T) {
	s := "hello"
	need := sizeProbeUTF16(s)
	require.Equal(t, len(s)+1, need)

	buf := make([]uint16, need)
	n, err := fillUTF16(buf, s)
	require.NoError(t, err)
	require.Equal(t, need, n)
	require.Equal(t, uint16(0), buf[n-1])
}

func TestFillUTF16BufferTooSmall(t *testing.T) {
	buf := make([]uint16, 1)
	_, err := fillUTF16(buf, "hello")
	require.ErrorIs(t, err, ErrInvalidBuffer)
}

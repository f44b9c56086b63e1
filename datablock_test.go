package lnk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseDataBlocksTracker mirrors spec.md §8's S4 scenario: a single
// distributed-link-tracker block (signature 0xA0000003) followed by the
// size<4 terminator.
func TestParseDataBlocksTracker(t *testing.T) {
	data := append([]byte{}, buildTrackerBlock("DESKTOP-ABC")...)
	data = append(data, terminatorBlock()...)

	blocks, err := parseDataBlocks(streamFromBytesPlain(data), 0, int64(len(data)), DefaultASCIICodepage, nil)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Equal(t, SignatureDistributedLinkTracker, blocks[0].Signature)

	tracker, ok := blocks[0].Parsed.(*TrackerBlock)
	require.True(t, ok)
	require.Equal(t, "DESKTOP-ABC", tracker.MachineID)
}

func TestParseDataBlocksEmpty(t *testing.T) {
	data := terminatorBlock()
	blocks, err := parseDataBlocks(streamFromBytesPlain(data), 0, int64(len(data)), DefaultASCIICodepage, nil)
	require.NoError(t, err)
	require.Empty(t, blocks)
}

// TestParseDataBlocksTruncated covers spec.md §8's S5 scenario: a block
// that declares a size larger than the remaining stream.
func TestParseDataBlocksTruncated(t *testing.T) {
	data := le32Bytes(100) // declares 100 bytes, but nothing follows
	blocks, err := parseDataBlocks(streamFromBytesPlain(data), 0, int64(len(data)), DefaultASCIICodepage, nil)
	require.Error(t, err)
	require.True(t, IsTruncated(err))
	require.Empty(t, blocks)
}

func TestParseDataBlocksAbort(t *testing.T) {
	data := append([]byte{}, buildTrackerBlock("M")...)
	data = append(data, terminatorBlock()...)

	called := false
	abort := func() bool {
		called = true
		return true
	}
	_, err := parseDataBlocks(streamFromBytesPlain(data), 0, int64(len(data)), DefaultASCIICodepage, abort)
	require.True(t, called)
	require.True(t, IsAbortRequested(err))
}

func TestParseDataBlocksUnknownSignaturePreserved(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04}
	block := append(le32Bytes(uint32(8+len(payload))), le32Bytes(0xDEADBEEF)...)
	block = append(block, payload...)
	data := append(block, terminatorBlock()...)

	blocks, err := parseDataBlocks(streamFromBytesPlain(data), 0, int64(len(data)), DefaultASCIICodepage, nil)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Nil(t, blocks[0].Parsed)
	require.Equal(t, payload, blocks[0].Raw)
}

package lnk

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func minimalShortcutBytes() []byte {
	b := newLnkBuilder()
	b.withASCIIString(HasDescriptionString, "Notepad")
	data := b.build()
	data = append(data, terminatorBlock()...)
	return data
}

func TestFileOpenStreamLifecycle(t *testing.T) {
	data := minimalShortcutBytes()
	f := New()

	err := f.OpenStream(OpenObject(bytes.NewReader(data), int64(len(data))), nil)
	require.NoError(t, err)

	desc, present, err := f.Description()
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, "Notepad", desc)

	require.NoError(t, f.Close())

	// Accessor calls after Close fail with ValueMissing (spec.md §4.8).
	_, _, err = f.Description()
	require.True(t, IsValueMissing(err))

	// The handle can be reopened after Close.
	err = f.OpenStream(OpenObject(bytes.NewReader(data), int64(len(data))), nil)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestFileOpenTwiceFails(t *testing.T) {
	data := minimalShortcutBytes()
	f := New()
	require.NoError(t, f.OpenStream(OpenObject(bytes.NewReader(data), int64(len(data))), nil))

	err := f.OpenStream(OpenObject(bytes.NewReader(data), int64(len(data))), nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrAlreadyOpen)
}

func TestFileFreeThenOpenFails(t *testing.T) {
	data := minimalShortcutBytes()
	f := New()
	require.NoError(t, f.Free())

	err := f.OpenStream(OpenObject(bytes.NewReader(data), int64(len(data))), nil)
	require.Error(t, err)
}

func TestFileOpenRejectsZeroByteFile(t *testing.T) {
	f := New()
	err := f.OpenStream(OpenObject(bytes.NewReader(nil), 0), nil)
	require.Error(t, err)
	require.True(t, IsTruncated(err))
}

func TestFileOpenRejectsWrongCLSID(t *testing.T) {
	b := newLnkBuilder()
	data := b.header()
	data[4] ^= 0xFF

	f := New()
	err := f.OpenStream(OpenObject(bytes.NewReader(data), int64(len(data))), nil)
	require.Error(t, err)
	require.True(t, IsSignatureMismatch(err))
}

// TestFileOpenFlagSetButSegmentAbsent covers a header that claims a
// description string is present but the stream ends before it: a
// truncated-field condition, not a different kind of error.
func TestFileOpenFlagSetButSegmentAbsent(t *testing.T) {
	b := newLnkBuilder()
	b.flags |= HasDescriptionString
	data := b.build() // no string bytes appended despite the flag

	f := New()
	err := f.OpenStream(OpenObject(bytes.NewReader(data), int64(len(data))), nil)
	require.Error(t, err)
	require.True(t, IsTruncated(err))
}

// TestFileOpenOddByteUnicodeString covers an IS_UNICODE description whose
// declared character count times 2 doesn't evenly divide what's on disk
// (in this case, the stream is simply short one byte).
func TestFileOpenOddByteUnicodeString(t *testing.T) {
	b := newLnkBuilder()
	b.withUnicodeString(HasDescriptionString, "hi")
	data := b.build()
	data = data[:len(data)-1] // truncate by one byte

	f := New()
	err := f.OpenStream(OpenObject(bytes.NewReader(data), int64(len(data))), nil)
	require.Error(t, err)
	require.True(t, IsTruncated(err))
}

// TestFileOpenAbortDuringBlockLoop is spec.md §8's S6 scenario: an
// AbortCheck hook that fires takes effect at the next safe point during
// Open's parse sequence.
func TestFileOpenAbortDuringBlockLoop(t *testing.T) {
	b := newLnkBuilder()
	data := b.build()
	data = append(data, buildTrackerBlock("M")...)
	data = append(data, terminatorBlock()...)

	f := New()
	aborted := false
	polls := 0
	opts := &Options{AbortCheck: func() bool {
		// Polls 1 and 2 come before location information and before the
		// block loop; poll 3 opens the loop's first pass and poll 4 its
		// second, after the tracker block has been parsed.
		polls++
		if polls < 4 {
			return false
		}
		aborted = true
		return true
	}}
	err := f.OpenStream(OpenObject(bytes.NewReader(data), int64(len(data))), opts)
	require.True(t, aborted)
	require.True(t, IsAbortRequested(err))

	// An aborted Open leaves the handle initialized, not open: a fresh
	// Open attempt (without aborting) should succeed.
	err = f.OpenStream(OpenObject(bytes.NewReader(data), int64(len(data))), nil)
	require.NoError(t, err)
}

func TestSetASCIICodepageRejectsUnsupported(t *testing.T) {
	f := New()
	err := f.SetASCIICodepage(99999)
	require.Error(t, err)
}

func TestSetASCIICodepageAccepted(t *testing.T) {
	f := New()
	require.NoError(t, f.SetASCIICodepage(932))
	require.Equal(t, uint32(932), f.ASCIICodepage())
}

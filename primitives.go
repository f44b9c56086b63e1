package lnk

import (
	"encoding/binary"
)

// readUint8 through readUint64 are bounds-checked little-endian reads off a
// ByteStream at a given offset, the same shape as saferwall-pe/helper.go's
// ReadUint8/16/32/64 but routed through ByteStream.ReadAt instead of a raw
// mmap'd slice, so PathStream and ObjectStream share one code path.

func readUint8(s ByteStream, offset int64) (uint8, error) {
	var buf [1]byte
	if err := readFull(s, buf[:], offset); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func readUint16(s ByteStream, offset int64) (uint16, error) {
	var buf [2]byte
	if err := readFull(s, buf[:], offset); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func readUint32(s ByteStream, offset int64) (uint32, error) {
	var buf [4]byte
	if err := readFull(s, buf[:], offset); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readUint64(s ByteStream, offset int64) (uint64, error) {
	var buf [8]byte
	if err := readFull(s, buf[:], offset); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// readFull reads exactly len(p) bytes at offset, returning ErrTruncated on
// a short read. This is the InputError::Truncated boundary spec.md §4.1's
// contract names: "a short read of a required field as InputError::Truncated".
func readFull(s ByteStream, p []byte, offset int64) error {
	n, err := s.ReadAt(p, offset)
	if n == len(p) {
		return nil
	}
	if err != nil {
		return errorsWrap(err, ErrTruncated)
	}
	return ErrTruncated
}

// readBytes reads exactly n bytes at offset into a fresh slice.
func readBytes(s ByteStream, offset int64, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if err := readFull(s, buf, offset); err != nil {
		return nil, err
	}
	return buf, nil
}

// filetimeEpochTicks is the number of 100-ns ticks between the FILETIME
// epoch (1601-01-01 UTC) and the Unix epoch (1970-01-01 UTC): used only by
// callers that want to convert; the core itself never performs this
// conversion (spec.md §4.9: "conversion is the caller's responsibility").
const filetimeEpochTicks = 116444736000000000

// FILETimeToUnix converts a raw 64-bit FILETIME tick count (100-ns units
// since 1601-01-01 UTC) to (seconds, nanoseconds) since the Unix epoch. A
// zero FILETIME maps to a negative offset, same as the Windows convention
// for "not set".
func FILETimeToUnix(ticks uint64) (sec int64, nsec int64) {
	if ticks < filetimeEpochTicks {
		unixTicks := int64(ticks) - filetimeEpochTicks
		return unixTicks / 10000000, (unixTicks % 10000000) * 100
	}
	unixTicks := int64(ticks - filetimeEpochTicks)
	return unixTicks / 10000000, (unixTicks % 10000000) * 100
}

package lnk

import (
	"bytes"
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"
)

// utf16LEDecoder is shared across every Unicode string accessor, the same
// decoder saferwall-pe/helper.go's DecodeUTF16String builds ad hoc per
// call.
var utf16LEDecoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

// decodeUTF16LE decodes raw UTF-16LE bytes (2*n bytes for n UTF-16 code
// units, no NUL terminator expected — LNK strings carry an explicit
// character count per spec.md §4.6, unlike saferwall-pe's NUL-seeking
// DecodeUTF16String) into a UTF-8 string.
func decodeUTF16LE(b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	if len(b)%2 != 0 {
		return "", newErrorf(KindInput, CodeInvalidData,
			"odd byte count %d for a UTF-16LE string", len(b))
	}
	out, err := utf16LEDecoder.Bytes(b)
	if err != nil {
		return "", errorsWrap(err, ErrInvalidData)
	}
	return string(out), nil
}

// decodeCodepage decodes b (NUL bytes trimmed) in the given ASCII
// codepage into a UTF-8 string. Falls back to Windows-1252 semantics (the
// library default) for an unrecognized codepage rather than failing the
// parse — codepage selection is process-level configuration, not a
// per-string validity concern.
func decodeCodepage(b []byte, codepage uint32) (string, error) {
	b = bytes.TrimRight(b, "\x00")
	if len(b) == 0 {
		return "", nil
	}
	enc, ok := lookupCodepage(codepage)
	if !ok {
		enc, _ = lookupCodepage(DefaultASCIICodepage)
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", errorsWrap(err, ErrInvalidData)
	}
	return string(out), nil
}

// sizeProbeUTF8 returns the byte count a fillUTF8 call needs, including the
// terminating NUL — spec.md §8 invariant 3:
// size_probe_utf8(S) = 1 + utf8_byte_length(decoded(S)).
func sizeProbeUTF8(s string) int {
	return len(s) + 1
}

// fillUTF8 writes s plus a terminating NUL into buf, which must be at
// least sizeProbeUTF8(s) bytes. Returns the number of bytes written
// (including the terminator) or ErrInvalidBuffer if buf is too small.
func fillUTF8(buf []byte, s string) (int, error) {
	need := sizeProbeUTF8(s)
	if len(buf) < need {
		return 0, ErrInvalidBuffer
	}
	n := copy(buf, s)
	buf[n] = 0
	return need, nil
}

// sizeProbeUTF16 returns the uint16 count a fillUTF16 call needs, including
// the terminating NUL code unit.
func sizeProbeUTF16(s string) int {
	return len(utf16.Encode([]rune(s))) + 1
}

// fillUTF16 writes s, UTF-16 encoded, plus a terminating NUL code unit into
// buf, which must be at least sizeProbeUTF16(s) uint16s.
func fillUTF16(buf []uint16, s string) (int, error) {
	units := utf16.Encode([]rune(s))
	need := len(units) + 1
	if len(buf) < need {
		return 0, ErrInvalidBuffer
	}
	copy(buf, units)
	buf[len(units)] = 0
	return need, nil
}

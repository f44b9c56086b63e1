package lnk

import (
	"github.com/google/uuid"
)

// guidSize is the on-disk size of a GUID/CLSID field.
const guidSize = 16

// decodeGUID reads a 16-byte mixed-endian GUID the way spec.md §6 defines
// it: little-endian for the first three fields, big-endian for the last
// two (the standard Windows GUID wire layout). google/uuid's native byte
// layout is big-endian throughout (RFC 4122), so the first 8 bytes are
// byte-swapped field-by-field before handing them to uuid.FromBytes —
// replacing saferwall-pe/debug.go's hand-rolled GUID struct + fmt.Sprintf
// with a maintained type that also gives us Parse for the round-trip
// invariant in spec.md §8.6.
func decodeGUID(b []byte) (uuid.UUID, error) {
	if len(b) < guidSize {
		return uuid.UUID{}, ErrInvalidBuffer
	}
	var be [16]byte
	be[0], be[1], be[2], be[3] = b[3], b[2], b[1], b[0]
	be[4], be[5] = b[5], b[4]
	be[6], be[7] = b[7], b[6]
	copy(be[8:], b[8:16])
	return uuid.FromBytes(be[:])
}

// encodeGUID is decodeGUID's inverse: the droid GUID-fill accessors use it
// to hand back the on-disk mixed-endian byte layout rather than
// google/uuid's internal big-endian array, and tests use it to build
// synthetic fixtures and exercise the round-trip invariant (spec.md §8.6).
func encodeGUID(id uuid.UUID) []byte {
	be := id[:]
	out := make([]byte, guidSize)
	out[0], out[1], out[2], out[3] = be[3], be[2], be[1], be[0]
	out[4], out[5] = be[5], be[4]
	out[6], out[7] = be[7], be[6]
	copy(out[8:16], be[8:16])
	return out
}

// lnkCLSID is the fixed class identifier every well-formed LNK header
// carries: 00021401-0000-0000-C000-000000000046.
var lnkCLSID = uuid.MustParse("00021401-0000-0000-C000-000000000046")

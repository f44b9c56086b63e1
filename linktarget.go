package lnk

// LinkTargetIdentifier is the optional leading Shell Item Identifier List
// (spec.md §3/§4.4). Its payload is kept byte-for-byte; the core never
// interprets or re-serializes it (deep shell-item parsing is an external
// collaborator's job, spec.md §1/§9).
type LinkTargetIdentifier struct {
	Data []byte
}

// parseLinkTargetIdentifier reads the optional 16-bit length-prefixed
// identifier list starting at offset, the same length-prefixed
// opaque-blob-capture shape saferwall-pe/resource.go uses for resource
// data entries. Returns (nil, nextOffset, nil) if the HAS_LINK_TARGET_IDENTIFIER
// flag is clear. An explicit length of 0 still produces a present record
// with an empty payload (spec.md §3 edge case).
func parseLinkTargetIdentifier(s ByteStream, offset int64, flags DataFlags) (*LinkTargetIdentifier, int64, error) {
	if !flags.Has(HasLinkTargetIdentifier) {
		return nil, offset, nil
	}

	length, err := readUint16(s, offset)
	if err != nil {
		return nil, offset, err
	}
	payload, err := readBytes(s, offset+2, int(length))
	if err != nil {
		return nil, offset, err
	}
	return &LinkTargetIdentifier{Data: payload}, offset + 2 + int64(length), nil
}

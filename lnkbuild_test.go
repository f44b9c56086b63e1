package lnk

import (
	"bytes"
	"encoding/binary"
)

// lnkBuilder assembles a synthetic .lnk byte buffer for tests. There's no
// fixture directory in this retrieval pack (the teacher's test/ binaries
// weren't retrieved), so every test constructs its input in-memory, the
// same style other_examples/reujab-lnk's Open is exercised against in its
// own package tests.
type lnkBuilder struct {
	flags DataFlags
	attrs FileAttributeFlags
	buf   bytes.Buffer
}

func newLnkBuilder() *lnkBuilder { return &lnkBuilder{} }

func (b *lnkBuilder) header() []byte {
	h := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(h[0:], headerSize)
	copy(h[4:20], encodeGUID(lnkCLSID))
	binary.LittleEndian.PutUint32(h[20:], uint32(b.flags))
	binary.LittleEndian.PutUint32(h[24:], uint32(b.attrs))
	binary.LittleEndian.PutUint32(h[60:], uint32(ShowNormal))
	return h
}

// build concatenates the header with whatever segment bytes were appended
// via the with* helpers and raw, in the fixed on-disk order the caller is
// responsible for appending in.
func (b *lnkBuilder) build() []byte {
	out := append([]byte{}, b.header()...)
	out = append(out, b.buf.Bytes()...)
	return out
}

func (b *lnkBuilder) withLinkTargetIdentifier(data []byte) *lnkBuilder {
	b.flags |= HasLinkTargetIdentifier
	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(data)))
	b.buf.Write(lenBuf[:])
	b.buf.Write(data)
	return b
}

func (b *lnkBuilder) withASCIIString(bit DataFlags, s string) *lnkBuilder {
	b.flags |= bit
	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(s)))
	b.buf.Write(lenBuf[:])
	b.buf.WriteString(s)
	return b
}

func (b *lnkBuilder) withUnicodeString(bit DataFlags, s string) *lnkBuilder {
	b.flags |= bit | IsUnicode
	units := utf16Encode(s)
	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(units)))
	b.buf.Write(lenBuf[:])
	for _, u := range units {
		var unitBuf [2]byte
		binary.LittleEndian.PutUint16(unitBuf[:], u)
		b.buf.Write(unitBuf[:])
	}
	return b
}

func (b *lnkBuilder) raw(p []byte) *lnkBuilder {
	b.buf.Write(p)
	return b
}

func le32Bytes(v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return buf[:]
}

func le16Bytes(v uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return buf[:]
}

func utf16Encode(s string) []uint16 {
	units := make([]uint16, sizeProbeUTF16(s))
	n, _ := fillUTF16(units, s)
	return units[:n-1] // drop the NUL terminator fillUTF16 added.
}

// buildLocationInformation assembles a LocationInformation block with a
// local base path, no volume/network info, and an empty common path
// suffix. Because parseLocationInformation always reads the two Unicode
// sub-offset fields whenever the structure's total size exceeds the
// 0x1C fixed header (true here, since path data follows), the fixed
// portion is 0x24 bytes wide with both Unicode offsets set to 0 (absent).
func buildLocationInformation(localPath string) []byte {
	const fixedSize = 0x24
	localPathField := append([]byte(localPath), 0)
	suffixOff := uint32(fixedSize) + uint32(len(localPathField))
	structSize := suffixOff + 1 // + the empty suffix's single NUL byte

	out := make([]byte, 0, structSize)
	out = append(out, le32Bytes(structSize)...) // 0: total size
	out = append(out, le32Bytes(fixedSize)...)  // 4: unused by this parser
	out = append(out, le32Bytes(0)...)          // 8: flags (no volume/net info)
	out = append(out, le32Bytes(0)...)          // 12: volume id offset
	out = append(out, le32Bytes(fixedSize)...)  // 16: local base path offset
	out = append(out, le32Bytes(0)...)          // 20: common network offset
	out = append(out, le32Bytes(suffixOff)...)  // 24: suffix offset
	out = append(out, le32Bytes(0)...)          // 28: local base path offset (Unicode), absent
	out = append(out, le32Bytes(0)...)          // 32: suffix offset (Unicode), absent
	out = append(out, localPathField...)
	out = append(out, 0) // empty suffix string
	return out
}

// buildLocationInformationVolume assembles a LocationInformation block
// whose HasVolumeInfo branch is populated: a VolumeID sub-structure
// (drive type, serial number, ASCII label) followed by a local base path,
// matching the same 0x24-byte fixed-header shape buildLocationInformation
// uses.
func buildLocationInformationVolume(driveType DriveType, serial uint32, volumeLabel, localPath string) []byte {
	const fixedSize = 0x24

	labelField := append([]byte(volumeLabel), 0)
	const volumeIDFixedSize = 16 // size, drive type, serial, label offset
	volumeIDSize := uint32(volumeIDFixedSize + len(labelField))

	volumeID := make([]byte, 0, volumeIDSize)
	volumeID = append(volumeID, le32Bytes(volumeIDSize)...)
	volumeID = append(volumeID, le32Bytes(uint32(driveType))...)
	volumeID = append(volumeID, le32Bytes(serial)...)
	volumeID = append(volumeID, le32Bytes(volumeIDFixedSize)...) // label offset, relative to VolumeID start
	volumeID = append(volumeID, labelField...)

	localPathField := append([]byte(localPath), 0)
	localBasePathOffset := uint32(fixedSize) + volumeIDSize
	suffixOff := localBasePathOffset + uint32(len(localPathField))
	structSize := suffixOff + 1

	out := make([]byte, 0, structSize)
	out = append(out, le32Bytes(structSize)...)               // 0: total size
	out = append(out, le32Bytes(fixedSize)...)                // 4: unused by this parser
	out = append(out, le32Bytes(locationFlagVolumeIDAndLocalBasePath)...) // 8: flags
	out = append(out, le32Bytes(fixedSize)...)                // 12: volume id offset
	out = append(out, le32Bytes(localBasePathOffset)...)      // 16: local base path offset
	out = append(out, le32Bytes(0)...)                        // 20: common network offset
	out = append(out, le32Bytes(suffixOff)...)                // 24: suffix offset
	out = append(out, le32Bytes(0)...)                        // 28: local base path offset (Unicode), absent
	out = append(out, le32Bytes(0)...)                        // 32: suffix offset (Unicode), absent
	out = append(out, volumeID...)
	out = append(out, localPathField...)
	out = append(out, 0) // empty suffix string
	return out
}

// buildLocationInformationNetwork assembles a LocationInformation block
// whose HasNetworkInfo branch is populated: a CommonNetworkRelativeLink
// sub-structure naming an ASCII network share, the shape spec.md §8's S3
// scenario (a UNC path such as \\HOST\SHARE) needs.
func buildLocationInformationNetwork(netName string) []byte {
	const fixedSize = 0x24
	const networkFixedSize = 20 // size, flags, netNameOffset, deviceNameOffset, providerType

	netNameField := append([]byte(netName), 0)
	networkStructSize := uint32(networkFixedSize + len(netNameField))

	network := make([]byte, 0, networkStructSize)
	network = append(network, le32Bytes(networkStructSize)...)
	network = append(network, le32Bytes(0)...)                // flags
	network = append(network, le32Bytes(networkFixedSize)...) // net name offset, relative to this sub-structure
	network = append(network, le32Bytes(0)...)                // device name offset, absent
	network = append(network, le32Bytes(0)...)                // provider type
	network = append(network, netNameField...)

	commonNetworkOffset := uint32(fixedSize)
	suffixOff := commonNetworkOffset + networkStructSize
	structSize := suffixOff + 1

	out := make([]byte, 0, structSize)
	out = append(out, le32Bytes(structSize)...)                                 // 0: total size
	out = append(out, le32Bytes(fixedSize)...)                                  // 4: unused by this parser
	out = append(out, le32Bytes(locationFlagCommonNetworkRelativeLinkAndSuffix)...) // 8: flags
	out = append(out, le32Bytes(0)...)                                          // 12: volume id offset
	out = append(out, le32Bytes(0)...)                                          // 16: local base path offset
	out = append(out, le32Bytes(commonNetworkOffset)...)                        // 20: common network offset
	out = append(out, le32Bytes(suffixOff)...)                                  // 24: suffix offset
	out = append(out, le32Bytes(0)...)                                          // 28: local base path offset (Unicode), absent
	out = append(out, le32Bytes(0)...)                                          // 32: suffix offset (Unicode), absent
	out = append(out, network...)
	out = append(out, 0) // empty suffix string
	return out
}

// buildTrackerBlock assembles a C-signature distributed-link-tracker extra
// data block with four distinct GUIDs and a machine name. The payload's
// first 8 bytes are the droid-block length + version fields, which
// parseTrackerBlock skips over (it starts reading the machine ID at
// payload[8:]).
func buildTrackerBlock(machineID string) []byte {
	payload := make([]byte, 0, trackerMinSize)
	machineField := make([]byte, trackerMachineIDWidth)
	copy(machineField, machineID)
	payload = append(payload, le32Bytes(uint32(trackerMachineIDWidth+4*guidSize+8))...)
	payload = append(payload, le32Bytes(0)...) // version
	payload = append(payload, machineField...)
	for i := 0; i < 4; i++ {
		g := make([]byte, guidSize)
		g[0] = byte(i + 1)
		payload = append(payload, g...)
	}

	blockSize := uint32(8 + len(payload))
	out := append([]byte{}, le32Bytes(blockSize)...)
	out = append(out, le32Bytes(uint32(SignatureDistributedLinkTracker))...)
	out = append(out, payload...)
	return out
}

// terminatorBlock is the size<4 sentinel that ends the Extra Data Blocks
// sequence (spec.md §4.7).
func terminatorBlock() []byte {
	return le32Bytes(0)
}

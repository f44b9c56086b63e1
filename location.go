package lnk

// locationInfoHeaderSize is the base size of the fixed LocationInformation
// header (spec.md §3 invariant: "when the structure's total size is <=
// 0x1C, no Unicode offsets are valid").
const locationInfoHeaderSize = 0x1C

// DriveType enumerates the volume-information drive type field.
type DriveType uint32

// Drive types, matching the Windows GetDriveType return values.
const (
	DriveUnknown     DriveType = 0
	DriveNoRootDir   DriveType = 1
	DriveRemovable   DriveType = 2
	DriveFixed       DriveType = 3
	DriveRemote      DriveType = 4
	DriveCDROM       DriveType = 5
	DriveRAMDisk     DriveType = 6
)

var driveTypeNames = map[DriveType]string{
	DriveUnknown:   "DRIVE_UNKNOWN",
	DriveNoRootDir: "DRIVE_NO_ROOT_DIR",
	DriveRemovable: "DRIVE_REMOVABLE",
	DriveFixed:     "DRIVE_FIXED",
	DriveRemote:    "DRIVE_REMOTE",
	DriveCDROM:     "DRIVE_CDROM",
	DriveRAMDisk:   "DRIVE_RAMDISK",
}

// String renders the symbolic drive-type name (original_source/lnktools'
// info_handle.c prints these names rather than the raw integer; the raw
// value stays available as LocationInformation.DriveType, see
// SPEC_FULL.md §5).
func (d DriveType) String() string {
	if name, ok := driveTypeNames[d]; ok {
		return name
	}
	return "DRIVE_UNKNOWN"
}

// Location-info flag bits at offset 8 of the structure.
const (
	locationFlagVolumeIDAndLocalBasePath        uint32 = 1 << 0
	locationFlagCommonNetworkRelativeLinkAndSuffix uint32 = 1 << 1
)

// LocationInformation describes the volume/network/local-path sub-structure
// (spec.md §3/§4.5).
type LocationInformation struct {
	HasVolumeInfo  bool
	HasNetworkInfo bool

	DriveType        DriveType
	DriveSerialNumber uint32
	VolumeLabel       string
	VolumeLabelUnicode string

	LocalPath        string
	LocalPathUnicode string

	NetworkShareName string
	DeviceName       string
	NetworkProviderType uint32

	// Raw declared Unicode offsets, retained for diagnostics per spec.md §9's
	// open question: an out-of-range offset is treated as absent, not an
	// error, but the observed value is kept for a verbose caller to surface.
	VolumeLabelOffsetRawUnicode int64
	LocalPathOffsetRawUnicode   int64
}

// parseLocationInformation parses the structure starting at offset, per
// spec.md §4.5. Returns (nil, offset, nil) if the flag is clear or
// FORCE_NO_LOCATION_INFORMATION is set.
func parseLocationInformation(s ByteStream, offset int64, flags DataFlags, codepage uint32) (*LocationInformation, int64, error) {
	if !flags.Has(HasLocationInformation) || flags.Has(ForceNoLocationInformation) {
		return nil, offset, nil
	}

	structSize, err := readUint32(s, offset)
	if err != nil {
		return nil, offset, err
	}
	if int64(structSize) < locationInfoHeaderSize {
		return nil, offset, newErrorf(KindInput, CodeTruncated,
			"location information size %d smaller than fixed header %d", structSize, locationInfoHeaderSize)
	}

	raw, err := readBytes(s, offset, int(structSize))
	if err != nil {
		return nil, offset, err
	}

	li := &LocationInformation{}

	locFlags := le32(raw, 8)
	li.HasVolumeInfo = locFlags&locationFlagVolumeIDAndLocalBasePath != 0
	li.HasNetworkInfo = locFlags&locationFlagCommonNetworkRelativeLinkAndSuffix != 0

	volumeIDOffset := le32(raw, 12)
	localBasePathOffset := le32(raw, 16)
	commonNetworkOffset := le32(raw, 20)
	commonPathSuffixOffset := le32(raw, 24)

	var localBasePathOffsetUnicode, commonPathSuffixOffsetUnicode uint32
	if structSize > locationInfoHeaderSize {
		localBasePathOffsetUnicode = le32(raw, 28)
		commonPathSuffixOffsetUnicode = le32(raw, 32)
	}

	inBounds := func(off uint32) bool {
		return off != 0 && int64(off) < int64(structSize) && int64(off) >= locationInfoHeaderSize
	}

	if li.HasVolumeInfo && inBounds(volumeIDOffset) {
		li.DriveType, li.DriveSerialNumber, li.VolumeLabel, li.VolumeLabelUnicode =
			parseVolumeID(raw, int(volumeIDOffset), int(structSize), codepage)
		if le32(raw, int(volumeIDOffset)+12) == 0x14 {
			li.VolumeLabelOffsetRawUnicode = int64(le32(raw, int(volumeIDOffset)+16))
		}
	}

	suffix := readNULString(raw, int(commonPathSuffixOffset), codepage)

	if inBounds(localBasePathOffset) {
		li.LocalPath = joinPath(readNULString(raw, int(localBasePathOffset), codepage), suffix)
	}
	// Unicode local path/offset: only decoded if it lies within [0, S) and
	// past the fixed header, per spec.md §4.5's tie-break rule. An
	// out-of-range offset is recorded for diagnostics and left absent,
	// matching the Open Question decision in DESIGN.md.
	li.LocalPathOffsetRawUnicode = int64(localBasePathOffsetUnicode)
	if localBasePathOffsetUnicode != 0 && inBounds(localBasePathOffsetUnicode) {
		suffixUnicode := readNULStringUTF16(raw, int(commonPathSuffixOffsetUnicode))
		li.LocalPathUnicode = joinPath(readNULStringUTF16(raw, int(localBasePathOffsetUnicode)), suffixUnicode)
	}

	if li.HasNetworkInfo && inBounds(commonNetworkOffset) {
		li.NetworkShareName, li.DeviceName, li.NetworkProviderType =
			parseCommonNetworkRelativeLink(raw, int(commonNetworkOffset), int(structSize), codepage)
	}

	return li, offset + int64(structSize), nil
}

func le32(b []byte, off int) uint32 {
	if off < 0 || off+4 > len(b) {
		return 0
	}
	return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
}

// readNULString reads a NUL-terminated codepage string from b starting at
// off, returning "" if off is out of range.
func readNULString(b []byte, off int, codepage uint32) string {
	if off < 0 || off >= len(b) {
		return ""
	}
	end := off
	for end < len(b) && b[end] != 0 {
		end++
	}
	s, err := decodeCodepage(b[off:end], codepage)
	if err != nil {
		return ""
	}
	return s
}

// readNULStringUTF16 reads a NUL-terminated UTF-16LE string from b starting
// at off.
func readNULStringUTF16(b []byte, off int) string {
	if off < 0 || off >= len(b) {
		return ""
	}
	end := off
	for end+1 < len(b) && (b[end] != 0 || b[end+1] != 0) {
		end += 2
	}
	s, err := decodeUTF16LE(b[off:end])
	if err != nil {
		return ""
	}
	return s
}

func joinPath(base, suffix string) string {
	if base == "" {
		return suffix
	}
	return base + suffix
}

// parseVolumeID parses the VolumeID sub-structure at off within raw.
func parseVolumeID(raw []byte, off, structSize int, codepage uint32) (DriveType, uint32, string, string) {
	if off+16 > len(raw) {
		return DriveUnknown, 0, "", ""
	}
	driveType := DriveType(le32(raw, off+4))
	serial := le32(raw, off+8)
	labelOffset := int(le32(raw, off+12))

	var label, labelUnicode string
	if labelOffset == 0x14 {
		// Unicode volume label variant: an extra offset field precedes the data.
		labelOffsetUnicode := int(le32(raw, off+16))
		labelUnicode = readNULStringUTF16(raw, off+labelOffsetUnicode)
	} else if labelOffset != 0 {
		label = readNULString(raw, off+labelOffset, codepage)
	}
	return driveType, serial, label, labelUnicode
}

// parseCommonNetworkRelativeLink parses the CommonNetworkRelativeLink
// sub-structure at off within raw.
func parseCommonNetworkRelativeLink(raw []byte, off, structSize int, codepage uint32) (netName, deviceName string, providerType uint32) {
	if off+20 > len(raw) {
		return "", "", 0
	}
	netNameOffset := int(le32(raw, off+8))
	deviceNameOffset := int(le32(raw, off+12))
	providerType = le32(raw, off+16)

	if netNameOffset > 0x14 {
		netNameOffsetUnicode := int(le32(raw, off+20))
		deviceNameOffsetUnicode := int(le32(raw, off+24))
		netName = readNULStringUTF16(raw, off+netNameOffsetUnicode)
		deviceName = readNULStringUTF16(raw, off+deviceNameOffsetUnicode)
		return netName, deviceName, providerType
	}

	if netNameOffset != 0 {
		netName = readNULString(raw, off+netNameOffset, codepage)
	}
	if deviceNameOffset != 0 {
		deviceName = readNULString(raw, off+deviceNameOffset, codepage)
	}
	return netName, deviceName, providerType
}

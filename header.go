package lnk

// headerSize is the fixed byte length of the LNK header (spec.md §3: "fixed
// 76-byte leader").
const headerSize = 76

// DataFlags is the bitmap at header offset 20 controlling presence of every
// optional segment that follows the header (spec.md §3/§6).
type DataFlags uint32

// Data-flag bits, spec.md §6. Bit 11 (Unused1), bit 16 (Unused2) and bits
// above 19 are reserved; unrecognized bits are preserved verbatim in the
// DataFlags value but never gate parsing (spec.md §3 Header invariant).
const (
	HasLinkTargetIdentifier              DataFlags = 1 << 0
	HasLocationInformation               DataFlags = 1 << 1
	HasDescriptionString                 DataFlags = 1 << 2
	HasRelativePathString                DataFlags = 1 << 3
	HasWorkingDirectoryString             DataFlags = 1 << 4
	HasCommandLineArgumentsString         DataFlags = 1 << 5
	HasIconLocationString                DataFlags = 1 << 6
	IsUnicode                            DataFlags = 1 << 7
	ForceNoLocationInformation           DataFlags = 1 << 8
	HasEnvironmentVariablesLocationBlock DataFlags = 1 << 9
	RunInSeparateProcess                 DataFlags = 1 << 10
	HasDarwinIdentifier                  DataFlags = 1 << 12
	RunAsUser                            DataFlags = 1 << 13
	HasIconLocationBlock                 DataFlags = 1 << 14
	NoPIDLAlias                          DataFlags = 1 << 15
	RunWithShimLayer                     DataFlags = 1 << 17
	NoDistributedLinkTrackingDataBlock   DataFlags = 1 << 18
	HasMetadataPropertyStoreDataBlock    DataFlags = 1 << 19
)

// Has reports whether every bit in want is set.
func (f DataFlags) Has(want DataFlags) bool { return f&want == want }

// FileAttributeFlags mirrors the Windows FILE_ATTRIBUTE_* bitmap stored at
// header offset 24.
type FileAttributeFlags uint32

// File attribute bits (the subset spec.md's header carries through
// untouched; values match the Windows FILE_ATTRIBUTE_* constants).
const (
	FileAttributeReadOnly          FileAttributeFlags = 1 << 0
	FileAttributeHidden            FileAttributeFlags = 1 << 1
	FileAttributeSystem            FileAttributeFlags = 1 << 2
	FileAttributeDirectory         FileAttributeFlags = 1 << 4
	FileAttributeArchive           FileAttributeFlags = 1 << 5
	FileAttributeNormal            FileAttributeFlags = 1 << 7
	FileAttributeTemporary         FileAttributeFlags = 1 << 8
	FileAttributeSparseFile        FileAttributeFlags = 1 << 9
	FileAttributeReparsePoint      FileAttributeFlags = 1 << 10
	FileAttributeCompressed        FileAttributeFlags = 1 << 11
	FileAttributeOffline           FileAttributeFlags = 1 << 12
	FileAttributeNotContentIndexed FileAttributeFlags = 1 << 13
	FileAttributeEncrypted         FileAttributeFlags = 1 << 14
)

var fileAttributeNames = map[FileAttributeFlags]string{
	FileAttributeReadOnly:          "READONLY",
	FileAttributeHidden:            "HIDDEN",
	FileAttributeSystem:            "SYSTEM",
	FileAttributeDirectory:         "DIRECTORY",
	FileAttributeArchive:           "ARCHIVE",
	FileAttributeNormal:            "NORMAL",
	FileAttributeTemporary:         "TEMPORARY",
	FileAttributeSparseFile:        "SPARSE_FILE",
	FileAttributeReparsePoint:      "REPARSE_POINT",
	FileAttributeCompressed:        "COMPRESSED",
	FileAttributeOffline:           "OFFLINE",
	FileAttributeNotContentIndexed: "NOT_CONTENT_INDEXED",
	FileAttributeEncrypted:         "ENCRYPTED",
}

// String renders the set attribute names joined by "|", the way
// original_source/lnktools/info_handle.c prints them individually rather
// than as a raw bitmask (spec.md SPEC_FULL.md §5 supplemented feature).
func (f FileAttributeFlags) String() string {
	if f == 0 {
		return "NONE"
	}
	s := ""
	for _, bit := range []FileAttributeFlags{
		FileAttributeReadOnly, FileAttributeHidden, FileAttributeSystem,
		FileAttributeDirectory, FileAttributeArchive, FileAttributeNormal,
		FileAttributeTemporary, FileAttributeSparseFile, FileAttributeReparsePoint,
		FileAttributeCompressed, FileAttributeOffline, FileAttributeNotContentIndexed,
		FileAttributeEncrypted,
	} {
		if f&bit != 0 {
			if s != "" {
				s += "|"
			}
			s += fileAttributeNames[bit]
		}
	}
	if s == "" {
		return "NONE"
	}
	return s
}

// ShowCommand is the window show-state value at header offset 60,
// corresponding to the nCmdShow argument of Windows' ShowWindow.
type ShowCommand uint32

// Known show-command values.
const (
	ShowNormal          ShowCommand = 1
	ShowMaximized       ShowCommand = 3
	ShowMinNoActive     ShowCommand = 7
)

var showCommandNames = map[ShowCommand]string{
	ShowNormal:      "SW_SHOWNORMAL",
	ShowMaximized:   "SW_SHOWMAXIMIZED",
	ShowMinNoActive: "SW_SHOWMINNOACTIVE",
}

// String renders the symbolic show-command name, falling back to
// "SW_UNKNOWN" for anything outside the three values the format
// specification assigns meaning to.
func (s ShowCommand) String() string {
	if name, ok := showCommandNames[s]; ok {
		return name
	}
	return "SW_UNKNOWN"
}

// HotKey is the 16-bit hotkey field at header offset 64: low byte is a
// virtual key code, high byte is a modifier bitmap.
type HotKey uint16

// VirtualKey returns the low-byte virtual key code.
func (h HotKey) VirtualKey() uint8 { return uint8(h & 0x00FF) }

// Modifiers returns the high-byte modifier bitmap (HOTKEYF_SHIFT/CONTROL/ALT).
func (h HotKey) Modifiers() uint8 { return uint8(h >> 8) }

// Header is the fixed 76-byte leader every LNK file starts with
// (spec.md §3).
type Header struct {
	DataFlags           DataFlags
	FileAttributeFlags  FileAttributeFlags
	CreationTime        uint64 // raw FILETIME, spec.md §4.9: conversion is caller-side.
	AccessTime          uint64
	ModificationTime    uint64
	FileSize            uint32
	IconIndex           int32
	ShowCommand         ShowCommand
	HotKey              HotKey
	Reserved1           uint16
	Reserved2           uint32
	Reserved3           uint32
}

// parseHeader reads the fixed 76-byte header at offset 0 (spec.md §4.3).
// It fails with a signature-mismatch error if the header-size field isn't
// 76 or the class identifier doesn't match the LNK CLSID, the same
// fail-fast shape as saferwall-pe/ntheader.go's ImageNtSignature check.
func parseHeader(s ByteStream) (Header, error) {
	var h Header

	size, err := readUint32(s, 0)
	if err != nil {
		return h, err
	}
	if size != headerSize {
		return h, newErrorf(KindInput, CodeSignatureMismatch,
			"header size field is %d, want %d", size, headerSize)
	}

	clsid, err := readBytes(s, 4, guidSize)
	if err != nil {
		return h, err
	}
	id, err := decodeGUID(clsid)
	if err != nil {
		return h, errorsWrap(err, ErrSignatureMismatch)
	}
	if id != lnkCLSID {
		return h, newErrorf(KindInput, CodeSignatureMismatch,
			"class identifier %s is not the LNK CLSID", id)
	}

	flags, err := readUint32(s, 20)
	if err != nil {
		return h, err
	}
	h.DataFlags = DataFlags(flags)

	attrs, err := readUint32(s, 24)
	if err != nil {
		return h, err
	}
	h.FileAttributeFlags = FileAttributeFlags(attrs)

	if h.CreationTime, err = readUint64(s, 28); err != nil {
		return h, err
	}
	if h.AccessTime, err = readUint64(s, 36); err != nil {
		return h, err
	}
	if h.ModificationTime, err = readUint64(s, 44); err != nil {
		return h, err
	}
	if h.FileSize, err = readUint32(s, 52); err != nil {
		return h, err
	}

	iconIndex, err := readUint32(s, 56)
	if err != nil {
		return h, err
	}
	h.IconIndex = int32(iconIndex)

	showCmd, err := readUint32(s, 60)
	if err != nil {
		return h, err
	}
	h.ShowCommand = ShowCommand(showCmd)

	hotkey, err := readUint16(s, 64)
	if err != nil {
		return h, err
	}
	h.HotKey = HotKey(hotkey)

	if h.Reserved1, err = readUint16(s, 66); err != nil {
		return h, err
	}
	if h.Reserved2, err = readUint32(s, 68); err != nil {
		return h, err
	}
	if h.Reserved3, err = readUint32(s, 72); err != nil {
		return h, err
	}

	return h, nil
}

package lnk

import "github.com/google/uuid"

// This file is the typed accessor surface spec.md §4.9 describes: every
// getter first checks the open state, then returns present/absent/error
// the same way saferwall-pe's exported File fields are only ever
// meaningful after a successful Parse.

// Header returns the fixed 76-byte header. Present on every successfully
// opened file.
func (f *File) Header() (Header, error) {
	if err := f.ensureOpen(); err != nil {
		return Header{}, err
	}
	return f.header, nil
}

// DataFlags returns the header's data-presence bitmap.
func (f *File) DataFlags() (DataFlags, error) {
	if err := f.ensureOpen(); err != nil {
		return 0, err
	}
	return f.header.DataFlags, nil
}

// LinkRefersToFile reports whether LocationInformation is present, the
// same test spec.md §4.9 names for "does this shortcut point at a file
// system location rather than e.g. a pure shell-namespace item."
func (f *File) LinkRefersToFile() (bool, error) {
	if err := f.ensureOpen(); err != nil {
		return false, err
	}
	return f.locationInformation != nil, nil
}

// HasDistributedLinkTrackingData reports whether a TrackerDataBlock
// (signature C) is present among the Extra Data Blocks.
func (f *File) HasDistributedLinkTrackingData() (bool, error) {
	if err := f.ensureOpen(); err != nil {
		return false, err
	}
	_, ok := f.findBlock(SignatureDistributedLinkTracker)
	return ok, nil
}

// LinkTargetIdentifierData returns the raw Shell Item Identifier List
// bytes, and whether one is present.
func (f *File) LinkTargetIdentifierData() ([]byte, bool, error) {
	if err := f.ensureOpen(); err != nil {
		return nil, false, err
	}
	if f.linkTargetIdentifier == nil {
		return nil, false, nil
	}
	return f.linkTargetIdentifier.Data, true, nil
}

// LocationInformation returns the parsed volume/network/local-path
// record, and whether it's present.
func (f *File) LocationInformation() (LocationInformation, bool, error) {
	if err := f.ensureOpen(); err != nil {
		return LocationInformation{}, false, err
	}
	if f.locationInformation == nil {
		return LocationInformation{}, false, nil
	}
	return *f.locationInformation, true, nil
}

// --- StringData accessors ---

// Description returns the shortcut's description string, and whether it's present.
func (f *File) Description() (string, bool, error) { return f.stringValue(func(sd StringData) StringValue { return sd.Description }) }

// RelativePath returns the shortcut's relative-path string, and whether it's present.
func (f *File) RelativePath() (string, bool, error) {
	return f.stringValue(func(sd StringData) StringValue { return sd.RelativePath })
}

// WorkingDirectory returns the shortcut's working-directory string, and whether it's present.
func (f *File) WorkingDirectory() (string, bool, error) {
	return f.stringValue(func(sd StringData) StringValue { return sd.WorkingDirectory })
}

// CommandLineArguments returns the shortcut's command-line arguments string, and whether it's present.
func (f *File) CommandLineArguments() (string, bool, error) {
	return f.stringValue(func(sd StringData) StringValue { return sd.CommandLineArguments })
}

// IconLocation returns the shortcut's icon-location string, and whether it's present.
func (f *File) IconLocation() (string, bool, error) {
	return f.stringValue(func(sd StringData) StringValue { return sd.IconLocation })
}

func (f *File) stringValue(pick func(StringData) StringValue) (string, bool, error) {
	if err := f.ensureOpen(); err != nil {
		return "", false, err
	}
	v := pick(f.stringData)
	return v.Value, v.Present, nil
}

// --- Size-probe/fill pairs (spec.md §4.9/§8 invariants 3-4) ---

// DescriptionSizeUTF8 returns the buffer size FillDescriptionUTF8 needs.
func (f *File) DescriptionSizeUTF8() (int, bool, error) {
	return f.sizeUTF8(func(sd StringData) StringValue { return sd.Description })
}

// FillDescriptionUTF8 writes the description, NUL-terminated, into buf.
func (f *File) FillDescriptionUTF8(buf []byte) (int, error) {
	return f.fillUTF8(buf, func(sd StringData) StringValue { return sd.Description })
}

// RelativePathSizeUTF8 returns the buffer size FillRelativePathUTF8 needs.
func (f *File) RelativePathSizeUTF8() (int, bool, error) {
	return f.sizeUTF8(func(sd StringData) StringValue { return sd.RelativePath })
}

// FillRelativePathUTF8 writes the relative path, NUL-terminated, into buf.
func (f *File) FillRelativePathUTF8(buf []byte) (int, error) {
	return f.fillUTF8(buf, func(sd StringData) StringValue { return sd.RelativePath })
}

// WorkingDirectorySizeUTF8 returns the buffer size FillWorkingDirectoryUTF8 needs.
func (f *File) WorkingDirectorySizeUTF8() (int, bool, error) {
	return f.sizeUTF8(func(sd StringData) StringValue { return sd.WorkingDirectory })
}

// FillWorkingDirectoryUTF8 writes the working directory, NUL-terminated, into buf.
func (f *File) FillWorkingDirectoryUTF8(buf []byte) (int, error) {
	return f.fillUTF8(buf, func(sd StringData) StringValue { return sd.WorkingDirectory })
}

// CommandLineArgumentsSizeUTF8 returns the buffer size FillCommandLineArgumentsUTF8 needs.
func (f *File) CommandLineArgumentsSizeUTF8() (int, bool, error) {
	return f.sizeUTF8(func(sd StringData) StringValue { return sd.CommandLineArguments })
}

// FillCommandLineArgumentsUTF8 writes the command line arguments, NUL-terminated, into buf.
func (f *File) FillCommandLineArgumentsUTF8(buf []byte) (int, error) {
	return f.fillUTF8(buf, func(sd StringData) StringValue { return sd.CommandLineArguments })
}

// IconLocationSizeUTF8 returns the buffer size FillIconLocationUTF8 needs.
func (f *File) IconLocationSizeUTF8() (int, bool, error) {
	return f.sizeUTF8(func(sd StringData) StringValue { return sd.IconLocation })
}

// FillIconLocationUTF8 writes the icon location, NUL-terminated, into buf.
func (f *File) FillIconLocationUTF8(buf []byte) (int, error) {
	return f.fillUTF8(buf, func(sd StringData) StringValue { return sd.IconLocation })
}

func (f *File) sizeUTF8(pick func(StringData) StringValue) (int, bool, error) {
	if err := f.ensureOpen(); err != nil {
		return 0, false, err
	}
	v := pick(f.stringData)
	if !v.Present {
		return 0, false, nil
	}
	return sizeProbeUTF8(v.Value), true, nil
}

func (f *File) fillUTF8(buf []byte, pick func(StringData) StringValue) (int, error) {
	if err := f.ensureOpen(); err != nil {
		return 0, err
	}
	v := pick(f.stringData)
	if !v.Present {
		return 0, ErrValueMissing
	}
	return fillUTF8(buf, v.Value)
}

// --- UTF-16 size-probe/fill pairs, mirroring the UTF-8 pairs above ---

// DescriptionSizeUTF16 returns the uint16 count FillDescriptionUTF16 needs.
func (f *File) DescriptionSizeUTF16() (int, bool, error) {
	return f.sizeUTF16(func(sd StringData) StringValue { return sd.Description })
}

// FillDescriptionUTF16 writes the description, UTF-16LE encoded and
// NUL-terminated, into buf.
func (f *File) FillDescriptionUTF16(buf []uint16) (int, error) {
	return f.fillUTF16(buf, func(sd StringData) StringValue { return sd.Description })
}

// RelativePathSizeUTF16 returns the uint16 count FillRelativePathUTF16 needs.
func (f *File) RelativePathSizeUTF16() (int, bool, error) {
	return f.sizeUTF16(func(sd StringData) StringValue { return sd.RelativePath })
}

// FillRelativePathUTF16 writes the relative path, UTF-16LE encoded and
// NUL-terminated, into buf.
func (f *File) FillRelativePathUTF16(buf []uint16) (int, error) {
	return f.fillUTF16(buf, func(sd StringData) StringValue { return sd.RelativePath })
}

// WorkingDirectorySizeUTF16 returns the uint16 count FillWorkingDirectoryUTF16 needs.
func (f *File) WorkingDirectorySizeUTF16() (int, bool, error) {
	return f.sizeUTF16(func(sd StringData) StringValue { return sd.WorkingDirectory })
}

// FillWorkingDirectoryUTF16 writes the working directory, UTF-16LE encoded
// and NUL-terminated, into buf.
func (f *File) FillWorkingDirectoryUTF16(buf []uint16) (int, error) {
	return f.fillUTF16(buf, func(sd StringData) StringValue { return sd.WorkingDirectory })
}

// CommandLineArgumentsSizeUTF16 returns the uint16 count FillCommandLineArgumentsUTF16 needs.
func (f *File) CommandLineArgumentsSizeUTF16() (int, bool, error) {
	return f.sizeUTF16(func(sd StringData) StringValue { return sd.CommandLineArguments })
}

// FillCommandLineArgumentsUTF16 writes the command line arguments,
// UTF-16LE encoded and NUL-terminated, into buf.
func (f *File) FillCommandLineArgumentsUTF16(buf []uint16) (int, error) {
	return f.fillUTF16(buf, func(sd StringData) StringValue { return sd.CommandLineArguments })
}

// IconLocationSizeUTF16 returns the uint16 count FillIconLocationUTF16 needs.
func (f *File) IconLocationSizeUTF16() (int, bool, error) {
	return f.sizeUTF16(func(sd StringData) StringValue { return sd.IconLocation })
}

// FillIconLocationUTF16 writes the icon location, UTF-16LE encoded and
// NUL-terminated, into buf.
func (f *File) FillIconLocationUTF16(buf []uint16) (int, error) {
	return f.fillUTF16(buf, func(sd StringData) StringValue { return sd.IconLocation })
}

func (f *File) sizeUTF16(pick func(StringData) StringValue) (int, bool, error) {
	if err := f.ensureOpen(); err != nil {
		return 0, false, err
	}
	v := pick(f.stringData)
	if !v.Present {
		return 0, false, nil
	}
	return sizeProbeUTF16(v.Value), true, nil
}

func (f *File) fillUTF16(buf []uint16, pick func(StringData) StringValue) (int, error) {
	if err := f.ensureOpen(); err != nil {
		return 0, err
	}
	v := pick(f.stringData)
	if !v.Present {
		return 0, ErrValueMissing
	}
	return fillUTF16(buf, v.Value)
}

// LocalPathSizeUTF8 returns the buffer size FillLocalPathUTF8 needs, reading
// from LocationInformation's local path (preferring the Unicode variant
// when present, per spec.md §4.5's tie-break rule).
func (f *File) LocalPathSizeUTF8() (int, bool, error) {
	if err := f.ensureOpen(); err != nil {
		return 0, false, err
	}
	path, ok := f.localPath()
	if !ok {
		return 0, false, nil
	}
	return sizeProbeUTF8(path), true, nil
}

// FillLocalPathUTF8 writes the resolved local path, NUL-terminated, into buf.
func (f *File) FillLocalPathUTF8(buf []byte) (int, error) {
	if err := f.ensureOpen(); err != nil {
		return 0, err
	}
	path, ok := f.localPath()
	if !ok {
		return 0, ErrValueMissing
	}
	return fillUTF8(buf, path)
}

func (f *File) localPath() (string, bool) {
	if f.locationInformation == nil {
		return "", false
	}
	if f.locationInformation.LocalPathUnicode != "" {
		return f.locationInformation.LocalPathUnicode, true
	}
	if f.locationInformation.LocalPath != "" {
		return f.locationInformation.LocalPath, true
	}
	return "", false
}

// LocalPathSizeUTF16 returns the uint16 count FillLocalPathUTF16 needs.
func (f *File) LocalPathSizeUTF16() (int, bool, error) {
	if err := f.ensureOpen(); err != nil {
		return 0, false, err
	}
	path, ok := f.localPath()
	if !ok {
		return 0, false, nil
	}
	return sizeProbeUTF16(path), true, nil
}

// FillLocalPathUTF16 writes the resolved local path, UTF-16LE encoded and
// NUL-terminated, into buf.
func (f *File) FillLocalPathUTF16(buf []uint16) (int, error) {
	if err := f.ensureOpen(); err != nil {
		return 0, err
	}
	path, ok := f.localPath()
	if !ok {
		return 0, ErrValueMissing
	}
	return fillUTF16(buf, path)
}

// NetworkPathSizeUTF8 returns the buffer size FillNetworkPathUTF8 needs,
// reading LocationInformation's network share name (spec.md §6's S3
// scenario: a UNC share like \\HOST\SHARE).
func (f *File) NetworkPathSizeUTF8() (int, bool, error) {
	if err := f.ensureOpen(); err != nil {
		return 0, false, err
	}
	path, ok := f.networkPath()
	if !ok {
		return 0, false, nil
	}
	return sizeProbeUTF8(path), true, nil
}

// FillNetworkPathUTF8 writes the network share name, NUL-terminated, into buf.
func (f *File) FillNetworkPathUTF8(buf []byte) (int, error) {
	if err := f.ensureOpen(); err != nil {
		return 0, err
	}
	path, ok := f.networkPath()
	if !ok {
		return 0, ErrValueMissing
	}
	return fillUTF8(buf, path)
}

// NetworkPathSizeUTF16 returns the uint16 count FillNetworkPathUTF16 needs.
func (f *File) NetworkPathSizeUTF16() (int, bool, error) {
	if err := f.ensureOpen(); err != nil {
		return 0, false, err
	}
	path, ok := f.networkPath()
	if !ok {
		return 0, false, nil
	}
	return sizeProbeUTF16(path), true, nil
}

// FillNetworkPathUTF16 writes the network share name, UTF-16LE encoded and
// NUL-terminated, into buf.
func (f *File) FillNetworkPathUTF16(buf []uint16) (int, error) {
	if err := f.ensureOpen(); err != nil {
		return 0, err
	}
	path, ok := f.networkPath()
	if !ok {
		return 0, ErrValueMissing
	}
	return fillUTF16(buf, path)
}

func (f *File) networkPath() (string, bool) {
	if f.locationInformation == nil || f.locationInformation.NetworkShareName == "" {
		return "", false
	}
	return f.locationInformation.NetworkShareName, true
}

// --- Data block enumeration ---

// DataBlockCount returns the number of Extra Data Blocks present.
func (f *File) DataBlockCount() (int, error) {
	if err := f.ensureOpen(); err != nil {
		return 0, err
	}
	return len(f.dataBlocks), nil
}

// DataBlockAt returns the data block at index i (0-based, on-disk order).
func (f *File) DataBlockAt(i int) (DataBlock, error) {
	if err := f.ensureOpen(); err != nil {
		return DataBlock{}, err
	}
	if i < 0 || i >= len(f.dataBlocks) {
		return DataBlock{}, ErrInvalidIndex
	}
	return f.dataBlocks[i], nil
}

func (f *File) findBlock(sig DataBlockSignature) (DataBlock, bool) {
	for _, b := range f.dataBlocks {
		if b.Signature == sig {
			return b, true
		}
	}
	return DataBlock{}, false
}

// EnvironmentVariablesBlock returns the parsed A-block, if present.
func (f *File) EnvironmentVariablesBlock() (*EnvironmentVariablesBlock, error) {
	b, err := f.typedBlock(SignatureEnvironmentVariables)
	if err != nil || b == nil {
		return nil, err
	}
	v, _ := b.(*EnvironmentVariablesBlock)
	return v, nil
}

// ConsolePropsBlock returns the parsed B-block, if present.
func (f *File) ConsolePropsBlock() (*ConsolePropsBlock, error) {
	b, err := f.typedBlock(SignatureConsoleProps)
	if err != nil || b == nil {
		return nil, err
	}
	v, _ := b.(*ConsolePropsBlock)
	return v, nil
}

// TrackerBlock returns the parsed C-block (distributed link tracking), if present.
func (f *File) TrackerBlock() (*TrackerBlock, error) {
	b, err := f.typedBlock(SignatureDistributedLinkTracker)
	if err != nil || b == nil {
		return nil, err
	}
	v, _ := b.(*TrackerBlock)
	return v, nil
}

// ConsoleCodepageBlock returns the parsed D-block, if present.
func (f *File) ConsoleCodepageBlock() (*ConsoleCodepageBlock, error) {
	b, err := f.typedBlock(SignatureConsoleCodepage)
	if err != nil || b == nil {
		return nil, err
	}
	v, _ := b.(*ConsoleCodepageBlock)
	return v, nil
}

// SpecialFolderBlock returns the parsed E-block, if present.
func (f *File) SpecialFolderBlock() (*SpecialFolderBlock, error) {
	b, err := f.typedBlock(SignatureSpecialFolder)
	if err != nil || b == nil {
		return nil, err
	}
	v, _ := b.(*SpecialFolderBlock)
	return v, nil
}

// DarwinBlock returns the parsed F-block, if present.
func (f *File) DarwinBlock() (*DarwinBlock, error) {
	b, err := f.typedBlock(SignatureDarwin)
	if err != nil || b == nil {
		return nil, err
	}
	v, _ := b.(*DarwinBlock)
	return v, nil
}

// IconLocationBlock returns the parsed G-block, if present.
func (f *File) IconLocationBlock() (*IconLocationBlock, error) {
	b, err := f.typedBlock(SignatureIconLocation)
	if err != nil || b == nil {
		return nil, err
	}
	v, _ := b.(*IconLocationBlock)
	return v, nil
}

// ShimLayerBlock returns the parsed H-block, if present.
func (f *File) ShimLayerBlock() (*ShimLayerBlock, error) {
	b, err := f.typedBlock(SignatureShimLayer)
	if err != nil || b == nil {
		return nil, err
	}
	v, _ := b.(*ShimLayerBlock)
	return v, nil
}

// PropertyStoreBlock returns the parsed I-block, if present. Deep
// interpretation of its serialized property set is out of scope
// (spec.md §1/§9); callers get the raw bytes.
func (f *File) PropertyStoreBlock() (*PropertyStoreBlock, error) {
	b, err := f.typedBlock(SignaturePropertyStore)
	if err != nil || b == nil {
		return nil, err
	}
	v, _ := b.(*PropertyStoreBlock)
	return v, nil
}

// KnownFolderBlock returns the parsed J-block, if present.
func (f *File) KnownFolderBlock() (*KnownFolderBlock, error) {
	b, err := f.typedBlock(SignatureKnownFolder)
	if err != nil || b == nil {
		return nil, err
	}
	v, _ := b.(*KnownFolderBlock)
	return v, nil
}

// VistaAndAboveIDListBlock returns the parsed K-block, if present.
func (f *File) VistaAndAboveIDListBlock() (*VistaAndAboveIDListBlock, error) {
	b, err := f.typedBlock(SignatureVistaAndAboveIDList)
	if err != nil || b == nil {
		return nil, err
	}
	v, _ := b.(*VistaAndAboveIDListBlock)
	return v, nil
}

func (f *File) typedBlock(sig DataBlockSignature) (interface{}, error) {
	if err := f.ensureOpen(); err != nil {
		return nil, err
	}
	b, ok := f.findBlock(sig)
	if !ok || b.Parsed == nil {
		return nil, nil
	}
	return b.Parsed, nil
}

// --- Distributed link tracking: machine identifier and droid GUIDs ---

// MachineIdentifierSizeUTF8 returns the buffer size FillMachineIdentifierUTF8
// needs, and whether a TrackerBlock is present.
func (f *File) MachineIdentifierSizeUTF8() (int, bool, error) {
	t, ok, err := f.tracker()
	if err != nil || !ok {
		return 0, false, err
	}
	return sizeProbeUTF8(t.MachineID), true, nil
}

// FillMachineIdentifierUTF8 writes the machine identifier, NUL-terminated, into buf.
func (f *File) FillMachineIdentifierUTF8(buf []byte) (int, error) {
	t, ok, err := f.tracker()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrValueMissing
	}
	return fillUTF8(buf, t.MachineID)
}

// MachineIdentifierSizeUTF16 returns the uint16 count FillMachineIdentifierUTF16 needs.
func (f *File) MachineIdentifierSizeUTF16() (int, bool, error) {
	t, ok, err := f.tracker()
	if err != nil || !ok {
		return 0, false, err
	}
	return sizeProbeUTF16(t.MachineID), true, nil
}

// FillMachineIdentifierUTF16 writes the machine identifier, UTF-16LE
// encoded and NUL-terminated, into buf.
func (f *File) FillMachineIdentifierUTF16(buf []uint16) (int, error) {
	t, ok, err := f.tracker()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrValueMissing
	}
	return fillUTF16(buf, t.MachineID)
}

// FillDroidVolumeIdentifier writes the droid-volume GUID's 16 raw bytes
// into buf.
func (f *File) FillDroidVolumeIdentifier(buf []byte) error {
	return f.fillDroidGUID(buf, func(t *TrackerBlock) uuid.UUID { return t.DroidVolumeID })
}

// FillDroidFileIdentifier writes the droid-file GUID's 16 raw bytes into buf.
func (f *File) FillDroidFileIdentifier(buf []byte) error {
	return f.fillDroidGUID(buf, func(t *TrackerBlock) uuid.UUID { return t.DroidFileID })
}

// FillBirthDroidVolumeIdentifier writes the birth-droid-volume GUID's 16
// raw bytes into buf.
func (f *File) FillBirthDroidVolumeIdentifier(buf []byte) error {
	return f.fillDroidGUID(buf, func(t *TrackerBlock) uuid.UUID { return t.BirthDroidVolumeID })
}

// FillBirthDroidFileIdentifier writes the birth-droid-file GUID's 16 raw
// bytes into buf.
func (f *File) FillBirthDroidFileIdentifier(buf []byte) error {
	return f.fillDroidGUID(buf, func(t *TrackerBlock) uuid.UUID { return t.BirthDroidFileID })
}

func (f *File) fillDroidGUID(buf []byte, pick func(*TrackerBlock) uuid.UUID) error {
	t, ok, err := f.tracker()
	if err != nil {
		return err
	}
	if !ok {
		return ErrValueMissing
	}
	if len(buf) < guidSize {
		return ErrInvalidBuffer
	}
	copy(buf, encodeGUID(pick(t)))
	return nil
}

// tracker fetches the parsed TrackerBlock, if any.
func (f *File) tracker() (*TrackerBlock, bool, error) {
	if err := f.ensureOpen(); err != nil {
		return nil, false, err
	}
	b, ok := f.findBlock(SignatureDistributedLinkTracker)
	if !ok || b.Parsed == nil {
		return nil, false, nil
	}
	t, _ := b.Parsed.(*TrackerBlock)
	if t == nil {
		return nil, false, nil
	}
	return t, true, nil
}

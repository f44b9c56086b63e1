package lnk

import (
	"bytes"

	"github.com/google/uuid"
)

// le16 reads a little-endian uint16 out of a plain byte slice (the data
// blocks are parsed from an already-sliced payload, not a ByteStream, so
// these are simpler than primitives.go's ByteStream-backed readers).
func le16(b []byte, off int) uint16 {
	if off < 0 || off+2 > len(b) {
		return 0
	}
	return uint16(b[off]) | uint16(b[off+1])<<8
}

// fixedString decodes a fixed-width, NUL-padded codepage string field.
func fixedString(b []byte, off, width int, codepage uint32) string {
	if off < 0 || off+width > len(b) {
		return ""
	}
	field := bytes.TrimRight(b[off:off+width], "\x00")
	s, err := decodeCodepage(field, codepage)
	if err != nil {
		return ""
	}
	return s
}

// fixedStringUTF16 decodes a fixed-width, NUL-padded UTF-16LE string field
// (width is in bytes, must be even).
func fixedStringUTF16(b []byte, off, width int) string {
	if off < 0 || off+width > len(b) {
		return ""
	}
	field := b[off : off+width]
	for i := 0; i+1 < len(field); i += 2 {
		if field[i] == 0 && field[i+1] == 0 {
			field = field[:i]
			break
		}
	}
	s, err := decodeUTF16LE(field)
	if err != nil {
		return ""
	}
	return s
}

// --- A: EnvironmentVariablesDataBlock ---

// EnvironmentVariablesBlock carries an unexpanded environment-variable path
// in both ANSI and Unicode form (spec.md §4.7).
type EnvironmentVariablesBlock struct {
	TargetANSI    string
	TargetUnicode string
}

const envVarsFieldWidth = 260      // MAX_PATH, ANSI field.
const envVarsUnicodeWidth = 260 * 2 // MAX_PATH UTF-16 code units.

func parseEnvironmentVariablesBlock(payload []byte, codepage uint32) (*EnvironmentVariablesBlock, error) {
	if len(payload) < envVarsFieldWidth {
		return nil, ErrInvalidData
	}
	b := &EnvironmentVariablesBlock{
		TargetANSI: fixedString(payload, 0, envVarsFieldWidth, codepage),
	}
	if len(payload) >= envVarsFieldWidth+envVarsUnicodeWidth {
		b.TargetUnicode = fixedStringUTF16(payload, envVarsFieldWidth, envVarsUnicodeWidth)
	}
	return b, nil
}

// --- B: ConsoleDataBlock ---

// ConsolePropsBlock carries the console window's color, font, and buffer
// configuration.
type ConsolePropsBlock struct {
	FillAttributes         uint16
	PopupFillAttributes    uint16
	ScreenBufferSizeX      int16
	ScreenBufferSizeY      int16
	WindowSizeX            int16
	WindowSizeY            int16
	WindowOriginX          int16
	WindowOriginY          int16
	FontSize               uint32
	FontFamily             uint32
	FontWeight             uint32
	FaceName               string
	CursorSize             uint32
	FullScreen             bool
	QuickEdit              bool
	InsertMode             bool
	AutoPosition           bool
	HistoryBufferSize      uint32
	NumberOfHistoryBuffers uint32
	HistoryNoDup           bool
	ColorTable             [16]uint32
}

const consolePropsMinSize = 0x60

func parseConsolePropsBlock(payload []byte) (*ConsolePropsBlock, error) {
	if len(payload) < consolePropsMinSize {
		return nil, ErrInvalidData
	}
	c := &ConsolePropsBlock{
		FillAttributes:      le16(payload, 0),
		PopupFillAttributes: le16(payload, 2),
		ScreenBufferSizeX:   int16(le16(payload, 4)),
		ScreenBufferSizeY:   int16(le16(payload, 6)),
		WindowSizeX:         int16(le16(payload, 8)),
		WindowSizeY:         int16(le16(payload, 10)),
		WindowOriginX:       int16(le16(payload, 12)),
		WindowOriginY:       int16(le16(payload, 14)),
		FontSize:            le32(payload, 24),
		FontFamily:          le32(payload, 28),
		FontWeight:          le32(payload, 32),
		FaceName:            fixedStringUTF16(payload, 36, 64),
		CursorSize:          le32(payload, 100),
		FullScreen:          le32(payload, 104) != 0,
		QuickEdit:           le32(payload, 108) != 0,
		InsertMode:          le32(payload, 112) != 0,
		AutoPosition:        le32(payload, 116) != 0,
		HistoryBufferSize:   le32(payload, 120),
		NumberOfHistoryBuffers: le32(payload, 124),
		HistoryNoDup:        le32(payload, 128) != 0,
	}
	for i := 0; i < 16 && 132+i*4+4 <= len(payload); i++ {
		c.ColorTable[i] = le32(payload, 132+i*4)
	}
	return c, nil
}

// --- C: TrackerDataBlock ---

// TrackerBlock carries distributed link tracking droid identifiers
// (spec.md §4.7/§6).
type TrackerBlock struct {
	MachineID          string
	DroidVolumeID      uuid.UUID
	DroidFileID        uuid.UUID
	BirthDroidVolumeID uuid.UUID
	BirthDroidFileID   uuid.UUID
}

const trackerMachineIDWidth = 16
const trackerMinSize = 8 + trackerMachineIDWidth + 4*guidSize

func parseTrackerBlock(payload []byte) (*TrackerBlock, error) {
	if len(payload) < trackerMinSize {
		return nil, ErrInvalidData
	}
	machineIDField := bytes.TrimRight(payload[8:8+trackerMachineIDWidth], "\x00")
	t := &TrackerBlock{MachineID: string(machineIDField)}

	off := 8 + trackerMachineIDWidth
	var err error
	if t.DroidVolumeID, err = decodeGUID(payload[off : off+guidSize]); err != nil {
		return nil, errorsWrap(err, ErrInvalidData)
	}
	off += guidSize
	if t.DroidFileID, err = decodeGUID(payload[off : off+guidSize]); err != nil {
		return nil, errorsWrap(err, ErrInvalidData)
	}
	off += guidSize
	if t.BirthDroidVolumeID, err = decodeGUID(payload[off : off+guidSize]); err != nil {
		return nil, errorsWrap(err, ErrInvalidData)
	}
	off += guidSize
	if t.BirthDroidFileID, err = decodeGUID(payload[off : off+guidSize]); err != nil {
		return nil, errorsWrap(err, ErrInvalidData)
	}
	return t, nil
}

// --- D: ConsoleFEDataBlock (console codepage) ---

// ConsoleCodepageBlock carries the console's codepage identifier.
type ConsoleCodepageBlock struct {
	Codepage uint32
}

func parseConsoleCodepageBlock(payload []byte) (*ConsoleCodepageBlock, error) {
	if len(payload) < 4 {
		return nil, ErrInvalidData
	}
	return &ConsoleCodepageBlock{Codepage: le32(payload, 0)}, nil
}

// --- E: SpecialFolderDataBlock ---

// SpecialFolderBlock locates the target within a CSIDL special folder.
type SpecialFolderBlock struct {
	SpecialFolderID uint32
	Offset          uint32
}

func parseSpecialFolderBlock(payload []byte) (*SpecialFolderBlock, error) {
	if len(payload) < 8 {
		return nil, ErrInvalidData
	}
	return &SpecialFolderBlock{
		SpecialFolderID: le32(payload, 0),
		Offset:          le32(payload, 4),
	}, nil
}

// --- F: DarwinDataBlock ---

// DarwinBlock carries an application identifier (Darwin Descriptor) in
// both ANSI and Unicode form.
type DarwinBlock struct {
	DarwinANSI    string
	DarwinUnicode string
}

func parseDarwinBlock(payload []byte, codepage uint32) (*DarwinBlock, error) {
	if len(payload) < envVarsFieldWidth {
		return nil, ErrInvalidData
	}
	b := &DarwinBlock{DarwinANSI: fixedString(payload, 0, envVarsFieldWidth, codepage)}
	if len(payload) >= envVarsFieldWidth+envVarsUnicodeWidth {
		b.DarwinUnicode = fixedStringUTF16(payload, envVarsFieldWidth, envVarsUnicodeWidth)
	}
	return b, nil
}

// --- G: IconEnvironmentDataBlock ---

// IconLocationBlock carries an icon's unexpanded path in ANSI and Unicode
// form.
type IconLocationBlock struct {
	TargetANSI    string
	TargetUnicode string
}

func parseIconLocationBlock(payload []byte, codepage uint32) (*IconLocationBlock, error) {
	if len(payload) < envVarsFieldWidth {
		return nil, ErrInvalidData
	}
	b := &IconLocationBlock{TargetANSI: fixedString(payload, 0, envVarsFieldWidth, codepage)}
	if len(payload) >= envVarsFieldWidth+envVarsUnicodeWidth {
		b.TargetUnicode = fixedStringUTF16(payload, envVarsFieldWidth, envVarsUnicodeWidth)
	}
	return b, nil
}

// --- H: ShimDataBlock ---

// ShimLayerBlock names the application-compatibility shim layer applied to
// the target.
type ShimLayerBlock struct {
	LayerName string
}

func parseShimLayerBlock(payload []byte) (*ShimLayerBlock, error) {
	name, err := decodeUTF16LE(payload)
	if err != nil {
		return nil, errorsWrap(err, ErrInvalidData)
	}
	return &ShimLayerBlock{LayerName: name}, nil
}

// --- I: PropertyStoreDataBlock ---

// PropertyStoreBlock retains the raw serialized property-store bytes for
// an external component to interpret further (spec.md §1/§9: deep
// property-store semantics are explicitly out of scope for this core).
type PropertyStoreBlock struct {
	Raw []byte
}

func parsePropertyStoreBlock(payload []byte) (*PropertyStoreBlock, error) {
	return &PropertyStoreBlock{Raw: payload}, nil
}

// --- J: KnownFolderDataBlock ---

// KnownFolderBlock locates the target within a KNOWNFOLDERID-identified
// special folder.
type KnownFolderBlock struct {
	KnownFolderID uuid.UUID
	Offset        uint32
}

func parseKnownFolderBlock(payload []byte) (*KnownFolderBlock, error) {
	if len(payload) < guidSize+4 {
		return nil, ErrInvalidData
	}
	id, err := decodeGUID(payload[:guidSize])
	if err != nil {
		return nil, errorsWrap(err, ErrInvalidData)
	}
	return &KnownFolderBlock{
		KnownFolderID: id,
		Offset:        le32(payload, guidSize),
	}, nil
}

// --- K: VistaAndAboveIDListDataBlock ---

// VistaAndAboveIDListBlock is an alternative Shell Item Identifier List,
// kept byte-for-byte like LinkTargetIdentifier's payload (spec.md §4.7).
type VistaAndAboveIDListBlock struct {
	Data []byte
}

func parseVistaAndAboveIDListBlock(payload []byte) (*VistaAndAboveIDListBlock, error) {
	return &VistaAndAboveIDListBlock{Data: payload}, nil
}

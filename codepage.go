package lnk

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// DefaultASCIICodepage is the codepage a freshly initialized File uses
// until Options.ASCIICodepage or SetASCIICodepage overrides it (spec.md
// §3's "Codepage selection ... default Windows-1252").
const DefaultASCIICodepage uint32 = 1252

// codepageTable maps the Windows ASCII codepage identifiers spec.md §6
// enumerates to an x/text Encoding. There's no teacher analogue (a PE file
// has no codepage concept); this is new domain-stack wiring grounded
// purely on spec.md's own list.
var codepageTable = map[uint32]encoding.Encoding{
	20127: charmap.ISO8859_1, // ASCII: 7-bit clean text round-trips through Latin-1 unchanged.

	28591: charmap.ISO8859_1,
	28592: charmap.ISO8859_2,
	28593: charmap.ISO8859_3,
	28594: charmap.ISO8859_4,
	28595: charmap.ISO8859_5,
	28596: charmap.ISO8859_6,
	28597: charmap.ISO8859_7,
	28598: charmap.ISO8859_8,
	28599: charmap.ISO8859_9,
	28600: charmap.ISO8859_10,
	28603: charmap.ISO8859_13,
	28604: charmap.ISO8859_14,
	28605: charmap.ISO8859_15,
	28606: charmap.ISO8859_16,
	// ISO-8859-11 (Thai), codepage 28601, is registered in init below.

	20866: charmap.KOI8R,
	21866: charmap.KOI8U,

	874: charmap.Windows874,
	932: japanese.ShiftJIS,
	936: simplifiedchinese.GBK,
	949: korean.EUCKR,
	950: traditionalchinese.Big5,

	1250: charmap.Windows1250,
	1251: charmap.Windows1251,
	1252: charmap.Windows1252,
	1253: charmap.Windows1253,
	1254: charmap.Windows1254,
	1255: charmap.Windows1255,
	1256: charmap.Windows1256,
	1257: charmap.Windows1257,
	1258: charmap.Windows1258,
}

// ISO-8859-11 (Thai) is the same repertoire as Windows-874; register it
// under its ISO codepage number too so SetASCIICodepage(28601) works.
func init() {
	codepageTable[28601] = charmap.Windows874
}

// lookupCodepage returns the Encoding for a codepage identifier, or
// (nil, false) if unsupported.
func lookupCodepage(codepage uint32) (encoding.Encoding, bool) {
	enc, ok := codepageTable[codepage]
	return enc, ok
}

// SupportedCodepage reports whether codepage is one of the identifiers
// spec.md §6 lists as supported.
func SupportedCodepage(codepage uint32) bool {
	_, ok := lookupCodepage(codepage)
	return ok
}

package lnk

// DataBlockSignature identifies an Extra Data Block's type (spec.md §3/§4.7).
type DataBlockSignature uint32

// Known data-block signatures. Letters in the comments match spec.md §3's
// lettered list (A..K).
const (
	SignatureEnvironmentVariables    DataBlockSignature = 0xA0000001 // A
	SignatureConsoleProps           DataBlockSignature = 0xA0000002 // B
	SignatureDistributedLinkTracker DataBlockSignature = 0xA0000003 // C
	SignatureConsoleCodepage        DataBlockSignature = 0xA0000004 // D
	SignatureSpecialFolder          DataBlockSignature = 0xA0000005 // E
	SignatureDarwin                 DataBlockSignature = 0xA0000006 // F
	SignatureIconLocation           DataBlockSignature = 0xA0000007 // G
	SignatureShimLayer              DataBlockSignature = 0xA0000008 // H
	SignaturePropertyStore          DataBlockSignature = 0xA0000009 // I
	SignatureKnownFolder            DataBlockSignature = 0xA000000B // J
	SignatureVistaAndAboveIDList    DataBlockSignature = 0xA000000C // K
)

// minBlockSize is the smallest legal value for the size field, per spec.md
// §4.7: "read a 32-bit block size bs. If bs < 4 terminate the loop".
const minBlockSize = 4

// DataBlock is one entry of the Extra Data Blocks trailing sequence.
// Raw always holds the exact size-8 payload bytes so a caller can inspect
// an opaque blob even when Parsed is nil (unknown signature). A known
// signature whose payload fails to decode is not retained: the block loop
// stops with an invalid-data error instead.
type DataBlock struct {
	Signature DataBlockSignature
	Raw       []byte
	Parsed    interface{}
}

// parseDataBlocks runs the block loop of spec.md §4.7 starting at offset,
// the same signature-dispatch-table shape as
// saferwall-pe/file.go's ParseDataDirectories, generalized from a fixed
// 16-entry array to a size-prefixed chain terminated by a short block.
func parseDataBlocks(s ByteStream, offset int64, streamSize int64, codepage uint32, abort func() bool) ([]DataBlock, error) {
	var blocks []DataBlock

	for {
		if abort != nil && abort() {
			return blocks, ErrAbortRequested
		}

		if offset >= streamSize {
			// No terminal block present before end of stream: the caller's
			// own bounds checking during Parse already validated overall
			// file size against the sum of segments (spec.md §8 invariant
			// 5); reaching exactly end-of-stream here is not itself an
			// error, it just means there was no explicit terminator.
			break
		}

		blockSize, err := readUint32(s, offset)
		if err != nil {
			return blocks, err
		}
		if blockSize < minBlockSize {
			break
		}

		remaining := streamSize - offset
		if int64(blockSize) > remaining {
			return blocks, newErrorf(KindInput, CodeTruncated,
				"data block at offset %d declares size %d, only %d bytes remain", offset, blockSize, remaining)
		}

		sigRaw, err := readUint32(s, offset+4)
		if err != nil {
			return blocks, err
		}
		sig := DataBlockSignature(sigRaw)

		payloadLen := int(blockSize) - 8
		if payloadLen < 0 {
			return blocks, newErrorf(KindInput, CodeInvalidData,
				"data block at offset %d has size %d, too small for a header", offset, blockSize)
		}
		payload, err := readBytes(s, offset+8, payloadLen)
		if err != nil {
			return blocks, err
		}

		block := DataBlock{Signature: sig, Raw: payload}
		parsed, err := parseDataBlockPayload(sig, payload, codepage)
		if err != nil {
			if isKnownSignature(sig) {
				return blocks, errorsWrap(err, ErrInvalidData)
			}
			// Unknown signature: retained verbatim per spec.md §4.7.
		} else {
			block.Parsed = parsed
		}

		blocks = append(blocks, block)
		offset += int64(blockSize)
	}

	return blocks, nil
}

func isKnownSignature(sig DataBlockSignature) bool {
	switch sig {
	case SignatureEnvironmentVariables, SignatureConsoleProps, SignatureDistributedLinkTracker,
		SignatureConsoleCodepage, SignatureSpecialFolder, SignatureDarwin, SignatureIconLocation,
		SignatureShimLayer, SignaturePropertyStore, SignatureKnownFolder, SignatureVistaAndAboveIDList:
		return true
	default:
		return false
	}
}

// parseDataBlockPayload dispatches payload to the per-signature sub-parser
// named in spec.md §4.7, returning (nil, nil) for an unknown signature.
func parseDataBlockPayload(sig DataBlockSignature, payload []byte, codepage uint32) (interface{}, error) {
	switch sig {
	case SignatureEnvironmentVariables:
		return parseEnvironmentVariablesBlock(payload, codepage)
	case SignatureConsoleProps:
		return parseConsolePropsBlock(payload)
	case SignatureDistributedLinkTracker:
		return parseTrackerBlock(payload)
	case SignatureConsoleCodepage:
		return parseConsoleCodepageBlock(payload)
	case SignatureSpecialFolder:
		return parseSpecialFolderBlock(payload)
	case SignatureDarwin:
		return parseDarwinBlock(payload, codepage)
	case SignatureIconLocation:
		return parseIconLocationBlock(payload, codepage)
	case SignatureShimLayer:
		return parseShimLayerBlock(payload)
	case SignaturePropertyStore:
		return parsePropertyStoreBlock(payload)
	case SignatureKnownFolder:
		return parseKnownFolderBlock(payload)
	case SignatureVistaAndAboveIDList:
		return parseVistaAndAboveIDListBlock(payload)
	default:
		return nil, nil
	}
}

package lnk

// StringData holds the at-most-five conditionally-present length-prefixed
// strings spec.md §3/§4.6 defines, in their fixed on-disk order.
type StringData struct {
	Description         StringValue
	RelativePath         StringValue
	WorkingDirectory     StringValue
	CommandLineArguments StringValue
	IconLocation         StringValue
}

// StringValue carries both presence and the decoded value, the same
// present/absent distinction spec.md §4.9 requires from every accessor.
type StringValue struct {
	Present bool
	Value   string
}

// parseStringData reads the sequence of conditionally-present strings
// starting at offset, in fixed order, following
// saferwall-pe/version.go's VsVersionInfo pattern of sequential sub-block
// reads each guarded by its own presence check.
func parseStringData(s ByteStream, offset int64, flags DataFlags, codepage uint32) (StringData, int64, error) {
	var sd StringData
	var err error

	if sd.Description, offset, err = readOptionalString(s, offset, flags, HasDescriptionString, codepage); err != nil {
		return sd, offset, err
	}
	if sd.RelativePath, offset, err = readOptionalString(s, offset, flags, HasRelativePathString, codepage); err != nil {
		return sd, offset, err
	}
	if sd.WorkingDirectory, offset, err = readOptionalString(s, offset, flags, HasWorkingDirectoryString, codepage); err != nil {
		return sd, offset, err
	}
	if sd.CommandLineArguments, offset, err = readOptionalString(s, offset, flags, HasCommandLineArgumentsString, codepage); err != nil {
		return sd, offset, err
	}
	if sd.IconLocation, offset, err = readOptionalString(s, offset, flags, HasIconLocationString, codepage); err != nil {
		return sd, offset, err
	}

	return sd, offset, nil
}

// readOptionalString reads one StringData entry: a 16-bit character count
// N, then 2*N bytes (IS_UNICODE) or N bytes (codepage), per spec.md §4.6.
func readOptionalString(s ByteStream, offset int64, flags DataFlags, bit DataFlags, codepage uint32) (StringValue, int64, error) {
	if !flags.Has(bit) {
		return StringValue{}, offset, nil
	}

	count, err := readUint16(s, offset)
	if err != nil {
		return StringValue{}, offset, err
	}
	offset += 2

	var value string
	if flags.Has(IsUnicode) {
		raw, err := readBytes(s, offset, int(count)*2)
		if err != nil {
			return StringValue{}, offset, err
		}
		if value, err = decodeUTF16LE(raw); err != nil {
			return StringValue{}, offset, err
		}
		offset += int64(count) * 2
	} else {
		raw, err := readBytes(s, offset, int(count))
		if err != nil {
			return StringValue{}, offset, err
		}
		if value, err = decodeCodepage(raw, codepage); err != nil {
			return StringValue{}, offset, err
		}
		offset += int64(count)
	}

	return StringValue{Present: true, Value: value}, offset, nil
}

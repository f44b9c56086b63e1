package lnk

import "bytes"

// Fuzz is the go-fuzz entrypoint (github.com/dvyukov/go-fuzz), kept from
// saferwall-pe/fuzz.go and adapted to route bytes through OpenStream
// instead of NewBytes/Parse.
func Fuzz(data []byte) int {
	f := New()
	defer f.Free()

	stream := OpenObject(bytes.NewReader(data), int64(len(data)))
	if err := f.OpenStream(stream, nil); err != nil {
		return 0
	}
	return 1
}

package lnk

import (
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// ByteStream is the uniform random-access byte source every parsing
// component above C1 is built on (spec.md §4.1). No component below C1
// touches filesystem APIs directly; everything goes through ReadAt/Size.
type ByteStream interface {
	// ReadAt reads len(p) bytes starting at off. A read that would cross
	// end-of-stream returns a short count and io.EOF, same contract as
	// io.ReaderAt.
	ReadAt(p []byte, off int64) (int, error)
	// Size returns the total byte length of the stream.
	Size() (int64, error)
	// Close releases resources. Closing an ObjectStream does not close
	// the borrowed object.
	Close() error
}

// PathStream is a ByteStream backed by OS file I/O, memory-mapped the way
// saferwall-pe's File.New does for its mmap.MMap-backed data.
type PathStream struct {
	f    *os.File
	data mmap.MMap
}

// OpenPath opens path and memory-maps it read-only.
func OpenPath(path string) (*PathStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errorFromOSOpen(err)
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		_ = f.Close()
		return nil, newErrorf(KindIO, CodeStreamOpenFailed, "mmap %s: %v", path, err)
	}
	return &PathStream{f: f, data: data}, nil
}

func errorFromOSOpen(err error) error {
	return newErrorf(KindIO, CodeStreamOpenFailed, "open: %v", err)
}

// ReadAt implements ByteStream.
func (s *PathStream) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Size implements ByteStream.
func (s *PathStream) Size() (int64, error) {
	return int64(len(s.data)), nil
}

// Close implements ByteStream.
func (s *PathStream) Close() error {
	var err error
	if s.data != nil {
		err = s.data.Unmap()
		s.data = nil
	}
	if s.f != nil {
		if cerr := s.f.Close(); err == nil {
			err = cerr
		}
		s.f = nil
	}
	return err
}

// ReaderAtCloser is the capability set an ObjectStream borrows from a
// caller-supplied byte source (e.g. a bytes.Reader, or an in-memory object
// wired up by a language binding). It requires only io.ReaderAt: the
// object is never closed by this package, so no Close method is needed.
type ReaderAtCloser interface {
	io.ReaderAt
}

// ObjectStream is a ByteStream backed by a caller-provided object. The
// object is borrowed, not owned: Close on an ObjectStream never closes the
// underlying object, matching spec.md §3's ownership summary ("a
// caller-provided byte-stream object is borrowed, not owned, but the File
// owns the adapter wrapping it").
type ObjectStream struct {
	obj  ReaderAtCloser
	size int64
}

// OpenObject wraps obj, whose total length is size, as a ByteStream.
func OpenObject(obj ReaderAtCloser, size int64) *ObjectStream {
	return &ObjectStream{obj: obj, size: size}
}

// ReadAt implements ByteStream.
func (s *ObjectStream) ReadAt(p []byte, off int64) (int, error) {
	return s.obj.ReadAt(p, off)
}

// Size implements ByteStream.
func (s *ObjectStream) Size() (int64, error) {
	return s.size, nil
}

// Close implements ByteStream. It never closes the borrowed object.
func (s *ObjectStream) Close() error {
	return nil
}

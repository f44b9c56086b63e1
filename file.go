package lnk

import (
	"os"
	"sync/atomic"

	"github.com/saferwall/lnk/internal/log"
)

// state is the File lifecycle spec.md §4.8 names:
// uninitialized -> initialized -> open -> closed -> freed.
type state int32

const (
	stateUninitialized state = iota
	stateInitialized
	stateOpen
	stateClosed
	stateFreed
)

// Options configures a File, mirroring saferwall-pe's Options (a custom
// logger, tunables) generalized to this format's knobs (spec.md §3/§6).
type Options struct {
	// ASCIICodepage selects the codepage used to decode every non-Unicode
	// string in the file. Zero means DefaultASCIICodepage.
	ASCIICodepage uint32

	// Logger receives diagnostics emitted during Open. Nil installs a
	// stderr logger filtered to LevelError and above.
	Logger log.Logger

	// AbortCheck, if non-nil, is polled at block-loop boundaries and
	// before each expensive sub-parse (spec.md §5). Returning true aborts
	// the in-flight Open with ErrAbortRequested.
	AbortCheck func() bool
}

// File is the top-level parsed representation (spec.md §3): it owns a
// ByteStream, a selected codepage, a Header, and the optional/ordered
// children C4-C7 produce. Children hold no back-pointer to File.
type File struct {
	state int32 // atomic state

	stream      ByteStream
	streamOwned bool
	codepage    uint32
	opts        Options
	logger      *log.Helper
	aborted     int32 // atomic bool, set by SignalAbort

	header               Header
	linkTargetIdentifier *LinkTargetIdentifier
	locationInformation  *LocationInformation
	stringData           StringData
	dataBlocks           []DataBlock
}

// New allocates and initializes a File handle, the "initialize" operation
// of spec.md §4.8/§6.
func New() *File {
	f := &File{codepage: DefaultASCIICodepage}
	atomic.StoreInt32(&f.state, int32(stateInitialized))
	return f
}

func (f *File) currentState() state {
	return state(atomic.LoadInt32(&f.state))
}

// Open parses the file at path. Access is always read-only; spec.md's
// "open(path, access)" access parameter exists for the Windows source's
// read/write distinction, which this core doesn't support (spec.md §1:
// the core does not write or mutate LNK files) — Open always opens for
// reading.
func (f *File) Open(path string, opts *Options) error {
	stream, err := OpenPath(path)
	if err != nil {
		return err
	}
	return f.open(stream, true, opts)
}

// OpenStream parses an arbitrary caller-supplied byte-stream object
// (spec.md §4.1's ObjectStream variant). The stream is borrowed: File does
// not close it.
func (f *File) OpenStream(stream ByteStream, opts *Options) error {
	if stream == nil {
		return ErrInvalidBuffer
	}
	return f.open(stream, false, opts)
}

func (f *File) open(stream ByteStream, owned bool, opts *Options) error {
	switch f.currentState() {
	case stateUninitialized:
		return newError(KindRuntime, CodeValueMissing, "File.New was not called")
	case stateOpen:
		if owned {
			_ = stream.Close()
		}
		return ErrAlreadyOpen
	case stateFreed:
		return newError(KindRuntime, CodeValueMissing, "File was freed")
	}

	f.opts = Options{}
	if opts != nil {
		f.opts = *opts
	}
	if f.opts.ASCIICodepage != 0 {
		f.codepage = f.opts.ASCIICodepage
	}

	var logger log.Logger
	if f.opts.Logger != nil {
		logger = f.opts.Logger
	} else {
		logger = log.NewFilter(log.NewStdLogger(os.Stderr), log.FilterLevel(log.LevelError))
	}
	f.logger = log.NewHelper(logger)

	f.stream = stream
	f.streamOwned = owned
	atomic.StoreInt32(&f.aborted, 0)

	if err := f.parse(); err != nil {
		f.teardownParsedState()
		if owned {
			_ = stream.Close()
		}
		f.stream = nil
		if IsAbortRequested(err) {
			atomic.StoreInt32(&f.state, int32(stateInitialized))
		}
		return err
	}

	atomic.StoreInt32(&f.state, int32(stateOpen))
	return nil
}

// parse runs C3 -> C4 -> C5 -> C6 -> C7 in the fixed order spec.md §5
// requires, releasing no partial state itself (the caller, open, does
// that on failure so every exit path gets the same teardown).
func (f *File) parse() error {
	size, err := f.stream.Size()
	if err != nil {
		return newErrorf(KindIO, CodeStreamReadFailed, "size: %v", err)
	}
	if size < headerSize {
		return newErrorf(KindInput, CodeTruncated,
			"file is %d bytes, smaller than the %d-byte header", size, headerSize)
	}

	header, err := parseHeader(f.stream)
	if err != nil {
		return err
	}
	f.header = header

	offset := int64(headerSize)

	lti, offset, err := parseLinkTargetIdentifier(f.stream, offset, f.header.DataFlags)
	if err != nil {
		return err
	}
	f.linkTargetIdentifier = lti

	if f.checkAbort() {
		return ErrAbortRequested
	}

	loc, offset, err := parseLocationInformation(f.stream, offset, f.header.DataFlags, f.codepage)
	if err != nil {
		return err
	}
	f.locationInformation = loc

	sd, offset, err := parseStringData(f.stream, offset, f.header.DataFlags, f.codepage)
	if err != nil {
		return err
	}
	f.stringData = sd

	if f.checkAbort() {
		return ErrAbortRequested
	}

	blocks, err := parseDataBlocks(f.stream, offset, size, f.codepage, f.checkAbort)
	if err != nil {
		return err
	}
	f.dataBlocks = blocks

	return nil
}

// checkAbort polls the abort flag and the caller's AbortCheck hook, the
// cooperative cancellation spec.md §5 describes.
func (f *File) checkAbort() bool {
	if atomic.LoadInt32(&f.aborted) != 0 {
		return true
	}
	if f.opts.AbortCheck != nil && f.opts.AbortCheck() {
		return true
	}
	return false
}

// SignalAbort requests that an in-flight Open call abort at the next safe
// point (spec.md §4.8/§5/§6). Each Open clears the flag when it starts, so
// a signal sent before Open begins does not carry into it. It never wires
// to an OS signal within the core.
func (f *File) SignalAbort() {
	atomic.StoreInt32(&f.aborted, 1)
}

// Close releases the ByteStream and parsed state, returning the handle to
// the initialized state so it can be reused for another Open (spec.md
// §4.8).
func (f *File) Close() error {
	st := f.currentState()
	if st != stateOpen {
		return nil
	}
	var err error
	if f.streamOwned && f.stream != nil {
		err = f.stream.Close()
	}
	f.stream = nil
	f.teardownParsedState()
	atomic.StoreInt32(&f.state, int32(stateInitialized))
	return err
}

// Free releases the handle itself (spec.md §4.8's "closed -> freed"
// transition). Go's GC makes this a state-machine formality rather than a
// resource release, but it's kept so the lifecycle named in spec.md §6
// matches exactly: any later Open/accessor call on a freed handle fails.
func (f *File) Free() error {
	if f.currentState() == stateOpen {
		_ = f.Close()
	}
	atomic.StoreInt32(&f.state, int32(stateFreed))
	return nil
}

func (f *File) teardownParsedState() {
	f.header = Header{}
	f.linkTargetIdentifier = nil
	f.locationInformation = nil
	f.stringData = StringData{}
	f.dataBlocks = nil
}

// ensureOpen returns ErrValueMissing if the handle isn't in the open
// state — spec.md §4.8: "Any accessor call in a state other than open
// returns RuntimeError::ValueMissing."
func (f *File) ensureOpen() error {
	if f.currentState() != stateOpen {
		return ErrValueMissing
	}
	return nil
}

// ASCIICodepage returns the codepage currently selected for ASCII string
// decoding.
func (f *File) ASCIICodepage() uint32 {
	return f.codepage
}

// SetASCIICodepage selects the codepage used for subsequent ASCII string
// decoding. May be called before or between Open calls (spec.md §3); it
// does not retroactively re-decode an already-open file's strings.
func (f *File) SetASCIICodepage(codepage uint32) error {
	if !SupportedCodepage(codepage) {
		return newErrorf(KindArgument, CodeInvalidIndex, "unsupported codepage %d", codepage)
	}
	f.codepage = codepage
	return nil
}

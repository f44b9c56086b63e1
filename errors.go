package lnk

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an error the way spec.md §7 requires: deep parsing code
// surfaces the most specific kind; outer layers may add context (via
// errors.Wrap) but never rewrite the kind.
type Kind uint8

// The five error kinds.
const (
	// KindArgument: caller supplied an invalid parameter.
	KindArgument Kind = iota
	// KindRuntime: internal state violation (re-open, accessor before open, abort).
	KindRuntime
	// KindIO: stream open/close/seek/read failed.
	KindIO
	// KindInput: the bytes parse as invalid.
	KindInput
	// KindMemory: allocator failure.
	KindMemory
)

func (k Kind) String() string {
	switch k {
	case KindArgument:
		return "Argument"
	case KindRuntime:
		return "Runtime"
	case KindIO:
		return "IO"
	case KindInput:
		return "Input"
	case KindMemory:
		return "Memory"
	default:
		return "Unknown"
	}
}

// Code is a short machine-readable code within a Kind.
type Code string

// Codes used across the core. Names mirror spec.md §7's taxonomy.
const (
	CodeInvalidBuffer        Code = "invalid_buffer"
	CodeInvalidIndex         Code = "invalid_index"
	CodeAlreadyOpen          Code = "already_open"
	CodeValueMissing         Code = "value_missing"
	CodeAbortRequested       Code = "abort_requested"
	CodeAllocationFailed     Code = "allocation_failed"
	CodeStreamOpenFailed     Code = "stream_open_failed"
	CodeStreamReadFailed     Code = "stream_read_failed"
	CodeTruncated            Code = "truncated"
	CodeSignatureMismatch    Code = "signature_mismatch"
	CodeValueMismatch        Code = "value_mismatch"
	CodeInvalidData          Code = "invalid_data"
	CodeChecksumMismatch     Code = "checksum_mismatch"
)

// Error is the library's error type: a (kind, code, message) frame. Errors
// are chained with github.com/pkg/errors.Wrap, so errors.Cause(err) always
// recovers the innermost *Error and %+v on any wrapped error dumps a
// backtrace.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s(%s): %s", e.Kind, e.Code, e.Message)
}

// newError constructs a chain-rooted *Error.
func newError(kind Kind, code Code, message string) error {
	return errors.WithStack(&Error{Kind: kind, Code: code, Message: message})
}

// newErrorf constructs a chain-rooted *Error with a formatted message.
func newErrorf(kind Kind, code Code, format string, args ...interface{}) error {
	return newError(kind, code, fmt.Sprintf(format, args...))
}

// errorsWrap wraps cause (an underlying I/O error) with sentinel's kind and
// code, keeping the pkg/errors chain so both the original cause and the
// sentinel survive in %+v output.
func errorsWrap(cause error, sentinel error) error {
	return errors.Wrap(sentinel, cause.Error())
}

// kindOf unwraps err down to the *Error root, if any, and returns its Kind.
func kindOf(err error) (Kind, bool) {
	var target *Error
	cause := errors.Cause(err)
	if e, ok := cause.(*Error); ok {
		target = e
	}
	if target == nil {
		return 0, false
	}
	return target.Kind, true
}

func codeOf(err error) (Code, bool) {
	cause := errors.Cause(err)
	if e, ok := cause.(*Error); ok {
		return e.Code, true
	}
	return "", false
}

// IsTruncated reports whether err is (or wraps) a KindInput/CodeTruncated error.
func IsTruncated(err error) bool {
	k, ok := kindOf(err)
	c, _ := codeOf(err)
	return ok && k == KindInput && c == CodeTruncated
}

// IsSignatureMismatch reports whether err is (or wraps) a signature-mismatch error.
func IsSignatureMismatch(err error) bool {
	k, ok := kindOf(err)
	c, _ := codeOf(err)
	return ok && k == KindInput && c == CodeSignatureMismatch
}

// IsInvalidData reports whether err is (or wraps) an invalid-data error.
func IsInvalidData(err error) bool {
	k, ok := kindOf(err)
	c, _ := codeOf(err)
	return ok && k == KindInput && c == CodeInvalidData
}

// IsAbortRequested reports whether err is (or wraps) an abort-requested error.
func IsAbortRequested(err error) bool {
	k, ok := kindOf(err)
	c, _ := codeOf(err)
	return ok && k == KindRuntime && c == CodeAbortRequested
}

// IsValueMissing reports whether err is (or wraps) a value-missing error
// (an accessor called outside the open state, or a Fill accessor asked for
// a value the file does not carry).
func IsValueMissing(err error) bool {
	k, ok := kindOf(err)
	c, _ := codeOf(err)
	return ok && k == KindRuntime && c == CodeValueMissing
}

// Errors used by the core. Deep parsing code returns these directly (or a
// pkg/errors.Wrap around them); the Kind is preserved through any wrapping.
var (
	ErrTruncated          = newError(KindInput, CodeTruncated, "truncated record")
	ErrSignatureMismatch  = newError(KindInput, CodeSignatureMismatch, "class identifier or header size mismatch")
	ErrInvalidData        = newError(KindInput, CodeInvalidData, "malformed record")
	ErrAlreadyOpen        = newError(KindRuntime, CodeAlreadyOpen, "handle is already open")
	ErrValueMissing       = newError(KindRuntime, CodeValueMissing, "handle not open, or value absent from the file")
	ErrAbortRequested     = newError(KindRuntime, CodeAbortRequested, "abort requested")
	ErrOutsideBoundary    = newError(KindInput, CodeTruncated, "read extends past end of stream")
	ErrInvalidBuffer      = newError(KindArgument, CodeInvalidBuffer, "buffer too small or nil")
	ErrInvalidIndex       = newError(KindArgument, CodeInvalidIndex, "index out of range")
)

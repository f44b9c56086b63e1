package lnk

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorsWrapPreservesKindAndCode(t *testing.T) {
	cause := errors.New("short read")
	wrapped := errorsWrap(cause, ErrTruncated)

	require.True(t, IsTruncated(wrapped))
	k, ok := kindOf(wrapped)
	require.True(t, ok)
	require.Equal(t, KindInput, k)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "Argument", KindArgument.String())
	require.Equal(t, "Memory", KindMemory.String())
}

func TestErrorMessage(t *testing.T) {
	e := &Error{Kind: KindIO, Code: CodeStreamOpenFailed, Message: "boom"}
	require.Equal(t, "IO(stream_open_failed): boom", e.Error())
}

// Package log is a small leveled-logger seam, the same shape
// github.com/saferwall/pe/log gives that project's File type: a pluggable
// Logger interface, a Helper with printf-style convenience methods, and a
// level Filter decorator. It has no third-party backend; callers that want
// structured logging wire their own Logger in through Options.Logger.
package log

import (
	"fmt"
	"io"
	"sync"
)

// Level is a logging severity.
type Level int8

// Severities, lowest to highest.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Logger is the minimal capability a File needs to emit diagnostics.
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

// stdLogger writes "[LEVEL] key=val key=val" lines to an io.Writer.
type stdLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStdLogger returns a Logger that writes plain lines to w.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{w: w}
}

func (l *stdLogger) Log(level Level, keyvals ...interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, "MISSING_VALUE")
	}
	_, err := fmt.Fprintf(l.w, "[%s] ", level)
	if err != nil {
		return err
	}
	for i := 0; i < len(keyvals); i += 2 {
		if _, err := fmt.Fprintf(l.w, "%v=%v ", keyvals[i], keyvals[i+1]); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(l.w)
	return err
}

// filter wraps a Logger and drops records below a configured level.
type filter struct {
	logger Logger
	level  Level
}

// FilterOption configures a Filter.
type FilterOption func(*filter)

// FilterLevel sets the minimum level a Filter lets through.
func FilterLevel(level Level) FilterOption {
	return func(f *filter) { f.level = level }
}

// NewFilter returns a Logger that discards records below the configured level.
func NewFilter(logger Logger, opts ...FilterOption) Logger {
	f := &filter{logger: logger, level: LevelInfo}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filter) Log(level Level, keyvals ...interface{}) error {
	if level < f.level {
		return nil
	}
	return f.logger.Log(level, keyvals...)
}

// Helper adds printf-style convenience methods over a Logger.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger in a Helper.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

func (h *Helper) log(level Level, format string, args ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	_ = h.logger.Log(level, "msg", fmt.Sprintf(format, args...))
}

// Debugf logs at LevelDebug.
func (h *Helper) Debugf(format string, args ...interface{}) { h.log(LevelDebug, format, args...) }

// Infof logs at LevelInfo.
func (h *Helper) Infof(format string, args ...interface{}) { h.log(LevelInfo, format, args...) }

// Warnf logs at LevelWarn.
func (h *Helper) Warnf(format string, args ...interface{}) { h.log(LevelWarn, format, args...) }

// Errorf logs at LevelError.
func (h *Helper) Errorf(format string, args ...interface{}) { h.log(LevelError, format, args...) }

// Debug logs a single message at LevelDebug.
func (h *Helper) Debug(args ...interface{}) { h.log(LevelDebug, "%s", fmt.Sprint(args...)) }

// Warn logs a single message at LevelWarn.
func (h *Helper) Warn(args ...interface{}) { h.log(LevelWarn, "%s", fmt.Sprint(args...)) }

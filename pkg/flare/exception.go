// exception.go defines the narrow capability interface host error types are
// adapted to before reporting, plus adapters for Go errors and panics.

package flare

import (
	"fmt"
	"runtime"
)

// Exception is the minimal view of a raised error the builder needs. Any
// host error type can be adapted to it; WrapError and FromPanic cover the
// common cases.
type Exception interface {
	// ClassName identifies the error's type, used for ignore-list matching
	// and the payload's className field.
	ClassName() string

	// Message is the human-readable description. It may contain arbitrary
	// bytes; the builder repairs invalid encodings before transmission.
	Message() string

	// StackFrames returns raw frame strings in "<file>:<line>:in `<method>'"
	// form, innermost call first. May be nil when no trace is available.
	StackFrames() []string
}

type basicException struct {
	class   string
	message string
	frames  []string
}

func (e *basicException) ClassName() string     { return e.class }
func (e *basicException) Message() string       { return e.message }
func (e *basicException) StackFrames() []string { return e.frames }

// NewException builds an Exception from raw parts. Frames are kept verbatim;
// parsing happens at report time.
func NewException(className, message string, frames []string) Exception {
	return &basicException{class: className, message: message, frames: frames}
}

// WrapError adapts a plain Go error. The class name is the error's dynamic
// type and the stack is captured at the call site.
func WrapError(err error) Exception {
	return &basicException{
		class:   fmt.Sprintf("%T", err),
		message: err.Error(),
		frames:  captureFrames(1),
	}
}

// captureFrames formats the current call stack in the raw frame syntax the
// builder parses, skipping skip frames above the caller.
func captureFrames(skip int) []string {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	raw := make([]string, 0, n)
	for {
		frame, more := frames.Next()
		raw = append(raw, fmt.Sprintf("%s:%d:in `%s'", frame.File, frame.Line, frame.Function))
		if !more {
			break
		}
	}
	return raw
}

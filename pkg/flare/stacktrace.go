// stacktrace.go parses raw stack-frame strings into structured frames.

package flare

import (
	"regexp"
	"strings"
)

// unknownMethod is emitted when a frame carries no method segment.
const unknownMethod = "(none)"

// methodWrapper matches the "in `method'" decoration some runtimes put
// around the method segment of a frame.
var methodWrapper = regexp.MustCompile("^in `(.*)'$")

// ParseFrame splits a raw "<file>:<line>:in `<method>'" frame. File and line
// are kept verbatim; segments past the third are dropped.
func ParseFrame(raw string) StackFrame {
	parts := strings.Split(raw, ":")

	frame := StackFrame{MethodName: unknownMethod}
	if len(parts) > 0 {
		frame.FileName = parts[0]
	}
	if len(parts) > 1 {
		frame.LineNumber = parts[1]
	}
	if len(parts) > 2 {
		frame.MethodName = methodWrapper.ReplaceAllString(parts[2], "$1")
	}
	return frame
}

// ParseFrames parses every raw frame in order. A nil input yields an empty
// trace, not an error.
func ParseFrames(raws []string) []StackFrame {
	frames := make([]StackFrame, 0, len(raws))
	for _, raw := range raws {
		frames = append(frames, ParseFrame(raw))
	}
	return frames
}

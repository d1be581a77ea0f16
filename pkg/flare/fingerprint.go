// fingerprint.go generates stable hashes for grouping similar reports.

package flare

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// fingerprintFrames is how many leading frames participate in grouping.
const fingerprintFrames = 3

// Fingerprint generates a hash for grouping similar reports. It is based on
// the exception class name and the file/method of the first few frames, and
// ignores variable data: timestamps, messages, and line numbers.
func Fingerprint(payload ReportPayload) string {
	parts := []string{payload.Details.Error.ClassName}

	frames := payload.Details.Error.StackTrace
	if len(frames) > fingerprintFrames {
		frames = frames[:fingerprintFrames]
	}
	for _, frame := range frames {
		parts = append(parts, frame.FileName+"#"+frame.MethodName)
	}

	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(hash[:16])
}

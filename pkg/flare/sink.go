// sink.go defines the Sink interface for report destinations.

package flare

import "context"

// Sink is the destination for built reports.
// Implementations must be safe for concurrent use.
type Sink interface {
	// Write delivers one payload. Called after building and redaction.
	Write(ctx context.Context, payload ReportPayload) error

	// Flush ensures any buffered payloads are delivered.
	// For synchronous sinks, this may be a no-op.
	Flush(ctx context.Context) error

	// Close releases resources held by the sink.
	// After Close is called, Write and Flush should return errors.
	Close() error
}

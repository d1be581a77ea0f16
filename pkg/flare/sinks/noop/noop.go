// Package noop provides a no-operation sink that discards all reports.
// Useful for testing and for disabling transmission entirely.
package noop

import (
	"context"

	"github.com/flarehq/flare/pkg/flare"
)

// noopSink discards all reports.
type noopSink struct{}

// NewNoopSink creates a sink that discards all reports.
// All methods return nil and perform no operations.
func NewNoopSink() flare.Sink {
	return &noopSink{}
}

// Write discards the report and returns nil.
func (s *noopSink) Write(ctx context.Context, payload flare.ReportPayload) error {
	return nil
}

// Flush is a no-op and returns nil.
func (s *noopSink) Flush(ctx context.Context) error {
	return nil
}

// Close is a no-op and returns nil.
func (s *noopSink) Close() error {
	return nil
}

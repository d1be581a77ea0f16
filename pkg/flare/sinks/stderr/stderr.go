// Package stderr provides a sink that prints reports to stderr in
// human-readable form. Useful for development and debugging.
package stderr

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/flarehq/flare/pkg/flare"
)

// StderrSinkOption configures the stderr sink.
type StderrSinkOption func(*stderrSinkConfig)

type stderrSinkConfig struct {
	verbose bool
}

// WithVerbose enables full report details including the stack trace.
func WithVerbose() StderrSinkOption {
	return func(c *stderrSinkConfig) {
		c.verbose = true
	}
}

// stderrSink writes reports to stderr in human-readable format.
type stderrSink struct {
	verbose bool
}

// NewStderrSink creates a sink that writes to stderr.
func NewStderrSink(opts ...StderrSinkOption) flare.Sink {
	cfg := &stderrSinkConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &stderrSink{
		verbose: cfg.verbose,
	}
}

// Write formats and outputs the report to stderr.
func (s *stderrSink) Write(ctx context.Context, payload flare.ReportPayload) error {
	details := payload.Details

	// Main line
	// Format: [FLARE] <occurredOn> <className> on <machineName> (<httpMethod> <url>)
	var parts []string
	parts = append(parts, fmt.Sprintf("[FLARE] %s %s", payload.OccurredOn, details.Error.ClassName))

	if details.MachineName != "" {
		parts = append(parts, fmt.Sprintf("on %s", details.MachineName))
	}
	if details.Request.HTTPMethod != "" || details.Request.URL != "" {
		parts = append(parts, fmt.Sprintf("(%s %s)", details.Request.HTTPMethod, details.Request.URL))
	}

	fmt.Fprintln(os.Stderr, strings.Join(parts, " "))

	// Message line
	if details.Error.Message != "" {
		fmt.Fprintf(os.Stderr, "        Message: %s\n", details.Error.Message)
	}

	// Fingerprint line
	fmt.Fprintf(os.Stderr, "        Fingerprint: %s\n", flare.Fingerprint(payload))

	// Stack trace (only in verbose mode)
	if s.verbose && len(details.Error.StackTrace) > 0 {
		fmt.Fprintf(os.Stderr, "        Stack trace:\n")
		for _, frame := range details.Error.StackTrace {
			fmt.Fprintf(os.Stderr, "          %s:%s in %s\n", frame.FileName, frame.LineNumber, frame.MethodName)
		}
	}

	return nil
}

// Flush is a no-op for stderr sink.
func (s *stderrSink) Flush(ctx context.Context) error {
	return nil
}

// Close is a no-op for stderr sink.
func (s *stderrSink) Close() error {
	return nil
}

// client.go provides the Client tying settings, builder, and sink together.

package flare

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	sink Sink
}

// WithSink sets the destination reports are written to. Production hosts
// wire the api sink here; without it reports are built and dropped.
func WithSink(sink Sink) Option {
	return func(c *clientConfig) {
		c.sink = sink
	}
}

// Client reports exceptions to the configured sink. It holds no per-report
// state; all tunables are read from Settings at report time.
type Client struct {
	settings *Settings
	builder  *Builder
	sink     Sink
}

// NewClient validates the credential precondition and returns a ready
// client. A missing API key fails here, not on the first report.
func NewClient(settings *Settings, opts ...Option) (*Client, error) {
	if settings == nil {
		settings = NewSettings()
	}
	if settings.APIKey() == "" {
		return nil, missingCredentialError()
	}

	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.sink == nil {
		cfg.sink = &noopSinkInternal{}
	}

	return &Client{
		settings: settings,
		builder:  NewBuilder(settings),
		sink:     cfg.sink,
	}, nil
}

// Settings exposes the resolver the client reads, so hosts can adjust
// tunables after construction.
func (c *Client) Settings() *Settings { return c.settings }

// Report builds and transmits a payload for exc. Attempting to report an
// error never raises one: shaping failures degrade to empty fields, and
// anything unexpected is caught and written to the failsafe logger.
func (c *Client) Report(ctx context.Context, exc Exception, env map[string]any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.settings.FailsafeLogger().Error("report failed",
				zap.Any("recovered", r))
			err = fmt.Errorf("flare: report failed: %v", r)
		}
	}()

	if exc == nil {
		return nil
	}
	if !c.settings.ReportingEnabled() {
		c.settings.Logger().Debug("reporting disabled, dropping report",
			zap.String("class_name", exc.ClassName()))
		return nil
	}
	if lo.Contains(c.settings.IgnoreList(), exc.ClassName()) {
		c.settings.Logger().Debug("ignored exception class, dropping report",
			zap.String("class_name", exc.ClassName()))
		return nil
	}

	payload := c.builder.BuildReport(exc, mergeContextEnv(ctx, env))
	payload.ID = uuid.NewString()

	c.settings.Logger().Info("sending report",
		zap.String("report_id", payload.ID),
		zap.String("class_name", exc.ClassName()),
		zap.String("fingerprint", Fingerprint(payload)))

	if err := c.sink.Write(ctx, payload); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ReportError is a convenience wrapper for plain Go errors. A nil error is
// not a report.
func (c *Client) ReportError(ctx context.Context, err error, env map[string]any) error {
	if err == nil {
		return nil
	}
	return c.Report(ctx, WrapError(err), env)
}

// Flush delegates to the sink.
func (c *Client) Flush(ctx context.Context) error {
	return c.sink.Flush(ctx)
}

// Close delegates to the sink.
func (c *Client) Close() error {
	return c.sink.Close()
}

// noopSinkInternal is an internal noop sink to avoid import cycles.
type noopSinkInternal struct{}

func (s *noopSinkInternal) Write(ctx context.Context, payload ReportPayload) error {
	return nil
}

func (s *noopSinkInternal) Flush(ctx context.Context) error {
	return nil
}

func (s *noopSinkInternal) Close() error {
	return nil
}

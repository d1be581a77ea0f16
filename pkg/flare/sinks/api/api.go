// Package api provides the sink that posts reports to the collection
// endpoint over HTTPS. Delivery is at-most-once: a failed post is an error
// to the caller, never retried here.
package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/flarehq/flare/pkg/flare"
)

// EntriesPath is the fixed collection path reports are posted to.
const EntriesPath = "/entries"

// apiKeyHeader carries the credential on every post.
const apiKeyHeader = "X-ApiKey"

// APISinkOption configures the api sink.
type APISinkOption func(*apiSinkConfig)

type apiSinkConfig struct {
	timeout time.Duration
}

// WithTimeout sets the per-post timeout (default: 10s).
func WithTimeout(d time.Duration) APISinkOption {
	return func(c *apiSinkConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// apiSink posts payloads with resty. Endpoint, credential, and proxy are
// read from settings at write time, so host overrides apply to in-flight
// clients.
type apiSink struct {
	client   *resty.Client
	settings *flare.Settings
}

// NewAPISink creates the HTTP transport sink. The proxy is assembled from
// the proxy settings when a host is configured.
func NewAPISink(settings *flare.Settings, opts ...APISinkOption) flare.Sink {
	cfg := &apiSinkConfig{
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client := resty.New().SetTimeout(cfg.timeout)
	if settings.ProxyHost() != "" {
		client.SetProxy(proxyURL(settings))
	}

	return &apiSink{
		client:   client,
		settings: settings,
	}
}

// Write posts one payload. Any non-2xx response is an error.
func (s *apiSink) Write(ctx context.Context, payload flare.ReportPayload) error {
	response, err := s.client.R().
		SetContext(ctx).
		SetHeader(apiKeyHeader, s.settings.APIKey()).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(s.settings.APIURL() + EntriesPath)
	if err != nil {
		return fmt.Errorf("post report: %w", err)
	}

	if response.StatusCode() < 200 || response.StatusCode() >= 300 {
		return fmt.Errorf("collection endpoint returned status %d: %s",
			response.StatusCode(), response.Body())
	}
	return nil
}

// Flush is a no-op; posts are synchronous.
func (s *apiSink) Flush(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (s *apiSink) Close() error {
	return nil
}

// proxyURL assembles the proxy address from settings, with credentials when
// configured.
func proxyURL(settings *flare.Settings) string {
	host := settings.ProxyHost()
	if port := settings.ProxyPort(); port != 0 {
		host = fmt.Sprintf("%s:%d", host, port)
	}
	proxy := &url.URL{Scheme: "http", Host: host}
	if user := settings.ProxyUser(); user != "" {
		proxy.User = url.UserPassword(user, settings.ProxyPassword())
	}
	return proxy.String()
}

package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flarehq/flare/pkg/flare"
)

// collectorServer records posts the way the collection endpoint would see
// them.
type collectorServer struct {
	mu     sync.Mutex
	server *httptest.Server

	paths   []string
	apiKeys []string
	bodies  [][]byte
	status  int
}

func newCollectorServer(t *testing.T) *collectorServer {
	t.Helper()

	c := &collectorServer{status: http.StatusAccepted}
	c.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		c.mu.Lock()
		c.paths = append(c.paths, r.URL.Path)
		c.apiKeys = append(c.apiKeys, r.Header.Get("X-ApiKey"))
		c.bodies = append(c.bodies, body)
		status := c.status
		c.mu.Unlock()

		w.WriteHeader(status)
	}))
	t.Cleanup(c.server.Close)
	return c
}

func (c *collectorServer) setStatus(status int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}

func (c *collectorServer) received() ([]string, []string, [][]byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.paths...), append([]string{}, c.apiKeys...), append([][]byte{}, c.bodies...)
}

func testSettings(endpoint string) *flare.Settings {
	settings := flare.NewSettings()
	settings.SetAPIKey("test-api-key")
	settings.SetAPIURL(endpoint)
	return settings
}

func testPayload() flare.ReportPayload {
	return flare.ReportPayload{
		ID:         "rep-1",
		OccurredOn: "2026-08-31T12:00:00Z",
		Details: flare.ReportDetails{
			MachineName: "web-01",
			Client: flare.ClientIdentity{
				Name:      flare.ClientName,
				Version:   flare.ClientVersion,
				ClientURL: flare.ClientURL,
			},
			Error: flare.ExceptionRecord{
				ClassName: "StandardError",
				Message:   "something broke",
			},
			Request: flare.RequestContext{RawData: []any{}},
		},
	}
}

func TestAPISink_Write_PostsToEntriesPath(t *testing.T) {
	collector := newCollectorServer(t)
	sink := NewAPISink(testSettings(collector.server.URL))

	err := sink.Write(context.Background(), testPayload())
	require.NoError(t, err)

	paths, apiKeys, _ := collector.received()
	require.Len(t, paths, 1)
	assert.Equal(t, EntriesPath, paths[0])
	assert.Equal(t, "test-api-key", apiKeys[0])
}

func TestAPISink_Write_SendsWireShape(t *testing.T) {
	collector := newCollectorServer(t)
	sink := NewAPISink(testSettings(collector.server.URL))

	err := sink.Write(context.Background(), testPayload())
	require.NoError(t, err)

	_, _, bodies := collector.received()
	require.Len(t, bodies, 1)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(bodies[0], &decoded))

	assert.Equal(t, "2026-08-31T12:00:00Z", decoded["occurredOn"])

	details, ok := decoded["details"].(map[string]any)
	require.True(t, ok, "details must be an object")
	assert.Equal(t, "web-01", details["machineName"])

	errSection, ok := details["error"].(map[string]any)
	require.True(t, ok, "error must be an object")
	assert.Equal(t, "StandardError", errSection["className"])

	// The correlation ID never appears on the wire.
	assert.NotContains(t, string(bodies[0]), "rep-1")
}

func TestAPISink_Write_NonSuccessStatusIsError(t *testing.T) {
	collector := newCollectorServer(t)
	collector.setStatus(http.StatusForbidden)
	sink := NewAPISink(testSettings(collector.server.URL))

	err := sink.Write(context.Background(), testPayload())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestAPISink_Write_UnreachableEndpointIsError(t *testing.T) {
	settings := testSettings("http://127.0.0.1:1")
	sink := NewAPISink(settings, WithTimeout(500*time.Millisecond))

	err := sink.Write(context.Background(), testPayload())
	require.Error(t, err)
}

func TestAPISink_Write_HonorsContextCancellation(t *testing.T) {
	collector := newCollectorServer(t)
	sink := NewAPISink(testSettings(collector.server.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sink.Write(ctx, testPayload())
	require.Error(t, err)
}

func TestAPISink_FlushAndClose_NoOps(t *testing.T) {
	collector := newCollectorServer(t)
	sink := NewAPISink(testSettings(collector.server.URL))

	assert.NoError(t, sink.Flush(context.Background()))
	assert.NoError(t, sink.Close())
}

package flare

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// testSink captures payloads for verification in tests.
type testSink struct {
	mu       sync.Mutex
	payloads []ReportPayload
	writeErr error
	panicOn  bool
}

func (s *testSink) Write(ctx context.Context, payload ReportPayload) error {
	if s.panicOn {
		panic("sink exploded")
	}
	if s.writeErr != nil {
		return s.writeErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, payload)
	return nil
}

func (s *testSink) Flush(ctx context.Context) error {
	return nil
}

func (s *testSink) Close() error {
	return nil
}

func (s *testSink) getPayloads() []ReportPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]ReportPayload, len(s.payloads))
	copy(result, s.payloads)
	return result
}

func keyedSettings() *Settings {
	s := NewSettings()
	s.SetAPIKey("test-api-key")
	return s
}

func TestNewClient_MissingAPIKeyFails(t *testing.T) {
	_, err := NewClient(NewSettings())
	if err == nil {
		t.Fatal("NewClient without an API key should fail")
	}

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error should be a ConfigurationError, got %T: %v", err, err)
	}
	if cfgErr.Setting != SettingAPIKey {
		t.Errorf("failing setting = %q, want %q", cfgErr.Setting, SettingAPIKey)
	}
}

func TestNewClient_NilSettingsStillValidates(t *testing.T) {
	if _, err := NewClient(nil); err == nil {
		t.Fatal("NewClient(nil) should fail the credential check")
	}
}

func TestClient_Report_WritesToSink(t *testing.T) {
	sink := &testSink{}
	client, err := NewClient(keyedSettings(), WithSink(sink))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if err := client.Report(context.Background(), testException(), nil); err != nil {
		t.Fatalf("Report returned error: %v", err)
	}

	payloads := sink.getPayloads()
	if len(payloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(payloads))
	}
	if payloads[0].Details.Error.ClassName != "StandardError" {
		t.Errorf("payload class = %q", payloads[0].Details.Error.ClassName)
	}
}

func TestClient_Report_GeneratesID(t *testing.T) {
	sink := &testSink{}
	client, _ := NewClient(keyedSettings(), WithSink(sink))

	_ = client.Report(context.Background(), testException(), nil)

	payloads := sink.getPayloads()
	if len(payloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(payloads))
	}
	if payloads[0].ID == "" {
		t.Error("report ID should be generated")
	}
	// UUID format: 36 chars with hyphens.
	if len(payloads[0].ID) != 36 {
		t.Errorf("report ID length = %d, want 36", len(payloads[0].ID))
	}
}

func TestClient_Report_NilExceptionIsNoop(t *testing.T) {
	sink := &testSink{}
	client, _ := NewClient(keyedSettings(), WithSink(sink))

	if err := client.Report(context.Background(), nil, nil); err != nil {
		t.Errorf("nil exception should be a no-op, got %v", err)
	}
	if len(sink.getPayloads()) != 0 {
		t.Error("nil exception should not reach the sink")
	}
}

func TestClient_Report_RespectsSilencing(t *testing.T) {
	sink := &testSink{}
	settings := keyedSettings()
	client, _ := NewClient(settings, WithSink(sink))

	settings.SetSilenced(true)
	if err := client.Report(context.Background(), testException(), nil); err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if len(sink.getPayloads()) != 0 {
		t.Error("silenced client should drop reports")
	}

	settings.SetSilenced(false)
	_ = client.Report(context.Background(), testException(), nil)
	if len(sink.getPayloads()) != 1 {
		t.Error("unsilenced client should report again")
	}
}

func TestClient_Report_SkipsIgnoredClasses(t *testing.T) {
	sink := &testSink{}
	client, _ := NewClient(keyedSettings(), WithSink(sink))

	exc := NewException("RecordNotFound", "no such row", nil)
	if err := client.Report(context.Background(), exc, nil); err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if len(sink.getPayloads()) != 0 {
		t.Error("ignored class should not reach the sink")
	}
}

func TestClient_Report_SinkErrorWrapped(t *testing.T) {
	sink := &testSink{writeErr: errors.New("endpoint down")}
	client, _ := NewClient(keyedSettings(), WithSink(sink))

	err := client.Report(context.Background(), testException(), nil)
	if err == nil {
		t.Fatal("sink error should surface")
	}
	if !errors.Is(err, sink.writeErr) {
		t.Errorf("sink error should be wrapped, got %v", err)
	}
}

func TestClient_Report_NeverPanics(t *testing.T) {
	sink := &testSink{panicOn: true}
	client, _ := NewClient(keyedSettings(), WithSink(sink))

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Report let a panic escape: %v", r)
		}
	}()

	err := client.Report(context.Background(), testException(), nil)
	if err == nil {
		t.Error("a swallowed panic should still surface as an error")
	}
}

func TestClient_ReportError_NilIsNoop(t *testing.T) {
	sink := &testSink{}
	client, _ := NewClient(keyedSettings(), WithSink(sink))

	if err := client.ReportError(context.Background(), nil, nil); err != nil {
		t.Errorf("nil error should be a no-op, got %v", err)
	}
	if len(sink.getPayloads()) != 0 {
		t.Error("nil error should not reach the sink")
	}
}

func TestClient_ReportError_AdaptsGoErrors(t *testing.T) {
	sink := &testSink{}
	client, _ := NewClient(keyedSettings(), WithSink(sink))

	_ = client.ReportError(context.Background(), errors.New("boom"), nil)

	payloads := sink.getPayloads()
	if len(payloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(payloads))
	}
	if payloads[0].Details.Error.Message != "boom" {
		t.Errorf("message = %q", payloads[0].Details.Error.Message)
	}
	if len(payloads[0].Details.Error.StackTrace) == 0 {
		t.Error("wrapped error should carry a captured stack")
	}
}

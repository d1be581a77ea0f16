package noop

import (
	"context"
	"testing"

	"github.com/flarehq/flare/pkg/flare"
)

func TestNoopSink_ImplementsSinkInterface(t *testing.T) {
	var _ flare.Sink = NewNoopSink()
}

func TestNoopSink_Write_ReturnsNil(t *testing.T) {
	sink := NewNoopSink()

	payload := flare.ReportPayload{
		ID:         "rep-123",
		OccurredOn: "2026-01-01T00:00:00Z",
	}

	if err := sink.Write(context.Background(), payload); err != nil {
		t.Errorf("Write returned error: %v", err)
	}
}

func TestNoopSink_Flush_ReturnsNil(t *testing.T) {
	sink := NewNoopSink()

	if err := sink.Flush(context.Background()); err != nil {
		t.Errorf("Flush returned error: %v", err)
	}
}

func TestNoopSink_Close_ReturnsNil(t *testing.T) {
	sink := NewNoopSink()

	if err := sink.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}
}

func TestNoopSink_MultipleWrites(t *testing.T) {
	sink := NewNoopSink()

	for i := 0; i < 100; i++ {
		if err := sink.Write(context.Background(), flare.ReportPayload{}); err != nil {
			t.Fatalf("Write %d returned error: %v", i, err)
		}
	}
}

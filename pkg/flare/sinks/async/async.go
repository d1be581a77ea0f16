// Package async provides a sink wrapper with a bounded queue so report
// writes never block the host's request path. Reports are delivered in the
// background; oldest reports are dropped when the queue is full.
package async

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/flarehq/flare/pkg/flare"
)

// AsyncSinkOption configures the async sink.
type AsyncSinkOption func(*asyncSinkConfig)

type asyncSinkConfig struct {
	queueSize     int
	flushInterval time.Duration
	onDropped     func(count int)
}

// WithQueueSize sets the maximum number of queued reports (default: 1000).
func WithQueueSize(size int) AsyncSinkOption {
	return func(c *asyncSinkConfig) {
		if size > 0 {
			c.queueSize = size
		}
	}
}

// WithFlushInterval sets how often to flush to the inner sink (default: 100ms).
func WithFlushInterval(d time.Duration) AsyncSinkOption {
	return func(c *asyncSinkConfig) {
		if d > 0 {
			c.flushInterval = d
		}
	}
}

// WithOnDropped sets a callback invoked when reports are dropped due to
// queue overflow.
func WithOnDropped(fn func(count int)) AsyncSinkOption {
	return func(c *asyncSinkConfig) {
		c.onDropped = fn
	}
}

// asyncSink wraps a sink with a bounded queue.
type asyncSink struct {
	inner     flare.Sink
	queue     chan flare.ReportPayload
	done      chan struct{}
	closeOnce sync.Once
	closeMu   sync.Mutex
	closed    bool
	wg        sync.WaitGroup
	onDropped func(count int)
}

// NewAsyncSink wraps a sink with a bounded queue for async writes.
// Write() returns immediately; reports are delivered in the background.
// When the queue is full, the oldest report is dropped to make room.
func NewAsyncSink(inner flare.Sink, opts ...AsyncSinkOption) flare.Sink {
	cfg := &asyncSinkConfig{
		queueSize:     1000,
		flushInterval: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &asyncSink{
		inner:     inner,
		queue:     make(chan flare.ReportPayload, cfg.queueSize),
		done:      make(chan struct{}),
		onDropped: cfg.onDropped,
	}

	s.wg.Add(1)
	go s.processLoop()

	return s
}

// processLoop drains the queue and writes to the inner sink.
func (s *asyncSink) processLoop() {
	defer s.wg.Done()
	for {
		select {
		case payload, ok := <-s.queue:
			if !ok {
				return
			}
			// Ignore errors from inner sink (fire and forget)
			_ = s.inner.Write(context.Background(), payload)
		case <-s.done:
			// Drain remaining reports
			for {
				select {
				case payload, ok := <-s.queue:
					if !ok {
						return
					}
					_ = s.inner.Write(context.Background(), payload)
				default:
					return
				}
			}
		}
	}
}

// Write enqueues a report for async delivery.
// Returns immediately. If the queue is full, drops the oldest report.
func (s *asyncSink) Write(ctx context.Context, payload flare.ReportPayload) error {
	s.closeMu.Lock()
	if s.closed {
		s.closeMu.Unlock()
		return errors.New("async sink is closed")
	}
	s.closeMu.Unlock()

	// Try to enqueue
	select {
	case s.queue <- payload:
		return nil
	default:
		// Queue is full - drop oldest and enqueue new
		s.dropOldestAndEnqueue(payload)
		return nil
	}
}

// dropOldestAndEnqueue drops the oldest report and enqueues the new one.
func (s *asyncSink) dropOldestAndEnqueue(payload flare.ReportPayload) {
	// Try to read (drop) one report from the queue
	select {
	case <-s.queue:
		if s.onDropped != nil {
			s.onDropped(1)
		}
	default:
		// Queue was emptied by the processor, try again
	}

	// Now try to enqueue again
	select {
	case s.queue <- payload:
	default:
		// Still full, just drop the new report
		if s.onDropped != nil {
			s.onDropped(1)
		}
	}
}

// Flush blocks until all queued reports are delivered.
func (s *asyncSink) Flush(ctx context.Context) error {
	// Wait for the queue to drain by checking periodically
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if len(s.queue) == 0 {
				// Give a moment for the last report to be delivered
				time.Sleep(10 * time.Millisecond)
				return s.inner.Flush(ctx)
			}
		}
	}
}

// Close stops the async processor and closes the inner sink.
func (s *asyncSink) Close() error {
	s.closeOnce.Do(func() {
		s.closeMu.Lock()
		s.closed = true
		s.closeMu.Unlock()

		// Signal done and wait for drain
		close(s.done)
		s.wg.Wait()
		close(s.queue)
	})

	return s.inner.Close()
}

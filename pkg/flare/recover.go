// recover.go provides the Recover helper for standalone panic capture.
// Use this in HTTP handlers, goroutines, or other code outside a framework
// middleware chain.

package flare

import (
	"context"
	"fmt"
)

// Recover captures a panic, reports it through the client, and returns the
// recovered value. Recover does NOT re-panic after reporting.
//
// Recover calls recover internally, so it only works when deferred
// directly:
//
//	func worker(ctx context.Context) {
//	    defer flare.Recover(ctx, client, env)
//	    // code that might panic
//	}
//
// To act on the recovered value, call recover yourself and report through
// FromPanic:
//
//	func handler(ctx context.Context) (err error) {
//	    defer func() {
//	        if r := recover(); r != nil {
//	            _ = client.Report(ctx, flare.FromPanic(r), env)
//	            err = fmt.Errorf("panic: %v", r)
//	        }
//	    }()
//	    // code that might panic
//	}
func Recover(ctx context.Context, client *Client, env map[string]any) any {
	r := recover()
	if r == nil {
		return nil
	}

	// Report the panic (errors are already absorbed by the client).
	_ = client.Report(ctx, newPanicException(r, 2), env)

	return r
}

// FromPanic adapts a recovered panic value into an Exception carrying the
// current call stack.
func FromPanic(recovered any) Exception {
	return newPanicException(recovered, 1)
}

func newPanicException(recovered any, skip int) Exception {
	return &basicException{
		class:   classNameOf(recovered),
		message: formatRecovered(recovered),
		frames:  captureFrames(skip + 1),
	}
}

// classNameOf names the recovered value's dynamic type.
func classNameOf(recovered any) string {
	if recovered == nil {
		return "panic"
	}
	return fmt.Sprintf("%T", recovered)
}

// formatRecovered formats a recovered panic value as a string.
func formatRecovered(recovered any) string {
	if recovered == nil {
		return "<nil>"
	}
	if err, ok := recovered.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("%v", recovered)
}

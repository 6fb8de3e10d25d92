// Package reqctx carries a per-run correlation ID through a navigator or
// extraction run so its log lines can be tied together.
package reqctx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

type key int

const runKey key = 0

// RunContext identifies one discovery or extraction run.
type RunContext struct {
	RunID     string
	StartTime time.Time
}

// WithRunContext attaches a fresh run ID to ctx. Attaching twice is safe;
// the inner run keeps its own ID.
func WithRunContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, runKey, &RunContext{
		RunID:     generateID(),
		StartTime: time.Now(),
	})
}

// GetRunContext returns the run context, or a placeholder when absent.
func GetRunContext(ctx context.Context) *RunContext {
	if rc, ok := ctx.Value(runKey).(*RunContext); ok {
		return rc
	}
	return &RunContext{
		RunID:     "unknown",
		StartTime: time.Now(),
	}
}

func generateID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// RunError wraps an error with its run ID.
type RunError struct {
	RunID string
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("[%s] %v", e.RunID, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// NewRunError creates a RunError from the context's run ID.
func NewRunError(ctx context.Context, err error) error {
	rc := GetRunContext(ctx)
	return &RunError{RunID: rc.RunID, Err: err}
}

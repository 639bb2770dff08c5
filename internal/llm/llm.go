// Package llm performs the inference round trip to the model backend.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskclass/internal/toolcall"
)

// InvokeRequest is one structured-call round trip: a prompt, the declaration
// constraining the answer, and per-request model settings.
type InvokeRequest struct {
	Prompt      string
	Declaration toolcall.Declaration
	ModelID     string
	Temperature float64
	Timeout     time.Duration
}

// Invoker sends exactly one request to the backend and returns the raw
// arguments of the structured-call invocation in its response. No retries.
type Invoker interface {
	Invoke(ctx context.Context, req InvokeRequest) (map[string]any, error)
}

// ErrNoToolInvocation means the backend answered with prose instead of
// invoking the declared call.
var ErrNoToolInvocation = errors.New("no structured-call invocation in model response")

// TimeoutError means no backend response arrived within the request bound.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("no backend response within %s", e.Timeout)
}

func (e *TimeoutError) Is(target error) bool {
	return target == context.DeadlineExceeded
}

// BackendError means the backend endpoint could not be reached or rejected
// the request at the transport level.
type BackendError struct {
	Cause error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend unavailable: %v", e.Cause)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

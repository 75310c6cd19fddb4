package stepz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Error provides rich context about pipeline execution failures. It wraps
// the underlying error with the path through nested pipelines to the
// failing step, when the failure occurred, and whether it was due to
// timeout or cancellation.
//
// The wrapped error is reachable verbatim through Unwrap, so callers can
// keep using errors.Is and errors.As against their own sentinel errors.
type Error struct {
	Timestamp time.Time
	Err       error
	Path      []Name
	Duration  time.Duration
	Timeout   bool
	Canceled  bool
}

// Error implements the error interface, providing a detailed message that
// names the failing step by its full path.
func (e *Error) Error() string {
	location := "pipeline"
	if len(e.Path) > 0 {
		location = strings.Join(e.Path, " -> ")
	}

	if e.Timeout {
		return fmt.Sprintf("%s timed out after %v: %v", location, e.Duration, e.Err)
	}
	if e.Canceled {
		return fmt.Sprintf("%s canceled after %v: %v", location, e.Duration, e.Err)
	}
	return fmt.Sprintf("%s failed after %v: %v", location, e.Duration, e.Err)
}

// Unwrap returns the underlying error, supporting error wrapping patterns.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsTimeout returns true if the error was caused by a timeout.
func (e *Error) IsTimeout() bool {
	return e.Timeout || errors.Is(e.Err, context.DeadlineExceeded)
}

// IsCanceled returns true if the error was caused by cancellation.
func (e *Error) IsCanceled() bool {
	return e.Canceled || errors.Is(e.Err, context.Canceled)
}

// recoverFromPanic converts a panicking step into an *Error attributed to
// name, keeping panics inside the pipeline boundary.
func recoverFromPanic(err *error, name Name) {
	if r := recover(); r != nil {
		*err = &Error{
			Err:       fmt.Errorf("panic: %v", r),
			Path:      []Name{name},
			Timestamp: time.Now(),
		}
	}
}

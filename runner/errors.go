package runner

import (
	"errors"
	"fmt"
)

// ErrRequestFailed is matched (errors.Is) by every *RequestError.
var ErrRequestFailed = errors.New("request failed")

// ErrNoTool is returned when the selected specialist has no usable tool.
var ErrNoTool = errors.New("specialist has no tool")

// RequestError records why a single request failed. It never aborts the
// remaining requests of a run.
type RequestError struct {
	RequestID string
	Agent     string
	Err       error
}

func (e *RequestError) Error() string {
	if e.Agent == "" {
		return fmt.Sprintf("request %s failed: %v", e.RequestID, e.Err)
	}

	return fmt.Sprintf("request %s (%s) failed: %v", e.RequestID, e.Agent, e.Err)
}

// Is reports whether target is ErrRequestFailed.
func (e *RequestError) Is(target error) bool { return target == ErrRequestFailed }

// Unwrap returns the underlying failure.
func (e *RequestError) Unwrap() error { return e.Err }

package resolver

import (
	"errors"
	"fmt"

	"github.com/hupe1980/agentdesk/tool"
)

// ErrUnsupportedToolShape is matched (errors.Is) by every
// *UnsupportedToolShapeError.
var ErrUnsupportedToolShape = errors.New("unsupported tool shape")

// errEmptyResult marks a structured sub-attempt that completed without error
// but produced no value. It never leaves the package.
var errEmptyResult = errors.New("empty result")

// UnsupportedToolShapeError is returned when every invocation strategy was
// exhausted without a usable result. Capabilities lists what the resolver
// could detect on the tool.
type UnsupportedToolShapeError struct {
	Tool         string
	Capabilities []tool.Capability
}

func (e *UnsupportedToolShapeError) Error() string {
	return fmt.Sprintf("tool %q exposes no usable invocation convention (detected: %s)",
		e.Tool, tool.FormatCapabilities(e.Capabilities))
}

// Is reports whether target is ErrUnsupportedToolShape.
func (e *UnsupportedToolShapeError) Is(target error) bool { return target == ErrUnsupportedToolShape }

// AuthoritativeMethodError wraps the failure of a convention that, once
// found, is trusted to handle the call: run, execute, or an unwrapped inner
// callable. No later strategy is attempted after such a failure.
type AuthoritativeMethodError struct {
	Tool   string
	Method string
	Err    error
}

func (e *AuthoritativeMethodError) Error() string {
	return fmt.Sprintf("tool %q: %s failed: %v", e.Tool, e.Method, e.Err)
}

// Unwrap returns the tool's own error.
func (e *AuthoritativeMethodError) Unwrap() error { return e.Err }

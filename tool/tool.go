// Package tool defines the tool descriptor model: an opaque, named capability
// that exposes an unknown subset of calling conventions. A descriptor is any
// value implementing Descriptor; each calling convention it supports is
// expressed by also implementing one of the small capability interfaces in
// this package. Callers discover conventions with type assertions (see
// Capabilities) and never by reflection.
package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/agentdesk/internal/util"
)

// Descriptor identifies a tool by name. All calling conventions are optional
// capability interfaces layered on top.
type Descriptor interface {
	Name() string
}

// Input is the candidate argument list of one invocation attempt: ordered
// positional values, at most one of which is a *core.RunContext, plus
// caller-keyed values.
type Input struct {
	Args  []any
	Named map[string]any
}

// NewInput builds an Input from positional arguments.
func NewInput(args ...any) Input { return Input{Args: args} }

// Func is the plain callable shape shared by every calling convention.
type Func func(ctx context.Context, in Input) (any, error)

// Callable is implemented by descriptors that can be invoked directly.
type Callable interface {
	Call(ctx context.Context, in Input) (any, error)
}

// Runner is implemented by descriptors exposing a "run" operation.
type Runner interface {
	Run(ctx context.Context, in Input) (any, error)
}

// Executor is implemented by descriptors exposing an "execute" operation.
type Executor interface {
	Execute(ctx context.Context, in Input) (any, error)
}

// StructuredInvoker is implemented by descriptors accepting a structured
// payload, typically a (*core.ToolContext, payload) pair where payload is
// either JSON text or a map.
type StructuredInvoker interface {
	InvokeTool(ctx context.Context, in Input) (any, error)
}

// SchemaProvider is implemented by descriptors that declare their parameters.
type SchemaProvider interface {
	Schema() Schema
}

// The wrapper conventions below expose an inner plain callable. They are
// probed in the order FuncHolder, FunctionHolder, Unwrapper, WrappedHolder.
type (
	// FuncHolder exposes the wrapped callable as Func.
	FuncHolder interface{ Func() Func }
	// FunctionHolder exposes the wrapped callable as Function.
	FunctionHolder interface{ Function() Func }
	// Unwrapper exposes the wrapped callable as Unwrap.
	Unwrapper interface{ Unwrap() Func }
	// WrappedHolder exposes the wrapped callable as Wrapped.
	WrappedHolder interface{ Wrapped() Func }
)

// Schema is the ordered parameter declaration of a tool.
type Schema = util.Schema

// Parameter is one declared tool parameter.
type Parameter = util.Parameter

// NewSchema builds a Schema from parameters in positional order.
func NewSchema(params ...Parameter) Schema { return util.NewSchema(params...) }

// ValidationError represents parameter validation errors with detailed information.
type ValidationError = util.ValidationError

// Capability names one calling convention a descriptor can expose.
type Capability string

const (
	CapabilityDirectCall       Capability = "direct_call"
	CapabilityRun              Capability = "run"
	CapabilityExecute          Capability = "execute"
	CapabilityStructuredInvoke Capability = "structured_invoke"
	CapabilityUnwrap           Capability = "unwrap"
	CapabilitySchema           Capability = "schema"
)

// Capabilities lists the conventions d exposes, in resolver priority order.
// Unwrap is reported only when at least one wrapper yields a non-nil Func.
func Capabilities(d Descriptor) []Capability {
	var caps []Capability

	if _, ok := d.(Callable); ok {
		caps = append(caps, CapabilityDirectCall)
	}

	if _, ok := d.(Runner); ok {
		caps = append(caps, CapabilityRun)
	}

	if _, ok := d.(Executor); ok {
		caps = append(caps, CapabilityExecute)
	}

	if _, ok := d.(StructuredInvoker); ok {
		caps = append(caps, CapabilityStructuredInvoke)
	}

	if _, fn := UnwrapFunc(d); fn != nil {
		caps = append(caps, CapabilityUnwrap)
	}

	if _, ok := d.(SchemaProvider); ok {
		caps = append(caps, CapabilitySchema)
	}

	return caps
}

// UnwrapFunc returns the first non-nil inner callable exposed by d together
// with the name of the convention that produced it.
func UnwrapFunc(d Descriptor) (string, Func) {
	if h, ok := d.(FuncHolder); ok {
		if fn := h.Func(); fn != nil {
			return "func", fn
		}
	}

	if h, ok := d.(FunctionHolder); ok {
		if fn := h.Function(); fn != nil {
			return "function", fn
		}
	}

	if h, ok := d.(Unwrapper); ok {
		if fn := h.Unwrap(); fn != nil {
			return "unwrap", fn
		}
	}

	if h, ok := d.(WrappedHolder); ok {
		if fn := h.Wrapped(); fn != nil {
			return "wrapped", fn
		}
	}

	return "", nil
}

// SchemaOf returns the declared schema of d and whether one is present.
// A provider returning an empty schema counts as absent.
func SchemaOf(d Descriptor) (Schema, bool) {
	p, ok := d.(SchemaProvider)
	if !ok {
		return Schema{}, false
	}

	s := p.Schema()

	return s, !s.IsZero()
}

// FormatCapabilities renders caps as a comma separated list, or "none".
func FormatCapabilities(caps []Capability) string {
	if len(caps) == 0 {
		return "none"
	}

	parts := make([]string, len(caps))
	for i, c := range caps {
		parts[i] = string(c)
	}

	return strings.Join(parts, ", ")
}

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

// Error codes used by FunctionTool.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeExecution  = "EXECUTION_ERROR"
	CodeInputShape = "INPUT_SHAPE"
)

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// Unwrap returns Details when it is an error.
func (e *ToolError) Unwrap() error {
	err, _ := e.Details.(error)
	return err
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}

package testutil

import (
	"context"
	"sync"

	"github.com/hupe1980/agentdesk/tool"
)

// Recorder captures the inputs a fake received, per convention.
type Recorder struct {
	mu    sync.Mutex
	calls map[string][]tool.Input
}

func (r *Recorder) record(method string, in tool.Input) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.calls == nil {
		r.calls = map[string][]tool.Input{}
	}

	r.calls[method] = append(r.calls[method], in)
}

// Calls returns the inputs received by method ("call", "run", "execute",
// "invoke", "func").
func (r *Recorder) Calls(method string) []tool.Input {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]tool.Input(nil), r.calls[method]...)
}

// Count returns how many times method was invoked.
func (r *Recorder) Count(method string) int { return len(r.Calls(method)) }

// Shapeless exposes a name and nothing else.
type Shapeless struct {
	ToolName string
	Recorder
}

// Name returns the tool name.
func (s *Shapeless) Name() string { return s.ToolName }

// Direct is only directly callable.
type Direct struct {
	Shapeless
	CallFn tool.Func
}

// NewDirect returns a directly callable fake.
func NewDirect(name string, fn tool.Func) *Direct {
	return &Direct{Shapeless: Shapeless{ToolName: name}, CallFn: fn}
}

// Call records in and delegates to CallFn.
func (d *Direct) Call(ctx context.Context, in tool.Input) (any, error) {
	d.record("call", in)
	return d.CallFn(ctx, in)
}

// Running exposes only a run operation.
type Running struct {
	Shapeless
	RunFn tool.Func
}

// NewRunning returns a fake with a run operation.
func NewRunning(name string, fn tool.Func) *Running {
	return &Running{Shapeless: Shapeless{ToolName: name}, RunFn: fn}
}

// Run records in and delegates to RunFn.
func (r *Running) Run(ctx context.Context, in tool.Input) (any, error) {
	r.record("run", in)
	return r.RunFn(ctx, in)
}

// Executing exposes only an execute operation.
type Executing struct {
	Shapeless
	ExecuteFn tool.Func
}

// NewExecuting returns a fake with an execute operation.
func NewExecuting(name string, fn tool.Func) *Executing {
	return &Executing{Shapeless: Shapeless{ToolName: name}, ExecuteFn: fn}
}

// Execute records in and delegates to ExecuteFn.
func (e *Executing) Execute(ctx context.Context, in tool.Input) (any, error) {
	e.record("execute", in)
	return e.ExecuteFn(ctx, in)
}

// DirectRunning is directly callable and has a run operation.
type DirectRunning struct {
	Shapeless
	CallFn tool.Func
	RunFn  tool.Func
}

// Call records in and delegates to CallFn.
func (d *DirectRunning) Call(ctx context.Context, in tool.Input) (any, error) {
	d.record("call", in)
	return d.CallFn(ctx, in)
}

// Run records in and delegates to RunFn.
func (d *DirectRunning) Run(ctx context.Context, in tool.Input) (any, error) {
	d.record("run", in)
	return d.RunFn(ctx, in)
}

// Structured accepts structured payloads and optionally declares a schema.
type Structured struct {
	Shapeless
	Params   tool.Schema
	InvokeFn tool.Func
}

// NewStructured returns a structured-payload fake.
func NewStructured(name string, params tool.Schema, fn tool.Func) *Structured {
	return &Structured{Shapeless: Shapeless{ToolName: name}, Params: params, InvokeFn: fn}
}

// Schema returns the declared parameters (possibly empty).
func (s *Structured) Schema() tool.Schema { return s.Params }

// InvokeTool records in and delegates to InvokeFn.
func (s *Structured) InvokeTool(ctx context.Context, in tool.Input) (any, error) {
	s.record("invoke", in)
	return s.InvokeFn(ctx, in)
}

// Wrapping exposes an inner callable through Func.
type Wrapping struct {
	Shapeless
	Inner tool.Func
}

// NewWrapping returns a fake exposing fn as its inner callable.
func NewWrapping(name string, fn tool.Func) *Wrapping {
	return &Wrapping{Shapeless: Shapeless{ToolName: name}, Inner: fn}
}

// Func returns the recording inner callable, or nil when Inner is nil.
func (w *Wrapping) Func() tool.Func {
	if w.Inner == nil {
		return nil
	}

	return func(ctx context.Context, in tool.Input) (any, error) {
		w.record("func", in)
		return w.Inner(ctx, in)
	}
}

// Returning returns a Func that yields v.
func Returning(v any) tool.Func {
	return func(context.Context, tool.Input) (any, error) { return v, nil }
}

// Failing returns a Func that yields err.
func Failing(err error) tool.Func {
	return func(context.Context, tool.Input) (any, error) { return nil, err }
}

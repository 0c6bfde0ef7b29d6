package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hupe1980/agentdesk/core"
	"github.com/hupe1980/agentdesk/internal/util"
	"github.com/hupe1980/agentdesk/logging"
)

// FunctionTool exposes a plain Go function as a structured-payload tool.
//
// It only implements the StructuredInvoker convention: InvokeTool expects a
// *core.ToolContext followed by the payload, given either as JSON text or as
// a map[string]any. Any other argument shape is rejected with a ToolError of
// code INPUT_SHAPE so that callers probing for the right shape can move on.
//
// Error Semantics:
//
//	*ToolError (returned by fn)  -> forwarded unchanged
//	schema violation             -> *ToolError{Code: "VALIDATION_ERROR"}
//	other error                  -> *ToolError{Code: "EXECUTION_ERROR"}
//
// A FunctionTool has no mutable state after construction and is safe for
// concurrent use.
type FunctionTool struct {
	name        string
	description string
	schema      Schema
	async       bool
	fn          func(ctx context.Context, tc *core.ToolContext, args map[string]any) (any, error)
}

// FunctionToolOptions configures a FunctionTool.
type FunctionToolOptions struct {
	// Async makes InvokeTool return a Future that runs fn on its own goroutine.
	Async bool
}

// NewFunctionTool constructs a FunctionTool from an explicit schema and function.
//
// Example:
//
//	lookup := tool.NewFunctionTool(
//	  "faq_lookup_tool",
//	  "Lookup frequently asked questions",
//	  tool.Schema{Parameters: []tool.Parameter{{Name: "question", Type: "string", Required: true}}},
//	  func(ctx context.Context, tc *core.ToolContext, args map[string]any) (any, error) {
//	    return answer(args["question"].(string)), nil
//	  },
//	)
func NewFunctionTool(
	name, description string,
	schema Schema,
	fn func(ctx context.Context, tc *core.ToolContext, args map[string]any) (any, error),
	optFns ...func(o *FunctionToolOptions),
) *FunctionTool {
	opts := FunctionToolOptions{}
	for _, f := range optFns {
		f(&opts)
	}

	return &FunctionTool{
		name:        name,
		description: description,
		schema:      schema,
		async:       opts.Async,
		fn:          fn,
	}
}

// NewFunctionToolFromStruct derives the parameter schema from a struct using
// reflection; field order becomes parameter order.
func NewFunctionToolFromStruct(
	name, description string,
	structType any,
	fn func(ctx context.Context, tc *core.ToolContext, args map[string]any) (any, error),
	optFns ...func(o *FunctionToolOptions),
) *FunctionTool {
	return NewFunctionTool(name, description, util.SchemaFromStruct(structType), fn, optFns...)
}

// Name returns the unique tool name.
func (t *FunctionTool) Name() string { return t.name }

// Description returns the short natural language description of the tool.
func (t *FunctionTool) Description() string { return t.description }

// Schema returns the ordered parameter declaration.
func (t *FunctionTool) Schema() Schema { return t.schema }

// InvokeTool decodes the payload, validates it against the schema and calls
// the wrapped function.
func (t *FunctionTool) InvokeTool(ctx context.Context, in Input) (any, error) {
	tc, args, err := t.decode(in)
	if err != nil {
		return nil, err
	}

	if !t.async {
		return t.call(ctx, tc, args)
	}

	return Go(ctx, func(ctx context.Context) (any, error) {
		return t.call(ctx, tc, args)
	}), nil
}

func (t *FunctionTool) decode(in Input) (*core.ToolContext, map[string]any, error) {
	if len(in.Args) != 2 {
		return nil, nil, t.shapeError(fmt.Sprintf("expected (tool context, payload), got %d arguments", len(in.Args)))
	}

	tc, ok := in.Args[0].(*core.ToolContext)
	if !ok {
		return nil, nil, t.shapeError(fmt.Sprintf("first argument must be *core.ToolContext, got %T", in.Args[0]))
	}

	switch p := in.Args[1].(type) {
	case string:
		args := map[string]any{}
		if p != "" {
			if err := json.Unmarshal([]byte(p), &args); err != nil {
				return nil, nil, t.shapeError(fmt.Sprintf("invalid JSON payload: %v", err))
			}
		}

		return tc, args, nil
	case map[string]any:
		return tc, p, nil
	default:
		return nil, nil, t.shapeError(fmt.Sprintf("payload must be JSON text or map, got %T", in.Args[1]))
	}
}

func (t *FunctionTool) call(ctx context.Context, tc *core.ToolContext, args map[string]any) (any, error) {
	logger := toolLogger(tc)
	start := time.Now()

	logger.Debug("tool.call.start", "tool", t.name)

	if err := util.ValidateParameters(args, t.schema); err != nil {
		logger.Warn("tool.call.validation_failed", "tool", t.name, "error", err.Error())

		return nil, &ToolError{
			Tool:    t.name,
			Message: fmt.Sprintf("parameter validation failed: %v", err),
			Code:    CodeValidation,
			Details: err,
		}
	}

	result, err := t.fn(ctx, tc, args)
	if err != nil {
		if toolErr, ok := err.(*ToolError); ok { // Already a ToolError -> just log and forward
			logger.Error("tool.call.error", "tool", t.name, "error", toolErr.Message)

			return nil, toolErr
		}

		logger.Error("tool.call.error", "tool", t.name, "error", err.Error())

		return nil, &ToolError{
			Tool:    t.name,
			Message: err.Error(),
			Code:    CodeExecution,
			Details: err,
		}
	}

	logger.Info("tool.call.success", "tool", t.name, "duration_ms", time.Since(start).Milliseconds())

	return result, nil
}

func (t *FunctionTool) shapeError(msg string) *ToolError {
	return NewToolError(t.name, msg, CodeInputShape)
}

func toolLogger(tc *core.ToolContext) logging.Logger {
	if tc == nil || tc.Run == nil {
		return logging.NoOpLogger{}
	}

	return tc.Run.Logger()
}

package tool

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentdesk/core"
)

// -------------------- Capability detection --------------------

type named struct{}

func (named) Name() string { return "named" }

type everything struct{ named }

func (everything) Call(context.Context, Input) (any, error)       { return "call", nil }
func (everything) Run(context.Context, Input) (any, error)        { return "run", nil }
func (everything) Execute(context.Context, Input) (any, error)    { return "execute", nil }
func (everything) InvokeTool(context.Context, Input) (any, error) { return "invoke", nil }
func (everything) Schema() Schema                                 { return NewSchema(Parameter{Name: "q"}) }
func (everything) Wrapped() Func {
	return func(context.Context, Input) (any, error) { return "wrapped", nil }
}

type nilFuncHolder struct{ named }

func (nilFuncHolder) Func() Func { return nil }

type layered struct{ nilFuncHolder }

func (layered) Function() Func {
	return func(context.Context, Input) (any, error) { return "function", nil }
}
func (layered) Unwrap() Func {
	return func(context.Context, Input) (any, error) { return "unwrap", nil }
}

func TestCapabilities(t *testing.T) {
	assert.Empty(t, Capabilities(named{}))
	assert.Equal(t, "none", FormatCapabilities(Capabilities(named{})))

	caps := Capabilities(everything{})
	assert.Equal(t, []Capability{
		CapabilityDirectCall,
		CapabilityRun,
		CapabilityExecute,
		CapabilityStructuredInvoke,
		CapabilityUnwrap,
		CapabilitySchema,
	}, caps)
	assert.Equal(t, "direct_call, run, execute, structured_invoke, unwrap, schema", FormatCapabilities(caps))

	// a wrapper convention yielding nil does not count
	assert.Empty(t, Capabilities(nilFuncHolder{}))
}

func TestUnwrapFunc_Order(t *testing.T) {
	name, fn := UnwrapFunc(layered{})
	require.NotNil(t, fn)
	assert.Equal(t, "function", name)

	out, err := fn(context.Background(), Input{})
	require.NoError(t, err)
	assert.Equal(t, "function", out)

	name, fn = UnwrapFunc(named{})
	assert.Empty(t, name)
	assert.Nil(t, fn)
}

func TestSchemaOf(t *testing.T) {
	s, ok := SchemaOf(everything{})
	assert.True(t, ok)
	assert.Equal(t, []string{"q"}, s.Names())

	_, ok = SchemaOf(named{})
	assert.False(t, ok)

	empty := NewFunctionTool("empty", "", Schema{}, nil)
	_, ok = SchemaOf(empty)
	assert.False(t, ok)
}

// -------------------- Futures --------------------

func TestAwait(t *testing.T) {
	ctx := context.Background()

	v, err := Await(ctx, "plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", v)

	v, err = Await(ctx, Resolved(Resolved("nested", nil), nil))
	require.NoError(t, err)
	assert.Equal(t, "nested", v)

	_, err = Await(ctx, Resolved(nil, errors.New("boom")))
	assert.EqualError(t, err, "boom")

	f := Go(ctx, func(context.Context) (any, error) {
		time.Sleep(5 * time.Millisecond)
		return 42, nil
	})
	v, err = Await(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestGo_PanicAndCancel(t *testing.T) {
	f := Go(context.Background(), func(context.Context) (any, error) { panic("kaboom") })
	_, err := f.Await(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")

	block := make(chan struct{})
	defer close(block)

	slow := Go(context.Background(), func(context.Context) (any, error) {
		<-block
		return nil, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = slow.Await(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// -------------------- FunctionTool --------------------

func echoTool(optFns ...func(o *FunctionToolOptions)) *FunctionTool {
	return NewFunctionTool(
		"echo",
		"Echo the question",
		NewSchema(Parameter{Name: "question", Type: "string", Required: true}),
		func(_ context.Context, _ *core.ToolContext, args map[string]any) (any, error) {
			return "echo: " + args["question"].(string), nil
		},
		optFns...,
	)
}

func TestFunctionTool_Payloads(t *testing.T) {
	ctx := context.Background()
	tl := echoTool()

	assert.Equal(t, "echo", tl.Name())
	assert.Equal(t, "Echo the question", tl.Description())

	out, err := tl.InvokeTool(ctx, NewInput(core.NewToolContext(nil), `{"question":"hi"}`))
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", out)

	out, err = tl.InvokeTool(ctx, NewInput(core.NewToolContext(nil), map[string]any{"question": "map"}))
	require.NoError(t, err)
	assert.Equal(t, "echo: map", out)
}

func TestFunctionTool_InputShape(t *testing.T) {
	ctx := context.Background()
	tl := echoTool()

	cases := []Input{
		NewInput("just a string"),
		NewInput("a", "b"),
		NewInput(core.NewToolContext(nil), 42),
		NewInput(core.NewToolContext(nil), "{not json"),
		{Named: map[string]any{"question": "named"}},
	}

	for _, in := range cases {
		_, err := tl.InvokeTool(ctx, in)
		var toolErr *ToolError
		require.ErrorAs(t, err, &toolErr)
		assert.Equal(t, CodeInputShape, toolErr.Code)
	}
}

func TestFunctionTool_ValidationError(t *testing.T) {
	_, err := echoTool().InvokeTool(context.Background(), NewInput(core.NewToolContext(nil), `{}`))
	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeValidation, toolErr.Code)
}

func TestFunctionTool_ExecutionError(t *testing.T) {
	boom := NewFunctionTool("fail", "Fails", Schema{}, func(context.Context, *core.ToolContext, map[string]any) (any, error) {
		return nil, errors.New("boom")
	})
	_, err := boom.InvokeTool(context.Background(), NewInput(core.NewToolContext(nil), ""))
	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeExecution, toolErr.Code)
	assert.Equal(t, "tool error [EXECUTION_ERROR] in fail: boom", toolErr.Error())

	custom := NewFunctionTool("custom", "", Schema{}, func(context.Context, *core.ToolContext, map[string]any) (any, error) {
		return nil, NewToolError("custom", "nope", "CUSTOM")
	})
	_, err = custom.InvokeTool(context.Background(), NewInput(core.NewToolContext(nil), ""))
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "CUSTOM", toolErr.Code)
}

func TestFunctionTool_Async(t *testing.T) {
	tl := echoTool(func(o *FunctionToolOptions) { o.Async = true })

	out, err := tl.InvokeTool(context.Background(), NewInput(core.NewToolContext(nil), `{"question":"later"}`))
	require.NoError(t, err)

	f, ok := out.(Future)
	require.True(t, ok)

	v, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "echo: later", v)
}

type seatArgs struct {
	ConfirmationNumber string `json:"confirmation_number"`
	NewSeat            string `json:"new_seat"`
}

func TestNewFunctionToolFromStruct(t *testing.T) {
	tl := NewFunctionToolFromStruct("update_seat", "", seatArgs{}, func(context.Context, *core.ToolContext, map[string]any) (any, error) {
		return nil, nil
	})
	assert.Equal(t, []string{"confirmation_number", "new_seat"}, tl.Schema().Names())
}

func TestToolError_NoCode(t *testing.T) {
	assert.Equal(t, "tool error in x: y", (&ToolError{Tool: "x", Message: "y"}).Error())
}

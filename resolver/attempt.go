package resolver

import (
	"context"
	"encoding/json"

	"github.com/hupe1980/agentdesk/core"
	"github.com/hupe1980/agentdesk/tool"
)

// attempt is one fallible way of calling a tool.
type attempt struct {
	strategy tool.Capability
	label    string
	fn       func(ctx context.Context) (any, error)
}

func bind(strategy tool.Capability, label string, fn tool.Func, in tool.Input) attempt {
	return attempt{
		strategy: strategy,
		label:    label,
		fn:       func(ctx context.Context) (any, error) { return fn(ctx, in) },
	}
}

// structuredAttempts returns the ordered argument shapes tried against a
// structured-payload tool. Each attempt builds fresh slices so a tool that
// mutates its input cannot affect later attempts.
func structuredAttempts(si tool.StructuredInvoker, payload map[string]any, in tool.Input) []attempt {
	rc, _ := core.FindRunContext(in.Args)
	filtered := core.WithoutRunContext(in.Args)
	invoke := si.InvokeTool

	args := func(vs ...any) tool.Input { return tool.Input{Args: vs} }

	attempts := []attempt{
		{
			strategy: tool.CapabilityStructuredInvoke,
			label:    "holder+json",
			fn: func(ctx context.Context) (any, error) {
				text, err := json.Marshal(payload)
				if err != nil {
					return nil, err
				}
				return invoke(ctx, args(core.NewToolContext(rc), string(text)))
			},
		},
		bindLazy("holder+payload", invoke, func() tool.Input { return args(core.NewToolContext(rc), clonePayload(payload)) }),
	}

	if s, ok := singleString(filtered); ok {
		attempts = append(attempts, bindLazy("string", invoke, func() tool.Input { return args(s) }))
	}

	attempts = append(attempts,
		bindLazy("original", invoke, func() tool.Input { return args(cloneArgs(in.Args)...) }),
		bindLazy("filtered", invoke, func() tool.Input { return args(cloneArgs(filtered)...) }),
	)

	if rc != nil {
		attempts = append(attempts,
			bindLazy("filtered+context", invoke, func() tool.Input { return args(append(cloneArgs(filtered), rc)...) }),
			bindLazy("context+filtered", invoke, func() tool.Input { return args(append([]any{rc}, filtered...)...) }),
			bindLazy("context", invoke, func() tool.Input { return args(rc) }),
		)
	}

	attempts = append(attempts,
		bindLazy("named", invoke, func() tool.Input { return tool.Input{Named: clonePayload(payload)} }),
	)

	return attempts
}

func bindLazy(label string, fn tool.Func, build func() tool.Input) attempt {
	return attempt{
		strategy: tool.CapabilityStructuredInvoke,
		label:    label,
		fn:       func(ctx context.Context) (any, error) { return fn(ctx, build()) },
	}
}

func cloneArgs(args []any) []any {
	out := make([]any, len(args))
	copy(out, args)

	return out
}

func clonePayload(p map[string]any) map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v
	}

	return out
}

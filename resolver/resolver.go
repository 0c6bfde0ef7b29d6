package resolver

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/panics"

	"github.com/hupe1980/agentdesk/core"
	"github.com/hupe1980/agentdesk/logging"
	"github.com/hupe1980/agentdesk/tool"
)

// Observer receives the outcome of every invocation attempt. err is nil for
// the attempt that produced the returned result.
type Observer interface {
	OnAttempt(toolName string, strategy tool.Capability, label string, err error, d time.Duration)
}

// Options holds dependency overrides passed to New().
type Options struct {
	// Logger receives debug records for swallowed attempt failures.
	Logger logging.Logger
	// Observer is notified of every attempt (optional).
	Observer Observer
}

// Resolver invokes tools of unknown calling convention. It holds no state
// besides its collaborators and is safe for concurrent use.
type Resolver struct {
	logger   logging.Logger
	observer Observer
}

// New constructs a Resolver with optional overrides.
func New(optFns ...func(o *Options)) *Resolver {
	opts := Options{Logger: logging.NoOpLogger{}}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Resolver{
		logger:   logging.OrNoOp(opts.Logger),
		observer: opts.Observer,
	}
}

// Invoke calls d using the first calling convention that works and returns a
// completed value; Futures are awaited before returning.
//
// If rc is non-nil and not already among in.Args it is prepended. Strategies
// run in a fixed order:
//
//  1. direct call (Callable); failures fall through
//  2. Run, else Execute; failures are returned as *AuthoritativeMethodError
//  3. structured payload (StructuredInvoker); the first sub-attempt yielding
//     a non-nil value without error wins
//  4. an unwrapped inner Func; its failure is returned
//
// When nothing applies, *UnsupportedToolShapeError is returned.
func (r *Resolver) Invoke(ctx context.Context, d tool.Descriptor, rc *core.RunContext, in tool.Input) (any, error) {
	if d == nil {
		return nil, &UnsupportedToolShapeError{Tool: "<nil>"}
	}

	in = withRunContext(in, rc)
	name := d.Name()

	if c, ok := d.(tool.Callable); ok {
		out, err := r.try(ctx, name, bind(tool.CapabilityDirectCall, "call", c.Call, in))
		if err == nil {
			return out, nil
		}
	}

	if rn, ok := d.(tool.Runner); ok {
		return r.authoritative(ctx, name, bind(tool.CapabilityRun, "run", rn.Run, in))
	}

	if ex, ok := d.(tool.Executor); ok {
		return r.authoritative(ctx, name, bind(tool.CapabilityExecute, "execute", ex.Execute, in))
	}

	if si, ok := d.(tool.StructuredInvoker); ok {
		schema, _ := tool.SchemaOf(d)
		payload := BuildPayload(schema, in)

		for _, a := range structuredAttempts(si, payload, in) {
			out, err := r.try(ctx, name, a)
			if err == nil {
				return out, nil
			}
		}
	}

	if label, fn := tool.UnwrapFunc(d); fn != nil {
		return r.authoritative(ctx, name, bind(tool.CapabilityUnwrap, label, fn, in))
	}

	caps := tool.Capabilities(d)

	r.logger.Warn("resolver.exhausted", "tool", name, "capabilities", tool.FormatCapabilities(caps))

	return nil, &UnsupportedToolShapeError{Tool: name, Capabilities: caps}
}

// try runs a fenced attempt: its failure is logged and reported to the
// observer but only returned to the caller, never escalated. Structured
// sub-attempts that yield nil count as failures.
func (r *Resolver) try(ctx context.Context, name string, a attempt) (any, error) {
	start := time.Now()
	out, err := exec(ctx, a)

	if err == nil && out == nil && a.strategy == tool.CapabilityStructuredInvoke {
		err = errEmptyResult
	}

	r.record(name, a, err, time.Since(start))

	if err != nil {
		r.logger.Debug("resolver.attempt.failed", "tool", name, "strategy", string(a.strategy), "attempt", a.label, "error", err.Error())
		return nil, err
	}

	return out, nil
}

// authoritative runs an attempt whose failure ends the invocation.
func (r *Resolver) authoritative(ctx context.Context, name string, a attempt) (any, error) {
	start := time.Now()
	out, err := exec(ctx, a)

	r.record(name, a, err, time.Since(start))

	if err != nil {
		r.logger.Debug("resolver.authoritative.failed", "tool", name, "method", a.label, "error", err.Error())
		return nil, &AuthoritativeMethodError{Tool: name, Method: a.label, Err: err}
	}

	return out, nil
}

func (r *Resolver) record(name string, a attempt, err error, d time.Duration) {
	if err == nil {
		r.logger.Debug("resolver.strategy.success", "tool", name, "strategy", string(a.strategy), "attempt", a.label)
	}

	if r.observer != nil {
		r.observer.OnAttempt(name, a.strategy, a.label, err, d)
	}
}

// exec runs a and awaits its result. A panic is converted into an error.
func exec(ctx context.Context, a attempt) (out any, err error) {
	var pc panics.Catcher

	pc.Try(func() {
		out, err = a.fn(ctx)
		if err == nil {
			out, err = tool.Await(ctx, out)
		}
	})

	if rec := pc.Recovered(); rec != nil {
		return nil, rec.AsError()
	}

	return out, err
}

func withRunContext(in tool.Input, rc *core.RunContext) tool.Input {
	if rc == nil {
		return in
	}

	if found, _ := core.FindRunContext(in.Args); found != nil {
		return in
	}

	args := make([]any, 0, len(in.Args)+1)
	args = append(args, rc)
	args = append(args, in.Args...)

	return tool.Input{Args: args, Named: in.Named}
}

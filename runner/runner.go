package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/panics"

	"github.com/hupe1980/agentdesk/agent"
	"github.com/hupe1980/agentdesk/core"
	"github.com/hupe1980/agentdesk/logging"
	"github.com/hupe1980/agentdesk/resolver"
	"github.com/hupe1980/agentdesk/session"
	"github.com/hupe1980/agentdesk/tool"
)

// Request is one user request.
type Request struct {
	// ID identifies the request; generated when empty.
	ID string
	// Query is the user text used for routing and passed to non-contextual
	// specialists.
	Query string
	// Args are passed after the run context to contextual specialists.
	Args []any
}

// Outcome is the result of handling one request. Exactly one of Result and
// Err is meaningful.
type Outcome struct {
	RequestID string
	Query     string
	Agent     string
	Result    any
	Err       error
	Duration  time.Duration
}

// Hooks observes handled requests.
type Hooks interface {
	OnRequest(agent string, err error, d time.Duration)
}

// Options holds dependency overrides passed to New().
type Options struct {
	// Resolver invokes specialist tools.
	Resolver *resolver.Resolver
	// Classifier selects the specialist. Defaults to the first specialist,
	// non-contextual.
	Classifier Classifier
	// SessionStore resolves run contexts for RunSession.
	SessionStore session.Store
	// Logger receives request level records.
	Logger logging.Logger
	// Hooks is notified after every request (optional).
	Hooks Hooks
}

// Runner dispatches requests through a handoff graph: triage classifies a
// request, hands it off to a specialist and the specialist's tool is invoked
// through the resolver. Requests are handled sequentially; a failing request
// is recorded and never aborts the rest.
type Runner struct {
	graph        *agent.Graph
	resolver     *resolver.Resolver
	classifier   Classifier
	sessionStore session.Store
	logger       logging.Logger
	hooks        Hooks
}

// New constructs a Runner with optional overrides.
func New(graph *agent.Graph, optFns ...func(o *Options)) *Runner {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	logger := logging.OrNoOp(opts.Logger)

	if opts.Resolver == nil {
		opts.Resolver = resolver.New(func(o *resolver.Options) { o.Logger = logger })
	}

	if opts.Classifier == nil {
		opts.Classifier = firstSpecialist(graph)
	}

	if opts.SessionStore == nil {
		opts.SessionStore = session.NewInMemoryStore(func(o *session.Options) { o.Logger = logger })
	}

	return &Runner{
		graph:        graph,
		resolver:     opts.Resolver,
		classifier:   opts.Classifier,
		sessionStore: opts.SessionStore,
		logger:       logger,
		hooks:        opts.Hooks,
	}
}

// Run handles reqs in order against the shared run context rc.
func (r *Runner) Run(ctx context.Context, rc *core.RunContext, reqs []Request) []Outcome {
	outcomes := make([]Outcome, 0, len(reqs))

	for _, req := range reqs {
		outcomes = append(outcomes, r.Handle(ctx, rc, req))
	}

	return outcomes
}

// RunSession handles reqs against the run context of sessionID.
func (r *Runner) RunSession(ctx context.Context, sessionID string, reqs []Request) ([]Outcome, error) {
	rc, err := r.sessionStore.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return r.Run(ctx, rc, reqs), nil
}

// Handle routes and executes a single request. Errors and panics are
// captured in the returned Outcome as *RequestError.
func (r *Runner) Handle(ctx context.Context, rc *core.RunContext, req Request) Outcome {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	start := time.Now()
	out := Outcome{RequestID: req.ID, Query: req.Query}

	r.logger.Debug("runner.request.start", "request_id", req.ID, "query", req.Query)

	var pc panics.Catcher

	pc.Try(func() {
		out.Agent, out.Result, out.Err = r.dispatch(ctx, rc, req)
	})

	if rec := pc.Recovered(); rec != nil {
		out.Result, out.Err = nil, rec.AsError()
	}

	out.Duration = time.Since(start)

	if out.Err != nil {
		out.Err = &RequestError{RequestID: req.ID, Agent: out.Agent, Err: out.Err}

		r.logger.Error("runner.request.failed", "request_id", req.ID, "agent", out.Agent, "error", out.Err.Error())
	} else {
		r.logger.Info("runner.request.done", "request_id", req.ID, "agent", out.Agent, "duration_ms", out.Duration.Milliseconds())
	}

	if r.hooks != nil {
		r.hooks.OnRequest(out.Agent, out.Err, out.Duration)
	}

	return out
}

func (r *Runner) dispatch(ctx context.Context, rc *core.RunContext, req Request) (string, any, error) {
	intent := r.classifier.Classify(req.Query)

	specialist, err := r.graph.Triage().HandoffTo(intent.Agent)
	if err != nil {
		return "", nil, err
	}

	name := specialist.Name()

	t, err := selectTool(specialist, intent.Tool)
	if err != nil {
		return name, nil, err
	}

	if instructions, err := specialist.Instructions(rc); err != nil {
		r.logger.Warn("runner.instructions.failed", "agent", name, "error", err.Error())
	} else {
		r.logger.Debug("runner.route", "request_id", req.ID, "agent", name, "tool", t.Name(), "instructions", instructions)
	}

	if !intent.Contextual {
		result, err := r.resolver.Invoke(ctx, t, nil, tool.NewInput(req.Query))
		return name, result, err
	}

	args := make([]any, 0, len(req.Args)+1)
	if rc != nil {
		args = append(args, rc)
	}

	args = append(args, req.Args...)

	result, err := r.resolver.Invoke(ctx, t, rc, tool.NewInput(args...))

	return name, result, err
}

func selectTool(a *agent.Agent, name string) (tool.Descriptor, error) {
	if name != "" {
		if t, ok := a.Tool(name); ok {
			return t, nil
		}

		return nil, fmt.Errorf("%w: %q has no tool %q", ErrNoTool, a.Name(), name)
	}

	tools := a.Tools()
	if len(tools) == 0 || tools[0] == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoTool, a.Name())
	}

	return tools[0], nil
}

func firstSpecialist(g *agent.Graph) Classifier {
	var fallback Intent

	if specialists := g.Specialists(); len(specialists) > 0 {
		fallback.Agent = specialists[0].Name()
	}

	return ClassifierFunc(func(string) Intent { return fallback })
}

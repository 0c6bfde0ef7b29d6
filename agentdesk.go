// Package agentdesk provides a high-level façade over the handoff graph,
// session store, tool resolver and dispatch loop of an airline
// customer-support desk. Most applications interact with this package by:
//  1. Creating an AgentDesk via New() (optionally overriding the graph spec, tools or stores)
//  2. Asking questions for a session (Ask) or replaying a batch of requests (Simulate)
//  3. Inspecting the conversation state a session accumulated (Conversation)
//
// All defaults are in-memory and safe for local development and testing.
package agentdesk

import (
	"context"
	"fmt"

	"github.com/hupe1980/agentdesk/agent"
	"github.com/hupe1980/agentdesk/airline"
	"github.com/hupe1980/agentdesk/core"
	"github.com/hupe1980/agentdesk/logging"
	"github.com/hupe1980/agentdesk/resolver"
	"github.com/hupe1980/agentdesk/runner"
	"github.com/hupe1980/agentdesk/session"
	"github.com/hupe1980/agentdesk/tool"
)

// Options configures the AgentDesk instance.
type Options struct {
	// GraphSpec declares the agents (defaults to airline.DefaultGraphSpec).
	GraphSpec *agent.GraphSpec
	// Tools resolves the tool names of GraphSpec (defaults to airline.Tools).
	Tools map[string]tool.Descriptor

	// SessionStore keeps per-session run contexts (defaults to in-memory).
	SessionStore session.Store

	// Observer is notified of every resolver attempt (optional).
	Observer resolver.Observer
	// Hooks is notified of every handled request (optional).
	Hooks runner.Hooks

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentDesk is the high-level façade aggregating graph, store and runner.
type AgentDesk struct {
	graph  *agent.Graph
	store  session.Store
	runner *runner.Runner
}

// New creates a new AgentDesk with optional overrides.
func New(optFns ...func(o *Options)) (*AgentDesk, error) {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	logger := logging.OrNoOp(opts.Logger)

	spec := airline.DefaultGraphSpec()
	if opts.GraphSpec != nil {
		spec = *opts.GraphSpec
	}

	if opts.Tools == nil {
		opts.Tools = airline.Tools()
	}

	if opts.SessionStore == nil {
		opts.SessionStore = session.NewInMemoryStore(func(o *session.Options) { o.Logger = logger })
	}

	graph, err := spec.Build(opts.Tools)
	if err != nil {
		return nil, fmt.Errorf("failed to build agent graph: %w", err)
	}

	r := runner.New(graph, func(o *runner.Options) {
		o.Resolver = resolver.New(func(ro *resolver.Options) {
			ro.Logger = logger
			ro.Observer = opts.Observer
		})
		o.Classifier = runner.NewKeywordClassifier(spec)
		o.SessionStore = opts.SessionStore
		o.Logger = logger
		o.Hooks = opts.Hooks
	})

	return &AgentDesk{graph: graph, store: opts.SessionStore, runner: r}, nil
}

// Graph returns the handoff graph.
func (d *AgentDesk) Graph() *agent.Graph { return d.graph }

// Ask handles a single query for a session. args are passed to contextual
// specialists after the run context.
func (d *AgentDesk) Ask(ctx context.Context, sessionID, query string, args ...any) (runner.Outcome, error) {
	outcomes, err := d.Simulate(ctx, sessionID, []runner.Request{{Query: query, Args: args}})
	if err != nil {
		return runner.Outcome{}, err
	}

	return outcomes[0], nil
}

// Simulate handles reqs in order for a session.
func (d *AgentDesk) Simulate(ctx context.Context, sessionID string, reqs []runner.Request) ([]runner.Outcome, error) {
	return d.runner.RunSession(ctx, sessionID, reqs)
}

// Conversation returns a snapshot of the conversation state of a session.
func (d *AgentDesk) Conversation(sessionID string) (core.ContextSnapshot, error) {
	rc, err := d.store.Get(sessionID)
	if err != nil {
		return core.ContextSnapshot{}, err
	}

	return rc.Conversation.Snapshot(), nil
}

// Instructions renders the instructions of the named agent against the
// conversation state of a session.
func (d *AgentDesk) Instructions(sessionID, agentName string) (string, error) {
	a := d.graph.Triage().FindAgent(agentName)
	if a == nil {
		return "", fmt.Errorf("%w: %q", agent.ErrAgentNotFound, agentName)
	}

	rc, err := d.store.Get(sessionID)
	if err != nil {
		return "", err
	}

	return a.Instructions(rc)
}

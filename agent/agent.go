package agent

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/agentdesk/core"
	"github.com/hupe1980/agentdesk/tool"
)

// ErrAgentNotFound is returned when a lookup by name has no match.
var ErrAgentNotFound = errors.New("agent not found")

// Options configures a new Agent.
type Options struct {
	// Instructions is the static instruction template. Ignored when
	// InstructionProvider is set.
	Instructions string
	// InstructionProvider computes instructions at runtime (optional).
	InstructionProvider Provider
	// Model is a label only; agents never invoke a model.
	Model string
	// Tools are the tools the agent may use, in order.
	Tools []tool.Descriptor
	// Handoffs are the agents this agent may delegate to, in order.
	Handoffs []*Agent
}

// Agent is a node of the handoff graph. Handoff edges are non-owning
// references and may form cycles. All exported methods are goroutine-safe.
type Agent struct {
	name        string
	model       string
	instruction Instruction

	mu       sync.RWMutex
	tools    []tool.Descriptor
	handoffs []*Agent
}

// New constructs an Agent.
func New(name string, optFns ...func(o *Options)) *Agent {
	opts := Options{}

	for _, fn := range optFns {
		fn(&opts)
	}

	instruction := NewInstructionFromText(opts.Instructions)
	if opts.InstructionProvider != nil {
		instruction = NewInstructionFromProvider(opts.InstructionProvider)
	}

	return &Agent{
		name:        name,
		model:       opts.Model,
		instruction: instruction,
		tools:       append([]tool.Descriptor(nil), opts.Tools...),
		handoffs:    append([]*Agent(nil), opts.Handoffs...),
	}
}

// Name returns the agent name.
func (a *Agent) Name() string { return a.name }

// Model returns the model label.
func (a *Agent) Model() string { return a.model }

// Instructions renders the agent's instructions for rc.
func (a *Agent) Instructions(rc *core.RunContext) (string, error) {
	return a.instruction.Resolve(rc)
}

// Tools returns a copy of the agent's tools.
func (a *Agent) Tools() []tool.Descriptor {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return append([]tool.Descriptor(nil), a.tools...)
}

// Tool returns the tool with the given name.
func (a *Agent) Tool(name string) (tool.Descriptor, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, t := range a.tools {
		if t != nil && t.Name() == name {
			return t, true
		}
	}

	return nil, false
}

// SetHandoffs replaces the handoff targets.
func (a *Agent) SetHandoffs(targets ...*Agent) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.handoffs = append([]*Agent(nil), targets...)
}

// Handoffs returns a copy of the handoff targets.
func (a *Agent) Handoffs() []*Agent {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return append([]*Agent(nil), a.handoffs...)
}

// HandoffTo returns the direct handoff target with the given name.
func (a *Agent) HandoffTo(name string) (*Agent, error) {
	for _, h := range a.Handoffs() {
		if h != nil && h.name == name {
			return h, nil
		}
	}

	return nil, fmt.Errorf("%w: %q is not a handoff target of %q", ErrAgentNotFound, name, a.name)
}

// FindAgent performs a depth-first search over the agents reachable from a
// (including a itself) and returns the first whose name matches, or nil.
// Each agent is visited once, so cyclic handoffs terminate.
func (a *Agent) FindAgent(name string) *Agent {
	return a.find(name, map[*Agent]struct{}{})
}

func (a *Agent) find(name string, seen map[*Agent]struct{}) *Agent {
	if a == nil {
		return nil
	}

	if _, ok := seen[a]; ok {
		return nil
	}

	seen[a] = struct{}{}

	if a.name == name {
		return a
	}

	for _, h := range a.Handoffs() {
		if found := h.find(name, seen); found != nil {
			return found
		}
	}

	return nil
}

package agent

import (
	"errors"
	"fmt"
)

// ErrInvalidTopology is returned when a graph violates the triage/specialist
// shape.
var ErrInvalidTopology = errors.New("invalid handoff topology")

// Graph is a triage agent and its specialists. Triage hands off to every
// specialist; every specialist hands off back to triage only.
type Graph struct {
	triage      *Agent
	specialists []*Agent
}

// NewGraph installs the handoff edges between triage and specialists and
// validates the result. Existing handoffs of the given agents are replaced.
func NewGraph(triage *Agent, specialists ...*Agent) (*Graph, error) {
	if triage == nil {
		return nil, fmt.Errorf("%w: triage agent is nil", ErrInvalidTopology)
	}

	if len(specialists) == 0 {
		return nil, fmt.Errorf("%w: no specialists", ErrInvalidTopology)
	}

	names := map[string]struct{}{triage.name: {}}

	for _, s := range specialists {
		if s == nil {
			return nil, fmt.Errorf("%w: specialist is nil", ErrInvalidTopology)
		}

		if _, dup := names[s.name]; dup {
			return nil, fmt.Errorf("%w: duplicate agent name %q", ErrInvalidTopology, s.name)
		}

		names[s.name] = struct{}{}
	}

	triage.SetHandoffs(specialists...)

	for _, s := range specialists {
		s.SetHandoffs(triage)
	}

	g := &Graph{triage: triage, specialists: append([]*Agent(nil), specialists...)}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

// Triage returns the entry agent.
func (g *Graph) Triage() *Agent { return g.triage }

// Specialists returns the specialists in construction order.
func (g *Graph) Specialists() []*Agent { return append([]*Agent(nil), g.specialists...) }

// Specialist returns the specialist with the given name.
func (g *Graph) Specialist(name string) (*Agent, error) {
	for _, s := range g.specialists {
		if s.name == name {
			return s, nil
		}
	}

	return nil, fmt.Errorf("%w: no specialist %q", ErrAgentNotFound, name)
}

// Validate checks that triage has exactly one edge to every specialist and
// that every specialist has exactly one edge, back to triage.
func (g *Graph) Validate() error {
	edges := g.triage.Handoffs()
	if len(edges) != len(g.specialists) {
		return fmt.Errorf("%w: triage has %d handoffs for %d specialists", ErrInvalidTopology, len(edges), len(g.specialists))
	}

	count := map[*Agent]int{}
	for _, h := range edges {
		count[h]++
	}

	for _, s := range g.specialists {
		if count[s] != 1 {
			return fmt.Errorf("%w: triage has %d handoffs to %q", ErrInvalidTopology, count[s], s.name)
		}

		back := s.Handoffs()
		if len(back) != 1 || back[0] != g.triage {
			return fmt.Errorf("%w: %q must hand off only to %q", ErrInvalidTopology, s.name, g.triage.name)
		}
	}

	return nil
}

package agent

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/agentdesk/tool"
)

// ErrInvalidSpec is returned when a GraphSpec cannot describe a valid graph.
var ErrInvalidSpec = errors.New("invalid graph spec")

// AgentSpec declares one agent.
type AgentSpec struct {
	Name         string   `yaml:"name"`
	Instructions string   `yaml:"instructions,omitempty"`
	Model        string   `yaml:"model,omitempty"`
	Tools        []string `yaml:"tools,omitempty"`
}

// SpecialistSpec declares a specialist and how requests reach it.
type SpecialistSpec struct {
	AgentSpec `yaml:",inline"`
	// Keywords route a request here when any occurs in the query
	// (case-insensitive).
	Keywords []string `yaml:"keywords,omitempty"`
	// Contextual specialists receive the run context followed by the
	// request arguments; others receive only the query text.
	Contextual bool `yaml:"contextual,omitempty"`
	// Default marks the specialist that handles unmatched requests.
	Default bool `yaml:"default,omitempty"`
}

// GraphSpec is the declarative form of a handoff graph.
type GraphSpec struct {
	Triage      AgentSpec        `yaml:"triage"`
	Specialists []SpecialistSpec `yaml:"specialists"`
}

// LoadGraphSpec decodes a YAML graph spec from r and validates it. Unknown
// fields are rejected.
func LoadGraphSpec(r io.Reader) (GraphSpec, error) {
	var spec GraphSpec

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&spec); err != nil {
		return GraphSpec{}, fmt.Errorf("parse graph spec: %w", err)
	}

	if err := spec.Validate(); err != nil {
		return GraphSpec{}, err
	}

	return spec, nil
}

// LoadGraphSpecFile reads and decodes the YAML graph spec at path.
func LoadGraphSpecFile(path string) (GraphSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return GraphSpec{}, fmt.Errorf("read graph spec: %w", err)
	}
	defer f.Close()

	return LoadGraphSpec(f)
}

// Validate checks names and that exactly one specialist is the default.
func (s GraphSpec) Validate() error {
	if s.Triage.Name == "" {
		return fmt.Errorf("%w: triage name is empty", ErrInvalidSpec)
	}

	if len(s.Specialists) == 0 {
		return fmt.Errorf("%w: no specialists", ErrInvalidSpec)
	}

	defaults := 0

	for i, sp := range s.Specialists {
		if sp.Name == "" {
			return fmt.Errorf("%w: specialist %d has no name", ErrInvalidSpec, i)
		}

		if sp.Default {
			defaults++
		}
	}

	if defaults != 1 {
		return fmt.Errorf("%w: want exactly one default specialist, got %d", ErrInvalidSpec, defaults)
	}

	return nil
}

// DefaultSpecialist returns the specialist marked as default.
func (s GraphSpec) DefaultSpecialist() (SpecialistSpec, bool) {
	for _, sp := range s.Specialists {
		if sp.Default {
			return sp, true
		}
	}

	return SpecialistSpec{}, false
}

// Build constructs the graph, resolving tool names against tools.
func (s GraphSpec) Build(tools map[string]tool.Descriptor) (*Graph, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	triage, err := s.Triage.build(tools)
	if err != nil {
		return nil, err
	}

	specialists := make([]*Agent, 0, len(s.Specialists))

	for _, sp := range s.Specialists {
		a, err := sp.build(tools)
		if err != nil {
			return nil, err
		}

		specialists = append(specialists, a)
	}

	return NewGraph(triage, specialists...)
}

func (s AgentSpec) build(tools map[string]tool.Descriptor) (*Agent, error) {
	ts := make([]tool.Descriptor, 0, len(s.Tools))

	for _, name := range s.Tools {
		t, ok := tools[name]
		if !ok {
			return nil, fmt.Errorf("%w: agent %q references unknown tool %q", ErrInvalidSpec, s.Name, name)
		}

		ts = append(ts, t)
	}

	return New(s.Name, func(o *Options) {
		o.Instructions = s.Instructions
		o.Model = s.Model
		o.Tools = ts
	}), nil
}

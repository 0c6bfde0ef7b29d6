package airline

import (
	"github.com/hupe1980/agentdesk/agent"
	"github.com/hupe1980/agentdesk/tool"
)

// Agent names of the default graph.
const (
	TriageAgentName = "Triage Agent"
	FAQAgentName    = "FAQ Agent"
	SeatAgentName   = "Seat Booking Agent"
)

// DefaultModel is the model label of the default agents.
const DefaultModel = "gpt-4o-mini"

// SeatKeywords route a request to the seat booking agent.
var SeatKeywords = []string{"seat", "change my seat", "seat change"}

// DefaultGraphSpec returns the built-in airline graph.
func DefaultGraphSpec() agent.GraphSpec {
	return agent.GraphSpec{
		Triage: agent.AgentSpec{
			Name:         TriageAgentName,
			Model:        DefaultModel,
			Instructions: "Greet the user and route to FAQ or Seat Booking Agent depending on intent.",
		},
		Specialists: []agent.SpecialistSpec{
			{
				AgentSpec: agent.AgentSpec{
					Name:         FAQAgentName,
					Model:        DefaultModel,
					Instructions: "Answer policy questions about baggage, seating, and Wi-Fi.",
					Tools:        []string{FAQToolName},
				},
				Default: true,
			},
			{
				AgentSpec: agent.AgentSpec{
					Name:         SeatAgentName,
					Model:        DefaultModel,
					Instructions: "Help customers with seat changes and updates. Use update_seat tool.",
					Tools:        []string{SeatToolName},
				},
				Keywords:   append([]string(nil), SeatKeywords...),
				Contextual: true,
			},
		},
	}
}

// Tools returns a registry holding the airline tools and the conversation
// state manager, so a GraphSpec may attach any of them by name.
func Tools(optFns ...func(o *SeatOptions)) map[string]tool.Descriptor {
	return map[string]tool.Descriptor{
		FAQToolName:               NewFAQLookupTool(),
		SeatToolName:              NewUpdateSeatTool(optFns...),
		tool.StateManagerToolName: tool.NewStateManagerTool(),
	}
}

// NewGraph builds spec against the airline tools.
func NewGraph(spec agent.GraphSpec, optFns ...func(o *SeatOptions)) (*agent.Graph, error) {
	return spec.Build(Tools(optFns...))
}

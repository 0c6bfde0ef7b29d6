package agentdesk

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentdesk/agent"
	"github.com/hupe1980/agentdesk/airline"
	"github.com/hupe1980/agentdesk/internal/testutil"
	"github.com/hupe1980/agentdesk/runner"
	"github.com/hupe1980/agentdesk/tool"
)

func TestAgentDesk_Defaults(t *testing.T) {
	desk, err := New()
	require.NoError(t, err)

	assert.Equal(t, airline.TriageAgentName, desk.Graph().Triage().Name())

	out, err := desk.Ask(context.Background(), "s1", "What's the baggage policy?")
	require.NoError(t, err)
	require.NoError(t, out.Err)
	assert.Equal(t, airline.FAQAgentName, out.Agent)

	out, err = desk.Ask(context.Background(), "s1", "I want to change my seat", "ABC123", "12A")
	require.NoError(t, err)
	require.NoError(t, out.Err)
	assert.True(t, strings.HasPrefix(out.Result.(string), "Updated seat to 12A for confirmation number ABC123 on flight FLT-"))

	snap, err := desk.Conversation("s1")
	require.NoError(t, err)
	require.NotNil(t, snap.SeatNumber)
	assert.Equal(t, "12A", *snap.SeatNumber)
	require.NotNil(t, snap.FlightNumber)

	other, err := desk.Conversation("s2")
	require.NoError(t, err)
	assert.Nil(t, other.SeatNumber)
}

func TestAgentDesk_CustomSpec(t *testing.T) {
	spec, err := agent.LoadGraphSpec(strings.NewReader(`
triage:
  name: Front Desk
specialists:
  - name: Echo
    tools: [echo]
    default: true
`))
	require.NoError(t, err)

	desk, err := New(func(o *Options) {
		o.GraphSpec = &spec
		o.Tools = map[string]tool.Descriptor{"echo": testutil.NewDirect("echo", testutil.Returning("pong"))}
	})
	require.NoError(t, err)

	outcomes, err := desk.Simulate(context.Background(), "s", []runner.Request{{Query: "ping"}, {Query: "ping again"}})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, "pong", outcomes[1].Result)
	assert.Equal(t, "Echo", outcomes[1].Agent)
}

func TestAgentDesk_StateManagerInGraph(t *testing.T) {
	spec, err := agent.LoadGraphSpec(strings.NewReader(`
triage:
  name: Triage Agent
specialists:
  - name: FAQ Agent
    tools: [faq_lookup_tool]
    default: true
  - name: Seat Booking Agent
    tools: [update_seat]
    keywords: [seat]
    contextual: true
  - name: State Agent
    tools: [state_manager]
    keywords: [state]
    contextual: true
`))
	require.NoError(t, err)

	desk, err := New(func(o *Options) { o.GraphSpec = &spec })
	require.NoError(t, err)

	ctx := context.Background()

	out, err := desk.Ask(ctx, "s", "change my seat", "ABC123", "12A")
	require.NoError(t, err)
	require.NoError(t, out.Err)

	out, err = desk.Ask(ctx, "s", "show state", "get_state", "seat_number")
	require.NoError(t, err)
	require.NoError(t, out.Err)
	assert.Equal(t, "State Agent", out.Agent)
	assert.Equal(t, map[string]any{"key": "seat_number", "value": "12A", "found": true}, out.Result)

	out, err = desk.Ask(ctx, "s", "update state", "set_state", "passenger_name", "Ada")
	require.NoError(t, err)
	require.NoError(t, out.Err)

	snap, err := desk.Conversation("s")
	require.NoError(t, err)
	require.NotNil(t, snap.PassengerName)
	assert.Equal(t, "Ada", *snap.PassengerName)
}

func TestAgentDesk_UnknownTool(t *testing.T) {
	spec := airline.DefaultGraphSpec()

	_, err := New(func(o *Options) {
		o.GraphSpec = &spec
		o.Tools = map[string]tool.Descriptor{}
	})
	assert.ErrorIs(t, err, agent.ErrInvalidSpec)
}

func TestAgentDesk_Instructions(t *testing.T) {
	spec := airline.DefaultGraphSpec()
	spec.Specialists[1].Instructions = `Seat desk.{{with .flight_number}} Flight {{.}}.{{end}}`

	desk, err := New(func(o *Options) { o.GraphSpec = &spec })
	require.NoError(t, err)

	got, err := desk.Instructions("s", airline.SeatAgentName)
	require.NoError(t, err)
	assert.Equal(t, "Seat desk.", got)

	_, err = desk.Ask(context.Background(), "s", "change my seat", "ABC123", "12A")
	require.NoError(t, err)

	snap, err := desk.Conversation("s")
	require.NoError(t, err)

	got, err = desk.Instructions("s", airline.SeatAgentName)
	require.NoError(t, err)
	assert.Equal(t, "Seat desk. Flight "+*snap.FlightNumber+".", got)

	_, err = desk.Instructions("s", "Nobody")
	assert.ErrorIs(t, err, agent.ErrAgentNotFound)
}

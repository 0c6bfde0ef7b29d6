package airline

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentdesk/core"
	"github.com/hupe1980/agentdesk/resolver"
	"github.com/hupe1980/agentdesk/tool"
)

func TestLookupFAQ(t *testing.T) {
	tests := []struct {
		question string
		contains string
	}{
		{"What's the baggage policy?", "one bag"},
		{"How heavy can my LUGGAGE be?", "50 pounds"},
		{"Is there an exit row?", "rows 4 and 16"},
		{"Do you have Wi-Fi?", UnknownAnswer},
		{"Is there wifi on board?", "Airline-Wifi"},
		{"Can I get internet?", "Airline-Wifi"},
		{"Do you serve meals?", UnknownAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Contains(t, LookupFAQ(tt.question), tt.contains)
		})
	}
}

func TestFAQLookupTool_ThroughResolver(t *testing.T) {
	r := resolver.New()

	out, err := r.Invoke(context.Background(), NewFAQLookupTool(), nil, tool.NewInput("What's the baggage policy?"))
	require.NoError(t, err)
	assert.Contains(t, out, "one bag")
}

func TestFAQLookupTool_IsAsync(t *testing.T) {
	faq := NewFAQLookupTool()

	out, err := faq.InvokeTool(context.Background(), tool.NewInput(core.NewToolContext(nil), `{"question":"bag?"}`))
	require.NoError(t, err)

	_, isFuture := out.(tool.Future)
	assert.True(t, isFuture)

	v, err := tool.Await(context.Background(), out)
	require.NoError(t, err)
	assert.Contains(t, v, "one bag")
}

func TestUpdateSeatTool_Scenario(t *testing.T) {
	r := resolver.New()
	rc := core.NewRunContext("s", nil, nil)

	out, err := r.Invoke(context.Background(), NewUpdateSeatTool(), rc, tool.NewInput(rc, "ABC123", "12A"))
	require.NoError(t, err)

	conf, ok := rc.Conversation.ConfirmationNumber()
	require.True(t, ok)
	assert.Equal(t, "ABC123", conf)

	seat, ok := rc.Conversation.SeatNumber()
	require.True(t, ok)
	assert.Equal(t, "12A", seat)

	flight, ok := rc.Conversation.FlightNumber()
	require.True(t, ok)
	assert.Regexp(t, regexp.MustCompile(`^FLT-[1-9]\d{2}$`), flight)

	msg, ok := out.(string)
	require.True(t, ok)
	assert.Equal(t, "Updated seat to 12A for confirmation number ABC123 on flight "+flight, msg)
}

func TestUpdateSeatTool_KeepsExistingFlight(t *testing.T) {
	r := resolver.New()
	conv := core.NewConversationContext()
	conv.SetFlightNumber("FLT-777")
	rc := core.NewRunContext("s", conv, nil)

	generated := 0
	seat := NewUpdateSeatTool(func(o *SeatOptions) {
		o.FlightNumber = func() string { generated++; return "FLT-100" }
		o.Delay = 0
	})

	out, err := r.Invoke(context.Background(), seat, rc, tool.NewInput("XYZ999", "3C"))
	require.NoError(t, err)
	assert.Equal(t, "Updated seat to 3C for confirmation number XYZ999 on flight FLT-777", out)
	assert.Zero(t, generated)
}

func TestUpdateSeatTool_RequiresContext(t *testing.T) {
	seat := NewUpdateSeatTool()

	out, err := seat.InvokeTool(context.Background(), tool.NewInput(core.NewToolContext(nil), map[string]any{
		"confirmation_number": "ABC123",
		"new_seat":            "12A",
	}))
	require.NoError(t, err)

	_, err = tool.Await(context.Background(), out)

	var toolErr *tool.ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, tool.CodeExecution, toolErr.Code)
	assert.ErrorIs(t, err, core.ErrNoRunContext)
}

func TestUpdateSeatTool_Cancelled(t *testing.T) {
	seat := NewUpdateSeatTool(func(o *SeatOptions) { o.Delay = time.Hour })
	rc := core.NewRunContext("s", nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := resolver.New().Invoke(ctx, seat, rc, tool.NewInput("ABC123", "12A"))
	assert.Error(t, err)
}

func TestRandomFlightNumber(t *testing.T) {
	for range 50 {
		assert.Regexp(t, `^FLT-[1-9]\d{2}$`, RandomFlightNumber())
	}
}

func TestNewGraph(t *testing.T) {
	g, err := NewGraph(DefaultGraphSpec())
	require.NoError(t, err)

	assert.Equal(t, TriageAgentName, g.Triage().Name())
	assert.Equal(t, DefaultModel, g.Triage().Model())

	seat, err := g.Triage().HandoffTo(SeatAgentName)
	require.NoError(t, err)

	_, ok := seat.Tool(SeatToolName)
	assert.True(t, ok)

	faq, err := g.Specialist(FAQAgentName)
	require.NoError(t, err)

	_, ok = faq.Tool(FAQToolName)
	assert.True(t, ok)
	require.NoError(t, g.Validate())
}

func TestTools_RegistersStateManager(t *testing.T) {
	tools := Tools()

	assert.Contains(t, tools, FAQToolName)
	assert.Contains(t, tools, SeatToolName)
	require.Contains(t, tools, tool.StateManagerToolName)
	assert.Equal(t, tool.StateManagerToolName, tools[tool.StateManagerToolName].Name())
}

package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentdesk/core"
)

type mockProvider struct {
	text string
	err  error
}

func (m mockProvider) Instruction(*core.RunContext) (string, error) { return m.text, m.err }

func TestInstruction_Static(t *testing.T) {
	inst := NewInstructionFromText("static instruction")
	assert.True(t, inst.IsStatic())

	got, err := inst.Resolve(core.NewRunContext("s", nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "static instruction", got)
}

func TestInstruction_RendersConversation(t *testing.T) {
	conv := core.NewConversationContext()
	conv.SetFlightNumber("FLT-321")
	rc := core.NewRunContext("session-1", conv, nil)

	inst := NewInstructionFromText(`Flight {{.flight_number}}, seat {{default "none" .seat_number}} ({{.session_id}})`)

	got, err := inst.Resolve(rc)
	require.NoError(t, err)
	assert.Equal(t, "Flight FLT-321, seat none (session-1)", got)
}

func TestInstruction_NilRunContext(t *testing.T) {
	got, err := NewInstructionFromText(`{{default "anonymous" .passenger_name}}`).Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "anonymous", got)
}

func TestInstruction_NewInstructionFromFunc(t *testing.T) {
	inst := NewInstructionFromFunc(func(rc *core.RunContext) (string, error) { return "dynamic " + rc.SessionID, nil })
	assert.False(t, inst.IsStatic())

	got, err := inst.Resolve(core.NewRunContext("abc", nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "dynamic abc", got)
}

func TestInstruction_ProviderErrorPropagation(t *testing.T) {
	expectedErr := errors.New("boom")
	inst := NewInstructionFromProvider(mockProvider{err: expectedErr})

	_, err := inst.Resolve(nil)
	assert.ErrorIs(t, err, expectedErr)

	got, err := NewInstructionFromProvider(mockProvider{text: "provider text"}).Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "provider text", got)
}

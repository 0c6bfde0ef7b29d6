package agent

import (
	"github.com/hupe1980/agentdesk/core"
	"github.com/hupe1980/agentdesk/internal/util"
)

// Provider supplies dynamic instruction text at runtime.
type Provider interface {
	Instruction(*core.RunContext) (string, error)
}

// Func is a functional adapter to allow ordinary functions to be used as Providers.
type Func func(*core.RunContext) (string, error)

// Instruction implements Provider.
func (f Func) Instruction(rc *core.RunContext) (string, error) { return f(rc) }

// Instruction represents either a static instruction template or a dynamic provider.
type Instruction struct {
	text     string
	provider Provider
}

// NewInstructionFromText creates an Instruction from a static string. The
// text may reference conversation fields as template variables, e.g.
// {{.flight_number}}.
func NewInstructionFromText(text string) Instruction { return Instruction{text: text} }

// NewInstructionFromProvider creates an Instruction from a dynamic provider.
func NewInstructionFromProvider(p Provider) Instruction { return Instruction{provider: p} }

// NewInstructionFromFunc creates an Instruction from a function.
func NewInstructionFromFunc(f func(*core.RunContext) (string, error)) Instruction {
	return Instruction{provider: Func(f)}
}

// IsStatic returns true if the instruction is backed by a static string.
func (i Instruction) IsStatic() bool { return i.provider == nil }

// Resolve returns the instruction text, invoking the provider if needed.
// Static text is rendered against the conversation state of rc.
func (i Instruction) Resolve(rc *core.RunContext) (string, error) {
	if i.provider != nil {
		return i.provider.Instruction(rc)
	}

	return util.RenderTemplate(i.text, templateState(rc))
}

func templateState(rc *core.RunContext) map[string]any {
	state := map[string]any{}
	if rc == nil {
		return state
	}

	state["session_id"] = rc.SessionID

	if rc.Conversation == nil {
		return state
	}

	s := rc.Conversation.Snapshot()
	for k, v := range map[string]*string{
		"passenger_name":      s.PassengerName,
		"confirmation_number": s.ConfirmationNumber,
		"seat_number":         s.SeatNumber,
		"flight_number":       s.FlightNumber,
	} {
		if v != nil {
			state[k] = *v
		}
	}

	return state
}

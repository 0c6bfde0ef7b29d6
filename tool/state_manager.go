package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/agentdesk/core"
)

// StateManagerToolName is the name of the tool returned by NewStateManagerTool.
const StateManagerToolName = "state_manager"

// Conversation state keys understood by the state manager tool.
const (
	StateKeyPassengerName      = "passenger_name"
	StateKeyConfirmationNumber = "confirmation_number"
	StateKeySeatNumber         = "seat_number"
	StateKeyFlightNumber       = "flight_number"
)

// NewStateManagerTool returns the "state_manager" tool, which reads and
// writes conversation fields through its ToolContext.
//
// Operations:
//   - get_state: returns the value of key, or all set fields when key is empty
//   - set_state: sets key to value
func NewStateManagerTool() *FunctionTool {
	return NewFunctionTool(
		StateManagerToolName,
		"Reads and writes the conversation state. Supports operations: get_state, set_state.",
		NewSchema(
			Parameter{Name: "operation", Type: "string", Description: "get_state or set_state", Required: true},
			Parameter{Name: "key", Type: "string", Description: "Conversation field, e.g. seat_number"},
			Parameter{Name: "value", Type: "string", Description: "Value for set_state"},
		),
		func(_ context.Context, tc *core.ToolContext, args map[string]any) (any, error) {
			conv, err := tc.Conversation()
			if err != nil {
				return nil, err
			}

			operation, _ := args["operation"].(string)
			key, _ := args["key"].(string)

			switch operation {
			case "get_state":
				return handleGetState(conv, key)
			case "set_state":
				value, _ := args["value"].(string)
				return handleSetState(conv, key, value)
			default:
				return nil, fmt.Errorf("unknown operation: %s", operation)
			}
		},
	)
}

func handleGetState(conv *core.ConversationContext, key string) (any, error) {
	if key == "" {
		state := map[string]any{}

		for _, k := range []string{StateKeyPassengerName, StateKeyConfirmationNumber, StateKeySeatNumber, StateKeyFlightNumber} {
			if v, ok := stateGetter(conv, k)(); ok {
				state[k] = v
			}
		}

		return state, nil
	}

	get := stateGetter(conv, key)
	if get == nil {
		return nil, unknownKey(key)
	}

	v, ok := get()

	return map[string]any{"key": key, "value": v, "found": ok}, nil
}

func handleSetState(conv *core.ConversationContext, key, value string) (any, error) {
	var set func(string)

	switch key {
	case StateKeyPassengerName:
		set = conv.SetPassengerName
	case StateKeyConfirmationNumber:
		set = conv.SetConfirmationNumber
	case StateKeySeatNumber:
		set = conv.SetSeatNumber
	case StateKeyFlightNumber:
		set = conv.SetFlightNumber
	default:
		return nil, unknownKey(key)
	}

	if strings.TrimSpace(value) == "" {
		return nil, fmt.Errorf("value is required for set_state")
	}

	set(value)

	return map[string]any{"key": key, "value": value, "success": true}, nil
}

func stateGetter(conv *core.ConversationContext, key string) func() (string, bool) {
	switch key {
	case StateKeyPassengerName:
		return conv.PassengerName
	case StateKeyConfirmationNumber:
		return conv.ConfirmationNumber
	case StateKeySeatNumber:
		return conv.SeatNumber
	case StateKeyFlightNumber:
		return conv.FlightNumber
	default:
		return nil
	}
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown state key %q", key)
}

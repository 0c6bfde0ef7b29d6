package airline

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hupe1980/agentdesk/core"
	"github.com/hupe1980/agentdesk/tool"
)

// SeatToolName is the name of the seat update tool.
const SeatToolName = "update_seat"

// SeatArgs is the parameter struct of the seat update tool.
type SeatArgs struct {
	ConfirmationNumber string `json:"confirmation_number" description:"The confirmation number of the booking"`
	NewSeat            string `json:"new_seat" description:"The seat to move the passenger to"`
}

// SeatOptions configures the seat update tool.
type SeatOptions struct {
	// FlightNumber generates a flight number when the conversation has none.
	FlightNumber func() string
	// Delay simulates the booking backend latency.
	Delay time.Duration
}

// RandomFlightNumber returns "FLT-" followed by a number in [100, 999].
func RandomFlightNumber() string {
	return fmt.Sprintf("FLT-%d", 100+rand.IntN(900)) //nolint:gosec // not security relevant
}

// NewUpdateSeatTool returns the asynchronous seat update tool. It requires a
// tool context bound to a run context and mutates its conversation.
func NewUpdateSeatTool(optFns ...func(o *SeatOptions)) *tool.FunctionTool {
	opts := SeatOptions{
		FlightNumber: RandomFlightNumber,
		Delay:        10 * time.Millisecond,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return tool.NewFunctionToolFromStruct(
		SeatToolName,
		"Update the seat for a given confirmation number",
		SeatArgs{},
		func(ctx context.Context, tc *core.ToolContext, args map[string]any) (any, error) {
			conv, err := tc.Conversation()
			if err != nil {
				return nil, err
			}

			confirmation, _ := args["confirmation_number"].(string)
			seat, _ := args["new_seat"].(string)

			flight := conv.SetFlightNumberIfAbsent(opts.FlightNumber)
			conv.SetConfirmationNumber(confirmation)
			conv.SetSeatNumber(seat)

			if opts.Delay > 0 {
				timer := time.NewTimer(opts.Delay)
				defer timer.Stop()

				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-timer.C:
				}
			}

			return fmt.Sprintf("Updated seat to %s for confirmation number %s on flight %s", seat, confirmation, flight), nil
		},
		func(o *tool.FunctionToolOptions) { o.Async = true },
	)
}

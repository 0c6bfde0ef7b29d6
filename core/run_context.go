package core

import (
	"github.com/google/uuid"

	"github.com/hupe1980/agentdesk/logging"
)

// RunContext is the per-session reference to the shared ConversationContext.
// It is the value a caller places in a tool's candidate argument list to
// forward the conversation state; the resolver recognizes it by type. A
// session holds exactly one RunContext for its lifetime and every tool call
// receives the same pointer.
type RunContext struct {
	SessionID    string
	Conversation *ConversationContext

	*loggerAdapter
}

// NewRunContext constructs a RunContext for sessionID wrapping conv. An empty
// sessionID is replaced by a random UUID and a nil conv by a fresh context.
func NewRunContext(sessionID string, conv *ConversationContext, logger logging.Logger) *RunContext {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if conv == nil {
		conv = NewConversationContext()
	}

	return &RunContext{
		SessionID:     sessionID,
		Conversation:  conv,
		loggerAdapter: newLoggerAdapter(logger),
	}
}

// FindRunContext returns the first *RunContext found in args together with
// its index, or (nil, -1) when none is present.
func FindRunContext(args []any) (*RunContext, int) {
	for i, a := range args {
		if rc, ok := a.(*RunContext); ok && rc != nil {
			return rc, i
		}
	}

	return nil, -1
}

// WithoutRunContext returns a copy of args with every *RunContext removed.
func WithoutRunContext(args []any) []any {
	out := make([]any, 0, len(args))

	for _, a := range args {
		if _, ok := a.(*RunContext); ok {
			continue
		}

		out = append(out, a)
	}

	return out
}

package core

import "errors"

// ErrNoRunContext is returned by tools that require conversation state but
// were invoked without it.
var ErrNoRunContext = errors.New("no run context")

// ToolContext is the minimal context holder handed to structured-payload
// tools as their first argument. Its only field references the session's
// RunContext, which may be nil when the caller supplied none.
type ToolContext struct {
	Run *RunContext
}

// NewToolContext wraps rc in a ToolContext.
func NewToolContext(rc *RunContext) *ToolContext { return &ToolContext{Run: rc} }

// Conversation returns the shared conversation state or ErrNoRunContext.
func (tc *ToolContext) Conversation() (*ConversationContext, error) {
	if tc == nil || tc.Run == nil || tc.Run.Conversation == nil {
		return nil, ErrNoRunContext
	}

	return tc.Run.Conversation, nil
}

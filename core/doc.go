// Package core provides the foundational state types shared by tools, agents
// and the dispatch loop:
//
//   - ConversationContext (mutable, mutex-guarded session state)
//   - RunContext (the per-session reference forwarded in tool arguments)
//   - ToolContext (the minimal holder passed to structured-payload tools)
//
// None of these types persist anything; a session's state lives exactly as
// long as its RunContext.
package core

// Package session keeps the per-session run context, and with it the
// conversation state shared by every tool invocation of that session.
//
// Only a volatile in-memory implementation is provided; conversation state
// is not persisted across process restarts.
package session

// Package runner implements the dispatch loop: every request is classified,
// handed off from the triage agent to a specialist and executed by invoking
// the specialist's tool through the resolver.
//
// Requests of a run are processed one after another against a shared run
// context. A failing request (including a panicking tool) yields an Outcome
// carrying a *RequestError; the remaining requests still run and earlier
// conversation mutations are kept.
package runner

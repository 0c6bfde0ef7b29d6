// Package agent models the handoff graph of a customer-support workflow.
//
// An Agent is a named node carrying instructions, a model label, an ordered
// tool list and ordered handoff targets. A Graph connects one triage agent
// with its specialists: triage hands off to every specialist and each
// specialist hands off back to triage. Graphs can be declared in YAML
// (GraphSpec) and built against a tool registry.
//
// Instructions are text/template strings rendered against the conversation
// state of a run, for example:
//
//	Help with seat changes. {{with .flight_number}}Current flight: {{.}}.{{end}}
package agent

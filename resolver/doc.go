// Package resolver invokes tools whose calling convention is not known in
// advance.
//
// A tool may be directly callable, expose Run or Execute, accept a structured
// payload (optionally described by a schema), or merely wrap an inner
// function. The Resolver probes these conventions in a fixed order, awaits
// asynchronous results and isolates panics, so a single misbehaving strategy
// never aborts the dispatch of a request.
package resolver

// Package testutil contains capability-shaped fake tools used across tests
// to exercise the resolver and the dispatch loop. Each fake exposes exactly
// the calling conventions its type name suggests and records the inputs it
// received. They are not intended for production usage.
package testutil

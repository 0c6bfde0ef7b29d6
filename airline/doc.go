// Package airline provides the tools and default agent graph of the airline
// customer-support workflow: a policy FAQ lookup and a seat update that
// records its effect in the shared conversation context.
package airline

// Package factory builds detached green nodes and tokens.
//
// Every node constructor takes exactly the slots of its kind, in grammar
// order. A nil argument leaves the slot absent. Passing a child whose kind
// does not fit its slot panics: callers are rule implementations and the
// parser, never untrusted input.
package factory

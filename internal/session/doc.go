// Package session implements the prompt / compile / report cycle.
//
// The cycle is a small state machine. Next is a pure function from the
// current Model and the outcome of the last effect to the following Model and
// the Effect to carry out. Loop is the only part that touches the console,
// the resolver and the pipeline, which keeps the transitions testable with
// synthetic events.
package session

package cothread

import "time"

// TickSource is the periodic external collaborator (C1) that drives
// Runtime.OnTick. A real embedded deployment backs this with a hardware
// timer interrupt; this port ships two portable Go implementations,
// selected automatically by platform (tick_linux.go, tick_other.go), or
// a caller-supplied one via WithTickSource.
type TickSource interface {
	// Start begins invoking handler roughly every period, from a
	// dedicated goroutine, until Stop is called. handler receives a
	// program-counter stand-in for the interrupted instruction stream;
	// see tick_linux.go and tick_other.go for what each implementation
	// actually supplies.
	Start(period time.Duration, handler func(pc uintptr)) error
	// Stop halts the tick source and blocks until its goroutine has
	// exited. Safe to call at most once per Start.
	Stop() error
}

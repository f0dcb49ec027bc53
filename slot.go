package cothread

// slot is a single thread table entry: the Go-side stand-in for the
// original's struct Thread. Exactly one slot's goroutine holds the baton
// (see switch.go) at any instant; every other slot's goroutine is parked
// on a channel receive, which is what lets the table below be read and
// mutated without a mutex.
type slot struct {
	id uint64
	state State

	// waitForID is only meaningful while state == StateWaitAtJoin: the tid
	// being joined, or 0 for "join everyone else".
	waitForID uint64
	// waitingForSem is only meaningful while state == StateWaitForSem: the
	// id of the Semaphore being waited on.
	waitingForSem uint64

	// stack stands in for the original's malloc'd stack buffer. It is
	// reused across a slot's successive lives until actually reaped via
	// Runtime.pendingFree (see lifecycle.go's Exit), matching the
	// original's "if (!stack) malloc(...)" reuse-on-respawn behavior.
	stack []byte
	// sp is a purely informational stand-in for the saved stack pointer;
	// nothing reads it to actually resume execution (the goroutine's own
	// call stack does that), but it's kept and recomputed on every spawn
	// to mirror the original's data layout for anyone inspecting a slot.
	sp uintptr

	// returnedValue carries the result delivered to this slot when it is
	// woken from Join: the joined thread's return code, written by that
	// thread's Exit, or 0 for a join(0) waiter.
	returnedValue int

	// resume is this slot's half of the context-switch baton: sending on
	// it wakes the slot's goroutine; the goroutine blocks receiving on it
	// whenever it doesn't hold the baton.
	resume chan struct{}

	// entry/args/nbytes are the thread body and its arguments, consumed
	// once by trampoline.go on first resume.
	entry  func(args any, nbytes int) int
	args   any
	nbytes int
}

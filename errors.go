package cothread

import "fmt"

// Sentinel errors for expected, recoverable conditions — mirrors
// eventloop's package-level errors.New sentinels (ErrLoopAlreadyRunning,
// ErrLoopTerminated, ...).
var (
	// ErrTableFull is returned by Runtime.New when every slot is occupied.
	ErrTableFull = newSentinelError("cothread: thread table full")
	// ErrUnknownThread is returned by Runtime.Join when the thread id
	// names no StateRunning slot: a thread that never existed, has exited,
	// or is itself blocked in Join or Semaphore.Wait.
	ErrUnknownThread = newSentinelError("cothread: unknown thread id")
)

type sentinelError struct{ msg string }

func newSentinelError(msg string) error { return &sentinelError{msg} }

func (e *sentinelError) Error() string { return e.msg }

// FatalError reports a violated invariant the original would have
// handled by aborting the process outright: self-join, a deadlocked
// Join/Exit/Sem_wait with no runnable successor, or two threads both
// join(0)-ing at once. Matching eventloop's PanicError, it is recovered
// from a panic rather than returned, since none of these conditions are
// meant to be handled — they indicate a caller bug.
type FatalError struct {
	Reason string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("cothread: fatal: %s", e.Reason)
}

// fatal panics with a *FatalError, the equivalent of the original's
// abort()-on-bad-invariant behavior.
func (rt *Runtime) fatal(reason string) {
	rt.logInfof("fatal invariant violation", nil)
	panic(&FatalError{Reason: reason})
}

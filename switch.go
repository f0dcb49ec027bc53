package cothread

import "runtime"

// switchTo transfers the baton from rt.current to next and blocks until
// it is handed back — the Go-goroutine analogue of swap(from_sp, to_sp):
// next.resume wakes next's goroutine, and the caller then parks on its
// own slot's resume channel exactly where the hardware primitive would
// have saved the caller's stack pointer and loaded next's.
//
// Must only be called by the goroutine currently holding the baton, i.e.
// with rt.current == the slot initiating the switch. Deliberately tiny
// and easy to misuse outside that contract — narrower code doesn't need
// reviewing twice.
func (rt *Runtime) switchTo(next *slot) {
	prev := rt.current
	if next == prev {
		// A self-switch is a real (if wasteful) round-trip on the
		// original hardware; here it would deadlock a goroutine trying
		// to send to and receive from its own channel in sequence, so
		// it's elided as a no-op instead.
		return
	}
	rt.current = next
	next.resume <- struct{}{}
	<-prev.resume
}

// switchAwayAndExit hands the baton to next and then permanently retires
// the calling goroutine via runtime.Goexit, without ever returning to the
// caller. Used only by Exit: unlike switchTo, the exiting slot will never
// be resumed, so there is nothing to block on — and nothing must execute
// after Exit, matching the original's "never returns" contract exactly
// rather than merely by convention.
func (rt *Runtime) switchAwayAndExit(next *slot) {
	rt.current = next
	next.resume <- struct{}{}
	runtime.Goexit()
}

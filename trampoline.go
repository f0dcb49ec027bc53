package cothread

// runTrampoline is the first code a spawned slot's goroutine runs. It
// blocks until the scheduler resumes this slot for the first time, then
// invokes the thread body and feeds its return value into Exit — the
// Go-goroutine stand-in for the original's _thrstart trampoline, which
// lands in the thread body via a hand-built ARM register frame rather
// than a blocked channel receive.
func (rt *Runtime) runTrampoline(s *slot) {
	<-s.resume
	rc := s.entry(s.args, s.nbytes)
	rt.Exit(rc)
}

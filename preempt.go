package cothread

// OnTick is the preemption handler a TickSource invokes periodically —
// the port of timer_handler. It never switches threads itself: true
// asynchronous preemption (stopping an arbitrary instruction stream mid-
// flight) has no portable Go equivalent, so OnTick only ever arms
// preemptRequested, gated exactly as the original gates the decision to
// call Thread_pause from within an interrupt: defer while a non-reentrant
// host call is in flight (GuardLibraryCall's reentrancy flag) or while a
// core operation's own critical section is open (inMonitor). The actual
// switch happens later, at the running thread's next call to
// CheckPreempt.
func (rt *Runtime) OnTick(pc uintptr) {
	if rt.reentrancyFlag.Load() {
		rt.logDebugf("tick deferred: reentrancy flag set", nil)
		return
	}
	if rt.inMonitor() {
		rt.logDebugf("tick deferred: monitor region open", nil)
		return
	}
	rt.preemptRequested.Store(true)
	rt.logDebugf("tick: preemption requested", nil)
}

// CheckPreempt is the safepoint a running thread must reach for a
// pending forced preemption to actually take effect. A thread that never
// calls this (and never calls Pause/Join/Sem_wait, which yield anyway)
// simply runs to completion uninterrupted — the cooperative half of this
// library's "preemptive" scheduling.
func (rt *Runtime) CheckPreempt() {
	if rt.preemptRequested.CompareAndSwap(true, false) {
		rt.logDebugf("preempting at safepoint", nil)
		rt.Pause()
	}
}

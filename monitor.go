package cothread

// enterMonitor/leaveMonitor bracket a core operation's critical
// section — the part of New/Exit/Pause/Join/Sem_wait/Sem_signal that
// mutates the table directly. The preemption handler (see preempt.go)
// defers while monitorDepth is above zero, the atomic-counter alternative
// to a hardware PC-window check.
func (rt *Runtime) enterMonitor() { rt.monitorDepth.Add(1) }
func (rt *Runtime) leaveMonitor() { rt.monitorDepth.Add(-1) }

// inMonitor reports whether a core operation's critical section is
// currently open.
func (rt *Runtime) inMonitor() bool { return rt.monitorDepth.Load() > 0 }

// GuardLibraryCall runs fn with the reentrancy flag set, standing in for
// the original's _STARTMONITOR/_ENDMONITOR bracket around calls into a
// non-reentrant host library (malloc, printf, ...). The preemption
// handler defers for as long as the flag is set, whether or not fn itself
// panics.
func (rt *Runtime) GuardLibraryCall(fn func()) {
	rt.reentrancyFlag.Store(true)
	defer rt.reentrancyFlag.Store(false)
	fn()
}

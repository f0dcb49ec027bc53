package cothread

import (
	"runtime"
	"unsafe"
)

// New spawns a thread running fn(args, nbytes) and returns its id, or -1
// and ErrTableFull if every slot is occupied — the port of Thread_new.
// The new slot is StateRunning immediately but doesn't actually execute
// fn until the scheduler resumes it for the first time (see
// trampoline.go). Must be called by the Runtime's current thread.
func (rt *Runtime) New(fn func(args any, nbytes int) int, args any, nbytes int) (int, error) {
	rt.enterMonitor()
	defer rt.leaveMonitor()

	idx := rt.findInvalidSlot()
	if idx < 0 {
		rt.logDebugf("thread table full", nil)
		return -1, ErrTableFull
	}

	s := rt.table[idx]
	if s == nil {
		s = &slot{}
		rt.table[idx] = s
	}
	if s.stack == nil {
		s.stack = make([]byte, rt.stackSize)
	}

	s.id = rt.nextThreadID
	rt.nextThreadID++
	s.state = StateRunning
	s.waitForID = 0
	s.waitingForSem = 0
	s.returnedValue = 0
	s.entry = fn
	s.args = args
	s.nbytes = nbytes
	s.resume = make(chan struct{})

	if s.stack == nil {
		rt.fatal("invariant violated: slot has no stack at spawn time")
	}
	s.sp = uintptr(unsafe.Pointer(&s.stack[len(s.stack)-1]))

	rt.existingThreads++
	go rt.runTrampoline(s)

	rt.logDebugf("thread spawned", nil)
	return int(s.id), nil
}

// Self returns the calling thread's id — Thread_self. Safe without the
// monitor bracket: a thread's own id never changes while it holds the
// baton, and only the baton holder ever calls this.
func (rt *Runtime) Self() int {
	return int(rt.current.id)
}

// Pause voluntarily yields the baton to the next runnable thread (which
// may be the caller itself, if it's the only one) — Thread_pause. Also
// the mechanism CheckPreempt uses to actually honor a pending forced
// preemption.
func (rt *Runtime) Pause() {
	rt.enterMonitor()
	next := rt.selectRunnable()
	if next == nil {
		rt.leaveMonitor()
		rt.fatal("invariant violated: no runnable thread for Pause")
	}
	rt.leaveMonitor()
	rt.switchTo(next)
}

// Join blocks the calling thread until thread tid exits, returning its
// return code, or -1 and ErrUnknownThread if tid names no currently-
// running thread. Pass 0 to wait for every other thread to exit first —
// Thread_join.
//
// Matching an observed quirk of the reference implementation (flagged as
// an Open Question): the "does tid exist" check only considers
// StateRunning slots, so joining a thread that is itself blocked in Join
// or Sem_wait also returns ErrUnknownThread, exactly as if it had never
// existed.
func (rt *Runtime) Join(tid int) (int, error) {
	rt.enterMonitor()

	cur := rt.current
	utid := uint64(tid)

	if tid != 0 && utid == cur.id {
		rt.leaveMonitor()
		rt.fatal("self-join: a thread cannot join itself")
	}

	if tid != 0 {
		if rt.findRunningByID(utid) == nil {
			rt.leaveMonitor()
			return -1, ErrUnknownThread
		}
	} else {
		if rt.existingThreads == 1 {
			rt.leaveMonitor()
			return 0, nil
		}
		if rt.waitingForZero > 0 {
			rt.leaveMonitor()
			rt.fatal("programming error: a thread is already join(0)-ing")
		}
	}

	cur.state = StateWaitAtJoin
	cur.waitForID = utid
	if tid == 0 {
		rt.waitingForZero++
	}

	next := rt.selectRunnable()
	if next == nil {
		rt.leaveMonitor()
		rt.fatal("deadlock: Join has no runnable successor")
	}

	rt.leaveMonitor()
	rt.switchTo(next)

	return cur.returnedValue, nil
}

// Exit terminates the calling thread with return code rc — Thread_exit.
// Like the original, Exit never returns to its caller: the calling
// goroutine is retired via runtime.Goexit once the baton has been handed
// off (or, if this was the last thread, once Runtime.done has been
// closed), so nothing written after a call to Exit can run.
func (rt *Runtime) Exit(rc int) {
	rt.enterMonitor()

	if rt.pendingFree != nil && rt.pendingFree.stack != nil {
		rt.pendingFree.stack = nil
	}
	rt.pendingFree = nil

	cur := rt.current
	cur.state = StateInvalid
	rt.existingThreads--

	for _, w := range rt.waitersAtJoin(cur.id) {
		w.returnedValue = rc
		w.state = StateRunning
	}

	next := rt.selectRunnable()
	switch {
	case next != nil:
		rt.pendingFree = cur
		rt.leaveMonitor()
		rt.logDebugf("thread exited", nil)
		rt.switchAwayAndExit(next)

	case rt.existingThreads == 0:
		rt.leaveMonitor()
		rt.logInfof("last thread exited", nil)
		rt.terminate(rc)
		runtime.Goexit()

	case rt.existingThreads == 1:
		waiter := rt.waiterAtJoinZero()
		if waiter == nil {
			rt.leaveMonitor()
			rt.fatal("deadlock: last runnable thread exiting with no join(0) waiter")
		}
		rt.waitingForZero--
		waiter.returnedValue = 0
		waiter.state = StateRunning
		rt.pendingFree = cur
		rt.leaveMonitor()
		rt.logDebugf("thread exited, woke join(0) waiter", nil)
		rt.switchAwayAndExit(waiter)

	default:
		rt.leaveMonitor()
		rt.fatal("deadlock: no runnable successor and multiple threads remain blocked")
	}
}

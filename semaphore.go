package cothread

// Semaphore is a Dijkstra-style counting semaphore scoped to a single
// Runtime, the port of Sem_init/Sem_wait/Sem_signal.
type Semaphore struct {
	rt    *Runtime
	id    uint64
	count int
}

// NewSemaphore creates a semaphore with the given initial count,
// equivalent to Sem_init. Must be called by the Runtime's current thread.
func (rt *Runtime) NewSemaphore(count int) *Semaphore {
	rt.enterMonitor()
	defer rt.leaveMonitor()

	s := &Semaphore{rt: rt, id: rt.nextSemID, count: count}
	rt.nextSemID++
	rt.logDebugf("semaphore created", nil)
	return s
}

// Wait blocks the calling thread until the semaphore's count is positive,
// then decrements it — Sem_wait. Each time this thread is resumed it
// retests the count rather than assuming it's now available: Sem_signal
// wakes every waiter, so the first to actually run wins and everyone else
// must loop back around.
func (s *Semaphore) Wait() {
	rt := s.rt
	for {
		rt.enterMonitor()
		if s.count > 0 {
			s.count--
			rt.leaveMonitor()
			return
		}

		cur := rt.current
		cur.state = StateWaitForSem
		cur.waitingForSem = s.id

		next := rt.selectRunnable()
		if next == nil {
			rt.leaveMonitor()
			rt.fatal("deadlock: Sem_wait has no runnable successor")
		}

		rt.leaveMonitor()
		rt.switchTo(next)
		// Resumed: loop and retest s.count.
	}
}

// Signal increments the semaphore's count and wakes every thread parked
// waiting on it — Sem_signal. No FIFO ordering: every waiter retests the
// count itself in Wait, so only as many as the new count allows actually
// proceed; this mirrors the original's wake-all design, which spec.md
// frames FIFO fairness as an optional refinement of, not a requirement.
func (s *Semaphore) Signal() {
	rt := s.rt
	rt.enterMonitor()
	defer rt.leaveMonitor()

	s.count++
	for _, w := range rt.waitersForSem(s.id) {
		w.state = StateRunning
	}
	rt.logDebugf("semaphore signaled", nil)
}

// Count reports the semaphore's current count. Mainly useful for tests
// asserting the conservation property (final == initial + signals - waits).
func (s *Semaphore) Count() int {
	rt := s.rt
	rt.enterMonitor()
	defer rt.leaveMonitor()
	return s.count
}

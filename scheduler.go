package cothread

// selectRunnable walks the table starting just after rrCursor and returns
// the next StateRunning slot, or nil if none exists. rrCursor is advanced
// to the index found so the next call resumes from there — a direct
// translation of select_runnable_thread's static last_I cursor, which is
// process-wide (here: per-Runtime) and persists across calls rather than
// resetting.
func (rt *Runtime) selectRunnable() *slot {
	n := len(rt.table)
	if n == 0 {
		return nil
	}
	for i := 1; i <= n; i++ {
		idx := (rt.rrCursor + i) % n
		s := rt.table[idx]
		if s != nil && s.state == StateRunning {
			rt.rrCursor = idx
			return s
		}
	}
	return nil
}

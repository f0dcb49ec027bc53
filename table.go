package cothread

// findInvalidSlot returns the index of the first StateInvalid slot, or -1
// if the table is full. Mirrors the original's linear scan of
// thread_table for the first free entry.
func (rt *Runtime) findInvalidSlot() int {
	for i, s := range rt.table {
		if s == nil || s.state == StateInvalid {
			return i
		}
	}
	return -1
}

// findRunningByID returns the slot with the given id, but only if it is
// currently StateRunning — reproducing the original's Thread_exists
// quirk, flagged as a possibly-surprising Open Question: a thread parked
// in Join or Sem_wait is, for this lookup's purposes, indistinguishable
// from one that never existed.
func (rt *Runtime) findRunningByID(id uint64) *slot {
	for _, s := range rt.table {
		if s != nil && s.state == StateRunning && s.id == id {
			return s
		}
	}
	return nil
}

// waitersAtJoin returns every slot parked at Join waiting specifically
// for id (waitForID == id, which is never 0 since 0 means "everyone").
func (rt *Runtime) waitersAtJoin(id uint64) []*slot {
	var out []*slot
	for _, s := range rt.table {
		if s != nil && s.state == StateWaitAtJoin && s.waitForID == id {
			out = append(out, s)
		}
	}
	return out
}

// waiterAtJoinZero returns the single slot (if any) parked joining
// "everyone else" (waitForID == 0). At most one may exist at a time; see
// Runtime.Join's programming-error check.
func (rt *Runtime) waiterAtJoinZero() *slot {
	for _, s := range rt.table {
		if s != nil && s.state == StateWaitAtJoin && s.waitForID == 0 {
			return s
		}
	}
	return nil
}

// waitersForSem returns every slot parked on the given semaphore id.
func (rt *Runtime) waitersForSem(semID uint64) []*slot {
	var out []*slot
	for _, s := range rt.table {
		if s != nil && s.state == StateWaitForSem && s.waitingForSem == semID {
			out = append(out, s)
		}
	}
	return out
}

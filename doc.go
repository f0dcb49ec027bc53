// Package cothread implements a preemptive, single-core, cooperative
// user-space threading library: lightweight threads sharing one address
// space, a round-robin scheduler driven by a periodic tick, join semantics
// with return values, and counting semaphores.
//
// # Architecture
//
// A [Runtime] owns a fixed-size thread table ([DefaultMaxThreads] slots by
// default). Exactly one slot is ever "current" at a time — the Go
// goroutine holding a channel-based baton (see switch.go) — so the table,
// round-robin cursor, and pending-free slot are touched without a mutex:
// only the baton holder ever mutates them, which is the single design
// decision that makes this port possible without bare-metal assembly; see
// SPEC_FULL.md §0 and DESIGN.md for the full rationale.
//
// Threads are created with [Runtime.New], given their own stack-sized
// buffer and goroutine, and begin running only once the scheduler resumes
// them. [Runtime.Pause] yields voluntarily; [Runtime.Join] blocks until a
// peer (or, with tid 0, "everyone else") exits; [Semaphore] provides
// Dijkstra-style counting synchronization.
//
// # Preemption
//
// A [TickSource] (backed by a Linux timerfd, or a portable time.Ticker
// elsewhere) calls [Runtime.OnTick] periodically. OnTick defers while a
// non-reentrant host call is in flight ([Runtime.GuardLibraryCall]) or
// while a core operation's critical section is open ([Runtime.inMonitor]);
// otherwise it arms a pending-preemption flag that the running thread
// honors at its next safepoint ([Runtime.CheckPreempt]). True asynchronous,
// mid-instruction preemption has no portable Go equivalent — see
// SPEC_FULL.md §0.
//
// # Usage
//
//	rt, err := cothread.New(cothread.WithNoTick())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer rt.Close()
//
//	id, _ := rt.New(func(args any, nbytes int) int {
//		return 7
//	}, nil, 0)
//
//	rc, _ := rt.Join(id) // 7
package cothread

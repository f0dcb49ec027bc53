package cothread

import (
	"sync"
	"sync/atomic"
	"time"
)

// Runtime owns a thread table and the single baton that makes exactly one
// of its slots "current" at a time. Unlike the original's implicit,
// process-wide global state, a Runtime is an explicitly constructed
// value: nothing stops a program (or a test) from running several side
// by side, each with its own table, cursor, and tick source.
type Runtime struct {
	maxThreads   int
	stackSize    int
	tickInterval time.Duration

	table       []*slot
	current     *slot
	pendingFree *slot

	existingThreads int
	waitingForZero  int
	rrCursor        int

	nextThreadID uint64
	nextSemID    uint64

	reentrancyFlag   atomic.Bool
	monitorDepth     atomic.Int32
	preemptRequested atomic.Bool

	tick   TickSource
	logger *Logger

	exitCode int
	done     chan struct{}
	doneOnce sync.Once
}

// New constructs a Runtime and claims the calling goroutine as the
// bootstrap thread (slot 0) — the constructed-value equivalent of the
// original's implicit Thread_init(). The calling goroutine becomes
// thread id 1 and is immediately "current"; it should go on to spawn
// other threads with New, or call Pause/Join as any other thread would.
func New(opts ...RuntimeOption) (*Runtime, error) {
	cfg, err := resolveRuntimeConfig(opts)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{
		maxThreads:   cfg.maxThreads,
		stackSize:    cfg.stackSize,
		tickInterval: cfg.tickInterval,
		table:        make([]*slot, cfg.maxThreads),
		nextThreadID: 1,
		nextSemID:    1,
		logger:       cfg.logger,
		done:         make(chan struct{}),
	}

	boot := &slot{
		id:     rt.nextThreadID,
		state:  StateRunning,
		resume: make(chan struct{}),
	}
	rt.nextThreadID++
	rt.table[0] = boot
	rt.current = boot
	rt.existingThreads = 1

	if !cfg.noTick {
		tick := cfg.tick
		if tick == nil {
			tick = newTickSource()
		}
		if err := tick.Start(cfg.tickInterval, rt.OnTick); err != nil {
			return nil, err
		}
		rt.tick = tick
	}

	rt.logInfof("runtime initialized", nil)
	return rt, nil
}

// Close stops the runtime's tick source, if one is running. Call once
// the bootstrap thread (and any threads it spawned) are done, typically
// after <-rt.Done().
func (rt *Runtime) Close() error {
	if rt.tick != nil {
		return rt.tick.Stop()
	}
	return nil
}

// Done returns a channel closed once the last thread has exited — the
// point at which the original would have called exit(rc) and terminated
// the process. A library must not silently kill its host process, so
// this port surfaces termination as an observable event instead; ExitCode
// reports the terminating Exit call's return code thereafter.
func (rt *Runtime) Done() <-chan struct{} { return rt.done }

// ExitCode reports the return code the last thread passed to Exit. Only
// meaningful after Done() is closed.
func (rt *Runtime) ExitCode() int { return rt.exitCode }

func (rt *Runtime) terminate(rc int) {
	rt.exitCode = rc
	rt.doneOnce.Do(func() { close(rt.done) })
	rt.logInfof("runtime terminated", nil)
}

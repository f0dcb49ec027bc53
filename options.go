package cothread

import (
	"fmt"
	"time"
)

// Defaults mirror spec.md §6's suggested configuration values.
const (
	DefaultMaxThreads   = 8
	DefaultStackSize    = 8 * 1024
	DefaultTickInterval = 100 * time.Millisecond
)

type runtimeConfig struct {
	maxThreads   int
	stackSize    int
	tickInterval time.Duration
	tick         TickSource
	noTick       bool
	logger       *Logger
}

// RuntimeOption configures a Runtime at construction time, following
// eventloop's LoopOption/applyLoop functional-options pattern.
type RuntimeOption interface {
	applyRuntime(*runtimeConfig) error
}

type runtimeOptionFunc func(*runtimeConfig) error

func (f runtimeOptionFunc) applyRuntime(c *runtimeConfig) error { return f(c) }

// WithMaxThreads overrides the thread table's fixed capacity (MAX_THREADS).
func WithMaxThreads(n int) RuntimeOption {
	return runtimeOptionFunc(func(c *runtimeConfig) error {
		if n <= 0 {
			return fmt.Errorf("cothread: MaxThreads must be positive, got %d", n)
		}
		c.maxThreads = n
		return nil
	})
}

// WithStackSize overrides the per-thread stack buffer size (STACK_SIZE).
func WithStackSize(bytes int) RuntimeOption {
	return runtimeOptionFunc(func(c *runtimeConfig) error {
		if bytes <= 0 {
			return fmt.Errorf("cothread: StackSize must be positive, got %d", bytes)
		}
		c.stackSize = bytes
		return nil
	})
}

// WithTickInterval overrides the periodic tick's period. spec.md §9 notes
// this should be a constructor parameter rather than a hard-coded
// constant; this is that parameter.
func WithTickInterval(d time.Duration) RuntimeOption {
	return runtimeOptionFunc(func(c *runtimeConfig) error {
		if d <= 0 {
			return fmt.Errorf("cothread: TickInterval must be positive, got %s", d)
		}
		c.tickInterval = d
		return nil
	})
}

// WithTickSource installs a custom TickSource instead of the platform
// default (tick_linux.go's timerfd source, or tick_other.go's
// time.Ticker fallback elsewhere).
func WithTickSource(ts TickSource) RuntimeOption {
	return runtimeOptionFunc(func(c *runtimeConfig) error {
		c.tick = ts
		return nil
	})
}

// WithNoTick disables the periodic tick entirely, leaving preemption
// purely cooperative (Pause/Join/Sem_wait only). spec.md §8's own test
// scenarios exercise determinism this way; tests in this repo do the
// same.
func WithNoTick() RuntimeOption {
	return runtimeOptionFunc(func(c *runtimeConfig) error {
		c.noTick = true
		return nil
	})
}

// WithLogger installs a structured logger. Pass nil to disable logging
// entirely.
func WithLogger(l *Logger) RuntimeOption {
	return runtimeOptionFunc(func(c *runtimeConfig) error {
		c.logger = l
		return nil
	})
}

func resolveRuntimeConfig(opts []RuntimeOption) (*runtimeConfig, error) {
	c := &runtimeConfig{
		maxThreads:   DefaultMaxThreads,
		stackSize:    DefaultStackSize,
		tickInterval: DefaultTickInterval,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyRuntime(c); err != nil {
			return nil, err
		}
	}
	if c.logger == nil {
		c.logger = noopLogger()
	}
	return c, nil
}

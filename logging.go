package cothread

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured logger handle used by a Runtime. It is a thin
// alias over logiface's generic logger, instantiated with the stumpy
// (JSON) event implementation — the same pairing the teacher package
// declares as a dependency without fully wiring in.
type Logger = logiface.Logger[*stumpy.Event]

// NewLogger builds a default Logger, writing JSON-formatted events to
// stderr, for passing to WithLogger. A Runtime given no logger (no
// WithLogger option, or WithLogger(nil)) does not use it and logs nothing.
func NewLogger() *Logger {
	return logiface.New[*stumpy.Event](stumpy.WithStumpy())
}

// noopLogger is used when no logger is installed (no WithLogger option,
// or WithLogger(nil)), disabling logging entirely.
func noopLogger() *Logger {
	return logiface.New[*stumpy.Event]()
}

func (rt *Runtime) logDebugf(event string, fields func(b *logiface.Builder[*stumpy.Event])) {
	b := rt.logger.Debug()
	if b == nil {
		return
	}
	if fields != nil {
		fields(b)
	}
	b.Log(event)
}

func (rt *Runtime) logInfof(event string, fields func(b *logiface.Builder[*stumpy.Event])) {
	b := rt.logger.Info()
	if b == nil {
		return
	}
	if fields != nil {
		fields(b)
	}
	b.Log(event)
}

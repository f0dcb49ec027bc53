//go:build linux

package cothread

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sys/unix"
)

// timerfdTickSource drives OnTick from a Linux timerfd read in a
// dedicated goroutine — the same family of syscalls eventloop's
// poller_linux.go and wakeup_linux.go use for epoll readiness and eventfd
// wakeups, repurposed here for a free-running periodic timer instead of
// an I/O-readiness or one-shot wakeup signal.
type timerfdTickSource struct {
	fd     int
	stopCh chan struct{}
	doneCh chan struct{}
}

func newTickSource() TickSource {
	return &timerfdTickSource{fd: -1}
}

func (t *timerfdTickSource) Start(period time.Duration, handler func(pc uintptr)) error {
	fd, err := unix.TimerfdCreate(unix.CLOCK_MONOTONIC, 0)
	if err != nil {
		return fmt.Errorf("cothread: timerfd_create: %w", err)
	}

	spec := periodToItimerspec(period)
	if err := unix.TimerfdSettime(fd, 0, &spec, nil); err != nil {
		_ = unix.Close(fd)
		return fmt.Errorf("cothread: timerfd_settime: %w", err)
	}

	t.fd = fd
	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})
	go t.loop(handler)
	return nil
}

func (t *timerfdTickSource) loop(handler func(pc uintptr)) {
	defer close(t.doneCh)
	buf := make([]byte, 8)
	for {
		select {
		case <-t.stopCh:
			return
		default:
		}

		n, err := unix.Read(t.fd, buf)
		if err != nil {
			// Read errors are retried; the stopCh check above ends the
			// loop once Stop has run. Closing fd from Stop does not
			// interrupt a read already blocked here: that read returns
			// normally at the timer's next expiry, so handler can run once
			// more after Stop begins, and Stop can block for up to one period.
			continue
		}
		if n != 8 {
			continue
		}
		if binary.LittleEndian.Uint64(buf) == 0 {
			continue
		}
		handler(approximatePC())
	}
}

func (t *timerfdTickSource) Stop() error {
	if t.fd < 0 {
		return nil
	}
	close(t.stopCh)
	err := unix.Close(t.fd)
	<-t.doneCh
	return err
}

// approximatePC stands in for the interrupted instruction's program
// counter, which a userspace goroutine-based port has no way to observe:
// there is no running thread being "interrupted" here, only a handler
// invoked from its own goroutine. Kept in the TickSource.Start signature
// for symmetry with the original's timer_handler(pc) contract, and so a
// custom TickSource backed by real introspection (e.g. in a future
// hardware-assisted build) has somewhere to plug in a genuine value.
func approximatePC() uintptr {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return 0
	}
	return uintptr(pc)
}

func periodToItimerspec(d time.Duration) unix.ItimerSpec {
	ts := unix.NsecToTimespec(int64(d))
	return unix.ItimerSpec{Interval: ts, Value: ts}
}

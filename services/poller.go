package services

import (
	"sync"
	"time"
)

// poller re-runs fn on a fixed interval until stopped. Each view runs its own
// poller independently; there is no cross-timer coordination or backoff.
type poller struct {
	stop     chan struct{}
	stopOnce sync.Once
}

func startPoller(interval time.Duration, fn func()) *poller {
	p := &poller{stop: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn()
			case <-p.stop:
				return
			}
		}
	}()
	return p
}

func (p *poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
}

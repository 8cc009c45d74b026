package trace

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat periodically emits heartbeat events during long multi-file runs.
// Heartbeats without SpanEnd events in between point at a stuck file.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	status   func() string
	stopCh   chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// StartHeartbeat starts emitting a heartbeat every interval until Stop.
// status, if not nil, supplies the detail text of each beat (e.g. "3/10 files").
// Returns nil when tracing is disabled or interval is not positive; Stop on a
// nil Heartbeat is a no-op.
func StartHeartbeat(tracer Tracer, interval time.Duration, status func() string) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}

	h := &Heartbeat{
		tracer:   tracer,
		interval: interval,
		status:   status,
		stopCh:   make(chan struct{}),
	}
	h.wg.Add(1)
	go h.run()
	return h
}

func (h *Heartbeat) run() {
	defer h.wg.Done()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var beat uint64
	for {
		select {
		case <-ticker.C:
			beat++
			detail := fmt.Sprintf("#%d", beat)
			if h.status != nil {
				detail += " " + h.status()
			}
			h.tracer.Emit(&Event{
				Time:   time.Now(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    getGoroutineID(),
				Name:   "heartbeat",
				Detail: detail,
			})
		case <-h.stopCh:
			return
		}
	}
}

// Stop stops the heartbeat goroutine and waits for it to finish.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.stopOnce.Do(func() { close(h.stopCh) })
	h.wg.Wait()
}

package clock

import (
	"sync"
	"time"
)

type (
	// EventTimeSource is a fake TimeSource for tests. Its methods are
	// synchronous: timers created with AfterFunc fire from within Advance
	// or Update, on the calling goroutine, before the method returns.
	EventTimeSource struct {
		mu     sync.RWMutex
		now    time.Time
		timers []*eventTimer
	}

	eventTimer struct {
		source   *EventTimeSource
		deadline time.Time
		callback func()
		done     bool
	}
)

var _ TimeSource = (*EventTimeSource)(nil)

// NewEventTimeSource returns a fake time source positioned at the Unix
// epoch.
func NewEventTimeSource() *EventTimeSource {
	return &EventTimeSource{
		now: time.Unix(0, 0),
	}
}

func (ts *EventTimeSource) Now() time.Time {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return ts.now
}

func (ts *EventTimeSource) Since(t time.Time) time.Duration {
	return ts.Now().Sub(t)
}

// AfterFunc returns a timer that fires once the fake time reaches now+d.
// The source is locked while callbacks run, so a callback must not call
// mutating methods on the same source without spawning a goroutine. A
// non-positive d fires the callback before AfterFunc returns.
func (ts *EventTimeSource) AfterFunc(d time.Duration, f func()) Timer {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if d < 0 {
		d = 0
	}
	t := &eventTimer{source: ts, deadline: ts.now.Add(d), callback: f}
	ts.timers = append(ts.timers, t)
	ts.fireTimers()
	return t
}

// Update sets the fake current time. Returns the source for chaining:
// ts := NewEventTimeSource().Update(time.Now())
func (ts *EventTimeSource) Update(now time.Time) *EventTimeSource {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.now = now
	ts.fireTimers()
	return ts
}

// Advance moves the fake current time forward by d.
func (ts *EventTimeSource) Advance(d time.Duration) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.now = ts.now.Add(d)
	ts.fireTimers()
}

// fireTimers runs every timer whose deadline has been reached and removes
// it from the pending set. Callers must hold ts.mu.
func (ts *EventTimeSource) fireTimers() {
	remaining := ts.timers[:0]
	for _, t := range ts.timers {
		if t.deadline.After(ts.now) {
			remaining = append(remaining, t)
		} else {
			t.callback()
			t.done = true
		}
	}
	ts.timers = remaining
}

func (t *eventTimer) Reset(d time.Duration) bool {
	t.source.mu.Lock()
	defer t.source.mu.Unlock()

	if d < 0 {
		d = 0
	}
	wasActive := !t.done
	t.deadline = t.source.now.Add(d)
	if t.done {
		t.done = false
		t.source.timers = append(t.source.timers, t)
	}
	t.source.fireTimers()
	return wasActive
}

func (t *eventTimer) Stop() bool {
	t.source.mu.Lock()
	defer t.source.mu.Unlock()

	if t.done {
		return false
	}
	for i, pending := range t.source.timers {
		if pending == t {
			last := len(t.source.timers) - 1
			t.source.timers[i] = t.source.timers[last]
			t.source.timers = t.source.timers[:last]
			break
		}
	}
	t.done = true
	return true
}

package clock

import "time"

type (
	// TimeSource is a source of the current time. Components read time
	// through this interface so that tests can substitute a controlled
	// clock.
	TimeSource interface {
		Now() time.Time
		Since(t time.Time) time.Duration
		AfterFunc(d time.Duration, f func()) Timer
	}

	// Timer is a handle to a single delayed callback created via
	// TimeSource.AfterFunc.
	Timer interface {
		// Reset re-arms the timer to fire after d. Returns true if the
		// timer was still active.
		Reset(d time.Duration) bool
		// Stop disarms the timer. Returns true if the timer was still
		// active. It does not wait for a running callback to finish.
		Stop() bool
	}

	// RealTimeSource serves wall-clock time via the time package.
	RealTimeSource struct{}

	realTimer struct {
		t *time.Timer
	}
)

var _ TimeSource = (*RealTimeSource)(nil)

// NewRealTimeSource returns a time source backed by the system clock.
func NewRealTimeSource() RealTimeSource {
	return RealTimeSource{}
}

func (ts RealTimeSource) Now() time.Time {
	return time.Now().UTC()
}

func (ts RealTimeSource) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func (ts RealTimeSource) AfterFunc(d time.Duration, f func()) Timer {
	return &realTimer{t: time.AfterFunc(d, f)}
}

func (t *realTimer) Reset(d time.Duration) bool {
	return t.t.Reset(d)
}

func (t *realTimer) Stop() bool {
	return t.t.Stop()
}

package delay

import (
	"fmt"
	"time"
)

// NotReadyError is returned by Object.Get when the content is accessed
// before its ready time. It is never recovered internally; retrying after
// ReadyTime is the caller's call.
type NotReadyError struct {
	// ReadyTime is the time at which the originating Object becomes ready.
	ReadyTime time.Time

	// now is captured at construction so that the message reports the
	// remaining time as seen by the failing access.
	now time.Time
}

func newNotReadyError(readyTime time.Time, now time.Time) *NotReadyError {
	return &NotReadyError{
		ReadyTime: readyTime,
		now:       now,
	}
}

func (e *NotReadyError) Error() string {
	remaining := e.ReadyTime.Sub(e.now) / time.Second
	return fmt.Sprintf("object is not ready yet, it will be ready in %ds (%v)", remaining, e.ReadyTime)
}

package tag

import "time"

// All logging tags are defined in this file.

// Error returns tag for Error
func Error(err error) Tag {
	return NewErrorTag(err)
}

// SysStackTrace returns tag for SysStackTrace
func SysStackTrace(stackTrace string) Tag {
	return NewStringTag("sys-stack-trace", stackTrace)
}

// ReadyTime returns tag for ReadyTime
func ReadyTime(t time.Time) Tag {
	return NewTimeTag("ready-time", t)
}

// ScheduledDelay returns tag for ScheduledDelay
func ScheduledDelay(d time.Duration) Tag {
	return NewDurationTag("scheduled-delay", d)
}

// PendingTasks returns tag for PendingTasks
func PendingTasks(n int) Tag {
	return NewInt("pending-tasks", n)
}

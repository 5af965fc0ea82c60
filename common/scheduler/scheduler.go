package scheduler

import "time"

type (
	// Task is a unit of deferred work. Tasks carry no result; anything the
	// task produces is communicated through its closure.
	Task func()

	// Scheduler runs zero-argument tasks once, after a given delay. A
	// non-positive delay is legal and means the task is due immediately.
	// Tasks are never run inline by Schedule and cannot be cancelled once
	// accepted.
	Scheduler interface {
		Schedule(delay time.Duration, task Task)
	}
)
